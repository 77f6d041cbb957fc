package match

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/agentstation/progmatch/cmd/application"
	"github.com/agentstation/progmatch/internal/cmd/alerts"
	"github.com/agentstation/progmatch/internal/cmd/output"
	"github.com/agentstation/progmatch/internal/cmd/table"
	"github.com/agentstation/progmatch/internal/config"
	"github.com/agentstation/progmatch/internal/export"
	"github.com/agentstation/progmatch/internal/operator"
	"github.com/agentstation/progmatch/internal/sources"
	"github.com/agentstation/progmatch/pkg/candidates"
	"github.com/agentstation/progmatch/pkg/disambiguate"
	"github.com/agentstation/progmatch/pkg/entity"
	"github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/logging"
	pkgmatch "github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/provenance"
	"github.com/agentstation/progmatch/pkg/reconciler"
)

// LabelQuestion is asked when no export label is configured.
const LabelQuestion = "Which categories did you run this on (underscore separated):"

// Run loads both inputs, runs the session on the terminal operator and
// exports the results.
func Run(ctx context.Context, app application.Application, s *config.Settings) error {
	if s.Query.File == "" {
		return errors.NewValidationError("query.file", "", "is required (--queries)")
	}
	if s.Reference.File == "" {
		return errors.NewValidationError("reference.file", "", "is required (--references)")
	}
	format, err := export.ParseFormat(s.Export.Format)
	if err != nil {
		return err
	}

	queries, refs, err := load(ctx, s)
	if err != nil {
		return err
	}

	selector, err := candidates.NewSelector(refs, s.Categories)
	if err != nil {
		return err
	}

	term := operator.NewTerminal(app.Stdin(), app.Stdout(), operator.WithColor(!app.NoColor()))
	defer func() { _ = term.Close() }()
	controller := disambiguate.New(selector, term,
		disambiguate.WithThreshold(s.Threshold),
		disambiguate.WithDisplayLimit(s.DisplayLimit),
		disambiguate.WithTerminationToken(s.TerminationToken),
	)

	logger := logging.FromContext(ctx)
	rec, err := reconciler.New(controller,
		reconciler.WithProvenance(s.Export.Provenance),
		reconciler.WithObserver(func(position, total int, result pkgmatch.Result) {
			logger.Debug().
				Int("position", position).
				Int("total", total).
				Str("query", result.QueryName).
				Stringer("resolution", result.Resolution).
				Msg("Query processed")
		}),
	)
	if err != nil {
		return err
	}

	result, err := rec.Run(ctx, queries)
	if err != nil {
		return err
	}

	alertWriter := alerts.NewFormatWriter(app.Stdout(), output.FormatTable).WithColor(!app.NoColor())

	label := s.Export.Label
	if label == "" {
		label, err = term.Question(ctx, LabelQuestion)
		switch {
		case err == nil, stderrors.Is(err, io.EOF):
		case ctx.Err() != nil:
			return errors.WrapCanceled("read export label", err)
		default:
			return fmt.Errorf("read export label: %w", err)
		}
	}

	exporter := export.New(s.Export.Dir, export.WithFormat(format))
	path, err := exporter.Write(ctx, label, result.Matches)
	if err != nil {
		return err
	}

	details := []string{"Results: " + path}
	if s.Export.Provenance {
		report := provenance.GenerateReport(result.Metadata.SessionID, result.Provenance, result.Metadata.TerminatedEarly)
		reportPath, err := exporter.WriteProvenance(ctx, label, report)
		if err != nil {
			return err
		}
		details = append(details, "Provenance: "+reportPath)
	}

	if _, err := fmt.Fprintln(app.Stdout()); err != nil {
		return err
	}
	if err := output.Print(app.Stdout(), outputFormat(app), table.MatchesToTableData(result.Matches), result); err != nil {
		return err
	}

	alert := alerts.NewSuccess(result.Summary()).WithDetails(details...)
	if result.Metadata.TerminatedEarly {
		alert = alerts.NewWarning(result.Summary()).WithDetails(details...)
	}
	return alertWriter.WriteAlert(alert)
}

func load(ctx context.Context, s *config.Settings) ([]entity.Query, []entity.Reference, error) {
	queryLoader, err := sources.Open(s.Query.File,
		sources.WithNameColumn(s.Query.NameColumn),
		sources.WithCategoryColumn(s.Query.CategoryColumn),
	)
	if err != nil {
		return nil, nil, err
	}
	queries, err := sources.Queries(ctx, queryLoader)
	if err != nil {
		return nil, nil, err
	}
	queries = sources.FilterByCategory(ctx, queries, s.Query.Filter...)

	refLoader, err := sources.Open(s.Reference.File,
		sources.WithNameColumn(s.Reference.NameColumn),
		sources.WithCategoryColumn(s.Reference.CategoryColumn),
		sources.WithTable(s.Reference.Table),
	)
	if err != nil {
		return nil, nil, err
	}
	refs, err := sources.References(ctx, refLoader)
	if err != nil {
		return nil, nil, err
	}
	return queries, refs, nil
}

// outputFormat picks the summary format. Table is the default because the
// session is interactive.
func outputFormat(app application.Application) output.Format {
	if f := app.OutputFormat(); f != "" {
		return output.Format(f)
	}
	return output.FormatTable
}
