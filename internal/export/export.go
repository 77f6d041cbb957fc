package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/progmatch/pkg/constants"
	"github.com/agentstation/progmatch/pkg/errors"
	"github.com/agentstation/progmatch/pkg/logging"
	"github.com/agentstation/progmatch/pkg/match"
	"github.com/agentstation/progmatch/pkg/provenance"
)

// Format is an export file format.
type Format string

const (
	// FormatCSV writes comma-separated values with a header row.
	FormatCSV Format = "csv"
	// FormatJSON writes an indented JSON array.
	FormatJSON Format = "json"
	// FormatYAML writes a YAML sequence.
	FormatYAML Format = "yaml"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", &errors.ValidationError{
			Field:   "export.format",
			Value:   s,
			Message: "must be one of: csv, json, yaml",
		}
	}
}

// Exporter writes results into a directory.
type Exporter struct {
	dir    string
	format Format
	now    func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFormat sets the file format.
func WithFormat(format Format) Option {
	return func(e *Exporter) {
		if format != "" {
			e.format = format
		}
	}
}

// WithClock replaces time.Now for file dating.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// New returns an exporter writing into dir.
func New(dir string, opts ...Option) *Exporter {
	if dir == "" {
		dir = constants.DefaultExportDir
	}
	e := &Exporter{
		dir:    dir,
		format: FormatCSV,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var unsafeLabel = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeLabel makes an operator-supplied label safe for a file name.
// Runs of other characters become a single underscore.
func SanitizeLabel(label string) string {
	label = unsafeLabel.ReplaceAllString(strings.TrimSpace(label), "_")
	return strings.Trim(label, "._")
}

// Filename returns "<date>_<label>.<ext>" for the current day, or
// "<date>.<ext>" when the label is empty.
func (e *Exporter) Filename(label string) string {
	return e.stem(label) + "." + string(e.format)
}

// ProvenanceFilename returns the provenance file name matching Filename.
func (e *Exporter) ProvenanceFilename(label string) string {
	return e.stem(label) + ".provenance.yaml"
}

func (e *Exporter) stem(label string) string {
	stem := e.now().Format(time.DateOnly)
	if l := SanitizeLabel(label); l != "" {
		stem += "_" + l
	}
	return stem
}

// Write exports results and returns the file path.
func (e *Exporter) Write(ctx context.Context, label string, results []match.Result) (string, error) {
	data, err := Encode(e.format, Records(results))
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, e.Filename(label))
	if err := writeFile(path, data); err != nil {
		return "", err
	}

	logging.FromContext(ctx).Info().
		Str("path", path).
		Str("format", string(e.format)).
		Int("records", len(results)).
		Msg("Exported results")
	return path, nil
}

// WriteProvenance saves the provenance report next to the export.
func (e *Exporter) WriteProvenance(ctx context.Context, label string, report *provenance.Report) (string, error) {
	path := filepath.Join(e.dir, e.ProvenanceFilename(label))
	if err := report.WriteFile(path); err != nil {
		return "", err
	}
	logging.FromContext(ctx).Info().
		Str("path", path).
		Int("decisions", len(report.Decisions)).
		Msg("Wrote provenance report")
	return path, nil
}

// Encode renders records in the given format.
func Encode(format Format, records []Record) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.MarshalWithOptions(records, yaml.Indent(2), yaml.IndentSequence(false))
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(Columns()); err != nil {
			return nil, err
		}
		for _, r := range records {
			if err := w.Write(r.Row()); err != nil {
				return nil, err
			}
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
