// Package score provides the command that scores one pair of names.
package score

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/progmatch/cmd/application"
	"github.com/agentstation/progmatch/internal/cmd/output"
	"github.com/agentstation/progmatch/internal/cmd/table"
	"github.com/agentstation/progmatch/pkg/similarity"
)

// Pair is the structured output of the score command.
type Pair struct {
	Query     string         `json:"query" yaml:"query"`
	Candidate string         `json:"candidate" yaml:"candidate"`
	Scores    map[string]int `json:"scores" yaml:"scores"`
	Composite float64        `json:"composite_score" yaml:"composite_score"`
}

// NewCommand creates the score command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "score <query> <candidate>",
		Short: "Print the similarity metrics for one pair of names",
		Long: `Score prints the five similarity metrics used for ranking and their
composite mean. Useful for tuning the auto-accept threshold.`,
		Example: `  progmatch score "Gen Surg" "General Surgery"
  progmatch score "UTSW General Surgery" "UTSW General Surgery." -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scores := similarity.Score(args[0], args[1])
			pair := Pair{
				Query:     args[0],
				Candidate: args[1],
				Scores:    scores.Map(),
				Composite: scores.Mean(),
			}
			format := output.FormatTable
			if f := app.OutputFormat(); f != "" {
				format = output.Format(f)
			}
			return output.Print(app.Stdout(), format, table.ScoresToTableData(scores), pair)
		},
	}
}
