package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/progmatch/cmd/progmatch/cmd/match"
	"github.com/agentstation/progmatch/cmd/progmatch/cmd/score"
	"github.com/agentstation/progmatch/cmd/progmatch/cmd/settings"
)

// CreateMatchCommand creates the match command with app dependencies.
func (a *App) CreateMatchCommand() *cobra.Command {
	cmd := match.NewCommand(a)
	cmd.GroupID = "core"
	return cmd
}

// CreateScoreCommand creates the score command with app dependencies.
func (a *App) CreateScoreCommand() *cobra.Command {
	cmd := score.NewCommand(a)
	cmd.GroupID = "core"
	return cmd
}

// CreateConfigCommand creates the config command with app dependencies.
func (a *App) CreateConfigCommand() *cobra.Command {
	cmd := settings.NewCommand(a)
	cmd.GroupID = "management"
	return cmd
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("progmatch %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
