// Package list provides the library commands: list, show and delete.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/strainmap/internal/cmd/alerts"
	"github.com/agentstation/strainmap/internal/cmd/application"
	"github.com/agentstation/strainmap/internal/cmd/cmdutil"
	"github.com/agentstation/strainmap/internal/cmd/output"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var filter *cmdutil.FilterFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "library",
		Short:   "List strains in the library",
		Long: `List prints the profiles stored in the library. An empty library shows
the built-in seed profiles.

Filters combine; all comparisons ignore case.`,
		Example: `  strainmap list
  strainmap list --manufacturer aurora -o wide
  strainmap list --effect entspannend --medical schlaf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.Library()
			if err != nil {
				return err
			}
			profiles, err := store.List(cmd.Context(), filter.Filter())
			if err != nil {
				return err
			}
			return output.NewPrinter(cmd.OutOrStdout(), output.Format(app.OutputFormat())).Profiles(profiles)
		},
	}

	filter = cmdutil.AddFilterFlags(cmd)
	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		GroupID: "library",
		Short:   "Show one strain profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Library()
			if err != nil {
				return err
			}
			profile, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.NewPrinter(cmd.OutOrStdout(), output.Format(app.OutputFormat())).Profile(profile)
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		GroupID: "library",
		Short:   "Delete a strain profile from the library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Library()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor()).Write(alerts.NewSuccess("Deleted " + args[0]))
		},
	}
}
