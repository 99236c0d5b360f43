// Package research provides the research command.
package research

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/strainmap/internal/cmd/alerts"
	"github.com/agentstation/strainmap/internal/cmd/application"
	"github.com/agentstation/strainmap/internal/cmd/cmdutil"
	"github.com/agentstation/strainmap/internal/cmd/output"
)

// NewCommand creates the research command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		file string
		save bool
	)

	cmd := &cobra.Command{
		Use:     "research [name...]",
		GroupID: "core",
		Short:   "Research strains by name with Gemini web search",
		Long: `Research looks up one or more strain names with Gemini and Google Search
and prints one profile per strain found.

Names may be given as arguments or read from a file or stdin, separated by
newlines, commas, semicolons or bullets. Requires a Gemini API key.`,
		Example: `  strainmap research "Blue Dream" "Pink Kush"
  strainmap research --file wishlist.txt --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input := strings.Join(args, "\n")
			if len(args) == 0 {
				var readArgs []string
				if file != "" {
					readArgs = []string{file}
				}
				text, err := cmdutil.ReadInput(cmd, readArgs)
				if err != nil {
					return err
				}
				input = text
			}

			imp, err := app.Importer(ctx)
			if err != nil {
				return err
			}
			profiles, err := imp.Research(ctx, input)
			if err != nil {
				return err
			}

			if err := output.NewPrinter(cmd.OutOrStdout(), output.Format(app.OutputFormat())).Profiles(profiles); err != nil {
				return err
			}
			if !save {
				return nil
			}

			store, err := app.Library()
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(profiles))
			for _, p := range profiles {
				saved, err := store.Upsert(ctx, p)
				if err != nil {
					return err
				}
				ids = append(ids, saved.ID)
			}
			return alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor()).Write(
				alerts.NewSuccess(fmt.Sprintf("Saved %d profiles to %s", len(ids), store.Path())).WithDetails(ids...),
			)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read names from a file (- for stdin)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the researched profiles in the library")

	return cmd
}
