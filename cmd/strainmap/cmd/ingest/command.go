// Package ingest provides the parse and import commands.
package ingest

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/strainmap/internal/cmd/alerts"
	"github.com/agentstation/strainmap/internal/cmd/application"
	"github.com/agentstation/strainmap/internal/cmd/cmdutil"
	"github.com/agentstation/strainmap/internal/cmd/output"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/parser"
)

// NewParseCommand creates the parse command.
func NewParseCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "parse [file]",
		GroupID: "core",
		Short:   "Extract a profile with the local parser only",
		Long: `Parse runs the rule-based parser over strain text and prints the
resulting profile. No LLM call is made and nothing is stored.

The text is read from the given file, or from stdin when no file is given
or the file is "-".`,
		Example: `  strainmap parse blue-dream.txt
  pbpaste | strainmap parse -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := cmdutil.ReadInput(cmd, args)
			if err != nil {
				return err
			}
			profile := parser.Parse(text)
			return output.NewPrinter(cmd.OutOrStdout(), output.Format(app.OutputFormat())).Profile(profile)
		},
	}
}

type importFlags struct {
	save             bool
	validateTemplate bool
}

// NewImportCommand creates the import command.
func NewImportCommand(app application.Application) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:     "import [file]",
		GroupID: "core",
		Short:   "Extract, merge and review a strain profile",
		Long: `Import runs the full pipeline over strain text: the local parser, the
Gemini extraction when an API key is configured, the merge of both
candidates and the per-field review.

A failed LLM call never fails the import; the local result is shown with
a warning. Use the global --no-llm flag to skip the LLM and --save to
store the merged profile in the library.`,
		Example: `  strainmap import blue-dream.txt
  strainmap import --no-llm --save blue-dream.txt
  cat form.txt | strainmap import --validate-template -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.save, "save", false, "Store the merged profile in the library")
	cmd.Flags().BoolVar(&flags.validateTemplate, "validate-template", false,
		"Reject text missing required template labels")

	return cmd
}

func runImport(cmd *cobra.Command, args []string, app application.Application, flags *importFlags) error {
	ctx := cmd.Context()

	text, err := cmdutil.ReadInput(cmd, args)
	if err != nil {
		return err
	}

	var opts []importer.Option
	if flags.validateTemplate {
		opts = append(opts, importer.WithTemplateValidation(true))
	}
	imp, err := app.Importer(ctx, opts...)
	if err != nil {
		return err
	}

	res, err := imp.Import(ctx, text)
	if err != nil {
		return err
	}

	if err := output.NewPrinter(cmd.OutOrStdout(), output.Format(app.OutputFormat())).Import(res); err != nil {
		return err
	}

	notices := alerts.ForImport(res)
	if flags.save {
		store, err := app.Library()
		if err != nil {
			return err
		}
		saved, err := store.Upsert(ctx, res.Merged)
		if err != nil {
			return err
		}
		notices = append(notices, alerts.NewSuccess("Saved "+saved.ID+" to "+store.Path()))
	}
	return alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor()).Write(notices...)
}
