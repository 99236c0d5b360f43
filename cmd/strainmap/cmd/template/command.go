// Package template provides the template command.
package template

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/strainmap/internal/cmd/alerts"
	"github.com/agentstation/strainmap/internal/cmd/application"
	"github.com/agentstation/strainmap/internal/cmd/cmdutil"
	"github.com/agentstation/strainmap/internal/cmd/output"
	"github.com/agentstation/strainmap/pkg/errors"
	strainTemplate "github.com/agentstation/strainmap/pkg/template"
)

// NewCommand creates the template command with its validate subcommand.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		GroupID: "core",
		Short:   "Print the structured import template",
		Long: `Template prints the blank import form. Filling it in gives the parser
labeled lines for every field.`,
		Example: `  strainmap template > form.txt
  strainmap template validate form.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(strainTemplate.Template))
			return err
		},
	}

	cmd.AddCommand(newValidateCommand(app))
	return cmd
}

func newValidateCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check text for the required template labels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := cmdutil.ReadInput(cmd, args)
			if err != nil {
				return err
			}

			v := strainTemplate.Validate(text)
			format := output.Format(app.OutputFormat())
			if format.IsTable() {
				alert := alerts.NewSuccess("Template complete")
				if !v.Valid {
					alert = alerts.NewWarning("Template incomplete").WithDetails(v.Missing...)
				}
				if err := alerts.NewWriter(cmd.OutOrStdout(), app.NoColor()).Write(alert); err != nil {
					return err
				}
			} else if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), v); err != nil {
				return err
			}

			if !v.Valid {
				return &errors.ValidationError{
					Field:   "text",
					Value:   v.Missing,
					Message: "template incomplete, " + v.String(),
				}
			}
			return nil
		},
	}
}
