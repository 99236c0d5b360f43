package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentstation/strainmap/cmd/strainmap/cmd/ingest"
	"github.com/agentstation/strainmap/cmd/strainmap/cmd/list"
	"github.com/agentstation/strainmap/cmd/strainmap/cmd/research"
	"github.com/agentstation/strainmap/cmd/strainmap/cmd/serve"
	"github.com/agentstation/strainmap/cmd/strainmap/cmd/template"
	"github.com/agentstation/strainmap/internal/cmd/output"
)

// Execute runs the strainmap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "strainmap",
		Short:   "Cannabis strain text extraction and library",
		Version: a.version,
		Long: `Strainmap turns pasted strain descriptions into structured profiles.

A rule-based parser reads labeled or free-form text. When a Gemini API key
is configured, an LLM extraction runs alongside it; both candidates are
merged and every field is reviewed with its source and a confidence tier.
Profiles are kept in a YAML library that the serve command exposes to the
web client.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Extraction Commands:"},
		&cobra.Group{ID: "library", Title: "Library Commands:"},
		&cobra.Group{ID: "server", Title: "Server Commands:"},
	)

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.strainmap.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().String("library", "", "library file (default is ~/.strainmap/strains.yaml)")
	rootCmd.PersistentFlags().Bool("no-llm", false, "never call the Gemini API")

	rootCmd.SetVersionTemplate("strainmap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config is given, applies the global flags and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)
	if path := mustGetString(cmd, "library"); path != "" {
		a.config.LibraryPath = path
	}
	if mustGetBool(cmd, "no-llm") {
		a.config.UseLLM = false
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Extraction commands
	rootCmd.AddCommand(ingest.NewParseCommand(a))
	rootCmd.AddCommand(ingest.NewImportCommand(a))
	rootCmd.AddCommand(research.NewCommand(a))
	rootCmd.AddCommand(template.NewCommand(a))

	// Library commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(list.NewShowCommand(a))
	rootCmd.AddCommand(list.NewDeleteCommand(a))

	// Server commands
	rootCmd.AddCommand(serve.NewCommand(a))

	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "strainmap %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ContextWithSignals creates a context that is cancelled when the application
// receives an interrupt or termination signal.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// ExitOnError prints err to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
