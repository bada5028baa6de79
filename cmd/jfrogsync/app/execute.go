package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	synccmd "github.com/agentstation/jfrogsync/cmd/jfrogsync/cmd/sync"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/logging"
)

// Execute runs the jfrogsync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	var syncFlags *synccmd.Flags

	rootCmd := &cobra.Command{
		Use:     "jfrogsync",
		Short:   "Sync JFrog Artifactory inventory into the Port catalog",
		Version: a.version,
		Long: `jfrogsync reads repositories and builds from JFrog Artifactory and
publishes each one to Port as a catalog entity.

Run without a subcommand it performs a full sync, the same as "jfrogsync sync".
Credentials come from the environment, a .env file or the config file:

  PORT_CLIENT_ID, PORT_CLIENT_SECRET, JFROG_ACCESS_TOKEN, JFROG_HOST_URL`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return synccmd.Run(cmd.Context(), a, syncFlags, cmd.OutOrStdout())
		},
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.jfrogsync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "output format: table, wide, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// --output is a hidden alias for --format
	rootCmd.PersistentFlags().StringVar(&a.config.Format, "output", "", "")
	_ = rootCmd.PersistentFlags().MarkHidden("output")

	// The root command syncs, so it accepts the sync flags too
	syncFlags = synccmd.AddFlags(rootCmd)

	rootCmd.SetVersionTemplate("jfrogsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	configFile := mustGetString(cmd, "config")
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	// An explicit config file is only known once flags are parsed
	if configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.config = config
		a.source = nil
		a.catalog = nil
		a.mu.Unlock()
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// ExitOnError is a helper that prints an error, with a hint when one applies, and exits.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		if hint := errorHint(err); hint != "" {
			_, _ = os.Stderr.WriteString("Hint: " + hint + "\n")
		}
		os.Exit(exitCode(err))
	}
}

// errorHint suggests a next step for failures the user can act on.
func errorHint(err error) string {
	switch {
	case errors.IsTimeout(err):
		return "a request timed out; raise HTTP_TIMEOUT or the sync --timeout"
	case errors.IsRateLimited(err):
		return "the service is rate limiting requests; retry later"
	case errors.IsAuthenticationError(err):
		return "check PORT_CLIENT_ID and PORT_CLIENT_SECRET with 'jfrogsync auth verify'"
	case errors.IsValidationError(err):
		return "run 'jfrogsync config' to see the effective settings"
	}
	return ""
}

// exitCode is 130 for an interrupted run, as shells report SIGINT, and 1 otherwise.
func exitCode(err error) int {
	if errors.IsCanceled(err) {
		return 130
	}
	return 1
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
