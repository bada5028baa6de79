package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/jfrogsync/cmd/jfrogsync/cmd/auth"
	configcmd "github.com/agentstation/jfrogsync/cmd/jfrogsync/cmd/config"
	"github.com/agentstation/jfrogsync/cmd/jfrogsync/cmd/fetch"
	synccmd "github.com/agentstation/jfrogsync/cmd/jfrogsync/cmd/sync"
	"github.com/agentstation/jfrogsync/cmd/jfrogsync/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(synccmd.NewCommand(a))
	rootCmd.AddCommand(fetch.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(auth.NewCommand(a))
	rootCmd.AddCommand(configcmd.NewCommand(a, a.Redacted))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// Redacted returns the effective configuration with secrets hidden.
func (a *App) Redacted() any {
	return a.config.Redacted()
}
