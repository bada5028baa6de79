// Package config provides the config command.
package config

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/jfrogsync/internal/appcontext"
	"github.com/agentstation/jfrogsync/internal/cmd/output"
)

// NewCommand creates the config command. effective returns the
// configuration to print and must already have secrets redacted.
func NewCommand(app appcontext.Interface, effective func() any) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		GroupID: "management",
		Short:   "Show the effective configuration",
		Long: `Config prints the settings jfrogsync would run with after merging
flags, environment variables, .env files and the config file.
Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer, err := output.NewPrinter(cmd.OutOrStdout(), app.OutputFormat())
			if err != nil {
				return err
			}
			return printer.Any(effective())
		},
	}
}
