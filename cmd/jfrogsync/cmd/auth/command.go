// Package auth provides commands for checking Port credentials.
package auth

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/jfrogsync/internal/appcontext"
	"github.com/agentstation/jfrogsync/internal/cmd/alerts"
	"github.com/agentstation/jfrogsync/internal/cmd/output"
	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/logging"
)

// Status is the printable outcome of a credential check. It never holds the token.
type Status struct {
	Service       string `json:"service" yaml:"service"`
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	ExpiresAt     string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// NewCommand creates the auth command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		GroupID: "management",
		Short:   "Check Port credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewVerifyCommand(app))

	return cmd
}

// NewVerifyCommand creates the auth verify command.
func NewVerifyCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Exchange PORT_CLIENT_ID and PORT_CLIENT_SECRET for a token",
		Long: `Verify performs the same token exchange a sync starts with and reports
whether it succeeded. The token itself is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}
			printer, err := output.NewPrinter(cmd.OutOrStdout(), app.OutputFormat())
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			creds, err := catalog.Authenticate(ctx)
			if err != nil {
				return err
			}

			status := Status{Service: "port", Authenticated: true}
			if expiresAt, ok := creds.ExpiresAt(); ok {
				status.ExpiresAt = expiresAt.Time.Format(constants.TimeFormatHuman)
			}

			if !printer.Format().IsTable() {
				return printer.Any(status)
			}
			alert := alerts.NewSuccess("Port credentials are valid")
			if status.ExpiresAt != "" {
				alert.WithDetails("token expires " + status.ExpiresAt)
			}
			return alerts.NewWriter(cmd.OutOrStdout()).WriteAlert(alert)
		},
	}
}
