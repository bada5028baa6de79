// Package sync provides the sync command implementation.
package sync

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/jfrogsync/internal/appcontext"
	"github.com/agentstation/jfrogsync/internal/cmd/alerts"
	"github.com/agentstation/jfrogsync/internal/cmd/output"
	"github.com/agentstation/jfrogsync/pkg/logging"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	DryRun         bool
	Only           string
	OnPublishError string
	Timeout        time.Duration
}

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Publish Artifactory repositories and builds to Port",
		Args:    cobra.NoArgs,
		Long: `Sync reads every repository and every build from Artifactory and upserts
each one into Port as an entity, merging with any existing entity.

The command will:
• Exchange the Port client id and secret for an access token
• Publish all repositories to the repository blueprint
• Publish all builds to the build blueprint

A failed read from Artifactory stops the run. Entities Port rejects are
logged and counted unless --on-publish-error=fail is set.`,
		Example: `  jfrogsync sync                            # Publish everything
  jfrogsync sync --dry-run                  # Show payloads without publishing
  jfrogsync sync --only builds              # Publish builds only
  jfrogsync sync --on-publish-error fail    # Stop at the first rejected entity
  jfrogsync sync -o json                    # Print the result as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	}

	flags = AddFlags(cmd)

	return cmd
}

// AddFlags adds the sync flags to cmd.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Fetch and convert records and log the payloads without authenticating or publishing")
	cmd.Flags().StringVar(&flags.Only, "only", "",
		"Run a single pass: repositories or builds")
	cmd.Flags().StringVar(&flags.OnPublishError, "on-publish-error", "",
		"What a rejected entity does: warn or fail (default from PUBLISH_ERROR_POLICY)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0,
		"Deadline for the whole run, e.g. 5m (0 means none)")

	return flags
}

// Options converts flags to sync options.
func (f *Flags) Options() ([]pkgsync.Option, error) {
	if f == nil {
		return nil, nil
	}

	var opts []pkgsync.Option
	if f.DryRun {
		opts = append(opts, pkgsync.WithDryRun(true))
	}
	if f.Timeout != 0 {
		opts = append(opts, pkgsync.WithTimeout(f.Timeout))
	}

	if f.Only != "" {
		pass, err := pkgsync.ParsePass(f.Only)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pkgsync.WithPasses(pass))
	}

	if f.OnPublishError != "" {
		policy, err := pkgsync.ParsePublishPolicy(f.OnPublishError)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pkgsync.WithPublishPolicy(policy))
	}

	return opts, nil
}

// Run executes a sync and prints the result to w.
// A partial result is printed before a run error is returned.
func Run(ctx context.Context, app appcontext.Interface, flags *Flags, w io.Writer) error {
	opts, err := flags.Options()
	if err != nil {
		return err
	}

	printer, err := output.NewPrinter(w, app.OutputFormat())
	if err != nil {
		return err
	}

	syncer, err := app.Syncer(flags != nil && flags.DryRun)
	if err != nil {
		return err
	}

	ctx = logging.WithLogger(ctx, app.Logger())
	result, err := syncer.Sync(ctx, opts...)
	if result != nil && len(result.Passes) > 0 {
		if printErr := printer.Result(result); printErr != nil && err == nil {
			err = printErr
		}
		if printer.Format().IsTable() {
			if alertErr := alerts.NewWriter(w).WriteAlert(alerts.ForResult(result, err)); alertErr != nil && err == nil {
				err = alertErr
			}
		}
	}
	if err != nil {
		app.Logger().Error().Err(err).Msg("Sync failed")
		return err
	}

	app.Logger().Info().Msg(result.Summary())
	return nil
}
