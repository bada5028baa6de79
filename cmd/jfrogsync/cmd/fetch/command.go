// Package fetch provides commands that read Artifactory collections without publishing.
package fetch

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/jfrogsync/internal/appcontext"
	"github.com/agentstation/jfrogsync/internal/cmd/output"
	"github.com/agentstation/jfrogsync/pkg/convert"
	"github.com/agentstation/jfrogsync/pkg/logging"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// NewCommand creates the fetch command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fetch [collection]",
		GroupID: "core",
		Short:   "Read a collection from Artifactory",
		Long: `Fetch reads one collection from Artifactory and prints it. Nothing is
published to Port. With --entities the records are printed as the Port
entities a sync would publish.

This requires JFROG_HOST_URL and JFROG_ACCESS_TOKEN.`,
		Example: `  jfrogsync fetch repositories
  jfrogsync fetch builds -o json
  jfrogsync fetch repositories --entities -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var entities bool
	cmd.PersistentFlags().BoolVar(&entities, "entities", false, "Print converted Port entities instead of raw records")

	cmd.AddCommand(newRepositoriesCommand(app, &entities))
	cmd.AddCommand(newBuildsCommand(app, &entities))

	return cmd
}

func newRepositoriesCommand(app appcontext.Interface, entities *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "repositories",
		Aliases: []string{"repos", "repository"},
		Short:   "List Artifactory repositories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := app.Source()
			if err != nil {
				return err
			}
			printer, err := output.NewPrinter(cmd.OutOrStdout(), app.OutputFormat())
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			repos, err := source.FetchRepositories(ctx)
			if err != nil {
				return err
			}

			if *entities {
				blueprint := pkgsync.Defaults().Apply(app.SyncOptions()...).RepositoryBlueprint
				return printer.Entities(blueprint, convert.RepositoryEntities(repos))
			}
			return printer.Repositories(repos)
		},
	}
}

func newBuildsCommand(app appcontext.Interface, entities *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "builds",
		Aliases: []string{"build"},
		Short:   "List Artifactory builds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := app.Source()
			if err != nil {
				return err
			}
			printer, err := output.NewPrinter(cmd.OutOrStdout(), app.OutputFormat())
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			builds, err := source.FetchBuilds(ctx)
			if err != nil {
				return err
			}

			if *entities {
				blueprint := pkgsync.Defaults().Apply(app.SyncOptions()...).BuildBlueprint
				return printer.Entities(blueprint, convert.BuildEntities(builds))
			}
			return printer.Builds(builds)
		},
	}
}
