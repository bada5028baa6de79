// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/jfrogsync"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Interface defines the application context that commands need.
// The App struct from cmd/jfrogsync/app implements it.
type Interface interface {
	// Source returns the Artifactory client, creating it lazily.
	// It fails if the source settings are missing.
	Source() (jfrogsync.Source, error)

	// Catalog returns the Port client, creating it lazily.
	// It fails if the catalog settings are missing.
	Catalog() (jfrogsync.Catalog, error)

	// Syncer returns a Syncer wired to Source and Catalog. A dry-run Syncer
	// needs only the source settings and never contacts the catalog.
	Syncer(dryRun bool) (*jfrogsync.Syncer, error)

	// SyncOptions returns the sync options derived from configuration.
	// Command flags are applied after these.
	SyncOptions() []pkgsync.Option

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
