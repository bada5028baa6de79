// Package app provides the application context and dependency management
// for the jfrogsync CLI. It centralizes configuration, logging and the
// lazily created Artifactory and Port clients.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/jfrogsync"
	"github.com/agentstation/jfrogsync/internal/appcontext"
	"github.com/agentstation/jfrogsync/internal/port"
	"github.com/agentstation/jfrogsync/internal/sources/artifactory"
	"github.com/agentstation/jfrogsync/internal/transport"
	"github.com/agentstation/jfrogsync/pkg/errors"
	pkgport "github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// App represents the jfrogsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Clients (lazy-initialized, singletons)
	mu      sync.Mutex
	source  jfrogsync.Source
	catalog jfrogsync.Catalog
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations; options may replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// SyncOptions returns the sync options derived from configuration.
func (a *App) SyncOptions() []pkgsync.Option {
	return a.config.SyncOptions()
}

// Source returns the Artifactory client, creating it on first use.
func (a *App) Source() (jfrogsync.Source, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.source != nil {
		return a.source, nil
	}

	if err := a.config.ValidateSource(); err != nil {
		return nil, err
	}

	a.source = artifactory.NewClient(a.config.JFrogHostURL, a.config.JFrogAccessToken,
		transport.WithTimeout(a.config.HTTPTimeout))
	return a.source, nil
}

// Catalog returns the Port client, creating it on first use.
func (a *App) Catalog() (jfrogsync.Catalog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.catalog != nil {
		return a.catalog, nil
	}

	if err := a.config.ValidateCatalog(); err != nil {
		return nil, err
	}

	a.catalog = port.NewClient(a.config.PortAPIURL, a.config.PortClientID, a.config.PortClientSecret,
		transport.WithTimeout(a.config.HTTPTimeout))
	return a.catalog, nil
}

// Syncer returns a Syncer wired to the Artifactory and Port clients.
// Every required setting is checked up front so all missing ones are reported together.
// A dry-run Syncer needs only the Artifactory settings and never calls Port.
func (a *App) Syncer(dryRun bool) (*jfrogsync.Syncer, error) {
	if dryRun {
		return a.dryRunSyncer()
	}

	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	source, err := a.Source()
	if err != nil {
		return nil, err
	}
	catalog, err := a.Catalog()
	if err != nil {
		return nil, err
	}

	s, err := jfrogsync.New(source, catalog, jfrogsync.WithSyncDefaults(a.SyncOptions()...))
	if err != nil {
		return nil, errors.WrapResource("create", "syncer", "", err)
	}

	return s, nil
}

func (a *App) dryRunSyncer() (*jfrogsync.Syncer, error) {
	if err := a.config.ValidateSource(); err != nil {
		return nil, err
	}

	source, err := a.Source()
	if err != nil {
		return nil, err
	}

	opts := append(a.SyncOptions(), pkgsync.WithDryRun(true))
	s, err := jfrogsync.New(source, offlineCatalog{}, jfrogsync.WithSyncDefaults(opts...))
	if err != nil {
		return nil, errors.WrapResource("create", "syncer", "dry-run", err)
	}

	return s, nil
}

// offlineCatalog stands in for Port during a dry run.
type offlineCatalog struct{}

var errOffline = errors.NewConfigError("catalog", "Port is not contacted during a dry run", nil)

func (offlineCatalog) Authenticate(context.Context) (*pkgport.Credentials, error) {
	return nil, errOffline
}

func (offlineCatalog) Upsert(context.Context, *pkgport.Credentials, pkgport.BlueprintID, pkgport.Entity) error {
	return errOffline
}

// Shutdown releases application resources.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSource sets a custom source (useful for testing).
func WithSource(source jfrogsync.Source) Option {
	return func(a *App) error {
		a.source = source
		return nil
	}
}

// WithCatalog sets a custom catalog (useful for testing).
func WithCatalog(catalog jfrogsync.Catalog) Option {
	return func(a *App) error {
		a.catalog = catalog
		return nil
	}
}
