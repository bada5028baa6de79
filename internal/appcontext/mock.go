package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/jfrogsync"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &appcontext.Mock{
//	    SourceFunc: func() (jfrogsync.Source, error) {
//	        return fakeSource, nil
//	    },
//	}
//	cmd := fetch.NewCommand(mock)
type Mock struct {
	SourceFunc       func() (jfrogsync.Source, error)
	CatalogFunc      func() (jfrogsync.Catalog, error)
	SyncerFunc       func(dryRun bool) (*jfrogsync.Syncer, error)
	SyncOptionsFunc  func() []pkgsync.Option
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Interface = (*Mock)(nil)

// Source returns a source using the mock function or nil.
func (m *Mock) Source() (jfrogsync.Source, error) {
	if m.SourceFunc != nil {
		return m.SourceFunc()
	}
	return nil, nil
}

// Catalog returns a catalog using the mock function or nil.
func (m *Mock) Catalog() (jfrogsync.Catalog, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc()
	}
	return nil, nil
}

// Syncer returns a syncer using the mock function, or one built from
// Source and Catalog when both are set.
func (m *Mock) Syncer(dryRun bool) (*jfrogsync.Syncer, error) {
	if m.SyncerFunc != nil {
		return m.SyncerFunc(dryRun)
	}
	source, err := m.Source()
	if err != nil {
		return nil, err
	}
	catalog, err := m.Catalog()
	if err != nil {
		return nil, err
	}
	opts := m.SyncOptions()
	if dryRun {
		opts = append(opts, pkgsync.WithDryRun(true))
	}
	return jfrogsync.New(source, catalog, jfrogsync.WithSyncDefaults(opts...))
}

// SyncOptions returns sync options using the mock function or none.
func (m *Mock) SyncOptions() []pkgsync.Option {
	if m.SyncOptionsFunc != nil {
		return m.SyncOptionsFunc()
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
