package jfrogsync

import (
	"context"
	"fmt"

	"github.com/agentstation/jfrogsync/pkg/artifactory"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Source reads inventory from Artifactory.
type Source interface {
	// FetchRepositories returns every repository in source order
	FetchRepositories(ctx context.Context) ([]artifactory.Repository, error)

	// FetchBuilds returns every build in source order
	FetchBuilds(ctx context.Context) ([]artifactory.Build, error)
}

// Catalog publishes entities to Port.
type Catalog interface {
	// Authenticate exchanges client credentials for a bearer token
	Authenticate(ctx context.Context) (*port.Credentials, error)

	// Upsert creates or merges one entity into a blueprint
	Upsert(ctx context.Context, creds *port.Credentials, blueprint port.BlueprintID, entity port.Entity) error
}

// Syncer runs sync passes from a Source into a Catalog.
type Syncer struct {
	source  Source
	catalog Catalog
	config  *config
	hooks   *hooks
}

// New creates a Syncer. Both source and catalog are required.
func New(source Source, catalog Catalog, opts ...Option) (*Syncer, error) {
	if source == nil {
		return nil, &errors.ValidationError{Field: "source", Message: "is required"}
	}
	if catalog == nil {
		return nil, &errors.ValidationError{Field: "catalog", Message: "is required"}
	}

	s := &Syncer{
		source:  source,
		catalog: catalog,
		config:  defaultConfig(),
		hooks:   newHooks(),
	}

	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	if err := pkgsync.Defaults().Apply(s.config.syncDefaults...).Validate(); err != nil {
		return nil, fmt.Errorf("validating sync defaults: %w", err)
	}

	return s, nil
}

// OnEntityPublished registers a callback for every accepted upsert.
func (s *Syncer) OnEntityPublished(fn EntityPublishedHook) {
	s.hooks.OnEntityPublished(fn)
}

// OnPublishRejected registers a callback for every rejected upsert.
func (s *Syncer) OnPublishRejected(fn PublishRejectedHook) {
	s.hooks.OnPublishRejected(fn)
}
