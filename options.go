package jfrogsync

import (
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Option is a function that configures a Syncer
type Option func(*config) error

// config holds Syncer settings that apply to every run
type config struct {
	syncDefaults []pkgsync.Option
}

func defaultConfig() *config {
	return &config{}
}

// WithSyncDefaults sets sync options applied to every run before the per-call options.
func WithSyncDefaults(opts ...pkgsync.Option) Option {
	return func(c *config) error {
		c.syncDefaults = append(c.syncDefaults, opts...)
		return nil
	}
}
