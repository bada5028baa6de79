package jfrogsync

import (
	"sync"

	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/port"
)

// Hook function types for publish events
type (
	// EntityPublishedHook is called when the catalog accepts an upsert
	EntityPublishedHook func(blueprint port.BlueprintID, entity port.Entity)

	// PublishRejectedHook is called when the catalog rejects an upsert
	PublishRejectedHook func(warning *errors.PublishWarning)
)

// hooks manages event callbacks for publish outcomes
type hooks struct {
	mu                sync.RWMutex
	onEntityPublished []EntityPublishedHook
	onPublishRejected []PublishRejectedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnEntityPublished registers a callback for accepted upserts
func (h *hooks) OnEntityPublished(fn EntityPublishedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEntityPublished = append(h.onEntityPublished, fn)
}

// OnPublishRejected registers a callback for rejected upserts
func (h *hooks) OnPublishRejected(fn PublishRejectedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPublishRejected = append(h.onPublishRejected, fn)
}

func (h *hooks) triggerPublished(blueprint port.BlueprintID, entity port.Entity) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onEntityPublished {
		hook(blueprint, entity)
	}
}

func (h *hooks) triggerRejected(warning *errors.PublishWarning) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onPublishRejected {
		hook(warning)
	}
}
