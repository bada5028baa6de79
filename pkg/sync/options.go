// Package sync provides options and results for a sync run from Artifactory into Port.
package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/port"
)

// Pass names one of the two sync passes.
type Pass string

const (
	// PassRepositories publishes every repository to the repository blueprint.
	PassRepositories Pass = "repositories"
	// PassBuilds publishes every build to the build blueprint.
	PassBuilds Pass = "builds"
)

// String returns the pass name.
func (p Pass) String() string {
	return string(p)
}

// AllPasses returns every pass in execution order.
func AllPasses() []Pass {
	return []Pass{PassRepositories, PassBuilds}
}

// ParsePass parses a pass name, case-insensitively.
func ParsePass(s string) (Pass, error) {
	switch Pass(strings.ToLower(strings.TrimSpace(s))) {
	case PassRepositories:
		return PassRepositories, nil
	case PassBuilds:
		return PassBuilds, nil
	}
	return "", &errors.ValidationError{
		Field:   "Pass",
		Value:   s,
		Message: fmt.Sprintf("must be %q or %q", PassRepositories, PassBuilds),
	}
}

// PublishPolicy decides what a rejected entity upsert does to the run.
type PublishPolicy string

const (
	// PublishPolicyWarn logs the rejection, counts it and keeps going.
	PublishPolicyWarn PublishPolicy = "warn"
	// PublishPolicyFail aborts the run on the first rejection.
	PublishPolicyFail PublishPolicy = "fail"
)

// String returns the policy name.
func (p PublishPolicy) String() string {
	return string(p)
}

// ParsePublishPolicy parses a policy name, case-insensitively.
func ParsePublishPolicy(s string) (PublishPolicy, error) {
	switch PublishPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PublishPolicyWarn:
		return PublishPolicyWarn, nil
	case PublishPolicyFail:
		return PublishPolicyFail, nil
	}
	return "", &errors.ValidationError{
		Field:   "PublishPolicy",
		Value:   s,
		Message: fmt.Sprintf("must be %q or %q", PublishPolicyWarn, PublishPolicyFail),
	}
}

// Options controls a single sync run.
type Options struct {
	// Orchestration control
	DryRun        bool          // Fetch and convert, log payloads, skip authentication and publishing
	Timeout       time.Duration // Deadline for the whole run (zero means none)
	PublishPolicy PublishPolicy // What a rejected upsert does

	// Pass selection
	Passes []Pass // Passes to run; always executed repositories first

	// Target blueprints
	RepositoryBlueprint port.BlueprintID
	BuildBlueprint      port.BlueprintID
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:              false,
		Timeout:             0,
		PublishPolicy:       PublishPolicyWarn,
		Passes:              AllPasses(),
		RepositoryBlueprint: constants.DefaultRepositoryBlueprint,
		BuildBlueprint:      constants.DefaultBuildBlueprint,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid and normalizes the policy
// and pass names to their canonical form.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	policy, err := ParsePublishPolicy(string(s.PublishPolicy))
	if err != nil {
		return err
	}
	s.PublishPolicy = policy

	if len(s.Passes) == 0 {
		return &errors.ValidationError{
			Field:   "Passes",
			Value:   s.Passes,
			Message: "at least one pass is required",
		}
	}
	passes := make([]Pass, 0, len(s.Passes))
	for _, p := range s.Passes {
		pass, err := ParsePass(string(p))
		if err != nil {
			return err
		}
		passes = append(passes, pass)
	}
	s.Passes = passes

	if s.Runs(PassRepositories) && s.RepositoryBlueprint == "" {
		return &errors.ValidationError{
			Field:   "RepositoryBlueprint",
			Value:   s.RepositoryBlueprint,
			Message: "blueprint must not be empty",
		}
	}
	if s.Runs(PassBuilds) && s.BuildBlueprint == "" {
		return &errors.ValidationError{
			Field:   "BuildBlueprint",
			Value:   s.BuildBlueprint,
			Message: "blueprint must not be empty",
		}
	}

	return nil
}

// Runs reports whether pass is selected.
func (s *Options) Runs(pass Pass) bool {
	for _, p := range s.Passes {
		if p == pass {
			return true
		}
	}
	return false
}

// OrderedPasses returns the selected passes in execution order, without duplicates.
func (s *Options) OrderedPasses() []Pass {
	var passes []Pass
	for _, p := range AllPasses() {
		if s.Runs(p) {
			passes = append(passes, p)
		}
	}
	return passes
}

// Blueprint returns the target blueprint of pass.
func (s *Options) Blueprint(pass Pass) port.BlueprintID {
	if pass == PassBuilds {
		return s.BuildBlueprint
	}
	return s.RepositoryBlueprint
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithPublishPolicy configures what a rejected upsert does.
func WithPublishPolicy(policy PublishPolicy) Option {
	return func(opts *Options) {
		opts.PublishPolicy = policy
	}
}

// WithPasses restricts the run to the given passes. Empty means all.
func WithPasses(passes ...Pass) Option {
	return func(opts *Options) {
		if len(passes) == 0 {
			opts.Passes = AllPasses()
			return
		}
		opts.Passes = passes
	}
}

// WithRepositoryBlueprint sets the blueprint repositories are published to.
func WithRepositoryBlueprint(id port.BlueprintID) Option {
	return func(opts *Options) {
		opts.RepositoryBlueprint = id
	}
}

// WithBuildBlueprint sets the blueprint builds are published to.
func WithBuildBlueprint(id port.BlueprintID) Option {
	return func(opts *Options) {
		opts.BuildBlueprint = id
	}
}
