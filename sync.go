package jfrogsync

import (
	"context"
	"time"

	"github.com/agentstation/jfrogsync/pkg/convert"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/logging"
	"github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Sync authenticates once, then publishes every repository and every build in source order.
//
// A failed fetch aborts the run: when the repositories fetch fails, the builds pass never
// starts. Rejected upserts follow the publish policy. The returned result reflects the work
// done so far and is non-nil even when an error is returned after options were validated.
func (s *Syncer) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(s.config.syncDefaults...).Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	logger := logging.FromContext(ctx)
	start := time.Now()
	result := &pkgsync.Result{DryRun: options.DryRun}
	defer func() {
		result.Duration = time.Since(start)
	}()

	logger.Info().
		Bool("dry_run", options.DryRun).
		Str("policy", options.PublishPolicy.String()).
		Msg("Starting Port integration")

	// Step 3: Authenticate once for the whole run
	var creds *port.Credentials
	if !options.DryRun {
		var err error
		creds, err = s.catalog.Authenticate(logging.WithOperation(ctx, "authenticate"))
		if err != nil {
			return result, err
		}
	}

	// Step 4: Run passes in order
	passes := options.OrderedPasses()
	for i, pass := range passes {
		if i > 0 {
			logger.Info().Msgf("Completed %s, starting %s", passes[i-1], pass)
		}

		passResult := pkgsync.NewPassResult(pass, options.Blueprint(pass))
		result.Passes = append(result.Passes, passResult)

		if err := s.runPass(ctx, options, creds, passResult); err != nil {
			return result, err
		}
	}

	// Step 5: Log summary
	logger.Info().
		Int("fetched", result.TotalFetched()).
		Int("published", result.TotalPublished()).
		Int("rejected", result.TotalWarnings()).
		Bool("dry_run", options.DryRun).
		Msg("Sync completed")

	return result, nil
}

// runPass fetches one collection and publishes each record as it is converted.
func (s *Syncer) runPass(ctx context.Context, options *pkgsync.Options, creds *port.Credentials, pr *pkgsync.PassResult) error {
	ctx = logging.WithPass(ctx, pr.Pass.String())
	ctx = logging.WithBlueprint(ctx, pr.Blueprint.String())
	logger := logging.FromContext(ctx)

	logger.Info().Msgf("Getting all %s", pr.Pass)

	entities, err := s.fetch(logging.WithOperation(ctx, "fetch"), pr.Pass)
	if err != nil {
		logger.Error().Err(err).Msg("Fetch failed, aborting sync")
		return err
	}
	pr.Fetched = len(entities)

	ctx = logging.WithOperation(ctx, "publish")
	logger = logging.FromContext(ctx)

	for _, entity := range entities {
		if options.DryRun {
			logger.Info().
				Str("identifier", entity.Identifier).
				Interface("entity", entity).
				Msg("Dry run: would add entity to Port")
			pr.Published++
			continue
		}

		err := s.catalog.Upsert(ctx, creds, pr.Blueprint, entity)

		var warning *errors.PublishWarning
		if errors.As(err, &warning) {
			logger.Warn().
				Str("identifier", entity.Identifier).
				Int("status", warning.StatusCode).
				Str("body", warning.Body).
				Msg("Port rejected entity")
			pr.Warnings = append(pr.Warnings, warning)
			s.hooks.triggerRejected(warning)

			if options.PublishPolicy == pkgsync.PublishPolicyFail {
				return warning
			}
			continue
		}
		if err != nil {
			logger.Error().Err(err).Str("identifier", entity.Identifier).Msg("Publish failed, aborting sync")
			return err
		}

		pr.Published++
		s.hooks.triggerPublished(pr.Blueprint, entity)
	}

	logger.Info().
		Int("fetched", pr.Fetched).
		Int("published", pr.Published).
		Int("rejected", len(pr.Warnings)).
		Msgf("Completed %s", pr.Pass)

	return nil
}

// fetch reads the collection behind pass and converts it to entities in source order.
func (s *Syncer) fetch(ctx context.Context, pass pkgsync.Pass) ([]port.Entity, error) {
	switch pass {
	case pkgsync.PassRepositories:
		repos, err := s.source.FetchRepositories(ctx)
		if err != nil {
			return nil, err
		}
		return convert.RepositoryEntities(repos), nil
	case pkgsync.PassBuilds:
		builds, err := s.source.FetchBuilds(ctx)
		if err != nil {
			return nil, err
		}
		return convert.BuildEntities(builds), nil
	}
	return nil, &errors.ValidationError{Field: "Pass", Value: pass, Message: "unknown pass"}
}
