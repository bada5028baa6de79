package jfrogsync

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jfrogsync/pkg/artifactory"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/logging"
	"github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// fakeSource serves canned collections and counts fetches.
type fakeSource struct {
	repos     []artifactory.Repository
	builds    []artifactory.Build
	reposErr  error
	buildsErr error

	repoCalls  int
	buildCalls int
}

func (f *fakeSource) FetchRepositories(context.Context) ([]artifactory.Repository, error) {
	f.repoCalls++
	if f.reposErr != nil {
		return nil, f.reposErr
	}
	return f.repos, nil
}

func (f *fakeSource) FetchBuilds(context.Context) ([]artifactory.Build, error) {
	f.buildCalls++
	if f.buildsErr != nil {
		return nil, f.buildsErr
	}
	return f.builds, nil
}

type upsertCall struct {
	token     string
	blueprint port.BlueprintID
	entity    port.Entity
}

// fakeCatalog records upserts and can reject selected identifiers.
type fakeCatalog struct {
	authErr   error
	authCalls int
	calls     []upsertCall
	reject    map[string]int
	failOn    string
}

func (f *fakeCatalog) Authenticate(context.Context) (*port.Credentials, error) {
	f.authCalls++
	if f.authErr != nil {
		return nil, f.authErr
	}
	return port.NewCredentials("catalog-token", utc.Now(), 0), nil
}

func (f *fakeCatalog) Upsert(_ context.Context, creds *port.Credentials, blueprint port.BlueprintID, entity port.Entity) error {
	f.calls = append(f.calls, upsertCall{token: creds.AccessToken(), blueprint: blueprint, entity: entity})
	if status, ok := f.reject[entity.Identifier]; ok {
		return errors.NewPublishWarning(blueprint.String(), entity.Identifier, status, `{"ok":false}`)
	}
	if entity.Identifier == f.failOn {
		return &errors.APIError{Service: "port", Message: "upsert request failed", Err: context.DeadlineExceeded}
	}
	return nil
}

func (f *fakeCatalog) identifiers(blueprint port.BlueprintID) []string {
	var ids []string
	for _, c := range f.calls {
		if c.blueprint == blueprint {
			ids = append(ids, c.entity.Identifier)
		}
	}
	return ids
}

func testSource() *fakeSource {
	return &fakeSource{
		repos: []artifactory.Repository{
			{Key: "maven-local", Type: "local", URL: "https://x/maven-local", PackageType: "maven"},
			{Key: "npm-remote", Description: "npm proxy", Type: "remote", URL: "https://x/npm-remote", PackageType: "npm"},
		},
		builds: []artifactory.Build{
			{URI: "/api-build/42", LastStarted: "2024-01-01T00:00:00Z"},
			{URI: "/web", LastStarted: "2024-01-02T00:00:00Z"},
		},
	}
}

func newTestSyncer(t *testing.T, source Source, catalog Catalog, opts ...Option) *Syncer {
	t.Helper()
	s, err := New(source, catalog, opts...)
	require.NoError(t, err)
	return s
}

func TestSyncPublishesBothPassesInOrder(t *testing.T) {
	source := testSource()
	catalog := &fakeCatalog{}

	result, err := newTestSyncer(t, source, catalog).Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.authCalls)
	require.Len(t, catalog.calls, 4)
	assert.Equal(t, []string{"maven-local", "npm-remote"}, catalog.identifiers("jfrogRepository"))
	assert.Equal(t, []string{"/api-build/42", "/web"}, catalog.identifiers("jfrogBuild"))

	// repositories are published before any build
	assert.EqualValues(t, "jfrogRepository", catalog.calls[1].blueprint)
	assert.EqualValues(t, "jfrogBuild", catalog.calls[2].blueprint)

	for _, c := range catalog.calls {
		assert.Equal(t, "catalog-token", c.token)
	}

	props := catalog.calls[0].entity.Properties.(port.RepositoryProperties)
	assert.Equal(t, "LOCAL", props.Type)
	assert.Equal(t, "MAVEN", props.PackageType)
	assert.Equal(t, "42", catalog.calls[2].entity.Title)

	require.Len(t, result.Passes, 2)
	assert.Equal(t, 4, result.TotalFetched())
	assert.Equal(t, 4, result.TotalPublished())
	assert.False(t, result.HasWarnings())
	assert.False(t, result.DryRun)
}

func TestSyncRepositoriesFetchFailureSkipsBuilds(t *testing.T) {
	source := testSource()
	source.reposErr = errors.NewSourceFetchError("repositories", "https://x/artifactory/api/repositories", http.StatusInternalServerError, nil)
	catalog := &fakeCatalog{}

	result, err := newTestSyncer(t, source, catalog).Sync(context.Background())
	require.Error(t, err)

	var fetchErr *errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)

	assert.Empty(t, catalog.calls, "no entities may be published")
	assert.Zero(t, source.buildCalls, "builds pass must not start")

	require.NotNil(t, result)
	require.Len(t, result.Passes, 1)
	assert.Zero(t, result.Passes[0].Published)
}

func TestSyncBuildsFetchFailureKeepsRepositories(t *testing.T) {
	source := testSource()
	source.buildsErr = errors.NewSourceFetchError("builds", "https://x/artifactory/api/build", http.StatusNotFound, nil)
	catalog := &fakeCatalog{}

	result, err := newTestSyncer(t, source, catalog).Sync(context.Background())
	assert.True(t, errors.IsSourceFetchError(err))
	assert.Equal(t, []string{"maven-local", "npm-remote"}, catalog.identifiers("jfrogRepository"))
	assert.Empty(t, catalog.identifiers("jfrogBuild"))
	assert.Equal(t, 2, result.TotalPublished())
}

func TestSyncAuthenticationFailure(t *testing.T) {
	source := testSource()
	catalog := &fakeCatalog{authErr: errors.NewAuthenticationError("port", "client_credentials", "token exchange rejected", nil)}

	_, err := newTestSyncer(t, source, catalog).Sync(context.Background())
	assert.ErrorIs(t, err, errors.ErrAuthenticationFailed)
	assert.Zero(t, source.repoCalls)
	assert.Empty(t, catalog.calls)
}

func TestSyncWarnPolicyContinues(t *testing.T) {
	catalog := &fakeCatalog{reject: map[string]int{"maven-local": http.StatusUnprocessableEntity}}

	s := newTestSyncer(t, testSource(), catalog)
	var rejected []string
	var published []string
	s.OnPublishRejected(func(w *errors.PublishWarning) { rejected = append(rejected, w.Identifier) })
	s.OnEntityPublished(func(_ port.BlueprintID, e port.Entity) { published = append(published, e.Identifier) })

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	result, err := s.Sync(ctx)
	require.NoError(t, err)

	assert.Len(t, catalog.calls, 4)
	assert.Equal(t, []string{"maven-local"}, rejected)
	assert.Equal(t, []string{"npm-remote", "/api-build/42", "/web"}, published)

	repos := result.Pass(pkgsync.PassRepositories)
	require.NotNil(t, repos)
	assert.Equal(t, 2, repos.Fetched)
	assert.Equal(t, 1, repos.Published)
	require.Len(t, repos.Warnings, 1)
	assert.Equal(t, http.StatusUnprocessableEntity, repos.Warnings[0].StatusCode)
	assert.True(t, result.HasWarnings())

	tl.AssertContains(t, "Port rejected entity")
	tl.AssertContains(t, `"level":"warn"`)
}

func TestSyncFailPolicyAborts(t *testing.T) {
	source := testSource()
	catalog := &fakeCatalog{reject: map[string]int{"maven-local": http.StatusBadRequest}}

	result, err := newTestSyncer(t, source, catalog).Sync(context.Background(), pkgsync.WithPublishPolicy(pkgsync.PublishPolicyFail))
	require.Error(t, err)
	assert.True(t, errors.IsPublishWarning(err))
	assert.Len(t, catalog.calls, 1)
	assert.Zero(t, source.buildCalls)

	require.NotNil(t, result)
	assert.Equal(t, 1, result.TotalWarnings())
	assert.Zero(t, result.TotalPublished())
	assert.Contains(t, result.Summary(), "1 rejected")
}

func TestSyncNormalizesOptions(t *testing.T) {
	source := testSource()
	catalog := &fakeCatalog{reject: map[string]int{"/api-build/42": http.StatusUnprocessableEntity}}

	result, err := newTestSyncer(t, source, catalog).Sync(context.Background(),
		pkgsync.WithPasses(pkgsync.Pass(" BUILDS ")),
		pkgsync.WithPublishPolicy(pkgsync.PublishPolicy("FAIL")),
	)
	require.Error(t, err)
	assert.True(t, errors.IsPublishWarning(err))

	assert.Zero(t, source.repoCalls)
	assert.Equal(t, 1, source.buildCalls)
	assert.Len(t, catalog.calls, 1)
	require.Len(t, result.Passes, 1)
	assert.Equal(t, pkgsync.PassBuilds, result.Passes[0].Pass)
}

func TestSyncTagsPublishLogs(t *testing.T) {
	catalog := &fakeCatalog{reject: map[string]int{"npm-remote": http.StatusUnprocessableEntity}}

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	_, err := newTestSyncer(t, testSource(), catalog).Sync(ctx, pkgsync.WithPasses(pkgsync.PassRepositories))
	require.NoError(t, err)

	tl.AssertContains(t, `"operation":"publish"`)
	tl.AssertContains(t, `"pass":"repositories"`)
	tl.AssertContains(t, "Port rejected entity")
}

func TestSyncPublishTransportErrorAborts(t *testing.T) {
	catalog := &fakeCatalog{failOn: "npm-remote"}

	result, err := newTestSyncer(t, testSource(), catalog).Sync(context.Background())
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, catalog.calls, 2)
	assert.Equal(t, 1, result.TotalPublished())
}

func TestSyncDryRun(t *testing.T) {
	source := testSource()
	catalog := &fakeCatalog{}

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	result, err := newTestSyncer(t, source, catalog).Sync(ctx, pkgsync.WithDryRun(true))
	require.NoError(t, err)

	assert.Zero(t, catalog.authCalls)
	assert.Empty(t, catalog.calls)
	assert.Equal(t, 1, source.repoCalls)
	assert.Equal(t, 1, source.buildCalls)
	assert.True(t, result.DryRun)
	assert.Equal(t, 4, result.TotalPublished())

	tl.AssertContains(t, "Dry run: would add entity to Port")
	tl.AssertContains(t, `"package_type":"MAVEN"`)
}

func TestSyncSinglePass(t *testing.T) {
	source := testSource()
	catalog := &fakeCatalog{}

	result, err := newTestSyncer(t, source, catalog).Sync(context.Background(), pkgsync.WithPasses(pkgsync.PassBuilds))
	require.NoError(t, err)

	assert.Zero(t, source.repoCalls)
	assert.Equal(t, []string{"/api-build/42", "/web"}, catalog.identifiers("jfrogBuild"))
	require.Len(t, result.Passes, 1)
	assert.Equal(t, pkgsync.PassBuilds, result.Passes[0].Pass)
}

func TestSyncCustomBlueprints(t *testing.T) {
	catalog := &fakeCatalog{}
	s := newTestSyncer(t, testSource(), catalog, WithSyncDefaults(pkgsync.WithRepositoryBlueprint("repo")))

	_, err := s.Sync(context.Background(), pkgsync.WithBuildBlueprint("build"))
	require.NoError(t, err)

	assert.Len(t, catalog.identifiers("repo"), 2)
	assert.Len(t, catalog.identifiers("build"), 2)
}

func TestSyncDuplicateRecordsPublishedTwice(t *testing.T) {
	source := &fakeSource{
		repos:  []artifactory.Repository{{Key: "maven-local"}, {Key: "maven-local"}},
		builds: []artifactory.Build{},
	}
	catalog := &fakeCatalog{}

	_, err := newTestSyncer(t, source, catalog).Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"maven-local", "maven-local"}, catalog.identifiers("jfrogRepository"))
}

func TestSyncInvalidOptions(t *testing.T) {
	catalog := &fakeCatalog{}
	result, err := newTestSyncer(t, testSource(), catalog).Sync(context.Background(), pkgsync.WithTimeout(-time.Second))
	assert.True(t, errors.IsValidationError(err))
	assert.Nil(t, result)
	assert.Zero(t, catalog.authCalls)
}

func TestSyncRecordsDuration(t *testing.T) {
	result, err := newTestSyncer(t, testSource(), &fakeCatalog{}).Sync(context.Background())
	require.NoError(t, err)
	assert.Positive(t, result.Duration)
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(nil, &fakeCatalog{})
	assert.True(t, errors.IsValidationError(err))

	_, err = New(testSource(), nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = New(testSource(), &fakeCatalog{}, WithSyncDefaults(pkgsync.WithPublishPolicy("never")))
	assert.Error(t, err)
}
