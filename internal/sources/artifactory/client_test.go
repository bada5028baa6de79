package artifactory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jfrogsync/internal/testhelper"
	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/convert"
	"github.com/agentstation/jfrogsync/pkg/errors"
)

// newServer serves body with status on path and records the Authorization header.
func newServer(t *testing.T, path string, status int, body []byte, gotAuth *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		if gotAuth != nil {
			*gotAuth = r.Header.Get("Authorization")
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchRepositories(t *testing.T) {
	var gotAuth string
	server := newServer(t, constants.ArtifactoryRepositoriesPath, http.StatusOK, testhelper.LoadTestdata(t, "repositories.json"), &gotAuth)

	client := NewClient(server.URL, "jfrog-token")
	repos, err := client.FetchRepositories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer jfrog-token", gotAuth)
	require.Len(t, repos, 3)

	assert.Equal(t, "maven-local", repos[0].Key)
	assert.Empty(t, repos[0].Description)
	assert.Equal(t, "LOCAL", repos[0].Type)
	assert.Equal(t, "Maven", repos[0].PackageType)

	assert.Equal(t, "npm-remote", repos[1].Key)
	assert.Equal(t, "Proxy of the public npm registry", repos[1].Description)

	assert.Equal(t, "docker-virtual", repos[2].Key)
}

func TestFetchRepositoriesEmpty(t *testing.T) {
	server := newServer(t, constants.ArtifactoryRepositoriesPath, http.StatusOK, []byte(`[]`), nil)

	repos, err := NewClient(server.URL, "t").FetchRepositories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestFetchRepositoriesServerError(t *testing.T) {
	server := newServer(t, constants.ArtifactoryRepositoriesPath, http.StatusInternalServerError, []byte(`{"errors":[{"status":500}]}`), nil)

	repos, err := NewClient(server.URL, "t").FetchRepositories(context.Background())
	require.Error(t, err)
	assert.Nil(t, repos)

	var fetchErr *errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "repositories", fetchErr.Collection)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, server.URL+constants.ArtifactoryRepositoriesPath, fetchErr.Endpoint)
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
	assert.ErrorIs(t, err, errors.ErrServiceUnavailable)
}

func TestFetchRepositoriesUnauthorized(t *testing.T) {
	server := newServer(t, constants.ArtifactoryRepositoriesPath, http.StatusUnauthorized, []byte(`{"errors":[{"status":401,"message":"Bad credentials"}]}`), nil)

	_, err := NewClient(server.URL, "bad").FetchRepositories(context.Background())
	var fetchErr *errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestFetchRepositoriesMalformed(t *testing.T) {
	server := newServer(t, constants.ArtifactoryRepositoriesPath, http.StatusOK, []byte(`{"not":"an array"}`), nil)

	_, err := NewClient(server.URL, "t").FetchRepositories(context.Background())
	var fetchErr *errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestFetchRepositoriesUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, "t").FetchRepositories(context.Background())
	var fetchErr *errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
}

func TestFetchBuilds(t *testing.T) {
	var gotAuth string
	server := newServer(t, constants.ArtifactoryBuildsPath, http.StatusOK, testhelper.LoadTestdata(t, "builds.json"), &gotAuth)

	builds, err := NewClient(server.URL+"/", "jfrog-token").FetchBuilds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer jfrog-token", gotAuth)
	require.Len(t, builds, 2)
	assert.Equal(t, "/api-build", builds[0].URI)
	assert.Equal(t, "2024-01-01T00:00:00.000+0000", builds[0].LastStarted)
	assert.Equal(t, "web-frontend", builds[1].Name())
}

func TestFetchBuildsEmptyList(t *testing.T) {
	server := newServer(t, constants.ArtifactoryBuildsPath, http.StatusOK, []byte(`{"builds":[]}`), nil)

	builds, err := NewClient(server.URL, "t").FetchBuilds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, builds)
}

func TestFetchBuildsMissingField(t *testing.T) {
	server := newServer(t, constants.ArtifactoryBuildsPath, http.StatusOK, []byte(`{"uri":"https://x/artifactory/api/build"}`), nil)

	_, err := NewClient(server.URL, "t").FetchBuilds(context.Background())
	var fetchErr *errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "builds", fetchErr.Collection)
	assert.Contains(t, err.Error(), "no builds field")
}

func TestFetchBuildsNotFound(t *testing.T) {
	server := newServer(t, constants.ArtifactoryBuildsPath, http.StatusNotFound, []byte(`{"errors":[{"status":404,"message":"No build was found"}]}`), nil)

	_, err := NewClient(server.URL, "t").FetchBuilds(context.Background())
	var fetchErr *errors.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

// TestFetchedRecordsToEntities pins the Port payloads produced from the recorded Artifactory responses.
func TestFetchedRecordsToEntities(t *testing.T) {
	t.Run("repositories", func(t *testing.T) {
		server := newServer(t, constants.ArtifactoryRepositoriesPath, http.StatusOK, testhelper.LoadTestdata(t, "repositories.json"), nil)

		repos, err := NewClient(server.URL, "t").FetchRepositories(context.Background())
		require.NoError(t, err)
		testhelper.CompareJSONWithTestdata(t, "repository_entities.golden.json", convert.RepositoryEntities(repos))
	})

	t.Run("builds", func(t *testing.T) {
		server := newServer(t, constants.ArtifactoryBuildsPath, http.StatusOK, testhelper.LoadTestdata(t, "builds.json"), nil)

		builds, err := NewClient(server.URL, "t").FetchBuilds(context.Background())
		require.NoError(t, err)
		testhelper.CompareJSONWithTestdata(t, "build_entities.golden.json", convert.BuildEntities(builds))
	})
}
