package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jfrogsync/pkg/artifactory"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/port"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

func TestRepositoriesToTableData(t *testing.T) {
	repos := []artifactory.Repository{
		{Key: "maven-local", Type: "LOCAL", URL: "https://x/maven-local", PackageType: "Maven"},
		{Key: "npm-remote", Description: "proxy", Type: "REMOTE", URL: "https://x/npm-remote", PackageType: "Npm"},
	}

	data := RepositoriesToTableData(repos, false)
	assert.Equal(t, []string{"Key", "Type", "Package Type"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"maven-local", "LOCAL", "Maven"}, data.Rows[0])

	wide := RepositoriesToTableData(repos, true)
	assert.Len(t, wide.Headers, 5)
	assert.Equal(t, "-", wide.Rows[0][4])
	assert.Equal(t, "proxy", wide.Rows[1][4])
}

func TestBuildsToTableData(t *testing.T) {
	builds := []artifactory.Build{
		{URI: "/api-build", LastStarted: "2024-01-01T00:00:00.000+0000"},
		{URI: "/broken", LastStarted: "yesterday"},
		{URI: "/never"},
	}

	data := BuildsToTableData(builds, false)
	assert.Equal(t, []string{"api-build", "/api-build", "2024-01-01T00:00:00.000+0000"}, data.Rows[0])
	assert.Equal(t, "-", data.Rows[2][2])

	wide := BuildsToTableData(builds, true)
	assert.Contains(t, wide.Rows[0][2], "Jan 1, 2024")
	assert.Equal(t, "yesterday", wide.Rows[1][2])
}

func TestFormatProperties(t *testing.T) {
	assert.Equal(t,
		"description= key=maven-local package_type=MAVEN type=LOCAL url=https://x",
		FormatProperties(port.RepositoryProperties{Key: "maven-local", Type: "LOCAL", URL: "https://x", PackageType: "MAVEN"}))
	assert.Equal(t,
		"last_started=2024 uri=/a/1",
		FormatProperties(port.BuildProperties{URI: "/a/1", LastStarted: "2024"}))
	assert.Equal(t, "raw", FormatProperties("raw"))
}

func TestEntitiesToTableData(t *testing.T) {
	data := EntitiesToTableData("jfrogBuild", []port.Entity{{Identifier: "/a/1", Title: "1", Properties: port.BuildProperties{URI: "/a/1"}}})
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"jfrogBuild", "/a/1", "1", "last_started= uri=/a/1"}, data.Rows[0])
}

func TestResultToTableData(t *testing.T) {
	result := &pkgsync.Result{Passes: []*pkgsync.PassResult{
		{Pass: pkgsync.PassRepositories, Blueprint: "jfrogRepository", Fetched: 3, Published: 2,
			Warnings: []*errors.PublishWarning{errors.NewPublishWarning("jfrogRepository", "npm-remote", 422, "")}},
		{Pass: pkgsync.PassBuilds, Blueprint: "jfrogBuild", Fetched: 1, Published: 1},
	}}

	data := ResultToTableData(result)
	assert.Equal(t, []string{"repositories", "jfrogRepository", "3", "2", "1"}, data.Rows[0])
	assert.Equal(t, []string{"builds", "jfrogBuild", "1", "1", "0"}, data.Rows[1])
	assert.Len(t, data.ColumnAlignment, len(data.Headers))

	warnings := WarningsToTableData(result)
	require.Len(t, warnings.Rows, 1)
	assert.Equal(t, []string{"jfrogRepository", "npm-remote", "422", "-"}, warnings.Rows[0])
}
