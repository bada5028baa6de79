package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jfrogsync"
	"github.com/agentstation/jfrogsync/internal/port"
	"github.com/agentstation/jfrogsync/internal/sources/artifactory"
	"github.com/agentstation/jfrogsync/pkg/errors"
	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

func TestAppNew(t *testing.T) {
	isolate(t)

	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
	assert.Len(t, app.SyncOptions(), 3)
}

func TestAppSourceSingleton(t *testing.T) {
	isolate(t)
	setRequired(t)

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	require.NoError(t, err)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]jfrogsync.Source, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Source()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "goroutine %d", i)
	}
	for i, s := range results[1:] {
		assert.Same(t, results[0], s, "goroutine %d got a different source", i+1)
	}

	client, ok := results[0].(*artifactory.Client)
	require.True(t, ok)
	assert.Equal(t, "https://example.jfrog.io", client.HostURL())
}

func TestAppCatalog(t *testing.T) {
	isolate(t)
	setRequired(t)
	t.Setenv("PORT_API_URL", "https://api.us.getport.io/v1")

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	require.NoError(t, err)

	catalog, err := app.Catalog()
	require.NoError(t, err)

	client, ok := catalog.(*port.Client)
	require.True(t, ok)
	assert.Equal(t, "https://api.us.getport.io/v1", client.APIURL())
}

func TestAppMissingSettings(t *testing.T) {
	isolate(t)
	t.Setenv("JFROG_HOST_URL", "https://example.jfrog.io")

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	require.NoError(t, err)

	_, err = app.Source()
	assert.ErrorContains(t, err, "JFROG_ACCESS_TOKEN")

	_, err = app.Catalog()
	assert.ErrorContains(t, err, "PORT_CLIENT_ID")

	_, err = app.Syncer(false)
	require.Error(t, err)
	var configErr *errors.ConfigError
	require.ErrorAs(t, err, &configErr)
	for _, name := range []string{"PORT_CLIENT_ID", "PORT_CLIENT_SECRET", "JFROG_ACCESS_TOKEN"} {
		assert.Contains(t, err.Error(), name)
	}
	assert.NotContains(t, err.Error(), "JFROG_HOST_URL")
}

func TestAppSyncerUsesInjectedClients(t *testing.T) {
	isolate(t)
	setRequired(t)

	source := &fakeSource{}
	catalog := &fakeCatalog{}
	app, err := New("1.0.0", "test", "2024-01-01", "test", WithSource(source), WithCatalog(catalog))
	require.NoError(t, err)

	syncer, err := app.Syncer(false)
	require.NoError(t, err)

	result, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalPublished())
	assert.Equal(t, 1, catalog.authCalls)
}

func TestAppDryRunSyncerSkipsPort(t *testing.T) {
	isolate(t)
	t.Setenv("JFROG_ACCESS_TOKEN", "jfrog-token")
	t.Setenv("JFROG_HOST_URL", "https://example.jfrog.io")

	app, err := New("1.0.0", "test", "2024-01-01", "test", WithSource(&fakeSource{}))
	require.NoError(t, err)

	syncer, err := app.Syncer(true)
	require.NoError(t, err)

	result, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 3, result.TotalPublished())

	_, err = syncer.Sync(context.Background(), pkgsync.WithDryRun(false))
	assert.ErrorContains(t, err, "dry run")
}

func TestAppDryRunSyncerNeedsSourceSettings(t *testing.T) {
	isolate(t)

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	require.NoError(t, err)

	_, err = app.Syncer(true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "JFROG_ACCESS_TOKEN")
	assert.NotContains(t, err.Error(), "PORT_CLIENT_ID")
}

func TestAppShutdown(t *testing.T) {
	isolate(t)

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	require.NoError(t, err)
	assert.NoError(t, app.Shutdown(context.Background()))
}
