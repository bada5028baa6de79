package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/jfrogsync"
	"github.com/agentstation/jfrogsync/internal/appcontext"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/port"
)

type stubCatalog struct {
	creds *port.Credentials
	err   error
}

func (c *stubCatalog) Authenticate(context.Context) (*port.Credentials, error) {
	return c.creds, c.err
}

func (c *stubCatalog) Upsert(context.Context, *port.Credentials, port.BlueprintID, port.Entity) error {
	return nil
}

func verify(t *testing.T, catalog jfrogsync.Catalog) (string, error) {
	t.Helper()

	app := &appcontext.Mock{
		CatalogFunc:      func() (jfrogsync.Catalog, error) { return catalog, nil },
		OutputFormatFunc: func() string { return "json" },
	}

	var buf bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"verify"})

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestVerify(t *testing.T) {
	creds := port.NewCredentials("secret-token", utc.Now(), 3*time.Hour)

	out, err := verify(t, &stubCatalog{creds: creds})
	require.NoError(t, err)
	assert.NotContains(t, out, "secret-token")

	var status Status
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, "port", status.Service)
	assert.True(t, status.Authenticated)
	assert.NotEmpty(t, status.ExpiresAt)
}

func TestVerifyWithoutExpiry(t *testing.T) {
	out, err := verify(t, &stubCatalog{creds: port.NewCredentials("secret-token", utc.Now(), 0)})
	require.NoError(t, err)

	var status Status
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Authenticated)
	assert.Empty(t, status.ExpiresAt)
}

func TestVerifyFailure(t *testing.T) {
	authErr := errors.NewAuthenticationError("port", "client_credentials", "token request failed", nil)

	out, err := verify(t, &stubCatalog{err: authErr})
	require.Error(t, err)
	assert.Empty(t, out)

	var ae *errors.AuthenticationError
	assert.ErrorAs(t, err, &ae)
}

func TestVerifyTable(t *testing.T) {
	app := &appcontext.Mock{
		CatalogFunc: func() (jfrogsync.Catalog, error) {
			return &stubCatalog{creds: port.NewCredentials("secret-token", utc.Now(), time.Hour)}, nil
		},
	}

	var buf bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"verify"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, buf.String(), "✓ Port credentials are valid")
	assert.Contains(t, buf.String(), "token expires")
	assert.NotContains(t, buf.String(), "secret-token")
}
