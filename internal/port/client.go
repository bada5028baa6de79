// Package port provides a client for the Port catalog REST API.
package port

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/jfrogsync/internal/transport"
	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/logging"
	"github.com/agentstation/jfrogsync/pkg/port"
)

const (
	serviceName = "port"
	authMethod  = "client_credentials"
)

// upsertQuery makes an entity POST create-or-merge instead of create-only.
var upsertQuery = url.Values{"upsert": {"true"}, "merge": {"true"}}

// Client authenticates against Port and upserts entities.
type Client struct {
	apiURL       string
	clientID     string
	clientSecret string
	transport    *transport.Client
}

// NewClient creates a Port client. An empty apiURL selects the public Port API.
func NewClient(apiURL, clientID, clientSecret string, opts ...transport.Option) *Client {
	if apiURL == "" {
		apiURL = constants.DefaultPortAPIURL
	}
	return &Client{
		apiURL:       apiURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		transport:    transport.New(serviceName, nil, opts...),
	}
}

// APIURL returns the configured API base URL.
func (c *Client) APIURL() string {
	return c.apiURL
}

// Authenticate exchanges the client id and secret for a bearer token.
// It makes exactly one request and never retries.
func (c *Client) Authenticate(ctx context.Context) (*port.Credentials, error) {
	endpoint := transport.JoinURL(c.apiURL, constants.PortAccessTokenPath)
	logger := logging.FromContext(ctx)

	logger.Debug().Str("endpoint", endpoint).Msg("Requesting access token")

	body := port.AccessTokenRequest{ClientID: c.clientID, ClientSecret: c.clientSecret}
	resp, err := c.transport.PostJSON(ctx, endpoint, body, nil)
	if err != nil {
		return nil, errors.NewAuthenticationError(serviceName, authMethod, "token request failed", err)
	}

	var token port.AccessTokenResponse
	if err := transport.DecodeResponse(resp, serviceName, &token); err != nil {
		authErr := errors.NewAuthenticationError(serviceName, authMethod, "token exchange rejected", err)
		authErr.StatusCode = resp.StatusCode
		return nil, authErr
	}

	if token.AccessToken == "" {
		return nil, &errors.AuthenticationError{
			Service:    serviceName,
			Method:     authMethod,
			StatusCode: resp.StatusCode,
			Message:    "response has no accessToken",
		}
	}

	creds := port.NewCredentials(token.AccessToken, utc.Now(), time.Duration(token.ExpiresIn)*time.Second)

	event := logger.Info()
	if expiresAt, ok := creds.ExpiresAt(); ok {
		event = event.Time("expires_at", expiresAt.Time)
	}
	event.Msg("Obtained Port access token")

	return creds, nil
}

// Upsert creates or merges entity into blueprint. The response body is logged.
// A non-2xx answer returns *errors.PublishWarning; a transport failure returns *errors.APIError.
// Calls are not deduplicated: publishing the same entity twice sends two requests.
func (c *Client) Upsert(ctx context.Context, creds *port.Credentials, blueprint port.BlueprintID, entity port.Entity) error {
	path := fmt.Sprintf(constants.PortEntitiesPathFormat, url.PathEscape(blueprint.String()))
	endpoint := transport.WithQuery(transport.JoinURL(c.apiURL, path), upsertQuery)

	logger := logging.FromContext(ctx).With().
		Str("blueprint", blueprint.String()).
		Str("identifier", entity.Identifier).
		Logger()

	logger.Info().Msg("Adding entity to Port")

	resp, err := c.transport.PostJSON(ctx, endpoint, entity, &transport.BearerAuth{Token: creds.AccessToken()})
	if err != nil {
		return &errors.APIError{
			Service:  serviceName,
			Endpoint: endpoint,
			Message:  "upsert request failed",
			Err:      err,
		}
	}

	body, err := transport.ReadBody(resp)
	if err != nil {
		return errors.WrapAPI(serviceName, resp.StatusCode, err)
	}
	text := transport.Truncate(string(body))

	if !transport.IsSuccess(resp.StatusCode) {
		return errors.NewPublishWarning(blueprint.String(), entity.Identifier, resp.StatusCode, text)
	}

	event := logger.Info().Int("status", resp.StatusCode)
	if len(body) <= constants.MaxLoggedBodySize && json.Valid(body) {
		event = event.RawJSON("response", body)
	} else {
		event = event.Str("response", text)
	}
	event.Msg("Port response")
	return nil
}
