// Package artifactory provides a client for the JFrog Artifactory REST API.
package artifactory

import (
	"context"
	"net/http"

	"github.com/agentstation/jfrogsync/internal/transport"
	"github.com/agentstation/jfrogsync/pkg/artifactory"
	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/errors"
	"github.com/agentstation/jfrogsync/pkg/logging"
)

const serviceName = "artifactory"

// Client reads repositories and builds from an Artifactory instance.
// Every request carries the access token as a bearer token.
type Client struct {
	hostURL   string
	transport *transport.Client
}

// NewClient creates a client for the Artifactory instance at hostURL.
func NewClient(hostURL, accessToken string, opts ...transport.Option) *Client {
	return &Client{
		hostURL:   hostURL,
		transport: transport.New(serviceName, &transport.BearerAuth{Token: accessToken}, opts...),
	}
}

// HostURL returns the configured host URL.
func (c *Client) HostURL() string {
	return c.hostURL
}

// FetchRepositories retrieves every repository in a single unpaginated request.
func (c *Client) FetchRepositories(ctx context.Context) ([]artifactory.Repository, error) {
	var repos []artifactory.Repository
	if err := c.fetch(ctx, artifactory.CollectionRepositories, constants.ArtifactoryRepositoriesPath, &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []artifactory.Repository{}
	}
	return repos, nil
}

// FetchBuilds retrieves every build in a single unpaginated request.
// A response without a builds field is an error.
func (c *Client) FetchBuilds(ctx context.Context) ([]artifactory.Build, error) {
	var list artifactory.BuildList
	url := transport.JoinURL(c.hostURL, constants.ArtifactoryBuildsPath)
	if err := c.fetch(ctx, artifactory.CollectionBuilds, constants.ArtifactoryBuildsPath, &list); err != nil {
		return nil, err
	}
	if list.Builds == nil {
		return nil, &errors.SourceFetchError{
			Collection: artifactory.CollectionBuilds.String(),
			Endpoint:   url,
			StatusCode: http.StatusOK,
			Message:    "response has no builds field",
		}
	}
	return *list.Builds, nil
}

func (c *Client) fetch(ctx context.Context, collection artifactory.Collection, path string, target any) error {
	url := transport.JoinURL(c.hostURL, path)
	logger := logging.FromContext(ctx).With().
		Str("collection", collection.String()).
		Str("endpoint", url).
		Logger()

	logger.Debug().Msg("Fetching source collection")

	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return errors.NewSourceFetchError(collection.String(), url, 0, err)
	}

	if err := transport.DecodeResponse(resp, serviceName, target); err != nil {
		fetchErr := errors.NewSourceFetchError(collection.String(), url, resp.StatusCode, err)
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) {
			fetchErr.Message = "unexpected status"
		}
		return fetchErr
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("Fetched source collection")
	return nil
}
