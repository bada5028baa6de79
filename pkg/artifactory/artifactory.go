// Package artifactory defines the records read from the JFrog Artifactory REST API.
// Field order and JSON names match the Artifactory response schema.
package artifactory

import (
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/jfrogsync/pkg/constants"
	"github.com/agentstation/jfrogsync/pkg/errors"
)

// Collection names a source collection.
type Collection string

const (
	// CollectionRepositories is the repositories collection.
	CollectionRepositories Collection = "repositories"
	// CollectionBuilds is the builds collection.
	CollectionBuilds Collection = "builds"
)

// String returns the collection name.
func (c Collection) String() string {
	return string(c)
}

// Repository is one entry of GET /artifactory/api/repositories.
type Repository struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	PackageType string `json:"packageType"`
}

// Build is one entry of the builds field of GET /artifactory/api/build.
type Build struct {
	URI         string `json:"uri"`
	LastStarted string `json:"lastStarted"`
}

// BuildList is the body of GET /artifactory/api/build.
// Builds is a pointer so that an absent field can be told apart from an empty list.
type BuildList struct {
	Builds *[]Build `json:"builds"`
}

// Name returns the last path segment of the build URI.
func (b Build) Name() string {
	if i := strings.LastIndex(b.URI, "/"); i >= 0 {
		return b.URI[i+1:]
	}
	return b.URI
}

// startedLayouts are tried in order when parsing LastStarted.
var startedLayouts = []string{
	time.RFC3339Nano,
	constants.TimeFormatArtifactory,
	"2006-01-02T15:04:05-0700",
}

// StartedAt parses LastStarted. Artifactory reports offsets without a colon
// (2024-01-01T10:00:00.000+0000), so RFC 3339 alone is not enough.
func (b Build) StartedAt() (utc.Time, error) {
	var lastErr error
	for _, layout := range startedLayouts {
		t, err := utc.Parse(layout, b.LastStarted)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return utc.Time{}, errors.NewParseError("time", "lastStarted", b.LastStarted, lastErr)
}
