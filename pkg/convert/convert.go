// Package convert maps Artifactory records to Port entities.
// Each function takes its record by value and returns a fresh entity.
package convert

import (
	"strings"

	"github.com/agentstation/jfrogsync/pkg/artifactory"
	"github.com/agentstation/jfrogsync/pkg/port"
)

// RepositoryEntity converts a repository to a Port entity keyed by the repository key.
// Type and package type are upper-cased; a missing description becomes "".
func RepositoryEntity(r artifactory.Repository) port.Entity {
	return port.Entity{
		Identifier: r.Key,
		Title:      r.Key,
		Properties: port.RepositoryProperties{
			Key:         r.Key,
			Description: r.Description,
			Type:        strings.ToUpper(r.Type),
			URL:         r.URL,
			PackageType: strings.ToUpper(r.PackageType),
		},
	}
}

// BuildEntity converts a build to a Port entity keyed by the build URI
// and titled with the last segment of that URI.
func BuildEntity(b artifactory.Build) port.Entity {
	return port.Entity{
		Identifier: b.URI,
		Title:      b.Name(),
		Properties: port.BuildProperties{
			URI:         b.URI,
			LastStarted: b.LastStarted,
		},
	}
}

// RepositoryEntities converts repositories in source order.
func RepositoryEntities(repos []artifactory.Repository) []port.Entity {
	entities := make([]port.Entity, 0, len(repos))
	for _, r := range repos {
		entities = append(entities, RepositoryEntity(r))
	}
	return entities
}

// BuildEntities converts builds in source order.
func BuildEntities(builds []artifactory.Build) []port.Entity {
	entities := make([]port.Entity, 0, len(builds))
	for _, b := range builds {
		entities = append(entities, BuildEntity(b))
	}
	return entities
}
