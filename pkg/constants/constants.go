// Package constants provides shared constants used throughout the jfrogsync codebase.
// This includes timeouts, service endpoints, default blueprint identifiers and
// file permissions that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single HTTP request
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Catalog service constants
const (
	// DefaultPortAPIURL is the base URL of the Port REST API
	DefaultPortAPIURL = "https://api.getport.io/v1"

	// PortAccessTokenPath is the token exchange endpoint, relative to the API URL
	PortAccessTokenPath = "/auth/access_token"

	// PortEntitiesPathFormat is the entity endpoint for a blueprint, relative to the API URL
	PortEntitiesPathFormat = "/blueprints/%s/entities"

	// DefaultRepositoryBlueprint is the blueprint repositories are published to
	DefaultRepositoryBlueprint = "jfrogRepository"

	// DefaultBuildBlueprint is the blueprint builds are published to
	DefaultBuildBlueprint = "jfrogBuild"
)

// Source service constants
const (
	// ArtifactoryRepositoriesPath lists all repositories, relative to the host URL
	ArtifactoryRepositoriesPath = "/artifactory/api/repositories"

	// ArtifactoryBuildsPath lists all builds, relative to the host URL
	ArtifactoryBuildsPath = "/artifactory/api/build"
)

// Limit constants define various limits and capacities
const (
	// MaxLoggedBodySize caps how much of a response body is copied into logs and warnings
	MaxLoggedBodySize = 4096

	// LogFileMaxSizeMB is the size at which a log file is rotated
	LogFileMaxSizeMB = 10

	// LogFileMaxBackups is the number of rotated log files kept
	LogFileMaxBackups = 3

	// LogFileMaxAgeDays is how long rotated log files are kept
	LogFileMaxAgeDays = 28
)

// Path constants
const (
	// ConfigFileName is the config file name searched in $HOME and the working directory
	ConfigFileName = ".jfrogsync"
)

// Format constants
const (
	// TimeFormatArtifactory is the timestamp layout Artifactory uses for lastStarted
	TimeFormatArtifactory = "2006-01-02T15:04:05.000-0700"

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
