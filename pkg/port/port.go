// Package port defines the payloads exchanged with the Port catalog API.
package port

import (
	"time"

	"github.com/agentstation/utc"
)

// BlueprintID identifies a Port blueprint.
type BlueprintID string

// String returns the blueprint identifier.
func (id BlueprintID) String() string {
	return string(id)
}

// Entity is the body of an entity upsert.
// Properties holds one of the typed property structs below.
type Entity struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Title      string `json:"title" yaml:"title"`
	Properties any    `json:"properties" yaml:"properties"`
}

// RepositoryProperties are the properties of a jfrogRepository entity.
type RepositoryProperties struct {
	Key         string `json:"key" yaml:"key"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	URL         string `json:"url" yaml:"url"`
	PackageType string `json:"package_type" yaml:"package_type"`
}

// BuildProperties are the properties of a jfrogBuild entity.
type BuildProperties struct {
	URI         string `json:"uri" yaml:"uri"`
	LastStarted string `json:"last_started" yaml:"last_started"`
}

// AccessTokenRequest is the body of POST /auth/access_token.
type AccessTokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// AccessTokenResponse is the body returned by POST /auth/access_token.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn,omitempty"`
	TokenType   string `json:"tokenType,omitempty"`
}

// UpsertResponse is the body returned by an entity upsert.
type UpsertResponse struct {
	OK     bool   `json:"ok"`
	Entity Entity `json:"entity"`
}

// Credentials is the bearer token obtained from the token endpoint.
// It is created once per run and passed by pointer to every publish call;
// nothing mutates it after NewCredentials returns.
type Credentials struct {
	accessToken string
	issuedAt    utc.Time
	expiresIn   time.Duration
}

// NewCredentials creates credentials for the given token.
// A zero expiresIn means the token endpoint did not report a lifetime.
func NewCredentials(accessToken string, issuedAt utc.Time, expiresIn time.Duration) *Credentials {
	return &Credentials{
		accessToken: accessToken,
		issuedAt:    issuedAt,
		expiresIn:   expiresIn,
	}
}

// AccessToken returns the bearer token.
func (c *Credentials) AccessToken() string {
	if c == nil {
		return ""
	}
	return c.accessToken
}

// IssuedAt returns when the token was obtained.
func (c *Credentials) IssuedAt() utc.Time {
	return c.issuedAt
}

// ExpiresAt returns when the token expires, and false if the lifetime is unknown.
func (c *Credentials) ExpiresAt() (utc.Time, bool) {
	if c.expiresIn <= 0 {
		return utc.Time{}, false
	}
	return utc.New(c.issuedAt.Time.Add(c.expiresIn)), true
}

// String redacts the token so credentials can be logged safely.
func (c *Credentials) String() string {
	if c == nil || c.accessToken == "" {
		return "Credentials{<empty>}"
	}
	return "Credentials{<redacted>}"
}
