// Package errors provides custom error types for the jfrogsync system.
// These errors enable programmatic error checking at the CLI boundary
// and carry enough context (service, endpoint, status) to be logged as-is.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the jfrogsync system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed indicates that the catalog token exchange failed
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSourceUnavailable indicates that a source collection could not be read
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrPublishRejected indicates that the catalog service rejected an entity upsert
	ErrPublishRejected = errors.New("publish rejected")

	// ErrServiceUnavailable indicates that a remote service answered with a 5xx status
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRateLimited indicates that a remote service rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// APIError represents an error from a remote service API
type APIError struct {
	Service    string // "port" or "artifactory"
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("API error from %s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrServiceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
	}
}

// AuthenticationError represents a failed exchange of client credentials
// for a catalog access token. It is always fatal to a sync run.
type AuthenticationError struct {
	Service    string
	Method     string // "client_credentials", "bearer"
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication error for %s (%s, status %d): %s", e.Service, e.Method, e.StatusCode, msg)
	}
	return fmt.Sprintf("authentication error for %s (%s): %s", e.Service, e.Method, msg)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(service, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		Service: service,
		Method:  method,
		Message: message,
		Err:     err,
	}
}

// SourceFetchError represents a failed read of a source collection
// (repositories or builds). It aborts the remaining sync passes.
type SourceFetchError struct {
	Collection string // "repositories", "builds"
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *SourceFetchError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s from %s (status %d): %s", e.Collection, e.Endpoint, e.StatusCode, msg)
	}
	return fmt.Sprintf("failed to fetch %s from %s: %s", e.Collection, e.Endpoint, msg)
}

// Unwrap implements errors.Unwrap
func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceFetchError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceFetchError creates a new SourceFetchError
func NewSourceFetchError(collection, endpoint string, statusCode int, err error) *SourceFetchError {
	return &SourceFetchError{
		Collection: collection,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}

// PublishWarning represents an entity upsert that the catalog service answered
// with a non-2xx status. Under the default policy it is logged and the sync continues.
type PublishWarning struct {
	Blueprint  string
	Identifier string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *PublishWarning) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("publish of %s/%s rejected (status %d): %s", e.Blueprint, e.Identifier, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("publish of %s/%s rejected (status %d)", e.Blueprint, e.Identifier, e.StatusCode)
}

// Is implements errors.Is support
func (e *PublishWarning) Is(target error) bool {
	return target == ErrPublishRejected
}

// NewPublishWarning creates a new PublishWarning
func NewPublishWarning(blueprint, identifier string, statusCode int, body string) *PublishWarning {
	return &PublishWarning{
		Blueprint:  blueprint,
		Identifier: identifier,
		StatusCode: statusCode,
		Body:       body,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "time"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "build", "load"
	Resource  string // "request", "syncer", "config"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation or configuration error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAuthenticationError checks if an error is a failed token exchange
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

// IsSourceFetchError checks if an error is a failed source collection read
func IsSourceFetchError(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsPublishWarning checks if an error is a rejected entity upsert
func IsPublishWarning(err error) bool {
	return errors.Is(err, ErrPublishRejected)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// As is a convenience alias for the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapContext marks a failed request as ErrCanceled or ErrTimeout when a
// cancelled context or an expired deadline caused it. Other errors pass through.
func WrapContext(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// WrapAPI wraps an error as an APIError
func WrapAPI(service string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
