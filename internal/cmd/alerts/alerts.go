// Package alerts prints one-line status notices after human-readable command output.
package alerts

import (
	"fmt"

	pkgsync "github.com/agentstation/jfrogsync/pkg/sync"
)

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:   level,
		Message: message,
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// ForResult summarizes a sync run. A run error makes it an error alert,
// rejected entities make it a warning, and each rejection is listed as a detail.
func ForResult(result *pkgsync.Result, err error) *Alert {
	var alert *Alert
	switch {
	case err != nil:
		alert = NewError(result.Summary()).WithError(err)
	case len(result.Passes) == 0:
		return NewInfo(result.Summary())
	case result.HasWarnings():
		alert = NewWarning(result.Summary())
	case result.DryRun:
		return NewInfo(result.Summary())
	default:
		return NewSuccess(result.Summary())
	}

	for _, p := range result.Passes {
		for _, w := range p.Warnings {
			alert.WithDetails(fmt.Sprintf("%s/%s: status %d", w.Blueprint, w.Identifier, w.StatusCode))
		}
	}
	return alert
}
