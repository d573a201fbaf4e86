// Package alerts writes the status line a command prints on stderr once its
// result is on stdout, and the line printed for an error that ends the run.
package alerts

import (
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/stockrecon/pkg/errors"
)

// Alert is a status line with optional detail lines below it.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp utc.Time
	Err       error
}

func newAlert(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message, Timestamp: utc.Now()}
}

// NewSuccess creates a success alert.
func NewSuccess(message string) *Alert { return newAlert(LevelSuccess, message) }

// NewWarning creates a warning alert.
func NewWarning(message string) *Alert { return newAlert(LevelWarning, message) }

// NewError creates an error alert.
func NewError(message string) *Alert { return newAlert(LevelError, message) }

// FromError builds the alert for an error returned by a command. A
// discrepancy error only reports the comparison outcome, so it is a warning.
func FromError(err error) *Alert {
	if errors.IsDiscrepancy(err) {
		return NewWarning(err.Error())
	}
	return NewError("stockrecon failed").WithError(err)
}

// WithError attaches the error behind the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the status line without details.
func (a *Alert) String() string {
	line := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		line += fmt.Sprintf(": %v", a.Err)
	}
	return line
}
