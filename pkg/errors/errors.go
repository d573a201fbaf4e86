// Package errors holds the typed errors of stockrecon.
//
// Two families matter to callers. Record problems (ParseError, ValidationError)
// cost one record and end up in Snapshot.Skipped. Storage problems (IOError
// wrapped in ResourceError) abort the run. DiscrepancyError is not a failure
// at all; commands return it only when asked to fail on discrepancies.
package errors

import (
	"errors"
	"fmt"
)

// New is errors.New, re-exported so callers need a single errors import.
var New = errors.New

// Sentinels matched with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrCanceled     = errors.New("operation canceled")
	ErrDiscrepancy  = errors.New("discrepancies found")
)

// ValidationError is a value rejected by a check: a negative quantity, a
// malformed identifier or a bad option.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError reports an unusable configuration key or file.
type ConfigError struct {
	Key     string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError.
func NewConfigError(key, message string, err error) *ConfigError {
	return &ConfigError{Key: key, Message: message, Err: err}
}

// ParseError is a record file whose content could not be decoded.
type ParseError struct {
	Format string // json or yaml
	File   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s record %s: %v", e.Format, e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError is a failed filesystem operation, shaped like fs.PathError.
type IOError struct {
	Op   string // list, read, create, write
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError says which document, snapshot or checker an operation
// failed for.
type ResourceError struct {
	Op       string // load, save, create
	Resource string // issue, dispatch, snapshot, checker, config
	ID       string
	Err      error
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, target, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// DiscrepancyError reports that a reconciliation finished with mismatching
// rows.
type DiscrepancyError struct {
	Clusters int
	Rows     int
}

func (e *DiscrepancyError) Error() string {
	return fmt.Sprintf("%d discrepant item(s) in %d cluster(s)", e.Rows, e.Clusters)
}

// Is matches ErrDiscrepancy.
func (e *DiscrepancyError) Is(target error) bool { return target == ErrDiscrepancy }

// NewDiscrepancyError creates a DiscrepancyError.
func NewDiscrepancyError(clusters, rows int) *DiscrepancyError {
	return &DiscrepancyError{Clusters: clusters, Rows: rows}
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsCanceled reports whether err comes from a canceled context.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// IsDiscrepancy reports whether err is or wraps a DiscrepancyError.
func IsDiscrepancy(err error) bool { return errors.Is(err, ErrDiscrepancy) }

// WrapValidation turns err into a ValidationError for field. Nil stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps err in an IOError. Nil stays nil.
func WrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// WrapParse wraps err in a ParseError. Nil stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Err: err}
}

// WrapResource wraps err in a ResourceError. Nil stays nil.
func WrapResource(op, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Op: op, Resource: resource, ID: id, Err: err}
}
