package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error {
	return err.Err
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// OverlapError is returned when a lesson's [start, end) interval intersects one already stored on the same day.
type OverlapError struct {
	Day           string
	Start         string
	End           string
	ConflictStart string
	ConflictEnd   string
}

func (err OverlapError) Error() string {
	return fmt.Sprintf(
		"lesson %s-%s on %s overlaps the lesson at %s-%s",
		err.Start, err.End, err.Day, err.ConflictStart, err.ConflictEnd,
	)
}

func IsOverlap(err error) bool {
	_, ok := errors.Cause(err).(*OverlapError)
	return ok
}

// PersistenceFault describes a store failure or malformed stored JSON.
// It is logged by the storage layer and replaced with an empty default, never returned to services.
type PersistenceFault struct {
	Key string
	Op  string // load | save | delete
	Err error
}

func (f PersistenceFault) Error() string {
	return fmt.Sprintf("%s %q: %v", f.Op, f.Key, f.Err)
}

func (f PersistenceFault) Cause() error {
	return f.Err
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
