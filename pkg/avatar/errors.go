package avatar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the image asset for a configuration doesn't
// exist in the store.
var ErrNotFound = errors.New("avatar not found")

// ValidationError is returned when a request field is present but invalid.
type ValidationError struct {
	Field    string
	Value    any
	Expected string
	Examples []string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("Avatar.%s <<%v>> is not valid. Expected %s", e.Field, e.Value, e.Expected)
	if len(e.Examples) > 0 {
		msg += " like: " + strings.Join(e.Examples, ", ")
	}
	return msg
}

// BuildError is returned when the SVG markup of a text avatar can't be
// generated.
type BuildError struct {
	cause error
}

func (e *BuildError) Error() string {
	return "Avatar builder failed"
}

func (e *BuildError) Unwrap() error {
	return e.cause
}

// InternalError hides an unexpected failure (store I/O, encoding...). Its
// message is generic, the cause is only meant for the logs.
type InternalError struct {
	cause error
}

func (e *InternalError) Error() string {
	return "Internal error"
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// IsValidationError returns true if err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
