package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session has no stored wizard
// state for the requested key.
var ErrSessionNotFound = errors.New("session not found")

// ErrFormNotFound is returned when the definition source has no form
// with the requested identifier.
var ErrFormNotFound = errors.New("form not found")

// ErrStepOutOfRange is returned for a requested step index outside
// [1, StepCount]. It is a client error, never retried.
var ErrStepOutOfRange = errors.New("step out of range")

// ConfigError reports an inconsistent or malformed form definition.
// Configuration errors are fatal at load time and never surface
// per-request.
type ConfigError struct {
	Form   string
	Step   string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	msg := "invalid form definition"
	if e.Form != "" {
		msg += fmt.Sprintf(" %q", e.Form)
	}
	if e.Step != "" {
		msg += fmt.Sprintf(", step %q", e.Step)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(", field %q", e.Field)
	}
	return msg + ": " + e.Reason
}

// AsConfigError returns the ConfigError wrapped in err, or nil.
func AsConfigError(err error) *ConfigError {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
