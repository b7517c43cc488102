package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports structural or cross-field problems with an input.
// Fields maps a field path to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface. Fields are listed in path order so
// the message is stable.
func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = fmt.Sprintf("%s: %s", p, e.Fields[p])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// add records the first message for path; later messages for the same path
// are dropped so the most basic problem is shown.
func (e *ValidationError) add(path, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[path]; !ok {
		e.Fields[path] = msg
	}
}

// NewFieldError returns a ValidationError for a single field. It is used
// for rules that need a store lookup, such as a missing invoice customer.
func NewFieldError(path, msg string) *ValidationError {
	ve := &ValidationError{}
	ve.add(path, msg)
	return ve
}

// errOrNil returns e as an error, or nil if it has no fields.
func (e *ValidationError) errOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// MsgEmailTaken is the message shown when an email is already in use.
const MsgEmailTaken = "This email is already registered"

// UniquenessError reports that another customer already holds an email.
type UniquenessError struct {
	Email string
	// ExistingID is the id of the customer holding the email.
	ExistingID string
}

// Error implements the error interface.
func (e *UniquenessError) Error() string {
	return fmt.Sprintf("email %q is already registered", e.Email)
}

// Field returns the path of the offending field.
func (e *UniquenessError) Field() string {
	return "email"
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUniqueness returns true if err is or wraps a UniquenessError.
func IsUniqueness(err error) bool {
	var ue *UniquenessError
	return errors.As(err, &ue)
}

// FieldErrors flattens a ValidationError or UniquenessError into a
// path → message map for display. Returns nil for any other error.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve.Fields))
		for k, v := range ve.Fields {
			out[k] = v
		}
		return out
	}
	var ue *UniquenessError
	if errors.As(err, &ue) {
		return map[string]string{ue.Field(): MsgEmailTaken}
	}
	return nil
}
