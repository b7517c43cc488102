package cli

import (
	"errors"

	"github.com/roach88/rubico/internal/store"
	"github.com/roach88/rubico/internal/validate"
)

// reportError prints err in the configured format and returns it as an
// ExitError. Input errors list the offending fields; the rest are one line.
func reportError(f *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch {
	case validate.IsUniqueness(err):
		_ = f.FieldErrors(ErrCodeDuplicate, "email already registered", validate.FieldErrors(err))
		return WrapExitError(ExitFailure, "duplicate email", err)
	case validate.IsValidation(err):
		_ = f.FieldErrors(ErrCodeValidation, "validation failed", validate.FieldErrors(err))
		return WrapExitError(ExitFailure, "validation failed", err)
	case errors.Is(err, store.ErrNotFound):
		_ = f.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "not found", err)
	case store.IsPersistence(err):
		_ = f.Error(ErrCodePersistence, "store operation failed", err.Error())
		return WrapExitError(ExitCommandError, "store operation failed", err)
	default:
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "command failed", err)
	}
}
