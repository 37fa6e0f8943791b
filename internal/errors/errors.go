// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNoActiveProfile   = errors.New("no active profile")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrLiabilityNotFound = errors.New("liability not found")
	ErrGoalNotSet        = errors.New("no goal set")
	ErrDatabaseError     = errors.New("database error")
	ErrDecryptFailed     = errors.New("decryption failed: wrong password or corrupted file")
	ErrMalformedImport   = errors.New("malformed import document")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrInputValidation   = errors.New("input validation failed")
)

// ImportError represents a recoverable failure while importing a profile
// document. The caller decides how to surface it to the user.
type ImportError struct {
	Stage string // "decrypt", "parse", "normalize"
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import error [%s]: %v", e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(stage string, err error) *ImportError {
	return &ImportError{Stage: stage, Err: err}
}

// StoreError represents an error from the profile store.
type StoreError struct {
	Operation string
	ProfileID string
	Err       error
}

func (e *StoreError) Error() string {
	if e.ProfileID != "" {
		return fmt.Sprintf("store error [%s] profile %s: %v", e.Operation, e.ProfileID, e.Err)
	}
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, profileID string, err error) *StoreError {
	return &StoreError{Operation: operation, ProfileID: profileID, Err: err}
}

// ValidationError represents a validation error on user input.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
