// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTradeNotFound      = errors.New("trade not found")
	ErrStrategyNotFound   = errors.New("strategy not found")
	ErrChecklistItem      = errors.New("checklist item not found")
	ErrInvalidOption      = errors.New("invalid option")
	ErrNotConfirmed       = errors.New("action not confirmed")
	ErrConfigInvalid      = errors.New("invalid configuration")
	ErrInputValidation    = errors.New("input validation failed")
	ErrRateLimited        = errors.New("rate limited")
	ErrReadOnly           = errors.New("read-only mode")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets callers match any validation failure with ErrInputValidation.
func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// StoreError represents a failure of the key-value persistence layer.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store error [%s] %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store error [%s] %s", e.Op, e.Key)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, key string, err error) *StoreError {
	return &StoreError{
		Op:  op,
		Key: key,
		Err: err,
	}
}

// DecodeError reports a persisted blob that could not be parsed.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("corrupt value for %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(key string, err error) *DecodeError {
	return &DecodeError{Key: key, Err: err}
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
