// Package security provides the read-only guard and credential masking
// used by the journal's outer surfaces.
package security

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"trade-journal/internal/errors"
)

// OperationType represents the type of operation.
type OperationType string

const (
	// Read operations
	OpRead   OperationType = "READ"
	OpSignIn OperationType = "SIGN_IN"

	// Write operations (blocked in read-only mode)
	OpSaveTrade        OperationType = "SAVE_TRADE"
	OpDeleteTrade      OperationType = "DELETE_TRADE"
	OpSaveStrategy     OperationType = "SAVE_STRATEGY"
	OpDeleteStrategy   OperationType = "DELETE_STRATEGY"
	OpActivateStrategy OperationType = "ACTIVATE_STRATEGY"
	OpEditChecklist    OperationType = "EDIT_CHECKLIST"
	OpEditOptions      OperationType = "EDIT_OPTIONS"
	OpEditProfile      OperationType = "EDIT_PROFILE"
)

// ReadOnlyError represents an error when attempting a write operation in read-only mode.
type ReadOnlyError struct {
	Operation OperationType
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("%s (%s) blocked: read-only mode is enabled", OperationDescription(e.Operation), e.Operation)
}

// Unwrap matches errors.ErrReadOnly.
func (e *ReadOnlyError) Unwrap() error {
	return errors.ErrReadOnly
}

// AccessController manages read-only mode and operation permissions.
// The mode is fixed for the controller's lifetime.
type AccessController struct {
	readOnly bool
	logger   zerolog.Logger
}

// NewAccessController creates a new access controller.
func NewAccessController(readOnly bool, logger zerolog.Logger) *AccessController {
	return &AccessController{
		readOnly: readOnly,
		logger:   logger,
	}
}

// IsReadOnly returns whether read-only mode is enabled.
func (ac *AccessController) IsReadOnly() bool {
	return ac.readOnly
}

// CheckPermission checks if an operation is allowed.
func (ac *AccessController) CheckPermission(ctx context.Context, op OperationType) error {
	if !ac.readOnly || !IsWriteOperation(op) {
		return nil
	}
	ac.logger.Warn().
		Str("operation", string(op)).
		Str("action", OperationDescription(op)).
		Msg("Write blocked in read-only mode")
	return &ReadOnlyError{Operation: op}
}

// IsWriteOperation returns true if the operation modifies journal state.
func IsWriteOperation(op OperationType) bool {
	switch op {
	case OpRead, OpSignIn:
		return false
	default:
		return true
	}
}

// OperationDescription returns a human-readable description of an operation.
func OperationDescription(op OperationType) string {
	switch op {
	case OpRead:
		return "Read data"
	case OpSignIn:
		return "Sign in or out"
	case OpSaveTrade:
		return "Log or edit a trade"
	case OpDeleteTrade:
		return "Delete a trade"
	case OpSaveStrategy:
		return "Add or edit a strategy"
	case OpDeleteStrategy:
		return "Delete a strategy"
	case OpActivateStrategy:
		return "Switch the active strategy"
	case OpEditChecklist:
		return "Tick or reset the checklist"
	case OpEditOptions:
		return "Edit form options"
	case OpEditProfile:
		return "Edit or delete the profile"
	default:
		return string(op)
	}
}
