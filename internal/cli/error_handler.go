package cli

import (
	"fmt"

	"project-timer/internal/errors"
	"project-timer/internal/logging"
	"project-timer/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle turns err into a user-facing message prefixed with the operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		logging.Errorf("%s: %v", operation, err)
	}

	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}
	if appErr, ok := errors.AsAppError(err); ok {
		if inner, ok := appErr.Cause.(*validation.ValidationError); ok && appErr.IsType(errors.ErrorTypeValidation) {
			return fmt.Errorf("failed to %s: %s", operation, inner.GetUserFriendlyMessage())
		}
		if id, ok := appErr.GetContext("identifier"); ok && appErr.IsType(errors.ErrorTypeNotFound) {
			return fmt.Errorf("failed to %s: no project matches %q", operation, id)
		}
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
