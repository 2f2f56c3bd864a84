package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("project", "0190c1f2")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "project not found: 0190c1f2", err.Message)
	assert.Equal(t, "NOT_FOUND", err.Code)

	resource, ok := err.GetContext("resource")
	assert.True(t, ok)
	assert.Equal(t, "project", resource)

	identifier, ok := err.GetContext("identifier")
	assert.True(t, ok)
	assert.Equal(t, "0190c1f2", identifier)
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewStorageError("save projects", cause)

	assert.Equal(t, ErrorTypeStorage, err.Type)
	assert.Equal(t, "storage operation failed: save projects", err.Message)
	assert.Equal(t, "STORAGE_ERROR", err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestNewStorageError_DeadlineBecomesTimeout(t *testing.T) {
	err := NewStorageError("load limits", fmt.Errorf("query: %w", context.DeadlineExceeded))

	assert.Equal(t, ErrorTypeTimeout, err.Type)
	assert.Equal(t, "TIMEOUT", err.Code)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("hours", "abc", "must be a non-negative integer")

	assert.Equal(t, ErrorTypeInvalidInput, err.Type)
	assert.Equal(t, "invalid input for hours: must be a non-negative integer", err.Message)
	value, ok := err.GetContext("value")
	assert.True(t, ok)
	assert.Equal(t, "abc", value)
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewNotFoundError("project", "x"),
			expected: "not_found: project not found: x",
		},
		{
			name:     "with cause",
			err:      NewStorageError("open", errors.New("boom")),
			expected: "storage: storage operation failed: open (caused by: boom)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrNotFound_MatchesWrapped(t *testing.T) {
	err := fmt.Errorf("start: %w", NewNotFoundError("project", "abc"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsErrorType(err, ErrorTypeNotFound))
	assert.False(t, IsErrorType(err, ErrorTypeStorage))
}

func TestGetUserMessage(t *testing.T) {
	assert.Equal(t, "project not found: abc", GetUserMessage(NewNotFoundError("project", "abc")))
	assert.Equal(t, "Could not save or load projects. Please try again.", GetUserMessage(NewStorageError("x", errors.New("y"))))
	assert.Equal(t, "plain", GetUserMessage(errors.New("plain")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewInvalidInputError("name", "", "blank")))
	assert.True(t, ShouldLogError(NewStorageError("save", errors.New("x"))))
	assert.True(t, ShouldLogError(errors.New("unknown")))
}

func TestWithContext(t *testing.T) {
	err := WrapError(errors.New("x"), ErrorTypeValidation, "bad").WithContext("field", "name")

	v, ok := err.GetContext("field")
	assert.True(t, ok)
	assert.Equal(t, "name", v)
	assert.Equal(t, "validation", GetErrorCode(err))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"invalid input", NewInvalidInputError("minutes", "x", "not a number"), 2},
		{"validation", NewValidationError("bad name", nil), 2},
		{"not found", NewNotFoundError("project", "x"), 3},
		{"storage", NewStorageError("save projects", errors.New("disk full")), 4},
		{"wrapped timeout", fmt.Errorf("start: %w", NewTimeoutError("save projects", nil)), 5},
		{"unknown type", &AppError{Type: ErrorType(42)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "storage", ErrorTypeStorage.String())
	assert.Equal(t, "invalid_input", ErrorTypeInvalidInput.String())
	assert.Equal(t, "unknown", ErrorType(-1).String())
}

func TestAppError_WithProject(t *testing.T) {
	err := NewStorageError("save projects", errors.New("disk full")).WithProject("p-1")

	project, ok := err.GetContext("project")
	assert.True(t, ok)
	assert.Equal(t, "p-1", project)
}
