package errors

import (
	"fmt"
)

// ErrorType is the category of a failure. Each category maps to its own
// exit status so scripts driving pt can tell them apart.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStorage
	ErrorTypeInvalidInput
	ErrorTypeTimeout
)

var errorTypes = [...]struct {
	name     string
	exitCode int
}{
	ErrorTypeValidation:   {"validation", 2},
	ErrorTypeNotFound:     {"not_found", 3},
	ErrorTypeStorage:      {"storage", 4},
	ErrorTypeInvalidInput: {"invalid_input", 2},
	ErrorTypeTimeout:      {"timeout", 5},
}

func (et ErrorType) known() bool {
	return et >= 0 && int(et) < len(errorTypes)
}

// String returns the string representation of the error type
func (et ErrorType) String() string {
	if !et.known() {
		return "unknown"
	}
	return errorTypes[et].name
}

// ExitCode returns the process exit status for errors of this type
func (et ErrorType) ExitCode() int {
	if !et.known() {
		return 1
	}
	return errorTypes[et].exitCode
}

// AppError is a categorized failure. Context carries the project id, path
// or field the failure concerns.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so sentinels
// such as ErrNotFound work with errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records key on the error and returns it for chaining
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithProject records the project the failure concerns
func (e *AppError) WithProject(id string) *AppError {
	return e.WithContext("project", id)
}

func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}
