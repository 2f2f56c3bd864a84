package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxNameLength bounds project names when no limit is configured.
const DefaultMaxNameLength = 255

// Validator checks user-supplied project data.
type Validator struct {
	maxNameLength int
}

// NewValidator creates a validator with the default name limit
func NewValidator() *Validator {
	return NewValidatorWithMaxNameLength(DefaultMaxNameLength)
}

// NewValidatorWithMaxNameLength creates a validator; a non-positive max
// means the default.
func NewValidatorWithMaxNameLength(max int) *Validator {
	if max <= 0 {
		max = DefaultMaxNameLength
	}
	return &Validator{maxNameLength: max}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidateProjectName rejects blank names, names longer than the limit and
// names containing control characters. The name itself is stored as given.
func (v *Validator) ValidateProjectName(name string) error {
	ve := NewValidationError()

	if !v.IsNonEmptyString(name) {
		ve.AddRequiredError("name")
		return ve
	}
	if utf8.RuneCountInString(name) > v.maxNameLength {
		ve.AddInvalidLengthError("name", name, v.maxNameLength)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		ve.AddInvalidFormatError("name", name, "free of control characters")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}
