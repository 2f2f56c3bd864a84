package validation

import (
	"math"
	"strconv"
	"strings"
)

// The parse helpers coerce free-form numeric input to a safe value. The
// boolean result reports whether the input was usable as given, so callers
// running in strict mode can reject it instead.

// ParseNonNegativeInt parses a whole number such as an hours or minutes
// field. Fractions are truncated. Blank, invalid or negative input yields 0.
func ParseNonNegativeInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// ParseMinutes parses a budget in minutes. Invalid input yields 0, which
// clears the budget.
func ParseMinutes(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 {
		return 0, false
	}
	return f, true
}

// ParseDeltaHours parses a signed whole number of hours. Invalid input
// yields 0.
func ParseDeltaHours(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
