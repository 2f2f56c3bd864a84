package domain

import (
	"math"
)

// LimitMap maps a project id to its budget in seconds. A missing or
// non-positive entry means the project has no budget.
type LimitMap map[string]int64

// Get returns the budget for id, if one is set.
func (m LimitMap) Get(id string) (int64, bool) {
	seconds, ok := m[id]
	if !ok || seconds <= 0 {
		return 0, false
	}
	return seconds, true
}

// maxLimitMinutes is the largest budget, in minutes, that still fits
// MaxSeconds.
const maxLimitMinutes = MaxSeconds / 60

// Set stores a budget of max(1, floor(minutes)) minutes, capped at
// MaxSeconds. A zero, negative or NaN value clears the budget instead.
func (m LimitMap) Set(id string, minutes float64) {
	if math.IsNaN(minutes) || minutes <= 0 {
		delete(m, id)
		return
	}
	whole := maxLimitMinutes
	if minutes < float64(maxLimitMinutes) {
		whole = int64(math.Floor(minutes))
	}
	if whole < 1 {
		whole = 1
	}
	m[id] = whole * 60
}

// Adjust shifts the budget by deltaHours, treating a missing budget as zero.
// The result stays between one minute and MaxSeconds. It returns the new
// budget in seconds.
func (m LimitMap) Adjust(id string, deltaHours int64) int64 {
	current, _ := m.Get(id)
	const maxHours = maxLimitMinutes / 60
	switch {
	case deltaHours > maxHours:
		deltaHours = maxHours
	case deltaHours < -maxHours:
		deltaHours = -maxHours
	}
	minutes := current/60 + deltaHours*60
	switch {
	case minutes < 1:
		minutes = 1
	case minutes > maxLimitMinutes:
		minutes = maxLimitMinutes
	}
	m[id] = minutes * 60
	return m[id]
}

// Remove drops the budget for id.
func (m LimitMap) Remove(id string) {
	delete(m, id)
}

// Clone returns an independent copy with only valid budgets kept.
func (m LimitMap) Clone() LimitMap {
	out := make(LimitMap, len(m))
	for id, seconds := range m {
		if seconds > 0 {
			out[id] = seconds
		}
	}
	return out
}

// Budget describes how much of a limit a project has used.
type Budget struct {
	LimitSeconds   int64   `json:"limit_seconds"`
	UsedSeconds    int64   `json:"used_seconds"`
	Percent        float64 `json:"percent"`
	RawPercent     float64 `json:"raw_percent"`
	RemainingHours float64 `json:"remaining_hours"`
	Exceeded       bool    `json:"exceeded"`
}

// NewBudget computes progress of used against limit. Percent is clamped to
// [0, 100] for display; RawPercent is not.
func NewBudget(used, limit int64) Budget {
	raw := float64(used) / float64(limit) * 100
	remaining := float64(limit-used) / 3600
	return Budget{
		LimitSeconds:   limit,
		UsedSeconds:    used,
		Percent:        math.Min(math.Max(raw, 0), 100),
		RawPercent:     raw,
		RemainingHours: math.Max(0, remaining),
		Exceeded:       raw >= 100,
	}
}

// Progress returns the budget state for id, or false when it has no limit.
func (m LimitMap) Progress(id string, used int64) (Budget, bool) {
	limit, ok := m.Get(id)
	if !ok {
		return Budget{}, false
	}
	return NewBudget(used, limit), true
}
