package domain

import (
	"time"
)

// TimeEntry is a closed interval in a project's ledger. Timestamp is the
// instant the interval was closed, Duration its length in whole seconds.
type TimeEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Duration  int64     `json:"duration"`
}

// NewTimeEntry creates an entry closed at timestamp.
func NewTimeEntry(timestamp time.Time, duration int64) TimeEntry {
	if duration < 0 {
		duration = 0
	}
	return TimeEntry{
		Timestamp: timestamp,
		Duration:  duration,
	}
}

// Ledger is the append-only, chronologically ordered log of a project's
// closed intervals.
type Ledger []TimeEntry

// Append returns the ledger with entry added at the end.
func (l Ledger) Append(entry TimeEntry) Ledger {
	return append(l, entry)
}

// SumSince totals the duration of every entry closed at or after start.
func (l Ledger) SumSince(start time.Time) int64 {
	var total int64
	for _, entry := range l {
		if !entry.Timestamp.Before(start) {
			total += entry.Duration
		}
	}
	return total
}

// Total returns the summed duration of all entries.
func (l Ledger) Total() int64 {
	var total int64
	for _, entry := range l {
		total += entry.Duration
	}
	return total
}

// Last returns the most recently appended entry.
func (l Ledger) Last() (TimeEntry, bool) {
	if len(l) == 0 {
		return TimeEntry{}, false
	}
	return l[len(l)-1], true
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}
