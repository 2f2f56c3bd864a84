package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is a named work item with its own timer and ledger.
//
// Time holds the accumulated seconds excluding the slice that started at
// LastStart. LastStart is set iff IsRunning and every tick moves it to the
// tick time.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Time        int64      `json:"time"`
	IsRunning   bool       `json:"isRunning"`
	LastStart   *time.Time `json:"lastStart"`
	TimeEntries Ledger     `json:"timeEntries"`
}

// MaxSeconds caps any accumulated total or budget so unit conversions
// cannot overflow int64.
const MaxSeconds = int64(math.MaxInt64 / 2)

// secondsOf returns n*unit, saturating at MaxSeconds. n must not be negative.
func secondsOf(n, unit int64) int64 {
	if n > MaxSeconds/unit {
		return MaxSeconds
	}
	return n * unit
}

// addSeconds returns a+b for non-negative a and b, saturating at MaxSeconds.
func addSeconds(a, b int64) int64 {
	if a > MaxSeconds-b {
		return MaxSeconds
	}
	return a + b
}

// NewProjectID returns a new time-ordered project identifier.
func NewProjectID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewProject creates an idle project with an empty ledger.
func NewProject(id, name string) Project {
	return Project{
		ID:          id,
		Name:        name,
		TimeEntries: Ledger{},
	}
}

// IsValidName reports whether name can be used for a new project.
func IsValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// elapsedSeconds returns whole seconds between from and now, never negative.
func elapsedSeconds(from, now time.Time) int64 {
	d := now.Sub(from)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// Start moves an idle project to running. It returns false and leaves the
// project untouched when the timer is already running.
func (p *Project) Start(now time.Time) bool {
	if p.IsRunning {
		return false
	}
	start := now
	p.IsRunning = true
	p.LastStart = &start
	return true
}

// Pause closes the running interval and always records it in the ledger,
// even when it lasted less than a second. Pausing an idle project does nothing.
func (p *Project) Pause(now time.Time) (TimeEntry, bool) {
	if !p.IsRunning {
		return TimeEntry{}, false
	}
	entry := p.close(now)
	p.TimeEntries = p.TimeEntries.Append(entry)
	return entry, true
}

// Stop closes the running interval like Pause but records it only when the
// slice since LastStart lasted at least one second. Stopping an idle project is a no-op and
// returns false.
func (p *Project) Stop(now time.Time) (*TimeEntry, bool) {
	if !p.IsRunning {
		return nil, false
	}
	entry := p.close(now)
	if entry.Duration == 0 {
		return nil, true
	}
	p.TimeEntries = p.TimeEntries.Append(entry)
	return &entry, true
}

// close folds the slice since LastStart into Time, clears the running state
// and returns an entry for that slice. Time already folded in by ticks is not
// part of the entry.
func (p *Project) close(now time.Time) TimeEntry {
	elapsed := elapsedSeconds(*p.LastStart, now)
	p.Time = addSeconds(p.Time, elapsed)

	p.IsRunning = false
	p.LastStart = nil
	return NewTimeEntry(now, elapsed)
}

// Tick folds the whole seconds elapsed since LastStart into Time and moves
// LastStart to now. The sub-second remainder is dropped. It returns the
// seconds added.
func (p *Project) Tick(now time.Time) int64 {
	if !p.IsRunning || p.LastStart == nil {
		return 0
	}
	elapsed := elapsedSeconds(*p.LastStart, now)
	p.Time = addSeconds(p.Time, elapsed)
	next := now
	p.LastStart = &next
	return elapsed
}

// SetInitialTime overwrites the accumulated total. Negative values count as 0
// and the result saturates at MaxSeconds. The ledger and running state are
// left alone.
func (p *Project) SetInitialTime(hours, minutes int64) {
	if hours < 0 {
		hours = 0
	}
	if minutes < 0 {
		minutes = 0
	}
	p.Time = addSeconds(secondsOf(hours, 3600), secondsOf(minutes, 60))
}

// DisplayedTotal returns Time plus the whole seconds of the running slice.
func (p Project) DisplayedTotal(now time.Time) int64 {
	if !p.IsRunning || p.LastStart == nil {
		return p.Time
	}
	return addSeconds(p.Time, elapsedSeconds(*p.LastStart, now))
}

// Normalize repairs a project loaded from storage so the running invariants
// hold.
func (p *Project) Normalize() {
	if p.Time < 0 {
		p.Time = 0
	}
	if p.Time > MaxSeconds {
		p.Time = MaxSeconds
	}
	if p.TimeEntries == nil {
		p.TimeEntries = Ledger{}
	}
	if p.IsRunning && p.LastStart == nil {
		p.IsRunning = false
	}
	if !p.IsRunning {
		p.LastStart = nil
	}
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	out := p
	if p.LastStart != nil {
		ls := *p.LastStart
		out.LastStart = &ls
	}
	out.TimeEntries = p.TimeEntries.Clone()
	return out
}
