package sqlite

import "time"

// Project is a row of the projects table. Position keeps the collection in
// creation order.
type Project struct {
	ID          string
	Name        string
	TimeSeconds int64
	IsRunning   bool
	LastStart   *time.Time
	Position    int
}

// TimeEntry is a row of the time_entries table. Seq is the entry's index
// inside its project's ledger.
type TimeEntry struct {
	ID        int64
	ProjectID string
	Seq       int
	Timestamp time.Time
	Duration  int64
}

// Limit is a row of the limits table.
type Limit struct {
	ProjectID string
	Seconds   int64
}
