package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var lastStart sql.NullString

	err := scanner.Scan(
		&project.ID,
		&project.Name,
		&project.TimeSeconds,
		&project.IsRunning,
		&lastStart,
		&project.Position,
	)
	if err != nil {
		return nil, err
	}

	if project.LastStart, err = ParseNullTimeFromDB(lastStart); err != nil {
		return nil, fmt.Errorf("project %s last_start: %w", project.ID, err)
	}

	return project, nil
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var timestamp string

	err := scanner.Scan(
		&entry.ID,
		&entry.ProjectID,
		&entry.Seq,
		&timestamp,
		&entry.Duration,
	)
	if err != nil {
		return nil, err
	}

	if entry.Timestamp, err = ParseTimeFromDB(timestamp); err != nil {
		return nil, fmt.Errorf("time entry %d timestamp: %w", entry.ID, err)
	}

	return entry, nil
}

// ScanLimit scans a single limit from a database row
func ScanLimit(scanner Scanner) (*Limit, error) {
	limit := &Limit{}
	if err := scanner.Scan(&limit.ProjectID, &limit.Seconds); err != nil {
		return nil, err
	}
	return limit, nil
}

// ScanAll scans every row using scanOne
func ScanAll[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	return ScanAll(rows, ScanProject)
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	return ScanAll(rows, ScanTimeEntry)
}

// ScanLimits scans multiple limits from database rows
func ScanLimits(rows Rows) ([]*Limit, error) {
	return ScanAll(rows, ScanLimit)
}
