package domain

import (
	"sort"

	"project-timer/internal/repository/sqlite"
)

// ProjectMapper handles conversion between domain projects and database rows.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project into its project row and ledger rows.
// position is the project's index in the collection.
func (m *ProjectMapper) ToDatabase(p Project, position int) (*sqlite.Project, []*sqlite.TimeEntry) {
	row := &sqlite.Project{
		ID:          p.ID,
		Name:        p.Name,
		TimeSeconds: p.Time,
		IsRunning:   p.IsRunning,
		LastStart:   p.LastStart,
		Position:    position,
	}

	entries := make([]*sqlite.TimeEntry, len(p.TimeEntries))
	for i, e := range p.TimeEntries {
		entries[i] = &sqlite.TimeEntry{
			ProjectID: p.ID,
			Seq:       i,
			Timestamp: e.Timestamp,
			Duration:  e.Duration,
		}
	}
	return row, entries
}

// FromDatabase converts a project row and its ledger rows to a domain Project.
func (m *ProjectMapper) FromDatabase(row *sqlite.Project, entries []*sqlite.TimeEntry) Project {
	ledger := make(Ledger, 0, len(entries))
	for _, e := range entries {
		ledger = append(ledger, TimeEntry{Timestamp: e.Timestamp, Duration: e.Duration})
	}
	return Project{
		ID:          row.ID,
		Name:        row.Name,
		Time:        row.TimeSeconds,
		IsRunning:   row.IsRunning,
		LastStart:   row.LastStart,
		TimeEntries: ledger,
	}
}

// ToDatabaseSlice converts a project collection into rows, keeping its order.
func (m *ProjectMapper) ToDatabaseSlice(projects []Project) ([]*sqlite.Project, []*sqlite.TimeEntry) {
	rows := make([]*sqlite.Project, 0, len(projects))
	var entries []*sqlite.TimeEntry
	for i, p := range projects {
		row, ledger := m.ToDatabase(p, i)
		rows = append(rows, row)
		entries = append(entries, ledger...)
	}
	return rows, entries
}

// FromDatabaseSlice rebuilds the project collection. Entries of unknown
// projects are dropped.
func (m *ProjectMapper) FromDatabaseSlice(rows []*sqlite.Project, entries []*sqlite.TimeEntry) []Project {
	byProject := make(map[string][]*sqlite.TimeEntry, len(rows))
	for _, e := range entries {
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
	}

	ordered := make([]*sqlite.Project, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	projects := make([]Project, len(ordered))
	for i, row := range ordered {
		ledger := byProject[row.ID]
		sort.SliceStable(ledger, func(a, b int) bool {
			return ledger[a].Seq < ledger[b].Seq
		})
		projects[i] = m.FromDatabase(row, ledger)
	}
	return projects
}

// LimitMapper handles conversion between LimitMap and database rows.
type LimitMapper struct{}

// NewLimitMapper creates a new LimitMapper instance.
func NewLimitMapper() *LimitMapper {
	return &LimitMapper{}
}

// ToDatabaseSlice converts a LimitMap to rows sorted by project id. Unset
// budgets are skipped.
func (m *LimitMapper) ToDatabaseSlice(limits LimitMap) []*sqlite.Limit {
	rows := make([]*sqlite.Limit, 0, len(limits))
	for id, seconds := range limits {
		if seconds <= 0 {
			continue
		}
		rows = append(rows, &sqlite.Limit{ProjectID: id, Seconds: seconds})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ProjectID < rows[j].ProjectID
	})
	return rows
}

// FromDatabaseSlice converts rows to a LimitMap.
func (m *LimitMapper) FromDatabaseSlice(rows []*sqlite.Limit) LimitMap {
	limits := make(LimitMap, len(rows))
	for _, row := range rows {
		if row.Seconds > 0 {
			limits[row.ProjectID] = row.Seconds
		}
	}
	return limits
}
