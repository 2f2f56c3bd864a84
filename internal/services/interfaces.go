package services

import (
	"context"
	"time"

	"project-timer/internal/domain"
	"project-timer/internal/scheduler"
)

// Store persists the project collection and the limit map. Saves replace
// the stored snapshot.
type Store interface {
	LoadProjects(ctx context.Context) ([]domain.Project, error)
	SaveProjects(ctx context.Context, projects []domain.Project) error
	LoadLimits(ctx context.Context) (domain.LimitMap, error)
	SaveLimits(ctx context.Context, limits domain.LimitMap) error
	Close() error
}

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ProjectStatus is a project together with its live figures
type ProjectStatus struct {
	Project   domain.Project `json:"project"`
	Total     int64          `json:"total_seconds"`
	Budget    *domain.Budget `json:"budget,omitempty"`
	LastEntry *time.Time     `json:"last_entry,omitempty"`
}

// BreakdownRow is one project's share of a period
type BreakdownRow struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Seconds   int64  `json:"seconds"`
	Hours     string `json:"hours"`
}

// Report is the time breakdown of every project for one period
type Report struct {
	Period       domain.Period  `json:"period"`
	Start        time.Time      `json:"start"`
	Rows         []BreakdownRow `json:"rows"`
	TotalSeconds int64          `json:"total_seconds"`
}

// TrackerOptions configures a TrackerService
type TrackerOptions struct {
	// Strict turns unknown ids and bad input into errors instead of no-ops.
	Strict        bool
	MaxNameLength int
	TickInterval  time.Duration
}

// TrackerService owns the project collection and the limit map and
// serializes every transition on them
type TrackerService interface {
	// Lifecycle
	Load(ctx context.Context) error

	// Project collection
	Add(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) []domain.Project
	Get(ctx context.Context, id string) (*domain.Project, error)
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error

	// Timer transitions
	Start(ctx context.Context, id string) (*domain.Project, error)
	Pause(ctx context.Context, id string) (*domain.Project, error)
	Stop(ctx context.Context, id string) (*domain.Project, error)
	SetInitialTime(ctx context.Context, id string, hours, minutes int64) (*domain.Project, error)
	Tick(ctx context.Context) (int64, error)
	StartTicking(ctx context.Context, interval time.Duration, onTick func()) *scheduler.Handle

	// Budgets
	Limits(ctx context.Context) domain.LimitMap
	SetLimit(ctx context.Context, id string, minutes float64) error
	AdjustLimit(ctx context.Context, id string, deltaHours int64) (int64, error)

	// Now returns the tracker's clock reading
	Now() time.Time
}

// BudgetService reports budget progress
type BudgetService interface {
	Progress(ctx context.Context, id string) (*domain.Budget, error)
	Status(ctx context.Context) []ProjectStatus
}

// ReportingService aggregates ledgers over calendar periods
type ReportingService interface {
	TimeInPeriod(ctx context.Context, id string, period domain.Period) (int64, error)
	Breakdown(ctx context.Context, period domain.Period) *Report
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TrackerService   TrackerService
	BudgetService    BudgetService
	ReportingService ReportingService
}

// NewServiceContainer wires the services over store and loads the stored
// snapshot.
func NewServiceContainer(ctx context.Context, store Store, clock Clock, opts TrackerOptions, weekStart time.Weekday) (*ServiceContainer, error) {
	tracker := NewTrackerService(store, clock, opts)
	if err := tracker.Load(ctx); err != nil {
		return nil, err
	}
	return &ServiceContainer{
		TrackerService:   tracker,
		BudgetService:    NewBudgetService(tracker),
		ReportingService: NewReportingService(tracker, weekStart),
	}, nil
}
