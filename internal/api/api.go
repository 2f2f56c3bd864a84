package api

import (
	"context"
	"time"

	"project-timer/internal/config"
	"project-timer/internal/domain"
	"project-timer/internal/errors"
	"project-timer/internal/logging"
	"project-timer/internal/scheduler"
	"project-timer/internal/services"
)

// API defines the operations the project timer exposes to its callers.
type API interface {
	// Project operations
	Add(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) []services.ProjectStatus
	Get(ctx context.Context, id string) (*domain.Project, error)
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error

	// Timer operations
	Start(ctx context.Context, id string) (*domain.Project, error)
	Pause(ctx context.Context, id string) (*domain.Project, error)
	Stop(ctx context.Context, id string) (*domain.Project, error)
	SetInitialTime(ctx context.Context, id string, hours, minutes int64) (*domain.Project, error)
	Tick(ctx context.Context) (int64, error)
	StartTicking(ctx context.Context, interval time.Duration, onTick func()) *scheduler.Handle

	// Budget operations
	SetLimit(ctx context.Context, id string, minutes float64) error
	AdjustLimit(ctx context.Context, id string, deltaHours int64) (int64, error)
	Progress(ctx context.Context, id string) (*domain.Budget, error)

	// Aggregation
	TimeInPeriod(ctx context.Context, id string, period domain.Period) (int64, error)
	Breakdown(ctx context.Context, period domain.Period) *services.Report
	FormatTime(seconds int64) domain.HoursMinutes

	Now() time.Time
	Close() error
}

type apiImpl struct {
	store     services.Store
	tracker   services.TrackerService
	budget    services.BudgetService
	reporting services.ReportingService
}

// New creates an API over an already loaded service container. Close closes
// store.
func New(container *services.ServiceContainer, store services.Store) API {
	return &apiImpl{
		store:     store,
		tracker:   container.TrackerService,
		budget:    container.BudgetService,
		reporting: container.ReportingService,
	}
}

// Open creates the configured store, loads it and returns an API over it.
func Open(ctx context.Context, cfg *config.Config, clock services.Clock) (API, error) {
	store, err := config.CreateStore(cfg)
	if err != nil {
		if _, ok := errors.AsAppError(err); !ok {
			err = errors.WrapError(err, errors.ErrorTypeStorage, "failed to open storage").
				WithContext("path", cfg.GetStoragePath())
		}
		return nil, err
	}

	opts := services.TrackerOptions{
		Strict:        cfg.Behavior.Strict,
		MaxNameLength: cfg.Behavior.MaxNameLength,
		TickInterval:  cfg.Timer.TickInterval,
	}
	container, err := services.NewServiceContainer(ctx, store, clock, opts, cfg.WeekStart())
	if err != nil {
		store.Close()
		return nil, err
	}

	logging.Debugf("opened %s store at %s", cfg.Storage.Backend, cfg.GetStoragePath())
	return New(container, store), nil
}

// Project operations

func (a *apiImpl) Add(ctx context.Context, name string) (*domain.Project, error) {
	return a.tracker.Add(ctx, name)
}

func (a *apiImpl) List(ctx context.Context) []services.ProjectStatus {
	return a.budget.Status(ctx)
}

func (a *apiImpl) Get(ctx context.Context, id string) (*domain.Project, error) {
	return a.tracker.Get(ctx, id)
}

func (a *apiImpl) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	return a.tracker.Resolve(ctx, ref)
}

func (a *apiImpl) Delete(ctx context.Context, id string) error {
	return a.tracker.Delete(ctx, id)
}

// Timer operations

func (a *apiImpl) Start(ctx context.Context, id string) (*domain.Project, error) {
	return a.tracker.Start(ctx, id)
}

func (a *apiImpl) Pause(ctx context.Context, id string) (*domain.Project, error) {
	return a.tracker.Pause(ctx, id)
}

func (a *apiImpl) Stop(ctx context.Context, id string) (*domain.Project, error) {
	return a.tracker.Stop(ctx, id)
}

func (a *apiImpl) SetInitialTime(ctx context.Context, id string, hours, minutes int64) (*domain.Project, error) {
	return a.tracker.SetInitialTime(ctx, id, hours, minutes)
}

func (a *apiImpl) Tick(ctx context.Context) (int64, error) {
	return a.tracker.Tick(ctx)
}

func (a *apiImpl) StartTicking(ctx context.Context, interval time.Duration, onTick func()) *scheduler.Handle {
	return a.tracker.StartTicking(ctx, interval, onTick)
}

// Budget operations

func (a *apiImpl) SetLimit(ctx context.Context, id string, minutes float64) error {
	return a.tracker.SetLimit(ctx, id, minutes)
}

func (a *apiImpl) AdjustLimit(ctx context.Context, id string, deltaHours int64) (int64, error) {
	return a.tracker.AdjustLimit(ctx, id, deltaHours)
}

func (a *apiImpl) Progress(ctx context.Context, id string) (*domain.Budget, error) {
	return a.budget.Progress(ctx, id)
}

// Aggregation

func (a *apiImpl) TimeInPeriod(ctx context.Context, id string, period domain.Period) (int64, error) {
	return a.reporting.TimeInPeriod(ctx, id, period)
}

func (a *apiImpl) Breakdown(ctx context.Context, period domain.Period) *services.Report {
	return a.reporting.Breakdown(ctx, period)
}

func (a *apiImpl) FormatTime(seconds int64) domain.HoursMinutes {
	return domain.FormatTime(seconds)
}

func (a *apiImpl) Now() time.Time {
	return a.tracker.Now()
}

func (a *apiImpl) Close() error {
	return a.store.Close()
}
