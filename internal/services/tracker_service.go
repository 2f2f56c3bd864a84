package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"project-timer/internal/domain"
	"project-timer/internal/errors"
	"project-timer/internal/logging"
	"project-timer/internal/scheduler"
	"project-timer/internal/validation"
)

// DefaultTickInterval is how often a running timer is reconciled
const DefaultTickInterval = time.Second

// trackerServiceImpl implements the TrackerService interface
type trackerServiceImpl struct {
	mu        sync.Mutex
	store     Store
	clock     Clock
	opts      TrackerOptions
	validator *validation.Validator

	projects []domain.Project
	limits   domain.LimitMap
}

// NewTrackerService creates a tracker over store. Call Load before use to
// pick up the stored snapshot.
func NewTrackerService(store Store, clock Clock, opts TrackerOptions) TrackerService {
	if clock == nil {
		clock = SystemClock{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	return &trackerServiceImpl{
		store:     store,
		clock:     clock,
		opts:      opts,
		validator: validation.NewValidatorWithMaxNameLength(opts.MaxNameLength),
		projects:  []domain.Project{},
		limits:    domain.LimitMap{},
	}
}

// Load replaces the in-memory state with the stored snapshot
func (s *trackerServiceImpl) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(ctx)
}

// reload reads the stored snapshot into memory. Callers hold mu.
func (s *trackerServiceImpl) reload(ctx context.Context) error {
	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return err
	}
	limits, err := s.store.LoadLimits(ctx)
	if err != nil {
		return err
	}

	for i := range projects {
		projects[i].Normalize()
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	if limits == nil {
		limits = domain.LimitMap{}
	}

	s.projects = projects
	s.limits = limits

	logging.Debugf("loaded %d projects and %d limits", len(projects), len(limits))
	return nil
}

// Now returns the tracker's clock reading
func (s *trackerServiceImpl) Now() time.Time {
	return s.clock.Now()
}

// index returns the position of id in the collection or -1. Callers hold mu.
func (s *trackerServiceImpl) index(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// missing reports an unknown project id according to the error policy
func (s *trackerServiceImpl) missing(id string) error {
	if s.opts.Strict {
		return errors.NewNotFoundError("project", id)
	}
	logging.Debugf("ignoring unknown project %q", id)
	return nil
}

// saveProjects persists the collection. Callers hold mu. A failed save is
// reported but the in-memory state is kept.
func (s *trackerServiceImpl) saveProjects(ctx context.Context) error {
	if err := s.store.SaveProjects(ctx, s.projects); err != nil {
		logging.WithFields(map[string]interface{}{"projects": len(s.projects)}).
			Errorf("saving projects failed: %v", err)
		return err
	}
	return nil
}

func (s *trackerServiceImpl) saveLimits(ctx context.Context) error {
	if err := s.store.SaveLimits(ctx, s.limits); err != nil {
		logging.WithFields(map[string]interface{}{"limits": len(s.limits)}).
			Errorf("saving limits failed: %v", err)
		return err
	}
	return nil
}

// mutate applies fn to project id under the lock and saves when it reports
// a change.
func (s *trackerServiceImpl) mutate(ctx context.Context, id string, fn func(p *domain.Project, now time.Time) bool) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil, s.missing(id)
	}

	p := &s.projects[i]
	changed := fn(p, s.clock.Now())
	out := p.Clone()
	if !changed {
		return &out, nil
	}
	if err := s.saveProjects(ctx); err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			appErr.WithProject(id)
		}
		return &out, err
	}
	return &out, nil
}

// Add creates an idle project. A blank name creates nothing.
func (s *trackerServiceImpl) Add(ctx context.Context, name string) (*domain.Project, error) {
	if !domain.IsValidName(name) {
		if s.opts.Strict {
			return nil, errors.NewInvalidInputError("name", name, "must not be blank")
		}
		logging.Debugln("ignoring blank project name")
		return nil, nil
	}
	if s.opts.Strict {
		if err := s.validator.ValidateProjectName(name); err != nil {
			return nil, errors.NewValidationError("invalid project name", err)
		}
	}

	p := domain.NewProject(domain.NewProjectID(), name)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = append(s.projects, p)
	logging.WithProject(p.ID).Debugf("added project %q", name)

	out := p.Clone()
	if err := s.saveProjects(ctx); err != nil {
		return &out, err
	}
	return &out, nil
}

// List returns a copy of the collection in creation order
func (s *trackerServiceImpl) List(ctx context.Context) []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Get returns a copy of project id
func (s *trackerServiceImpl) Get(ctx context.Context, id string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil, s.missing(id)
	}
	out := s.projects[i].Clone()
	return &out, nil
}

// Resolve finds a project by id, then by exact name, then by a name that
// matches case-insensitively and is unique.
func (s *trackerServiceImpl) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(ref); i >= 0 {
		out := s.projects[i].Clone()
		return &out, nil
	}
	for _, p := range s.projects {
		if p.Name == ref {
			out := p.Clone()
			return &out, nil
		}
	}

	var match *domain.Project
	folded := strings.TrimSpace(ref)
	for i := range s.projects {
		if strings.EqualFold(s.projects[i].Name, folded) {
			if match != nil {
				match = nil
				break
			}
			match = &s.projects[i]
		}
	}
	if match != nil {
		out := match.Clone()
		return &out, nil
	}
	return nil, s.missing(ref)
}

// Delete removes project id together with its budget
func (s *trackerServiceImpl) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return s.missing(id)
	}

	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	_, hadLimit := s.limits[id]
	s.limits.Remove(id)
	logging.WithProject(id).Debugln("deleted project")

	if err := s.saveProjects(ctx); err != nil {
		return err
	}
	if hadLimit {
		return s.saveLimits(ctx)
	}
	return nil
}

// Start moves project id to running; a running project is left alone
func (s *trackerServiceImpl) Start(ctx context.Context, id string) (*domain.Project, error) {
	return s.mutate(ctx, id, func(p *domain.Project, now time.Time) bool {
		return p.Start(now)
	})
}

// Pause closes the running interval and always records it
func (s *trackerServiceImpl) Pause(ctx context.Context, id string) (*domain.Project, error) {
	return s.mutate(ctx, id, func(p *domain.Project, now time.Time) bool {
		entry, ok := p.Pause(now)
		if ok {
			logging.WithProject(p.ID).Debugf("paused after %ds", entry.Duration)
		}
		return ok
	})
}

// Stop closes the running interval and records it only if non-empty
func (s *trackerServiceImpl) Stop(ctx context.Context, id string) (*domain.Project, error) {
	return s.mutate(ctx, id, func(p *domain.Project, now time.Time) bool {
		entry, ok := p.Stop(now)
		if entry != nil {
			logging.WithProject(p.ID).Debugf("stopped after %ds", entry.Duration)
		}
		return ok
	})
}

// SetInitialTime overwrites the accumulated total of project id
func (s *trackerServiceImpl) SetInitialTime(ctx context.Context, id string, hours, minutes int64) (*domain.Project, error) {
	if s.opts.Strict && (hours < 0 || minutes < 0) {
		return nil, errors.NewInvalidInputError("time", [2]int64{hours, minutes}, "hours and minutes must not be negative")
	}
	return s.mutate(ctx, id, func(p *domain.Project, now time.Time) bool {
		p.SetInitialTime(hours, minutes)
		return true
	})
}

// Tick rereads the stored snapshot, so changes written by other processes
// are kept, then reconciles every running project. It returns the seconds
// added.
func (s *trackerServiceImpl) Tick(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return 0, err
	}

	now := s.clock.Now()
	var added int64
	running := false
	for i := range s.projects {
		if s.projects[i].IsRunning {
			running = true
			added += s.projects[i].Tick(now)
		}
	}
	if !running {
		return 0, nil
	}
	return added, s.saveProjects(ctx)
}

// StartTicking runs Tick every interval until ctx ends or the returned
// handle is stopped. A non-positive interval uses TickInterval. onTick, if
// set, runs after each tick.
func (s *trackerServiceImpl) StartTicking(ctx context.Context, interval time.Duration, onTick func()) *scheduler.Handle {
	if interval <= 0 {
		interval = s.opts.TickInterval
	}
	return scheduler.Every(ctx, interval, func(time.Time) {
		if _, err := s.Tick(ctx); err != nil && ctx.Err() == nil {
			logging.Warnf("tick failed: %v", err)
		}
		if onTick != nil {
			onTick()
		}
	})
}

// Limits returns a copy of the budget map
func (s *trackerServiceImpl) Limits(ctx context.Context) domain.LimitMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits.Clone()
}

// SetLimit sets the budget of project id in minutes; zero or less clears it
func (s *trackerServiceImpl) SetLimit(ctx context.Context, id string, minutes float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(id) < 0 {
		return s.missing(id)
	}
	s.limits.Set(id, minutes)
	return s.saveLimits(ctx)
}

// AdjustLimit shifts the budget of project id by whole hours
func (s *trackerServiceImpl) AdjustLimit(ctx context.Context, id string, deltaHours int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(id) < 0 {
		return 0, s.missing(id)
	}
	seconds := s.limits.Adjust(id, deltaHours)
	return seconds, s.saveLimits(ctx)
}
