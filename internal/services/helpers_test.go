package services

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"project-timer/internal/domain"
	"project-timer/internal/errors"
	"project-timer/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// baseTime is a Wednesday afternoon in local time.
var baseTime = time.Date(2026, 10, 14, 15, 0, 0, 0, time.Local)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingStore keeps data in memory and fails saves on demand.
type failingStore struct {
	mu       sync.Mutex
	projects []domain.Project
	limits   domain.LimitMap
	fail     bool
	saves    int
}

func (s *failingStore) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Project(nil), s.projects...), nil
}

func (s *failingStore) SaveProjects(ctx context.Context, projects []domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.fail {
		return errors.NewStorageError("save projects", stderrors.New("disk full"))
	}
	s.projects = append([]domain.Project(nil), projects...)
	return nil
}

func (s *failingStore) LoadLimits(ctx context.Context) (domain.LimitMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits.Clone(), nil
}

func (s *failingStore) SaveLimits(ctx context.Context, limits domain.LimitMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.fail {
		return errors.NewStorageError("save limits", stderrors.New("disk full"))
	}
	s.limits = limits.Clone()
	return nil
}

func (s *failingStore) Close() error { return nil }

func newSQLiteStore(t *testing.T) *RepositoryStore {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	store := NewRepositoryStore(repo)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupTracker(t *testing.T, opts TrackerOptions) (TrackerService, *fakeClock, Store) {
	t.Helper()
	store := newSQLiteStore(t)
	clock := newFakeClock(baseTime)
	tracker := NewTrackerService(store, clock, opts)
	require.NoError(t, tracker.Load(context.Background()))
	return tracker, clock, store
}

func addProject(t *testing.T, tracker TrackerService, name string) *domain.Project {
	t.Helper()
	p, err := tracker.Add(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}
