package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"project-timer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", "projects.json"), 0)
	require.NoError(t, err)
	return s
}

func TestStore_EmptyWhenMissing(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	projects, err := s.LoadProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	limits, err := s.LoadLimits(ctx)
	require.NoError(t, err)
	assert.Empty(t, limits)
}

func TestStore_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 14, 9, 0, 0, 500000000, time.UTC)

	p := domain.NewProject("a", "Alpha")
	p.Start(start)
	p.Pause(start.Add(90 * time.Second))
	p.Start(start.Add(2 * time.Minute))

	require.NoError(t, s.SaveProjects(ctx, []domain.Project{p}))
	require.NoError(t, s.SaveLimits(ctx, domain.LimitMap{"a": 7200}))

	reopened, err := New(s.Path(), 0)
	require.NoError(t, err)

	projects, err := reopened.LoadProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	got := projects[0]
	assert.Equal(t, "Alpha", got.Name)
	assert.Equal(t, int64(90), got.Time)
	assert.True(t, got.IsRunning)
	require.NotNil(t, got.LastStart)
	assert.True(t, start.Add(2*time.Minute).Equal(*got.LastStart))
	require.Len(t, got.TimeEntries, 1)
	assert.Equal(t, int64(90), got.TimeEntries[0].Duration)

	limits, err := reopened.LoadLimits(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LimitMap{"a": 7200}, limits)
}

func TestStore_SavesDoNotClobberEachOther(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLimits(ctx, domain.LimitMap{"a": 60}))
	require.NoError(t, s.SaveProjects(ctx, []domain.Project{domain.NewProject("a", "A")}))

	reopened, err := New(s.Path(), 0)
	require.NoError(t, err)
	limits, err := reopened.LoadLimits(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LimitMap{"a": 60}, limits)
}

func TestStore_SeesWritesFromOtherStores(t *testing.T) {
	first := newStore(t)
	second, err := New(first.Path(), 0)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, first.SaveProjects(ctx, []domain.Project{domain.NewProject("a", "A")}))
	_, err = first.LoadProjects(ctx)
	require.NoError(t, err)

	require.NoError(t, second.SaveProjects(ctx, []domain.Project{domain.NewProject("a", "A"), domain.NewProject("b", "B")}))
	require.NoError(t, first.SaveLimits(ctx, domain.LimitMap{"b": 120}))

	projects, err := first.LoadProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "b", projects[1].ID)

	limits, err := second.LoadLimits(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LimitMap{"b": 120}, limits)
}

func TestStore_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := New(path, 0)
	require.NoError(t, err)

	projects, err := s.LoadProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestStore_FieldNames(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveProjects(context.Background(), []domain.Project{domain.NewProject("a", "A")}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	for _, field := range []string{`"id"`, `"name"`, `"time"`, `"isRunning"`, `"lastStart"`, `"timeEntries"`, `"limits"`} {
		assert.Contains(t, string(data), field)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.SaveProjects(ctx, nil))
	_, err := s.LoadLimits(ctx)
	assert.Error(t, err)
}
