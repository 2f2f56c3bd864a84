package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "data", "pt.db")

	repo, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestNew_InMemory(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	projects, err := repo.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestReplaceProjects_RoundTrip(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	start := time.Date(2026, 10, 14, 9, 0, 0, 123456789, time.UTC)
	projects := []*Project{
		{ID: "b", Name: "Second", TimeSeconds: 10, Position: 1},
		{ID: "a", Name: "First", TimeSeconds: 3600, IsRunning: true, LastStart: &start, Position: 0},
	}
	entries := []*TimeEntry{
		{ProjectID: "a", Seq: 1, Timestamp: start.Add(-time.Hour), Duration: 600},
		{ProjectID: "a", Seq: 0, Timestamp: start.Add(-2 * time.Hour), Duration: 3000},
		{ProjectID: "b", Seq: 0, Timestamp: start, Duration: 10},
	}

	require.NoError(t, repo.ReplaceProjects(ctx, projects, entries))

	gotProjects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, gotProjects, 2)
	assert.Equal(t, "a", gotProjects[0].ID)
	assert.True(t, gotProjects[0].IsRunning)
	require.NotNil(t, gotProjects[0].LastStart)
	assert.True(t, start.Equal(*gotProjects[0].LastStart))
	assert.Nil(t, gotProjects[1].LastStart)
	assert.False(t, gotProjects[1].IsRunning)

	gotEntries, err := repo.ListTimeEntries(ctx)
	require.NoError(t, err)
	require.Len(t, gotEntries, 3)
	assert.Equal(t, int64(3000), gotEntries[0].Duration)
	assert.Equal(t, int64(600), gotEntries[1].Duration)
	assert.Equal(t, "b", gotEntries[2].ProjectID)
}

func TestReplaceProjects_ReplacesPreviousSnapshot(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.ReplaceProjects(ctx,
		[]*Project{{ID: "a", Name: "A"}, {ID: "b", Name: "B", Position: 1}},
		[]*TimeEntry{{ProjectID: "a", Timestamp: now, Duration: 5}},
	))
	require.NoError(t, repo.ReplaceProjects(ctx, []*Project{{ID: "b", Name: "B"}}, nil))

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "b", projects[0].ID)

	entries, err := repo.ListTimeEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReplaceLimits(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceLimits(ctx, []*Limit{{ProjectID: "a", Seconds: 7200}, {ProjectID: "b", Seconds: 60}}))
	require.NoError(t, repo.ReplaceLimits(ctx, []*Limit{{ProjectID: "b", Seconds: 120}}))

	limits, err := repo.ListLimits(ctx)
	require.NoError(t, err)
	require.Len(t, limits, 1)
	assert.Equal(t, &Limit{ProjectID: "b", Seconds: 120}, limits[0])
}

func TestReplaceLimits_RejectsNonPositive(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceLimits(ctx, []*Limit{{ProjectID: "a", Seconds: 60}}))
	err := repo.ReplaceLimits(ctx, []*Limit{{ProjectID: "a", Seconds: 0}})
	assert.Error(t, err)

	limits, err := repo.ListLimits(ctx)
	require.NoError(t, err)
	require.Len(t, limits, 1, "failed write must roll back")
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pt.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceProjects(ctx, []*Project{{ID: "a", Name: "A", TimeSeconds: 42}}, nil))
	require.NoError(t, repo.Close())

	repo, err = NewWithOptions(dbPath, Options{QueryTimeout: time.Second, WriteTimeout: time.Second})
	require.NoError(t, err)
	defer repo.Close()

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, int64(42), projects[0].TimeSeconds)
}

func TestCancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListProjects(ctx)
	assert.Error(t, err)
}
