package config

import (
	"context"
	"testing"

	"project-timer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStore(t *testing.T) {
	for _, backend := range []string{BackendSQLite, BackendJSON} {
		t.Run(backend, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Storage.Backend = backend
			cfg.Storage.Dir = t.TempDir()

			store, err := CreateStore(cfg)
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			require.NoError(t, store.SaveProjects(ctx, []domain.Project{domain.NewProject("a", "Alpha")}))

			projects, err := store.LoadProjects(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 1)
			assert.Equal(t, "Alpha", projects[0].Name)
			assert.FileExists(t, cfg.GetStoragePath())
		})
	}
}

func TestCreateStore_UnknownBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = "redis"

	_, err := CreateStore(cfg)
	assert.Error(t, err)
}

func TestCreateTestStore(t *testing.T) {
	store, err := CreateTestStore()
	require.NoError(t, err)
	defer store.Close()

	limits, err := store.LoadLimits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, limits)
}
