package config

import (
	"os"

	"project-timer/internal/errors"
	"project-timer/internal/logging"
	"project-timer/internal/repository/jsonfile"
	"project-timer/internal/repository/sqlite"
	"project-timer/internal/services"
)

// CreateStore opens the persistence backend named by the configuration
func CreateStore(config *Config) (services.Store, error) {
	path := config.GetStoragePath()
	perm := os.FileMode(config.Storage.DirPermissions)

	switch config.Storage.Backend {
	case BackendJSON:
		store, err := jsonfile.New(path, perm)
		if err != nil {
			return nil, err
		}
		logging.Debugf("json store at %s", store.Path())
		return store, nil
	case BackendSQLite:
		repo, err := sqlite.NewWithOptions(path, sqlite.Options{
			QueryTimeout:   config.Storage.QueryTimeout,
			WriteTimeout:   config.Storage.WriteTimeout,
			DirPermissions: perm,
		})
		if err != nil {
			return nil, err
		}
		return services.NewRepositoryStore(repo), nil
	default:
		return nil, errors.NewInvalidInputError("storage.backend", config.Storage.Backend, "expected sqlite or json")
	}
}

// CreateTestStore creates an in-memory SQLite store for testing
func CreateTestStore() (services.Store, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, err
	}
	return services.NewRepositoryStore(repo), nil
}
