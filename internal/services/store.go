package services

import (
	"context"

	"project-timer/internal/domain"
	"project-timer/internal/repository/sqlite"
)

// RepositoryStore adapts a sqlite.Repository to the Store interface
type RepositoryStore struct {
	repo     sqlite.Repository
	projects *domain.ProjectMapper
	limits   *domain.LimitMapper
}

// NewRepositoryStore creates a Store backed by repo
func NewRepositoryStore(repo sqlite.Repository) *RepositoryStore {
	return &RepositoryStore{
		repo:     repo,
		projects: domain.NewProjectMapper(),
		limits:   domain.NewLimitMapper(),
	}
}

// LoadProjects reads the stored collection
func (s *RepositoryStore) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListTimeEntries(ctx)
	if err != nil {
		return nil, err
	}
	return s.projects.FromDatabaseSlice(rows, entries), nil
}

// SaveProjects replaces the stored collection
func (s *RepositoryStore) SaveProjects(ctx context.Context, projects []domain.Project) error {
	rows, entries := s.projects.ToDatabaseSlice(projects)
	return s.repo.ReplaceProjects(ctx, rows, entries)
}

// LoadLimits reads the stored budgets
func (s *RepositoryStore) LoadLimits(ctx context.Context) (domain.LimitMap, error) {
	rows, err := s.repo.ListLimits(ctx)
	if err != nil {
		return nil, err
	}
	return s.limits.FromDatabaseSlice(rows), nil
}

// SaveLimits replaces the stored budgets
func (s *RepositoryStore) SaveLimits(ctx context.Context, limits domain.LimitMap) error {
	return s.repo.ReplaceLimits(ctx, s.limits.ToDatabaseSlice(limits))
}

// Close closes the underlying repository
func (s *RepositoryStore) Close() error {
	return s.repo.Close()
}
