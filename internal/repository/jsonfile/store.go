package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"project-timer/internal/domain"
	"project-timer/internal/errors"
	"project-timer/internal/logging"
)

// Snapshot is the on-disk layout of the store.
type Snapshot struct {
	Projects []domain.Project `json:"projects"`
	Limits   domain.LimitMap  `json:"limits"`
}

// Store keeps projects and limits in a single JSON file. Every call reads
// the file again, so writes from other processes are picked up.
type Store struct {
	path string
	perm os.FileMode
	mu   sync.Mutex
}

// New returns a store backed by path. The file is created on the first save.
func New(path string, dirPerm os.FileMode) (*Store, error) {
	if dirPerm == 0 {
		dirPerm = 0755
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, errors.NewStorageError("create store directory", err).WithContext("path", path)
	}
	return &Store{path: path, perm: 0644}, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// read returns the current snapshot. A missing or unreadable file is treated
// as empty so a corrupt file never blocks the tracker.
func (s *Store) read() Snapshot {
	empty := Snapshot{Projects: []domain.Project{}, Limits: domain.LimitMap{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warnf("could not read %s, starting empty: %v", s.path, err)
		}
		return empty
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logging.Warnf("could not parse %s, starting empty: %v", s.path, err)
		return empty
	}
	if snap.Limits == nil {
		snap.Limits = domain.LimitMap{}
	}
	return snap
}

// LoadProjects returns the stored project collection
func (s *Store) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("load projects", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.read()
	out := make([]domain.Project, len(snap.Projects))
	for i, p := range snap.Projects {
		out[i] = p.Clone()
	}
	return out, nil
}

// SaveProjects replaces the stored project collection and keeps the stored
// limits
func (s *Store) SaveProjects(ctx context.Context, projects []domain.Project) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("save projects", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.read()
	snap.Projects = make([]domain.Project, len(projects))
	for i, p := range projects {
		snap.Projects[i] = p.Clone()
	}
	return s.write("save projects", snap)
}

// LoadLimits returns the stored limit map
func (s *Store) LoadLimits(ctx context.Context) (domain.LimitMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("load limits", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read().Limits.Clone(), nil
}

// SaveLimits replaces the stored limit map and keeps the stored projects
func (s *Store) SaveLimits(ctx context.Context, limits domain.LimitMap) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("save limits", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.read()
	snap.Limits = limits.Clone()
	return s.write("save limits", snap)
}

// Close is a no-op; every save is flushed immediately.
func (s *Store) Close() error {
	return nil
}

// write replaces the file atomically through a temp file in the same directory.
func (s *Store) write(operation string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return s.fail(operation, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pt-*.json")
	if err != nil {
		return s.fail(operation, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return s.fail(operation, err)
	}
	if err := tmp.Close(); err != nil {
		return s.fail(operation, err)
	}
	if err := os.Chmod(tmp.Name(), s.perm); err != nil {
		return s.fail(operation, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return s.fail(operation, err)
	}
	return nil
}

func (s *Store) fail(operation string, err error) error {
	return errors.NewStorageError(operation, err).WithContext("path", s.path)
}
