package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"project-timer/internal/logging"
)

//go:embed *.sql
var migrationsFS embed.FS

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Migration is one numbered schema change with its reverse
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// RunMigrations brings the schema up to date. Already applied versions are
// skipped, so it is safe to call on every open.
func RunMigrations(db *sql.DB) error {
	if err := ensureTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	all, err := LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		if err := apply(db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
		logging.Debugf("applied migration %d (%s)", m.Version, m.Name)
	}
	return nil
}

// RollbackMigration runs the down script of version and forgets it
func RollbackMigration(db *sql.DB, version int) error {
	all, err := LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	i := sort.Search(len(all), func(i int) bool { return all[i].Version >= version })
	if i == len(all) || all[i].Version != version {
		return fmt.Errorf("migration %d not found", version)
	}
	if err := inTx(db, all[i].Down, "DELETE FROM migrations WHERE version = ?", version); err != nil {
		return fmt.Errorf("failed to roll back migration %d: %w", version, err)
	}
	logging.Debugf("rolled back migration %d (%s)", version, all[i].Name)
	return nil
}

// LoadMigrations reads the embedded NNNNNN_name.up.sql / .down.sql pairs,
// ordered by version
func LoadMigrations() ([]Migration, error) {
	ups, err := fs.Glob(migrationsFS, "*"+upSuffix)
	if err != nil {
		return nil, err
	}

	all := make([]Migration, 0, len(ups))
	for _, file := range ups {
		name := strings.TrimSuffix(file, upSuffix)
		version, ok := parseVersion(name)
		if !ok {
			continue
		}

		up, err := migrationsFS.ReadFile(file)
		if err != nil {
			return nil, err
		}
		down, err := migrationsFS.ReadFile(name + downSuffix)
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down script: %w", version, err)
		}
		all = append(all, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Version < all[j].Version })
	return all, nil
}

// parseVersion reads the numeric prefix of NNNNNN_name
func parseVersion(name string) (int, bool) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, false
	}
	return version, true
}

func ensureTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func apply(db *sql.DB, m Migration) error {
	return inTx(db, m.Up, "INSERT INTO migrations (version) VALUES (?)", m.Version)
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// inTx runs script and the bookkeeping statement in one transaction
func inTx(db *sql.DB, script, bookkeeping string, version int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(bookkeeping, version); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
