package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateUp applies every pending migration. A dirty database (a previous run
// died mid-migration) is forced back to the last clean version and retried
// once, so a crashed deploy does not need manual repair.
func MigrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source driver: %v", err)
	}

	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migration: %v", err)
	}

	err = m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	var dirtyErr migrate.ErrDirty
	if !errors.As(err, &dirtyErr) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	return recoverDirty(m, dirtyErr.Version)
}

func recoverDirty(m *migrate.Migrate, dirtyVersion int) error {
	prev, err := versionBefore(dirtyVersion)
	if err != nil {
		return err
	}

	log.Printf("database dirty at version %d, forcing back to %d", dirtyVersion, prev)
	if err := m.Force(int(prev)); err != nil {
		return fmt.Errorf("failed to force to version %d: %w", prev, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed after force: %w", err)
	}
	return nil
}

// versionBefore returns the embedded migration version immediately preceding
// the given one.
func versionBefore(dirtyVersion int) (uint64, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return 0, fmt.Errorf("dirty at %d but failed to read migrations directory: %w", dirtyVersion, err)
	}

	var versions []uint64
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		// filename format: <version>_<description>.up.sql
		verStr, _, _ := strings.Cut(name, "_")
		v, err := strconv.ParseUint(verStr, 10, 64)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	for i, v := range versions {
		if v == uint64(dirtyVersion) && i > 0 {
			return versions[i-1], nil
		}
	}
	return 0, fmt.Errorf("could not determine previous version before %d", dirtyVersion)
}
