package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pulseforge/pulseforge/internal/db"
)

// NewTestDB opens a migrated in-memory state database closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openState(t, ":memory:")
}

// NewTestStateFile opens a migrated state file under t.TempDir and returns its path too.
func NewTestStateFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "pulseforge.db")
	return openState(t, path), path
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openState(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening state database %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
