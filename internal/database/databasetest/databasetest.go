// Package databasetest opens throwaway sqlite stores for tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"printshop-backend/internal/config"
	"printshop-backend/internal/database"
)

// NewStore returns a migrated store backed by a sqlite file in t.TempDir().
// The store is closed when the test ends.
func NewStore(t testing.TB) *database.Store {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	if _, err := database.NewMigrator(db, nil).Run(); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	store := database.NewStore(db, nil)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
