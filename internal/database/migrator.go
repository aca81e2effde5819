package database

import (
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded SQL migrations in file-name order. Each
// migration runs in its own transaction together with its bookkeeping row in
// schema_migrations, so a failed migration leaves no trace.
type Migrator struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewMigrator(db *gorm.DB, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Migrator{db: db, logger: logger}
}

// Run applies every migration that has not been recorded yet and returns
// the names of the ones it applied.
func (m *Migrator) Run() ([]string, error) {
	if err := m.createMigrationsTable(); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var applied []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		done, err := m.isMigrationApplied(name)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if done {
			m.logger.Debug("migration already applied", "migration", name)
			continue
		}

		migrationSQL, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		m.logger.Info("applying migration", "migration", name)

		err = m.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(migrationSQL)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec(
				"INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)",
				name, time.Now().UTC(),
			).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		applied = append(applied, name)
	}

	return applied, nil
}

func (m *Migrator) createMigrationsTable() error {
	return m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)
	`).Error
}

func (m *Migrator) isMigrationApplied(name string) (bool, error) {
	var count int64
	err := m.db.Raw(
		"SELECT COUNT(*) FROM schema_migrations WHERE name = ?",
		name,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
