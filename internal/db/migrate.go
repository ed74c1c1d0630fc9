package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillUpdatedAt(db); err != nil {
		return fmt.Errorf("backfilling updated_at: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS logbook_entries (
		id          TEXT PRIMARY KEY,
		entry_date  TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		distance_km REAL NOT NULL DEFAULT 0 CHECK(distance_km >= 0),
		created_by  TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	// One entry per owner and day.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_owner_date ON logbook_entries(created_by, entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_date ON logbook_entries(entry_date)`,

	// Free-text note and edit tracking.
	`ALTER TABLE logbook_entries ADD COLUMN note TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE logbook_entries ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillUpdatedAt copies created_at into updated_at for rows written
// before the column existed. Idempotent.
func migrateBackfillUpdatedAt(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM logbook_entries WHERE updated_at = ''`).Scan(&count); err != nil {
		return fmt.Errorf("counting rows without updated_at: %w", err)
	}
	if count == 0 {
		return nil
	}

	if _, err := db.ExecContext(ctx,
		`UPDATE logbook_entries SET updated_at = created_at WHERE updated_at = ''`); err != nil {
		return fmt.Errorf("updating rows: %w", err)
	}
	return nil
}
