package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS exercises (
		id           TEXT PRIMARY KEY,
		external_id  TEXT,
		name         TEXT NOT NULL,
		body_part    TEXT NOT NULL DEFAULT '',
		target       TEXT NOT NULL DEFAULT '',
		equipment    TEXT NOT NULL DEFAULT '',
		instructions TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_exercises_external_id ON exercises(external_id) WHERE external_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_equipment ON exercises(LOWER(equipment))`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_name ON exercises(name COLLATE NOCASE)`,
}
