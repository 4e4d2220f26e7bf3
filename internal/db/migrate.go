package db

import (
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
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS date_cache (
		model      TEXT NOT NULL,
		raw        TEXT NOT NULL,
		iso        TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (model, raw)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_date_cache_created ON date_cache(created_at)`,
	`ALTER TABLE date_cache ADD COLUMN hits INTEGER NOT NULL DEFAULT 0`,
}
