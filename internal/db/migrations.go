package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS activities (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			day           DATE NOT NULL,
			position      INTEGER NOT NULL,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			location      TEXT NOT NULL DEFAULT '',
			category      TEXT NOT NULL DEFAULT 'other',
			start_minutes INTEGER NOT NULL CHECK(start_minutes >= 0 AND start_minutes < 1440),
			end_minutes   INTEGER NOT NULL CHECK(end_minutes > 0 AND end_minutes <= 1440),
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_activities_day ON activities(day);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating activities table: %w", err)
	}

	return nil
}
