// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dnanh/tripline/internal/activity"
)

// SQLite implements activity.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateActivity adds a new activity to the given day, appending it
// after the day's existing entries.
func (s *SQLite) CreateActivity(ctx context.Context, date time.Time, a *activity.Activity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM activities WHERE day = ?`,
		date.Format("2006-01-02"),
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("finding next position: %w", err)
	}

	query := `
		INSERT INTO activities (
			day, position, title, description, location, category,
			start_minutes, end_minutes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		date.Format("2006-01-02"),
		position,
		a.Title,
		a.Description,
		a.Location,
		a.Category,
		a.StartMinutes,
		a.EndMinutes,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	a.ID = id
	return nil
}

// GetActivity retrieves an activity by ID.
// Returns ErrUnknownActivity if no row matches.
func (s *SQLite) GetActivity(ctx context.Context, id int64) (*activity.Activity, error) {
	query := `
		SELECT id, title, description, location, category,
		       start_minutes, end_minutes, created_at
		FROM activities
		WHERE id = ?
	`

	var (
		a         activity.Activity
		category  string
		createdAt string
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Location,
		&category,
		&a.StartMinutes,
		&a.EndMinutes,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity %d: %w", id, activity.ErrUnknownActivity)
	}
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}

	a.Category = activity.ParseCategory(category)
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &a, nil
}

// ListActivitiesByDay returns a day's activities in stored position
// order, preserving manual arrangement.
func (s *SQLite) ListActivitiesByDay(ctx context.Context, date time.Time) ([]*activity.Activity, error) {
	query := `
		SELECT id, title, description, location, category,
		       start_minutes, end_minutes, created_at
		FROM activities
		WHERE day = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var acts []*activity.Activity
	for rows.Next() {
		var (
			a         activity.Activity
			category  string
			createdAt string
		)

		err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Description,
			&a.Location,
			&category,
			&a.StartMinutes,
			&a.EndMinutes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}

		a.Category = activity.ParseCategory(category)
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}

		acts = append(acts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}

	return acts, nil
}

// ListDays returns the dates that have at least one activity, oldest
// first.
func (s *SQLite) ListDays(ctx context.Context) ([]time.Time, error) {
	query := `SELECT DISTINCT day FROM activities ORDER BY day`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var days []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		t, err := parseDate(day)
		if err != nil {
			return nil, fmt.Errorf("parsing day: %w", err)
		}
		days = append(days, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating days: %w", err)
	}

	return days, nil
}

// UpdateActivity rewrites an activity's editable fields in place.
// Returns ErrUnknownActivity if no row matches.
func (s *SQLite) UpdateActivity(ctx context.Context, a *activity.Activity) error {
	query := `
		UPDATE activities
		SET title = ?, description = ?, location = ?, category = ?,
		    start_minutes = ?, end_minutes = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		a.Title,
		a.Description,
		a.Location,
		a.Category,
		a.StartMinutes,
		a.EndMinutes,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("activity %d: %w", a.ID, activity.ErrUnknownActivity)
	}

	return nil
}

// DeleteActivity removes an activity.
// Returns ErrUnknownActivity if no row matches.
func (s *SQLite) DeleteActivity(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("activity %d: %w", id, activity.ErrUnknownActivity)
	}

	return nil
}

// ReplaceDay atomically replaces a day's activity list. The stored
// position column records the given order, and fresh row IDs are
// written back to the activities.
func (s *SQLite) ReplaceDay(ctx context.Context, date time.Time, acts []*activity.Activity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE day = ?`, date.Format("2006-01-02")); err != nil {
		return fmt.Errorf("clearing day: %w", err)
	}

	query := `
		INSERT INTO activities (
			day, position, title, description, location, category,
			start_minutes, end_minutes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, a := range acts {
		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		result, err := stmt.ExecContext(ctx,
			date.Format("2006-01-02"),
			i,
			a.Title,
			a.Description,
			a.Location,
			a.Category,
			a.StartMinutes,
			a.EndMinutes,
			createdAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting activity %q: %w", a.Title, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		a.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// BatchUpdateActivityTimes updates several activities' times atomically
// in a single transaction.
func (s *SQLite) BatchUpdateActivityTimes(ctx context.Context, updates []activity.TimeUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE activities SET start_minutes = ?, end_minutes = ? WHERE id = ?`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, u := range updates {
		result, err := stmt.ExecContext(ctx, u.NewStart, u.NewEnd, u.ID)
		if err != nil {
			return fmt.Errorf("updating activity %d: %w", u.ID, err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return fmt.Errorf("activity %d: %w", u.ID, activity.ErrUnknownActivity)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	// Date-only format: use local timezone (midnight local, not UTC)
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z" - extract date and parse as local
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		dateOnly := s[:10]
		if t, err := time.ParseInLocation("2006-01-02", dateOnly, time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
