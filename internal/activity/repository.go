package activity

import (
	"context"
	"time"
)

// TimeUpdate represents one activity's time change for batch writes.
type TimeUpdate struct {
	ID       int64
	NewStart int
	NewEnd   int
}

// Repository defines the storage interface for trip day plans.
type Repository interface {
	// CreateActivity adds a new activity to the given day.
	CreateActivity(ctx context.Context, date time.Time, a *Activity) error

	// GetActivity retrieves an activity by ID.
	GetActivity(ctx context.Context, id int64) (*Activity, error)

	// ListActivitiesByDay returns a day's activities in insertion order.
	ListActivitiesByDay(ctx context.Context, date time.Time) ([]*Activity, error)

	// ListDays returns the dates that have at least one activity.
	ListDays(ctx context.Context) ([]time.Time, error)

	// UpdateActivity rewrites an activity's editable fields in place.
	UpdateActivity(ctx context.Context, a *Activity) error

	// DeleteActivity removes an activity. Returns ErrUnknownActivity
	// if no row matches.
	DeleteActivity(ctx context.Context, id int64) error

	// ReplaceDay atomically replaces a day's activity list. Used when
	// the editor reports a committed mutation for the whole day.
	ReplaceDay(ctx context.Context, date time.Time, acts []*Activity) error

	// BatchUpdateActivityTimes updates several activities' times in
	// one transaction.
	BatchUpdateActivityTimes(ctx context.Context, updates []TimeUpdate) error

	// Close releases any resources held by the repository.
	Close() error
}
