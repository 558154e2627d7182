// Package activity defines the core domain types for tripline.
package activity

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrMissingTitle       = errors.New("title cannot be empty")
	ErrInvalidClockFormat = errors.New("time must be in HH:MM format")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrDurationTooShort   = errors.New("activity must last at least the minimum duration")
)

// Domain errors.
var (
	ErrUnknownActivity = errors.New("activity not found")
)

// MinDuration is the shortest allowed activity length in minutes.
const MinDuration = 15

// Activity represents a single time-boxed entry on a day's timeline.
// StartMinutes is in [0, 1440); EndMinutes is in [15, 1440] where 1440
// means midnight at the end of the day.
type Activity struct {
	ID           int64
	Title        string
	Description  string
	Location     string
	Category     Category
	StartMinutes int
	EndMinutes   int
	CreatedAt    time.Time
}

// New creates an Activity from boundary-format fields with validation.
// start and end are clock strings in "HH:MM" format.
func New(title, description, location, category, start, end string) (*Activity, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}

	startMin, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return nil, err
	}
	if endMin == 0 {
		// "00:00" as an end time means midnight at the end of the day.
		endMin = MinutesPerDay
	}

	dur := WrapDuration(startMin, endMin)
	if endMin < startMin && endMin != MinutesPerDay {
		return nil, ErrInvalidTimeRange
	}
	if dur < MinDuration {
		return nil, ErrDurationTooShort
	}

	return &Activity{
		Title:        title,
		Description:  description,
		Location:     location,
		Category:     ParseCategory(category),
		StartMinutes: startMin,
		EndMinutes:   endMin,
		CreatedAt:    time.Now(),
	}, nil
}

// PrimaryLocation returns the row-grouping key for the activity: the
// part of the location before the first comma. It is derived on read
// and never persisted separately.
func (a *Activity) PrimaryLocation() string {
	loc, _, _ := strings.Cut(a.Location, ",")
	return strings.TrimSpace(loc)
}

// Duration returns the activity length in minutes, treating an end at
// the day boundary with wraparound arithmetic.
func (a *Activity) Duration() int {
	return WrapDuration(a.StartMinutes, a.EndMinutes)
}

// StartClock returns the start time as an "HH:MM" string.
func (a *Activity) StartClock() string {
	return FormatClock(a.StartMinutes)
}

// EndClock returns the end time as an "HH:MM" string. An end at the
// day boundary formats as "00:00".
func (a *Activity) EndClock() string {
	return FormatClock(a.EndMinutes)
}

// Clone returns a deep copy of the activity.
func (a *Activity) Clone() *Activity {
	c := *a
	return &c
}

// Day holds the ordered activities for one trip day. Ordering is
// insertion order, not time order: manual arrangement is preserved
// rather than re-sorted after edits.
type Day struct {
	Date       time.Time
	Activities []*Activity
}

// CloneActivities returns a deep copy of the day's activity sequence.
func CloneActivities(src []*Activity) []*Activity {
	if src == nil {
		return nil
	}
	out := make([]*Activity, len(src))
	for i, a := range src {
		out[i] = a.Clone()
	}
	return out
}
