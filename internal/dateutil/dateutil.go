// Package dateutil provides date parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange represents a validated date range, e.g. the span of a trip.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if endDate == "" {
		end = start
	} else {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Days returns the number of calendar days in the range, inclusive.
func (r *DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// DayIndex returns the zero-based day number of date within the range,
// or -1 if the date falls outside it.
func (r *DateRange) DayIndex(date time.Time) int {
	date = TruncateToDay(date)
	if date.Before(r.Start) || date.After(r.End) {
		return -1
	}
	return int(date.Sub(r.Start).Hours() / 24)
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD), past dates allowed
//   - Keywords: "yesterday", "tomorrow"
//   - Weekday names: "monday" through "sunday" (next occurrence)
//
// All inputs are case-insensitive.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	// Weekday names: "monday", "tuesday", etc.
	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	// Absolute date: YYYY-MM-DD. Past dates are fine, travel days get
	// logged after the fact.
	result, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	current := today.Weekday()
	daysUntil := int(target) - int(current)
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
