// Package timeline implements the interactive day-timeline editor:
// pixel/time conversion, the in-memory activity store, gesture
// sessions for move and resize, the inspector form, and undo history.
// The package performs no I/O; hosts receive committed mutations
// through a callback and own persistence.
package timeline

import "math"

// Config is the immutable per-render timeline configuration.
type Config struct {
	StartHour          int // first hour shown on the chart
	EndHour            int // last hour boundary, 24 = midnight
	PixelsPerHour      int
	SnapMinutes        int
	MinDurationMinutes int
}

// DefaultConfig returns the standard chart configuration: a 06:00 to
// midnight window at 80px per hour with a 15-minute grid.
func DefaultConfig() Config {
	return Config{
		StartHour:          6,
		EndHour:            24,
		PixelsPerHour:      80,
		SnapMinutes:        15,
		MinDurationMinutes: 15,
	}
}

// WindowStartMinutes returns the first visible minute of the day.
func (c Config) WindowStartMinutes() int {
	return c.StartHour * 60
}

// WindowEndMinutes returns the minute boundary where the chart ends.
func (c Config) WindowEndMinutes() int {
	return c.EndHour * 60
}

// MinutesToPixels converts an absolute minute-of-day to a horizontal
// offset from the left edge of the chart. The result is negative for
// times before the visible window; callers clamp visually.
func (c Config) MinutesToPixels(minutes int) int {
	rel := minutes - c.WindowStartMinutes()
	return int(math.Round(float64(rel*c.PixelsPerHour) / 60.0))
}

// PixelsToMinutes converts a horizontal pixel offset to minutes,
// rounded to the nearest whole minute. The result is window-relative:
// add WindowStartMinutes for an absolute time. Snapping to the grid
// is left to the caller.
func (c Config) PixelsToMinutes(px int) int {
	return int(math.Round(float64(px*60) / float64(c.PixelsPerHour)))
}

// Snap rounds minutes to the nearest configured grid increment.
func (c Config) Snap(minutes int) int {
	if c.SnapMinutes <= 0 {
		return minutes
	}
	return int(math.Round(float64(minutes)/float64(c.SnapMinutes))) * c.SnapMinutes
}
