package activity

import "fmt"

// Clock constants.
const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	MinutesPerDay  = HoursPerDay * MinutesPerHour
)

// ParseClock converts an "HH:MM" string to minutes since midnight.
// "24:00" is accepted and returns 1440 (midnight at the end of the
// day); any other hour above 23 is rejected.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClockFormat
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidClockFormat
		}
	}

	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if mins >= MinutesPerHour {
		return 0, ErrInvalidClockFormat
	}
	if hours > HoursPerDay || (hours == HoursPerDay && mins != 0) {
		return 0, ErrInvalidClockFormat
	}
	return hours*MinutesPerHour + mins, nil
}

// FormatClock converts minutes since midnight to "HH:MM". The day
// boundary (1440) formats as "00:00", matching how schedules display
// an end-of-day midnight. Out-of-range values wrap into a single day.
func FormatClock(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/MinutesPerHour, m%MinutesPerHour)
}

// WrapDuration returns end-start in minutes, crossing midnight when
// end is numerically before start. An end equal to the day boundary
// counts as a same-day end.
func WrapDuration(start, end int) int {
	if end >= start {
		return end - start
	}
	return (MinutesPerDay - start) + end
}
