package activity

import "regexp"

// Older exports encoded the end time inside the description as an
// "END_TIME:HH:MM;" marker. The marker is stripped on import and the
// value promoted to the EndMinutes field; it is never written back.
var legacyEndTimeRe = regexp.MustCompile(`\s*END_TIME:([^;]*);`)

// DefaultImportDuration is assumed for the last activity of a day
// when the import carries no end time at all.
const DefaultImportDuration = 120

// ExtractLegacyEndTime pulls an embedded end-time marker out of a
// description. Returns the cleaned description, the end in minutes,
// and whether a parseable marker was present.
func ExtractLegacyEndTime(description string) (cleaned string, endMinutes int, ok bool) {
	m := legacyEndTimeRe.FindStringSubmatch(description)
	if m == nil {
		return description, 0, false
	}
	cleaned = legacyEndTimeRe.ReplaceAllString(description, "")

	end, err := ParseClock(m[1])
	if err != nil {
		return cleaned, 0, false
	}
	if end == 0 {
		end = MinutesPerDay
	}
	return cleaned, end, true
}

// NormalizeImported fills in end times for a day's worth of imported
// activities. Precedence per record: an embedded legacy marker, then
// the next activity's start, then a default duration for the last
// record. Initialization-time behavior only; once imported, end times
// are first-class and never re-derived.
func NormalizeImported(acts []*Activity) {
	for i, a := range acts {
		desc, end, ok := ExtractLegacyEndTime(a.Description)
		a.Description = desc
		if ok {
			a.EndMinutes = end
			continue
		}
		if a.EndMinutes != 0 {
			continue
		}

		if i+1 < len(acts) {
			a.EndMinutes = acts[i+1].StartMinutes
		} else {
			a.EndMinutes = a.StartMinutes + DefaultImportDuration
		}
		if a.EndMinutes > MinutesPerDay {
			a.EndMinutes = MinutesPerDay
		}
		if WrapDuration(a.StartMinutes, a.EndMinutes) < MinDuration {
			a.EndMinutes = min(a.StartMinutes+MinDuration, MinutesPerDay)
		}
	}
}
