package timeline

import (
	"sort"

	"github.com/dnanh/tripline/internal/activity"
)

// Slot is a free stretch of the day window, in absolute minutes.
type Slot struct {
	Start int
	End   int
}

// Minutes returns the slot length.
func (s Slot) Minutes() int {
	return s.End - s.Start
}

// FreeSlots returns the unoccupied stretches of the chart window,
// in chronological order. Activities outside the window only shrink
// the slots they overlap.
func FreeSlots(cfg Config, acts []*activity.Activity) []Slot {
	type span struct{ start, end int }
	spans := make([]span, 0, len(acts))
	for _, a := range acts {
		end := a.EndMinutes
		if end <= a.StartMinutes {
			end = activity.MinutesPerDay
		}
		spans = append(spans, span{a.StartMinutes, end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var slots []Slot
	cursor := cfg.WindowStartMinutes()
	windowEnd := cfg.WindowEndMinutes()

	for _, sp := range spans {
		if sp.end <= cursor {
			continue
		}
		if sp.start > cursor {
			end := min(sp.start, windowEnd)
			if end > cursor {
				slots = append(slots, Slot{Start: cursor, End: end})
			}
		}
		cursor = max(cursor, sp.end)
		if cursor >= windowEnd {
			return slots
		}
	}

	if cursor < windowEnd {
		slots = append(slots, Slot{Start: cursor, End: windowEnd})
	}
	return slots
}

// FirstFreeSlot returns the start of the earliest free stretch that
// fits duration minutes, snapped to the grid. The second return is
// false when the day has no fitting gap.
func FirstFreeSlot(cfg Config, acts []*activity.Activity, duration int) (int, bool) {
	for _, slot := range FreeSlots(cfg, acts) {
		start := cfg.Snap(slot.Start)
		if start < slot.Start {
			start += cfg.SnapMinutes
		}
		if start+duration <= slot.End {
			return start, true
		}
	}
	return 0, false
}
