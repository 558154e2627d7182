package timeline

import "github.com/dnanh/tripline/internal/activity"

// DefaultMaxHistory bounds the undo stack so long editing sessions
// cannot grow memory without limit.
const DefaultMaxHistory = 50

// History is a bounded stack of day snapshots. One entry corresponds
// to one user-perceived action: snapshots are pushed when a gesture
// begins or a form commits, never on intermediate ticks.
type History struct {
	entries [][]*activity.Activity
	max     int
}

// NewHistory creates a history stack with the default capacity.
func NewHistory() *History {
	return &History{max: DefaultMaxHistory}
}

// Push records a snapshot, evicting the oldest entry at capacity.
func (h *History) Push(snapshot []*activity.Activity) {
	if len(h.entries) >= h.max {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, snapshot)
}

// Pop removes and returns the most recent snapshot. The boolean
// reports whether one existed: a snapshot of an empty day is a valid
// nil entry, so the slice alone cannot signal an empty stack.
func (h *History) Pop() ([]*activity.Activity, bool) {
	if len(h.entries) == 0 {
		return nil, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Clear drops every snapshot, e.g. when a different day is loaded.
func (h *History) Clear() {
	h.entries = nil
}

// CanUndo reports whether any snapshot is available.
func (h *History) CanUndo() bool {
	return len(h.entries) > 0
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}
