package timeline

import (
	"errors"

	"github.com/dnanh/tripline/internal/activity"
)

// Session errors.
var (
	ErrSessionActive = errors.New("another gesture is already active")
	ErrNoSession     = errors.New("no gesture in progress")
)

// DragSession controls one move gesture. It is constructed at
// pointer-down, fed pixel deltas on every pointer-move tick, and
// discarded at pointer-up or cancel. Every tick writes a fully valid
// state through the store, so abandoning the session needs no
// rollback.
type DragSession struct {
	cfg     Config
	store   *Store
	history *History

	active        bool
	activityID    int64
	originalStart int
	duration      int
}

// NewDragSession creates an idle drag controller bound to a store.
func NewDragSession(cfg Config, store *Store, history *History) *DragSession {
	return &DragSession{cfg: cfg, store: store, history: history}
}

// Active reports whether a move gesture is in progress.
func (d *DragSession) Active() bool {
	return d.active
}

// ActivityID returns the activity being moved, or 0 when idle.
func (d *DragSession) ActivityID() int64 {
	if !d.active {
		return 0
	}
	return d.activityID
}

// Begin starts a move gesture on the given activity. The copy
// modifier is sampled once here, not polled during the gesture: when
// set, the session duplicates the activity and terminates immediately
// without entering the active state, and later Update calls are
// no-ops on the original. Exactly one history snapshot is pushed.
func (d *DragSession) Begin(id int64, copyModifier bool) (*activity.Activity, error) {
	if d.active {
		return nil, ErrSessionActive
	}
	a := d.store.Get(id)
	if a == nil {
		return nil, activity.ErrUnknownActivity
	}

	d.history.Push(d.store.Snapshot())

	if copyModifier {
		dup, _ := d.store.Duplicate(id, DuplicateOffsetMinutes)
		return dup, nil
	}

	d.active = true
	d.activityID = id
	d.originalStart = a.StartMinutes
	d.duration = a.Duration()
	return a, nil
}

// Update applies one pointer-move tick. deltaPixels is the pointer's
// horizontal travel since Begin. The candidate start is snapped to
// the grid and clamped into the chart window; the end shifts in
// lock-step so duration is preserved. A move never touches location
// or category. Idempotent and history-free per tick.
func (d *DragSession) Update(deltaPixels int) bool {
	if !d.active {
		return false
	}

	deltaMinutes := d.cfg.Snap(d.cfg.PixelsToMinutes(deltaPixels))
	newStart := d.originalStart + deltaMinutes

	maxStart := d.cfg.WindowEndMinutes() - d.cfg.MinDurationMinutes
	if limit := activity.MinutesPerDay - d.duration; limit < maxStart {
		// Keep the translated end inside the day.
		maxStart = limit
	}
	newStart = clamp(newStart, 0, maxStart)
	newEnd := newStart + d.duration

	return d.store.UpdateByID(d.activityID, Patch{
		StartMinutes: &newStart,
		EndMinutes:   &newEnd,
	})
}

// End finishes the gesture. No additional writes: the last applied
// tick already satisfied every invariant.
func (d *DragSession) End() {
	d.active = false
	d.activityID = 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
