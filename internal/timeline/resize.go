package timeline

import (
	"github.com/dnanh/tripline/internal/activity"
)

// Edge identifies which boundary of an activity a resize gesture
// grabs.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// ResizeSession controls one edge-resize gesture. The boundary not
// being dragged is the anchor and stays fixed for the whole gesture;
// every tick recomputes the dragged boundary against it and rejects
// any candidate that would shrink the activity below the minimum
// duration, leaving the last valid state in place.
type ResizeSession struct {
	cfg     Config
	store   *Store
	history *History

	active     bool
	edge       Edge
	activityID int64
	anchor     int // the fixed boundary
	original   int // the dragged boundary at gesture start
}

// NewResizeSession creates an idle resize controller bound to a store.
func NewResizeSession(cfg Config, store *Store, history *History) *ResizeSession {
	return &ResizeSession{cfg: cfg, store: store, history: history}
}

// Active reports whether a resize gesture is in progress.
func (r *ResizeSession) Active() bool {
	return r.active
}

// ActivityID returns the activity being resized, or 0 when idle.
func (r *ResizeSession) ActivityID() int64 {
	if !r.active {
		return 0
	}
	return r.activityID
}

// Edge returns which boundary the live gesture is dragging.
func (r *ResizeSession) Edge() Edge {
	return r.edge
}

// Begin starts a resize gesture on the given edge, recording the
// opposite boundary as the anchor and pushing one history snapshot.
func (r *ResizeSession) Begin(id int64, edge Edge) (*activity.Activity, error) {
	if r.active {
		return nil, ErrSessionActive
	}
	a := r.store.Get(id)
	if a == nil {
		return nil, activity.ErrUnknownActivity
	}

	r.history.Push(r.store.Snapshot())

	r.active = true
	r.edge = edge
	r.activityID = id
	if edge == EdgeStart {
		r.anchor = a.EndMinutes
		r.original = a.StartMinutes
	} else {
		r.anchor = a.StartMinutes
		r.original = a.EndMinutes
	}
	return a, nil
}

// Update applies one pointer-move tick. deltaPixels is the pointer's
// horizontal travel since Begin. Candidates violating the minimum
// duration are silently dropped; the write is skipped and the last
// valid state stands. Returns whether a write was applied.
//
// An activity committed across midnight stores an end smaller than
// its start. The clamp bounds are computed with that boundary lifted
// by a full day so the interval stays ordered, then the result is
// mapped back into the stored 0..1440 range.
func (r *ResizeSession) Update(deltaPixels int) bool {
	if !r.active {
		return false
	}

	deltaMinutes := r.cfg.Snap(r.cfg.PixelsToMinutes(deltaPixels))
	minDur := r.cfg.MinDurationMinutes

	if r.edge == EdgeStart {
		hi := r.anchor - minDur
		if r.anchor < r.original {
			// Wrapped: the anchor end is on the next day. The start
			// itself must stay inside today.
			hi = min(r.anchor+activity.MinutesPerDay-minDur, activity.MinutesPerDay-1)
		}
		newStart := clamp(r.original+deltaMinutes, 0, hi)
		if activity.WrapDuration(newStart, r.anchor) < minDur {
			return false
		}
		return r.store.UpdateByID(r.activityID, Patch{StartMinutes: &newStart})
	}

	original := r.original
	hi := activity.MinutesPerDay
	if original < r.anchor {
		// Wrapped: the dragged end is on the next day and may travel
		// up to a full day past the anchor.
		original += activity.MinutesPerDay
		hi = r.anchor + activity.MinutesPerDay - minDur
	}
	newEnd := clamp(original+deltaMinutes, r.anchor+minDur, hi)
	if newEnd > activity.MinutesPerDay {
		newEnd -= activity.MinutesPerDay
	}
	if activity.WrapDuration(r.anchor, newEnd) < minDur {
		return false
	}
	return r.store.UpdateByID(r.activityID, Patch{EndMinutes: &newEnd})
}

// End finishes the gesture; all intermediate states already satisfied
// the duration invariant, so nothing is rolled back.
func (r *ResizeSession) End() {
	r.active = false
	r.activityID = 0
}
