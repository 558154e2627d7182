package timeline

import (
	"github.com/dnanh/tripline/internal/activity"
)

// DuplicateOffsetMinutes is how far a duplicated activity is shifted
// from its source.
const DuplicateOffsetMinutes = 30

// Patch describes a partial update to an activity. Nil fields are
// left untouched.
type Patch struct {
	Title        *string
	Description  *string
	Location     *string
	Category     *activity.Category
	StartMinutes *int
	EndMinutes   *int
}

// Store is the in-memory ordered collection of one day's activities.
// All operations are synchronous; unknown IDs are reported as a
// boolean failure rather than an error, since an activity can
// legitimately disappear under a concurrent commit.
type Store struct {
	activities []*activity.Activity
	nextID     int64
	observers  map[int]func(*activity.Activity)
	observerID int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nextID:    1,
		observers: make(map[int]func(*activity.Activity)),
	}
}

// Reset replaces the store contents wholesale. Used on day switch and
// on undo. Does not notify observers; callers re-sync explicitly.
func (s *Store) Reset(acts []*activity.Activity) {
	s.activities = acts
	s.nextID = 1
	for _, a := range acts {
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
}

// Insert appends an activity, assigning a fresh ID when unset.
func (s *Store) Insert(a *activity.Activity) {
	if a.ID == 0 {
		a.ID = s.nextID
	}
	if a.ID >= s.nextID {
		s.nextID = a.ID + 1
	}
	s.activities = append(s.activities, a)
}

// Get returns the activity with the given ID, or nil.
func (s *Store) Get(id int64) *activity.Activity {
	for _, a := range s.activities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// UpdateByID applies a patch to the activity with the given ID.
// Returns false when no activity matches; callers must check it.
func (s *Store) UpdateByID(id int64, p Patch) bool {
	a := s.Get(id)
	if a == nil {
		return false
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.StartMinutes != nil {
		a.StartMinutes = *p.StartMinutes
	}
	if p.EndMinutes != nil {
		a.EndMinutes = *p.EndMinutes
	}
	s.notify(a)
	return true
}

// RemoveByID deletes the activity with the given ID, preserving the
// order of the rest. Returns false when no activity matches.
func (s *Store) RemoveByID(id int64) bool {
	for i, a := range s.activities {
		if a.ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return true
		}
	}
	return false
}

// Duplicate copies an activity under a fresh ID with its start
// shifted by offsetMinutes, duration preserved, appended at the end
// of the day (insertion order is deliberate, no re-sort). The shifted
// start is clamped into the day.
func (s *Store) Duplicate(id int64, offsetMinutes int) (*activity.Activity, bool) {
	src := s.Get(id)
	if src == nil {
		return nil, false
	}

	dup := src.Clone()
	dup.ID = 0
	dur := src.Duration()

	start := src.StartMinutes + offsetMinutes
	if start < 0 {
		start = 0
	}
	if start+dur > activity.MinutesPerDay {
		start = activity.MinutesPerDay - dur
	}
	dup.StartMinutes = start
	dup.EndMinutes = start + dur

	s.Insert(dup)
	return dup, true
}

// Activities returns the day's activities in insertion order. The
// slice is shared; callers must not reorder it.
func (s *Store) Activities() []*activity.Activity {
	return s.activities
}

// Row groups the activities drawn in one horizontal lane.
type Row struct {
	Location   string
	Activities []*activity.Activity
}

// ListByRow groups activities by primary location, rows ordered by
// first appearance.
func (s *Store) ListByRow() []Row {
	index := make(map[string]int)
	var rows []Row
	for _, a := range s.activities {
		loc := a.PrimaryLocation()
		i, ok := index[loc]
		if !ok {
			i = len(rows)
			index[loc] = i
			rows = append(rows, Row{Location: loc})
		}
		rows[i].Activities = append(rows[i].Activities, a)
	}
	return rows
}

// Snapshot returns an immutable deep copy of the current activity
// sequence, suitable for the undo history.
func (s *Store) Snapshot() []*activity.Activity {
	return activity.CloneActivities(s.activities)
}

// Restore replaces the store contents with a snapshot, deep-copying
// so the snapshot itself stays immutable.
func (s *Store) Restore(snapshot []*activity.Activity) {
	s.Reset(activity.CloneActivities(snapshot))
}

// Subscribe registers an observer called after every applied patch
// with the updated activity. Returns an unsubscribe func. This is how
// an open inspector stays mirrored to a live drag or resize.
func (s *Store) Subscribe(fn func(*activity.Activity)) func() {
	s.observerID++
	id := s.observerID
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *Store) notify(a *activity.Activity) {
	for _, fn := range s.observers {
		fn(a)
	}
}
