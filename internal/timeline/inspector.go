package timeline

import (
	"strings"

	"github.com/dnanh/tripline/internal/activity"
)

// Form holds the editable fields of the floating inspector popup.
// Times are clock strings because that is the boundary format.
type Form struct {
	Title      string
	StartClock string
	EndClock   string
	Category   activity.Category
}

// Inspector keeps the popup form mirrored to the activity it is bound
// to. It is the single source of truth for an open editor form: while
// a drag or resize runs on the same activity, a store subscription
// refreshes the displayed times instead of the popup polling.
type Inspector struct {
	cfg     Config
	store   *Store
	history *History

	activityID  int64
	form        Form
	open        bool
	unsubscribe func()
}

// NewInspector creates a closed inspector bound to a store.
func NewInspector(cfg Config, store *Store, history *History) *Inspector {
	return &Inspector{cfg: cfg, store: store, history: history}
}

// IsOpen reports whether the inspector is bound to an activity.
func (in *Inspector) IsOpen() bool {
	return in.open
}

// ActivityID returns the bound activity, or 0 when closed.
func (in *Inspector) ActivityID() int64 {
	if !in.open {
		return 0
	}
	return in.activityID
}

// Open seeds the form from the activity's current fields and begins
// mirroring store updates for it.
func (in *Inspector) Open(id int64) (Form, error) {
	a := in.store.Get(id)
	if a == nil {
		return Form{}, activity.ErrUnknownActivity
	}

	in.Close()
	in.open = true
	in.activityID = id
	in.form = Form{
		Title:      a.Title,
		StartClock: a.StartClock(),
		EndClock:   a.EndClock(),
		Category:   a.Category,
	}
	in.unsubscribe = in.store.Subscribe(in.mirror)
	return in.form, nil
}

// mirror refreshes the displayed times when the bound activity is
// written by a live gesture. User-editable text is left alone.
func (in *Inspector) mirror(a *activity.Activity) {
	if !in.open || a.ID != in.activityID {
		return
	}
	in.form.StartClock = a.StartClock()
	in.form.EndClock = a.EndClock()
}

// Form returns the current form contents, including any times
// mirrored from a concurrent gesture.
func (in *Inspector) Form() Form {
	return in.form
}

// SetTitle updates the form's title field.
func (in *Inspector) SetTitle(title string) {
	in.form.Title = title
}

// SetStartClock updates the form's start time field.
func (in *Inspector) SetStartClock(clock string) {
	in.form.StartClock = clock
}

// SetEndClock updates the form's end time field.
func (in *Inspector) SetEndClock(clock string) {
	in.form.EndClock = clock
}

// SetCategory updates the form's category field.
func (in *Inspector) SetCategory(c activity.Category) {
	in.form.Category = c
}

// Commit validates the form and writes it through the store as one
// atomic patch, pushing a single history snapshot first. Validation
// errors are returned synchronously; nothing is written on failure.
// An end of "00:00" means midnight at the end of the day, and an end
// numerically before the start is read as crossing midnight.
func (in *Inspector) Commit(form Form) error {
	if !in.open {
		return ErrNoSession
	}
	if strings.TrimSpace(form.Title) == "" {
		return activity.ErrMissingTitle
	}

	start, err := activity.ParseClock(form.StartClock)
	if err != nil {
		return err
	}
	end, err := activity.ParseClock(form.EndClock)
	if err != nil {
		return err
	}
	if end == 0 {
		end = activity.MinutesPerDay
	}
	if end == start {
		return activity.ErrInvalidTimeRange
	}
	if activity.WrapDuration(start, end) < in.cfg.MinDurationMinutes {
		return activity.ErrDurationTooShort
	}

	cat := form.Category
	if !cat.Valid() {
		cat = activity.CategoryOther
	}

	in.history.Push(in.store.Snapshot())
	if !in.store.UpdateByID(in.activityID, Patch{
		Title:        &form.Title,
		StartMinutes: &start,
		EndMinutes:   &end,
		Category:     &cat,
	}) {
		// The activity vanished between Open and Commit; drop the
		// snapshot pushed for it.
		in.history.Pop()
		return activity.ErrUnknownActivity
	}
	in.form = form
	return nil
}

// Close unbinds the inspector and stops mirroring.
func (in *Inspector) Close() {
	if in.unsubscribe != nil {
		in.unsubscribe()
		in.unsubscribe = nil
	}
	in.open = false
	in.activityID = 0
}
