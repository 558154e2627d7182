package timeline

import (
	"github.com/dnanh/tripline/internal/activity"
)

// Record is the boundary format for host-supplied activities: times
// travel as clock strings, internal computation uses minutes.
type Record struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Category    string
	Start       string
	End         string
}

// RecordFromActivity converts a domain activity back to the boundary
// format.
func RecordFromActivity(a *activity.Activity) Record {
	return Record{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Category:    string(a.Category),
		Start:       a.StartClock(),
		End:         a.EndClock(),
	}
}

// ChangedFunc receives the day's full ordered activity list after
// every committed mutation: drag tick, resize tick, delete,
// duplicate, inspector commit, undo. The host owns any downstream
// persistence.
type ChangedFunc func(dayIndex int, acts []*activity.Activity)

// Editor owns one day-view's store, history, gesture sessions, and
// inspector, and is the single entry point for the renderer. At most
// one gesture is live at a time; beginning a second is rejected.
type Editor struct {
	cfg       Config
	dayIndex  int
	store     *Store
	history   *History
	drag      *DragSession
	resize    *ResizeSession
	inspector *Inspector
	onChanged ChangedFunc
}

// NewEditor creates an editor with an empty day.
func NewEditor(cfg Config, onChanged ChangedFunc) *Editor {
	store := NewStore()
	history := NewHistory()
	return &Editor{
		cfg:       cfg,
		store:     store,
		history:   history,
		drag:      NewDragSession(cfg, store, history),
		resize:    NewResizeSession(cfg, store, history),
		inspector: NewInspector(cfg, store, history),
		onChanged: onChanged,
	}
}

// Config returns the timeline configuration.
func (e *Editor) Config() Config {
	return e.cfg
}

// DayIndex returns the currently loaded day.
func (e *Editor) DayIndex() int {
	return e.dayIndex
}

// LoadDay parses host-supplied records and replaces the working day.
// An unparseable time fails fast with ErrInvalidClockFormat before
// anything enters the store; nothing is replaced on failure. History
// is cleared: undo never crosses a day switch.
func (e *Editor) LoadDay(dayIndex int, records []Record) error {
	acts := make([]*activity.Activity, 0, len(records))
	for _, rec := range records {
		a, err := activity.New(rec.Title, rec.Description, rec.Location, rec.Category, rec.Start, rec.End)
		if err != nil {
			return err
		}
		a.ID = rec.ID
		acts = append(acts, a)
	}

	e.abortGestures()
	e.inspector.Close()
	e.dayIndex = dayIndex
	e.store.Reset(nil)
	for _, a := range acts {
		e.store.Insert(a)
	}
	e.history.Clear()
	return nil
}

// LoadActivities replaces the working day with already-validated
// domain activities, e.g. straight from the repository.
func (e *Editor) LoadActivities(dayIndex int, acts []*activity.Activity) {
	e.abortGestures()
	e.inspector.Close()
	e.dayIndex = dayIndex
	e.store.Reset(activity.CloneActivities(acts))
	e.history.Clear()
}

// Activities returns the day's activities in insertion order.
func (e *Editor) Activities() []*activity.Activity {
	return e.store.Activities()
}

// Rows returns the activities grouped into location rows.
func (e *Editor) Rows() []Row {
	return e.store.ListByRow()
}

// Get returns the activity with the given ID, or nil.
func (e *Editor) Get(id int64) *activity.Activity {
	return e.store.Get(id)
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// gestureActive reports whether any session currently holds the
// single live-gesture slot.
func (e *Editor) gestureActive() bool {
	return e.drag.Active() || e.resize.Active()
}

// abortGestures discards any live session without further writes.
// Safe because every applied tick already satisfied the invariants.
func (e *Editor) abortGestures() {
	e.drag.End()
	e.resize.End()
}

// BeginDrag starts a move gesture. With the copy modifier set the
// gesture degenerates into a duplicate and ends immediately.
func (e *Editor) BeginDrag(id int64, copyModifier bool) error {
	if e.gestureActive() {
		return ErrSessionActive
	}
	_, err := e.drag.Begin(id, copyModifier)
	if err != nil {
		return err
	}
	if copyModifier {
		e.emit()
	}
	return nil
}

// DragTick applies one pointer-move tick to the live move gesture.
func (e *Editor) DragTick(deltaPixels int) {
	if e.drag.Update(deltaPixels) {
		e.emit()
	}
}

// EndDrag finishes the move gesture.
func (e *Editor) EndDrag() {
	e.drag.End()
}

// BeginResize starts an edge-resize gesture.
func (e *Editor) BeginResize(id int64, edge Edge) error {
	if e.gestureActive() {
		return ErrSessionActive
	}
	_, err := e.resize.Begin(id, edge)
	return err
}

// ResizeTick applies one pointer-move tick to the live resize.
func (e *Editor) ResizeTick(deltaPixels int) {
	if e.resize.Update(deltaPixels) {
		e.emit()
	}
}

// EndResize finishes the resize gesture.
func (e *Editor) EndResize() {
	e.resize.End()
}

// DragSession exposes the move controller for renderer state checks.
func (e *Editor) DragSession() *DragSession {
	return e.drag
}

// ResizeSession exposes the resize controller for renderer state
// checks.
func (e *Editor) ResizeSession() *ResizeSession {
	return e.resize
}

// Inspector exposes the popup form controller.
func (e *Editor) Inspector() *Inspector {
	return e.inspector
}

// OpenInspector binds the popup form to an activity.
func (e *Editor) OpenInspector(id int64) (Form, error) {
	return e.inspector.Open(id)
}

// CommitInspector validates and applies the popup form.
func (e *Editor) CommitInspector(form Form) error {
	if err := e.inspector.Commit(form); err != nil {
		return err
	}
	e.emit()
	return nil
}

// Add validates and appends a new activity from boundary fields.
// Pushes one history snapshot.
func (e *Editor) Add(rec Record) (*activity.Activity, error) {
	a, err := activity.New(rec.Title, rec.Description, rec.Location, rec.Category, rec.Start, rec.End)
	if err != nil {
		return nil, err
	}
	e.history.Push(e.store.Snapshot())
	e.store.Insert(a)
	e.emit()
	return a, nil
}

// Delete removes an activity. Returns false when the ID is unknown,
// which can happen if another commit already removed it; no history
// entry is pushed in that case.
func (e *Editor) Delete(id int64) bool {
	if e.store.Get(id) == nil {
		return false
	}
	e.history.Push(e.store.Snapshot())
	if e.inspector.ActivityID() == id {
		e.inspector.Close()
	}
	e.store.RemoveByID(id)
	e.emit()
	return true
}

// Duplicate copies an activity with the configured start offset.
func (e *Editor) Duplicate(id int64) (*activity.Activity, bool) {
	if e.store.Get(id) == nil {
		return nil, false
	}
	e.history.Push(e.store.Snapshot())
	dup, _ := e.store.Duplicate(id, DuplicateOffsetMinutes)
	e.emit()
	return dup, true
}

// Undo restores the most recent snapshot wholesale and reports it to
// the host. A no-op returning false when the stack is empty. Any live
// gesture is abandoned first: its pre-gesture snapshot is exactly
// what gets restored.
func (e *Editor) Undo() bool {
	snapshot, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.abortGestures()
	e.store.Restore(snapshot)
	e.emit()
	return true
}

func (e *Editor) emit() {
	if e.onChanged != nil {
		e.onChanged(e.dayIndex, e.store.Activities())
	}
}
