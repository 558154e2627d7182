package timeline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dnanh/tripline/internal/activity"
)

type changeLog struct {
	count    int
	dayIndex int
	last     []*activity.Activity
}

func (c *changeLog) fn(dayIndex int, acts []*activity.Activity) {
	c.count++
	c.dayIndex = dayIndex
	c.last = acts
}

func editorFixture(t *testing.T) (*Editor, *changeLog) {
	t.Helper()
	log := &changeLog{}
	e := NewEditor(DefaultConfig(), log.fn)
	err := e.LoadDay(2, []Record{
		{Title: "Pho breakfast", Location: "Old Quarter, Hanoi", Category: "breakfast", Start: "07:00", End: "08:00"},
		{Title: "Citadel tour", Location: "Ba Dinh, Hanoi", Category: "sightseeing", Start: "09:00", End: "11:30"},
	})
	if err != nil {
		t.Fatalf("LoadDay: %v", err)
	}
	return e, log
}

func snapshotOf(e *Editor) []*activity.Activity {
	return activity.CloneActivities(e.Activities())
}

func sameActivities(a, b []*activity.Activity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := *a[i], *b[i]
		if !reflect.DeepEqual(x, y) {
			return false
		}
	}
	return true
}

func TestEditor_LoadDayFailsFast(t *testing.T) {
	e, _ := editorFixture(t)
	before := snapshotOf(e)

	err := e.LoadDay(3, []Record{
		{Title: "ok", Start: "08:00", End: "09:00"},
		{Title: "broken", Start: "8 o'clock", End: "09:00"},
	})
	if !errors.Is(err, activity.ErrInvalidClockFormat) {
		t.Fatalf("LoadDay error = %v, want ErrInvalidClockFormat", err)
	}
	// The working day is untouched on failure.
	if !sameActivities(e.Activities(), before) {
		t.Error("failed LoadDay must not replace the day")
	}
	if e.DayIndex() != 2 {
		t.Errorf("dayIndex = %d, want 2", e.DayIndex())
	}
}

func TestEditor_EmitsOnEveryCommittedMutation(t *testing.T) {
	e, log := editorFixture(t)
	id := e.Activities()[0].ID

	e.BeginDrag(id, false)
	e.DragTick(40)
	e.DragTick(80)
	e.EndDrag()

	if log.count != 2 {
		t.Errorf("changes after 2 ticks = %d, want 2", log.count)
	}
	if log.dayIndex != 2 {
		t.Errorf("dayIndex = %d, want 2", log.dayIndex)
	}

	e.Delete(id)
	if log.count != 3 {
		t.Errorf("changes after delete = %d, want 3", log.count)
	}
	if len(log.last) != 1 {
		t.Errorf("reported list length = %d, want 1", len(log.last))
	}
}

// Undo is exact: push, mutate arbitrarily, pop restores a deep-equal
// list.
func TestEditor_UndoExact(t *testing.T) {
	e, _ := editorFixture(t)
	before := snapshotOf(e)
	id := e.Activities()[0].ID

	e.BeginDrag(id, false)
	e.DragTick(160)
	e.EndDrag()
	e.BeginResize(e.Activities()[1].ID, EdgeEnd)
	e.ResizeTick(120)
	e.EndResize()
	e.Delete(id)

	// Three user actions, three undo steps, restoring in reverse.
	for i := 0; i < 3; i++ {
		if !e.Undo() {
			t.Fatalf("Undo %d returned false", i)
		}
	}
	if !sameActivities(e.Activities(), before) {
		t.Error("undo chain did not restore the original list")
	}
	if e.Undo() {
		t.Error("Undo on empty history should return false")
	}
}

// The very first mutation on an empty day pushes an empty snapshot;
// undo must consume it and empty the day again.
func TestEditor_UndoFirstAddOnEmptyDay(t *testing.T) {
	log := &changeLog{}
	e := NewEditor(DefaultConfig(), log.fn)

	_, err := e.Add(Record{Title: "Hotel check-in", Location: "Da Nang", Category: "hotel", Start: "14:00", End: "15:00"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !e.Undo() {
		t.Fatal("Undo after the first add returned false")
	}
	if got := len(e.Activities()); got != 0 {
		t.Errorf("activities after undo = %d, want 0", got)
	}
	if e.CanUndo() {
		t.Error("history should be empty after the undo")
	}
}

// Undo never crosses a day switch: loading drops the stack.
func TestEditor_LoadClearsHistory(t *testing.T) {
	e, _ := editorFixture(t)
	e.Delete(e.Activities()[0].ID)
	if !e.CanUndo() {
		t.Fatal("expected an undo step after delete")
	}

	e.LoadActivities(5, nil)
	if e.CanUndo() {
		t.Error("history should be cleared by LoadActivities")
	}
	if e.Undo() {
		t.Error("Undo after a load should return false")
	}
}

func TestEditor_UndoRestoresDeletedMidDrag(t *testing.T) {
	e, _ := editorFixture(t)
	id := e.Activities()[0].ID

	e.BeginDrag(id, false)
	e.DragTick(40)

	// The activity vanishes under the live gesture, e.g. removed by a
	// concurrent commit. Only the pre-gesture snapshot exists.
	if !e.Delete(id) {
		t.Fatal("Delete returned false")
	}

	// Further ticks are boolean no-ops, not errors.
	e.DragTick(80)
	e.EndDrag()

	// Undo of the delete brings the activity back.
	if !e.Undo() {
		t.Fatal("Undo returned false")
	}
	if e.Get(id) == nil {
		t.Error("undo did not restore the deleted activity")
	}
}

func TestEditor_SecondGestureRejected(t *testing.T) {
	e, _ := editorFixture(t)
	ids := []int64{e.Activities()[0].ID, e.Activities()[1].ID}

	if err := e.BeginDrag(ids[0], false); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := e.BeginResize(ids[1], EdgeEnd); !errors.Is(err, ErrSessionActive) {
		t.Errorf("BeginResize during drag error = %v, want ErrSessionActive", err)
	}
	e.EndDrag()
	if err := e.BeginResize(ids[1], EdgeEnd); err != nil {
		t.Errorf("BeginResize after EndDrag: %v", err)
	}
}

func TestEditor_DuplicateFreshID(t *testing.T) {
	e, log := editorFixture(t)
	src := e.Activities()[0]

	dup, ok := e.Duplicate(src.ID)
	if !ok {
		t.Fatal("Duplicate returned false")
	}
	seen := make(map[int64]bool)
	for _, a := range e.Activities() {
		if seen[a.ID] {
			t.Fatalf("duplicate ID %d in day", a.ID)
		}
		seen[a.ID] = true
	}
	if dup.Duration() != src.Duration() {
		t.Errorf("duration = %d, want %d", dup.Duration(), src.Duration())
	}
	if dup.StartMinutes != src.StartMinutes+DuplicateOffsetMinutes {
		t.Errorf("start = %d, want %d", dup.StartMinutes, src.StartMinutes+DuplicateOffsetMinutes)
	}
	if log.count != 1 {
		t.Errorf("changes = %d, want 1", log.count)
	}
}

func TestEditor_CopyModifierDrag(t *testing.T) {
	e, log := editorFixture(t)
	id := e.Activities()[0].ID

	if err := e.BeginDrag(id, true); err != nil {
		t.Fatalf("BeginDrag copy: %v", err)
	}
	if len(e.Activities()) != 3 {
		t.Errorf("len = %d, want 3", len(e.Activities()))
	}
	if log.count != 1 {
		t.Errorf("changes = %d, want 1", log.count)
	}
	// The session ended with the duplicate; a new gesture may begin.
	if err := e.BeginDrag(id, false); err != nil {
		t.Errorf("BeginDrag after copy: %v", err)
	}
}

func TestEditor_InspectorCommitEmits(t *testing.T) {
	e, log := editorFixture(t)
	id := e.Activities()[0].ID

	form, err := e.OpenInspector(id)
	if err != nil {
		t.Fatalf("OpenInspector: %v", err)
	}
	form.Title = "Bun cha instead"
	if err := e.CommitInspector(form); err != nil {
		t.Fatalf("CommitInspector: %v", err)
	}
	if log.count != 1 {
		t.Errorf("changes = %d, want 1", log.count)
	}
	if e.Get(id).Title != "Bun cha instead" {
		t.Errorf("title = %q", e.Get(id).Title)
	}

	// A failed commit emits nothing.
	form.StartClock = "nope"
	if err := e.CommitInspector(form); err == nil {
		t.Fatal("expected validation error")
	}
	if log.count != 1 {
		t.Errorf("changes after failed commit = %d, want 1", log.count)
	}
}

func TestEditor_DeleteClosesBoundInspector(t *testing.T) {
	e, _ := editorFixture(t)
	id := e.Activities()[0].ID

	e.OpenInspector(id)
	e.Delete(id)

	if e.Inspector().IsOpen() {
		t.Error("inspector should close when its activity is deleted")
	}
}

func TestEditor_UndoAbandonsLiveGesture(t *testing.T) {
	e, _ := editorFixture(t)
	id := e.Activities()[0].ID
	before := snapshotOf(e)

	e.BeginDrag(id, false)
	e.DragTick(160)

	// Undo mid-gesture: the pre-gesture snapshot is restored and the
	// session is discarded without compensating writes.
	if !e.Undo() {
		t.Fatal("Undo returned false")
	}
	if !sameActivities(e.Activities(), before) {
		t.Error("undo did not restore the pre-gesture state")
	}
	if e.DragSession().Active() {
		t.Error("live gesture should be abandoned by undo")
	}
}
