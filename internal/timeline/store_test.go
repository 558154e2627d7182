package timeline

import (
	"testing"

	"github.com/dnanh/tripline/internal/activity"
)

// mustActivity builds a valid activity for store tests.
func mustActivity(t *testing.T, title, location, start, end string) *activity.Activity {
	t.Helper()
	a, err := activity.New(title, "", location, "other", start, end)
	if err != nil {
		t.Fatalf("building activity %q: %v", title, err)
	}
	return a
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.Insert(mustActivity(t, "Pho breakfast", "Old Quarter, Hanoi", "07:00", "08:00"))
	s.Insert(mustActivity(t, "Temple of Literature", "Van Mieu, Hanoi", "09:00", "11:00"))
	s.Insert(mustActivity(t, "Walk the lake", "Old Quarter, Hanoi", "17:00", "18:00"))
	return s
}

func TestStore_InsertAssignsIDs(t *testing.T) {
	s := newTestStore(t)

	ids := make(map[int64]bool)
	for _, a := range s.Activities() {
		if a.ID == 0 {
			t.Error("Insert should assign a non-zero ID")
		}
		if ids[a.ID] {
			t.Errorf("duplicate ID %d", a.ID)
		}
		ids[a.ID] = true
	}
}

func TestStore_UpdateByID(t *testing.T) {
	s := newTestStore(t)
	id := s.Activities()[0].ID

	start := 480
	if !s.UpdateByID(id, Patch{StartMinutes: &start}) {
		t.Fatal("UpdateByID returned false for a known ID")
	}
	if s.Get(id).StartMinutes != 480 {
		t.Errorf("StartMinutes = %d, want 480", s.Get(id).StartMinutes)
	}

	if s.UpdateByID(9999, Patch{StartMinutes: &start}) {
		t.Error("UpdateByID should return false for an unknown ID")
	}
}

func TestStore_RemoveByID(t *testing.T) {
	s := newTestStore(t)
	id := s.Activities()[1].ID

	if !s.RemoveByID(id) {
		t.Fatal("RemoveByID returned false for a known ID")
	}
	if len(s.Activities()) != 2 {
		t.Errorf("len = %d, want 2", len(s.Activities()))
	}
	if s.Get(id) != nil {
		t.Error("removed activity still retrievable")
	}
	if s.RemoveByID(id) {
		t.Error("RemoveByID should return false the second time")
	}
}

func TestStore_Duplicate(t *testing.T) {
	s := newTestStore(t)
	src := s.Activities()[0]

	dup, ok := s.Duplicate(src.ID, DuplicateOffsetMinutes)
	if !ok {
		t.Fatal("Duplicate returned false")
	}
	if dup.ID == src.ID {
		t.Error("duplicate must get a fresh ID")
	}
	if dup.StartMinutes != src.StartMinutes+30 {
		t.Errorf("dup start = %d, want %d", dup.StartMinutes, src.StartMinutes+30)
	}
	if dup.Duration() != src.Duration() {
		t.Errorf("dup duration = %d, want %d", dup.Duration(), src.Duration())
	}
	// Appended at the end, not re-sorted.
	acts := s.Activities()
	if acts[len(acts)-1].ID != dup.ID {
		t.Error("duplicate should append at the end of the day")
	}

	if _, ok := s.Duplicate(9999, 30); ok {
		t.Error("Duplicate should fail for an unknown ID")
	}
}

func TestStore_DuplicateClampsIntoDay(t *testing.T) {
	s := NewStore()
	s.Insert(mustActivity(t, "Night market", "Hoi An", "23:00", "00:00"))

	dup, ok := s.Duplicate(s.Activities()[0].ID, 30)
	if !ok {
		t.Fatal("Duplicate returned false")
	}
	if dup.EndMinutes > activity.MinutesPerDay {
		t.Errorf("dup end = %d, exceeds day", dup.EndMinutes)
	}
	if dup.Duration() != 60 {
		t.Errorf("dup duration = %d, want 60", dup.Duration())
	}
}

func TestStore_ListByRow(t *testing.T) {
	s := newTestStore(t)

	rows := s.ListByRow()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Rows ordered by first appearance.
	if rows[0].Location != "Old Quarter" {
		t.Errorf("rows[0] = %q, want Old Quarter", rows[0].Location)
	}
	if rows[1].Location != "Van Mieu" {
		t.Errorf("rows[1] = %q, want Van Mieu", rows[1].Location)
	}
	if len(rows[0].Activities) != 2 {
		t.Errorf("Old Quarter activities = %d, want 2", len(rows[0].Activities))
	}
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()

	id := s.Activities()[0].ID
	start := 0
	s.UpdateByID(id, Patch{StartMinutes: &start})
	s.RemoveByID(s.Activities()[1].ID)

	s.Restore(snap)

	if len(s.Activities()) != 3 {
		t.Fatalf("len = %d, want 3", len(s.Activities()))
	}
	if s.Get(id).StartMinutes != 420 {
		t.Errorf("restored start = %d, want 420", s.Get(id).StartMinutes)
	}

	// The snapshot itself must stay immutable after restore.
	s.UpdateByID(id, Patch{StartMinutes: &start})
	if snap[0].StartMinutes != 420 {
		t.Error("snapshot mutated by a post-restore write")
	}
}

func TestStore_Subscribe(t *testing.T) {
	s := newTestStore(t)
	id := s.Activities()[0].ID

	var seen []int64
	unsub := s.Subscribe(func(a *activity.Activity) {
		seen = append(seen, a.ID)
	})

	start := 480
	s.UpdateByID(id, Patch{StartMinutes: &start})
	if len(seen) != 1 || seen[0] != id {
		t.Fatalf("observer saw %v, want [%d]", seen, id)
	}

	unsub()
	s.UpdateByID(id, Patch{StartMinutes: &start})
	if len(seen) != 1 {
		t.Error("observer called after unsubscribe")
	}
}
