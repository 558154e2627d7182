package timeline

import (
	"testing"

	"github.com/dnanh/tripline/internal/activity"
)

func slotActivity(t *testing.T, start, end string) *activity.Activity {
	t.Helper()
	a, err := activity.New("Block", "", "Somewhere, Hanoi", "other", start, end)
	if err != nil {
		t.Fatalf("activity.New failed: %v", err)
	}
	return a
}

func TestFreeSlots_EmptyDay(t *testing.T) {
	cfg := DefaultConfig()

	slots := FreeSlots(cfg, nil)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Start != cfg.WindowStartMinutes() || slots[0].End != cfg.WindowEndMinutes() {
		t.Errorf("slot = [%d, %d), want the whole window", slots[0].Start, slots[0].End)
	}
}

func TestFreeSlots_BetweenActivities(t *testing.T) {
	cfg := DefaultConfig()
	acts := []*activity.Activity{
		slotActivity(t, "07:30", "08:30"),
		slotActivity(t, "09:00", "11:00"),
	}

	slots := FreeSlots(cfg, acts)
	want := []Slot{
		{Start: 6 * 60, End: 7*60 + 30},
		{Start: 8*60 + 30, End: 9 * 60},
		{Start: 11 * 60, End: 24 * 60},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(want), slots)
	}
	for i, w := range want {
		if slots[i] != w {
			t.Errorf("slot %d = %+v, want %+v", i, slots[i], w)
		}
	}
}

func TestFreeSlots_MidnightEnd(t *testing.T) {
	cfg := DefaultConfig()
	acts := []*activity.Activity{
		slotActivity(t, "22:00", "00:00"),
	}

	slots := FreeSlots(cfg, acts)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].End != 22*60 {
		t.Errorf("slot end = %d, want the block's start", slots[0].End)
	}
}

func TestFreeSlots_OverlappingActivities(t *testing.T) {
	cfg := DefaultConfig()
	acts := []*activity.Activity{
		slotActivity(t, "08:00", "10:00"),
		slotActivity(t, "09:00", "09:30"),
	}

	slots := FreeSlots(cfg, acts)
	for _, s := range slots {
		if s.Start >= 8*60 && s.Start < 10*60 {
			t.Errorf("slot %+v starts inside the occupied stretch", s)
		}
	}
}

func TestFirstFreeSlot(t *testing.T) {
	cfg := DefaultConfig()
	acts := []*activity.Activity{
		slotActivity(t, "06:00", "08:30"),
		slotActivity(t, "09:00", "11:00"),
	}

	// The 08:30-09:00 gap fits 30 minutes but not an hour.
	start, ok := FirstFreeSlot(cfg, acts, 30)
	if !ok || start != 8*60+30 {
		t.Errorf("FirstFreeSlot(30) = %d, %v, want 510, true", start, ok)
	}

	start, ok = FirstFreeSlot(cfg, acts, 60)
	if !ok || start != 11*60 {
		t.Errorf("FirstFreeSlot(60) = %d, %v, want 660, true", start, ok)
	}
}

func TestFirstFreeSlot_FullDay(t *testing.T) {
	cfg := DefaultConfig()
	acts := []*activity.Activity{
		slotActivity(t, "06:00", "00:00"),
	}

	if _, ok := FirstFreeSlot(cfg, acts, 15); ok {
		t.Error("expected no slot on a fully booked day")
	}
}
