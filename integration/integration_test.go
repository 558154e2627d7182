package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/db"
	"github.com/dnanh/tripline/internal/timeline"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// mustParseDate parses a date string or fails the test.
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}

// createActivity builds and stores one activity on the given day.
func createActivity(t *testing.T, repo *db.SQLite, date time.Time, title, location, category, start, end string) *activity.Activity {
	t.Helper()
	act, err := activity.New(title, "", location, category, start, end)
	if err != nil {
		t.Fatalf("failed to build activity: %v", err)
	}
	if err := repo.CreateActivity(context.Background(), date, act); err != nil {
		t.Fatalf("failed to insert activity: %v", err)
	}
	return act
}

// newPersistingEditor wires an editor whose committed changes are
// written straight back to the repository, the way the TUI host does.
func newPersistingEditor(t *testing.T, repo *db.SQLite, date time.Time) *timeline.Editor {
	t.Helper()
	return timeline.NewEditor(timeline.DefaultConfig(), func(_ int, acts []*activity.Activity) {
		if err := repo.ReplaceDay(context.Background(), date, activity.CloneActivities(acts)); err != nil {
			t.Fatalf("persisting day: %v", err)
		}
	})
}

func TestCreateAndReloadDay(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	date := mustParseDate(t, "2025-03-10")

	createActivity(t, repo, date, "Pho breakfast", "Old Quarter, Hanoi", "breakfast", "07:30", "08:30")
	createActivity(t, repo, date, "Temple of Literature", "Van Mieu, Hanoi", "sightseeing", "09:00", "11:00")

	acts, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("ListActivitiesByDay failed: %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(acts))
	}
	if acts[0].Title != "Pho breakfast" {
		t.Errorf("insertion order lost: first activity is %q", acts[0].Title)
	}
	if acts[0].ID == 0 {
		t.Error("expected the database to assign IDs")
	}

	days, err := repo.ListDays(ctx)
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 1 || !days[0].Equal(date) {
		t.Errorf("days = %v, want just %v", days, date)
	}
}

func TestEditorDragPersistsThroughRepository(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	date := mustParseDate(t, "2025-03-10")

	createActivity(t, repo, date, "Egg coffee", "Old Quarter, Hanoi", "coffee", "10:00", "10:30")

	stored, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("ListActivitiesByDay failed: %v", err)
	}

	editor := newPersistingEditor(t, repo, date)
	editor.LoadActivities(0, stored)
	id := editor.Activities()[0].ID

	// One snap step right at the default 80 px/hour is 20 px.
	if err := editor.BeginDrag(id, false); err != nil {
		t.Fatalf("BeginDrag failed: %v", err)
	}
	editor.DragTick(20)
	editor.EndDrag()

	reloaded, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded) != 1 {
		t.Fatalf("expected 1 activity after drag, got %d", len(reloaded))
	}
	if got := reloaded[0].StartClock(); got != "10:15" {
		t.Errorf("persisted start = %s, want 10:15", got)
	}
	if got := reloaded[0].Duration(); got != 30 {
		t.Errorf("persisted duration = %d, want unchanged 30", got)
	}
}

func TestEditorUndoRestoresPersistedState(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	date := mustParseDate(t, "2025-03-10")

	createActivity(t, repo, date, "Night market", "Old Quarter, Hanoi", "shopping", "21:00", "23:00")

	stored, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("ListActivitiesByDay failed: %v", err)
	}

	editor := newPersistingEditor(t, repo, date)
	editor.LoadActivities(0, stored)
	id := editor.Activities()[0].ID

	if !editor.Delete(id) {
		t.Fatal("Delete returned false")
	}

	afterDelete, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(afterDelete) != 0 {
		t.Fatalf("expected empty day after delete, got %d activities", len(afterDelete))
	}

	if !editor.Undo() {
		t.Fatal("Undo returned false")
	}

	restored, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(restored) != 1 {
		t.Fatalf("expected the activity back after undo, got %d", len(restored))
	}
	if restored[0].Title != "Night market" {
		t.Errorf("restored title = %q", restored[0].Title)
	}
}

func TestInspectorCommitRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	date := mustParseDate(t, "2025-03-11")

	createActivity(t, repo, date, "Dinner", "Dong Xuan, Hanoi", "dinner", "19:00", "20:00")

	stored, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("ListActivitiesByDay failed: %v", err)
	}

	editor := newPersistingEditor(t, repo, date)
	editor.LoadActivities(0, stored)
	id := editor.Activities()[0].ID

	form, err := editor.OpenInspector(id)
	if err != nil {
		t.Fatalf("OpenInspector failed: %v", err)
	}
	form.Title = "Bia hoi dinner"
	form.EndClock = "21:00"
	if err := editor.CommitInspector(form); err != nil {
		t.Fatalf("CommitInspector failed: %v", err)
	}

	reloaded, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded[0].Title != "Bia hoi dinner" {
		t.Errorf("title = %q, want committed value", reloaded[0].Title)
	}
	if got := reloaded[0].EndClock(); got != "21:00" {
		t.Errorf("end = %s, want 21:00", got)
	}
}

func TestBatchUpdateActivityTimes(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	date := mustParseDate(t, "2025-03-12")

	first := createActivity(t, repo, date, "Museum", "Ba Dinh, Hanoi", "sightseeing", "09:00", "11:00")
	second := createActivity(t, repo, date, "Lunch", "Ba Dinh, Hanoi", "lunch", "12:00", "13:00")

	updates := []activity.TimeUpdate{
		{ID: first.ID, NewStart: 10 * 60, NewEnd: 12 * 60},
		{ID: second.ID, NewStart: 12*60 + 30, NewEnd: 13*60 + 30},
	}
	if err := repo.BatchUpdateActivityTimes(ctx, updates); err != nil {
		t.Fatalf("BatchUpdateActivityTimes failed: %v", err)
	}

	reloaded, err := repo.ListActivitiesByDay(ctx, date)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := reloaded[0].StartClock(); got != "10:00" {
		t.Errorf("first start = %s, want 10:00", got)
	}
	if got := reloaded[1].EndClock(); got != "13:30" {
		t.Errorf("second end = %s, want 13:30", got)
	}
}

func TestGetActivityUnknownID(t *testing.T) {
	repo := openRepo(t)

	_, err := repo.GetActivity(context.Background(), 9999)
	if !errors.Is(err, activity.ErrUnknownActivity) {
		t.Errorf("err = %v, want ErrUnknownActivity", err)
	}
}
