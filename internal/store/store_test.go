package store

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	if err := s.SeedDefaults(); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	return s
}

// addActivity logs an activity of the given length starting at 09:00
// UTC on date.
func addActivity(t *testing.T, s *Store, date, categoryID string, minutes int, energy EnergyLevel) *Activity {
	t.Helper()
	start, err := time.Parse("2006-01-02 15:04", date+" 09:00")
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	a, err := s.AddActivity(ActivityParams{
		Name:       "test activity",
		CategoryID: categoryID,
		Date:       date,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(minutes) * time.Minute),
		Energy:     energy,
	})
	if err != nil {
		t.Fatalf("add activity: %v", err)
	}
	return a
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/momentum.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestNotInitialized(t *testing.T) {
	var s Store
	if _, err := s.Categories(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := s.SeedDefaults(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := s.ExportAll(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Seeding
// ============================================================

func TestSeedDefaults(t *testing.T) {
	s := newTestStore(t)
	if err := s.SeedDefaults(); err != nil {
		t.Fatal(err)
	}
	categories, err := s.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) == 0 {
		t.Fatal("expected seeded categories")
	}
	bonuses, err := s.VitalityBonuses()
	if err != nil {
		t.Fatal(err)
	}
	if len(bonuses) == 0 {
		t.Fatal("expected seeded bonuses")
	}

	var focus, distraction bool
	for _, c := range categories {
		switch c.Role {
		case RoleFocus:
			focus = true
		case RoleDistraction:
			distraction = true
		}
	}
	if !focus || !distraction {
		t.Fatal("seed must include a focus and a distraction category")
	}
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	s := seededStore(t)
	before, _ := s.Categories()
	beforeBonuses, _ := s.VitalityBonuses()

	if err := s.SeedDefaults(); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	after, _ := s.Categories()
	afterBonuses, _ := s.VitalityBonuses()
	if len(after) != len(before) {
		t.Fatalf("seeding duplicated categories: %d -> %d", len(before), len(after))
	}
	if len(afterBonuses) != len(beforeBonuses) {
		t.Fatalf("seeding duplicated bonuses: %d -> %d", len(beforeBonuses), len(afterBonuses))
	}
}

// ============================================================
// Categories
// ============================================================

func TestAddAndGetCategory(t *testing.T) {
	s := newTestStore(t)
	c, err := s.AddCategory("Writing", RoleFocus, 2.5, "#FFF", "long-form writing")
	if err != nil {
		t.Fatal(err)
	}
	if c.ID == "" {
		t.Fatal("expected generated id")
	}
	fetched, err := s.GetCategory(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fetched.Name != "Writing" || fetched.Role != RoleFocus || fetched.Points != 2.5 {
		t.Fatalf("unexpected category: %+v", fetched)
	}
}

func TestAddCategoryBadRole(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddCategory("Oops", CategoryRole("mystery"), 1, "#000", "")
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestInsertCategoryDuplicateID(t *testing.T) {
	s := seededStore(t)
	err := s.insertCategory(&Category{ID: "deep-work", Name: "Other", Role: RoleNeutral})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateCategory("ghost", "X", RoleNeutral, 1, "#000", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateCategoryKeepsRoleDispatch(t *testing.T) {
	s := seededStore(t)
	// Renaming must not change how the category scores.
	if err := s.UpdateCategory("deep-work", "Flow State", RoleFocus, 3, "#7AA2F7", ""); err != nil {
		t.Fatal(err)
	}
	c, _ := s.GetCategory("deep-work")
	if c.Name != "Flow State" || c.Role != RoleFocus {
		t.Fatalf("unexpected category after rename: %+v", c)
	}
}

func TestDeleteCategoryReferenced(t *testing.T) {
	s := seededStore(t)
	addActivity(t, s, "2026-03-02", "deep-work", 60, EnergyHigh)
	err := s.DeleteCategory("deep-work")
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for referenced category, got %v", err)
	}
}

func TestDeleteCategoryUnreferenced(t *testing.T) {
	s := seededStore(t)
	if err := s.DeleteCategory("chores"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetCategory("chores"); err == nil {
		t.Fatal("category should be gone")
	}
}

// ============================================================
// Activities
// ============================================================

func TestAddActivityDerivesFields(t *testing.T) {
	s := seededStore(t)
	a := addActivity(t, s, "2026-03-02", "deep-work", 120, EnergyHigh)
	if a.DurationMin != 120 {
		t.Fatalf("expected 120 minutes, got %d", a.DurationMin)
	}
	// deep-work is 3 points/hour
	if a.Points != 6 {
		t.Fatalf("expected 6 points, got %f", a.Points)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestAddActivityInvalidSpan(t *testing.T) {
	s := seededStore(t)
	now := time.Now().UTC()
	_, err := s.AddActivity(ActivityParams{
		Name: "backwards", CategoryID: "deep-work", Date: "2026-03-02",
		StartTime: now, EndTime: now.Add(-time.Hour), Energy: EnergyLow,
	})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestAddActivityUnknownCategory(t *testing.T) {
	s := seededStore(t)
	now := time.Now().UTC()
	_, err := s.AddActivity(ActivityParams{
		Name: "orphan", CategoryID: "ghost", Date: "2026-03-02",
		StartTime: now, EndTime: now.Add(time.Hour), Energy: EnergyLow,
	})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestAddActivityBadDate(t *testing.T) {
	s := seededStore(t)
	now := time.Now().UTC()
	_, err := s.AddActivity(ActivityParams{
		Name: "bad", CategoryID: "deep-work", Date: "03/02/2026",
		StartTime: now, EndTime: now.Add(time.Hour), Energy: EnergyLow,
	})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestUpdateActivityRecomputes(t *testing.T) {
	s := seededStore(t)
	a := addActivity(t, s, "2026-03-02", "deep-work", 60, EnergyHigh)

	updated, err := s.UpdateActivity(a.ID, ActivityParams{
		Name: "retimed", CategoryID: "distraction", Date: a.Date,
		StartTime: a.StartTime, EndTime: a.StartTime.Add(30 * time.Minute),
		Energy: EnergyLow,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.DurationMin != 30 {
		t.Fatalf("expected 30 minutes, got %d", updated.DurationMin)
	}
	// distraction is -1 point/hour
	if updated.Points != -0.5 {
		t.Fatalf("expected -0.5 points, got %f", updated.Points)
	}
	if !updated.CreatedAt.Equal(a.CreatedAt) {
		t.Fatal("update must not change CreatedAt")
	}
}

func TestUpdateActivityNotFound(t *testing.T) {
	s := seededStore(t)
	now := time.Now().UTC()
	_, err := s.UpdateActivity("ghost", ActivityParams{
		Name: "x", CategoryID: "deep-work", Date: "2026-03-02",
		StartTime: now, EndTime: now.Add(time.Hour), Energy: EnergyLow,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteActivityAbsentIsNoop(t *testing.T) {
	s := seededStore(t)
	if err := s.DeleteActivity("ghost"); err != nil {
		t.Fatalf("delete of absent id should be a no-op, got %v", err)
	}
}

func TestActivitiesByDate(t *testing.T) {
	s := seededStore(t)
	addActivity(t, s, "2026-03-02", "deep-work", 60, EnergyHigh)
	addActivity(t, s, "2026-03-02", "distraction", 30, EnergyLow)
	addActivity(t, s, "2026-03-03", "deep-work", 45, EnergyMedium)

	day, err := s.ActivitiesByDate("2026-03-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(day) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(day))
	}

	empty, err := s.ActivitiesByDate("2026-03-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no activities, got %d", len(empty))
	}
}

func TestActivitiesInRangeInclusive(t *testing.T) {
	s := seededStore(t)
	addActivity(t, s, "2026-02-28", "deep-work", 60, EnergyHigh)
	addActivity(t, s, "2026-03-01", "deep-work", 60, EnergyHigh)
	addActivity(t, s, "2026-03-05", "deep-work", 60, EnergyHigh)
	addActivity(t, s, "2026-03-06", "deep-work", 60, EnergyHigh)

	got, err := s.ActivitiesInRange("2026-03-01", "2026-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both boundary dates included, got %d records", len(got))
	}
	if got[0].Date != "2026-03-01" || got[1].Date != "2026-03-05" {
		t.Fatalf("unexpected dates: %s, %s", got[0].Date, got[1].Date)
	}
}

// ============================================================
// Vitality entries
// ============================================================

func TestUpsertVitalityEntry(t *testing.T) {
	s := seededStore(t)
	e, err := s.UpsertVitalityEntry("2026-03-02", "exercise", true)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Completed {
		t.Fatal("entry should be completed")
	}

	// Second write for the same (date, bonus) replaces, not duplicates.
	e2, err := s.UpsertVitalityEntry("2026-03-02", "exercise", false)
	if err != nil {
		t.Fatal(err)
	}
	if e2.Completed {
		t.Fatal("entry should be cleared")
	}
	if e2.ID != e.ID {
		t.Fatalf("upsert must keep the original id: %s != %s", e2.ID, e.ID)
	}

	entries, _ := s.VitalityEntriesByDate("2026-03-02")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestUpsertVitalityEntryUnknownBonus(t *testing.T) {
	s := seededStore(t)
	_, err := s.UpsertVitalityEntry("2026-03-02", "ghost", true)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestVitalityEntriesInRange(t *testing.T) {
	s := seededStore(t)
	s.UpsertVitalityEntry("2026-03-01", "sleep", true)
	s.UpsertVitalityEntry("2026-03-03", "sleep", true)
	s.UpsertVitalityEntry("2026-03-07", "sleep", true)

	got, err := s.VitalityEntriesInRange("2026-03-01", "2026-03-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddAndToggleTask(t *testing.T) {
	s := newTestStore(t)
	task, err := s.AddTask(TaskParams{Title: "Write report", Priority: PriorityHigh, Scope: ScopeToday})
	if err != nil {
		t.Fatal(err)
	}
	if task.Completed {
		t.Fatal("new task should not be completed")
	}
	if task.CreatedDate == "" {
		t.Fatal("CreatedDate should be set")
	}

	toggled, err := s.ToggleTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.Completed {
		t.Fatal("task should be completed after toggle")
	}
	reopened, _ := s.ToggleTask(task.ID)
	if reopened.Completed {
		t.Fatal("task should be reopened after second toggle")
	}
}

func TestAddTaskInvalid(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddTask(TaskParams{Title: "", Priority: PriorityLow, Scope: ScopeInbox}); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for empty title, got %v", err)
	}
	if _, err := s.AddTask(TaskParams{Title: "x", Priority: "urgent", Scope: ScopeInbox}); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for bad priority, got %v", err)
	}
	bad := "someday"
	if _, err := s.AddTask(TaskParams{Title: "x", Priority: PriorityLow, Scope: ScopeInbox, DueDate: &bad}); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for bad due date, got %v", err)
	}
}

func TestLogTaskTime(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddTask(TaskParams{Title: "Deep dive", Priority: PriorityMedium, Scope: ScopeWeek})
	s.LogTaskTime(task.ID, 25)
	updated, err := s.LogTaskTime(task.ID, 35)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TimeLoggedMin != 60 {
		t.Fatalf("expected 60 minutes logged, got %d", updated.TimeLoggedMin)
	}
}

func TestTasksByScopeAndDate(t *testing.T) {
	s := newTestStore(t)
	due := "2026-03-05"
	s.AddTask(TaskParams{Title: "A", Priority: PriorityLow, Scope: ScopeToday, DueDate: &due})
	s.AddTask(TaskParams{Title: "B", Priority: PriorityLow, Scope: ScopeInbox})

	today, err := s.TasksByScope(ScopeToday)
	if err != nil {
		t.Fatal(err)
	}
	if len(today) != 1 || today[0].Title != "A" {
		t.Fatalf("unexpected scope filter result: %+v", today)
	}

	byDate, err := s.TasksByDate(due)
	if err != nil {
		t.Fatal(err)
	}
	if len(byDate) != 1 || byDate[0].Title != "A" {
		t.Fatalf("unexpected due date filter result: %+v", byDate)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateTask("ghost", TaskParams{Title: "x", Priority: PriorityLow, Scope: ScopeInbox})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Daily goals
// ============================================================

func TestSetDailyGoalUpserts(t *testing.T) {
	s := seededStore(t)
	g, err := s.SetDailyGoal("2026-03-02", "deep-work", 120)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := s.SetDailyGoal("2026-03-02", "deep-work", 180)
	if err != nil {
		t.Fatal(err)
	}
	if g2.ID != g.ID {
		t.Fatal("goal upsert must keep the original id")
	}
	goals, _ := s.GoalsByDate("2026-03-02")
	if len(goals) != 1 || goals[0].TargetMin != 180 {
		t.Fatalf("unexpected goals: %+v", goals)
	}
}

func TestSetDailyGoalInvalid(t *testing.T) {
	s := seededStore(t)
	if _, err := s.SetDailyGoal("2026-03-02", "deep-work", 0); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for zero target, got %v", err)
	}
	if _, err := s.SetDailyGoal("2026-03-02", "ghost", 60); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for unknown category, got %v", err)
	}
}

// ============================================================
// Portability
// ============================================================

func populatedStore(t *testing.T) *Store {
	t.Helper()
	s := seededStore(t)
	addActivity(t, s, "2026-03-02", "deep-work", 120, EnergyHigh)
	addActivity(t, s, "2026-03-02", "distraction", 30, EnergyLow)
	s.UpsertVitalityEntry("2026-03-02", "exercise", true)
	s.UpsertVitalityEntry("2026-03-03", "sleep", true)
	due := "2026-03-05"
	s.AddTask(TaskParams{Title: "Ship it", Priority: PriorityHigh, Scope: ScopeWeek, DueDate: &due})
	s.SetDailyGoal("2026-03-02", "deep-work", 120)
	return s
}

func stripExportedAt(snap *Snapshot) {
	snap.ExportedAt = ""
}

func TestExportImportRoundTrip(t *testing.T) {
	s := populatedStore(t)

	before, err := s.ExportAll()
	if err != nil {
		t.Fatal(err)
	}
	if before.ExportedAt == "" {
		t.Fatal("snapshot must carry an export timestamp")
	}

	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if err := s.ImportAll(before); err != nil {
		t.Fatal(err)
	}

	after, err := s.ExportAll()
	if err != nil {
		t.Fatal(err)
	}
	stripExportedAt(before)
	stripExportedAt(after)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("round trip changed data:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestImportIntoFreshStore(t *testing.T) {
	src := populatedStore(t)
	snap, err := src.ExportAll()
	if err != nil {
		t.Fatal(err)
	}

	dst := newTestStore(t)
	if err := dst.ImportAll(snap); err != nil {
		t.Fatal(err)
	}

	got, err := dst.ExportAll()
	if err != nil {
		t.Fatal(err)
	}
	stripExportedAt(snap)
	stripExportedAt(got)
	if !reflect.DeepEqual(snap, got) {
		t.Fatal("import into fresh store lost data")
	}
}

func TestImportDoesNotClear(t *testing.T) {
	s := seededStore(t)
	kept := addActivity(t, s, "2026-01-01", "deep-work", 60, EnergyHigh)

	s2 := populatedStore(t)
	snap, _ := s2.ExportAll()
	if err := s.ImportAll(snap); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetActivity(kept.ID); err != nil {
		t.Fatal("import must not remove pre-existing records")
	}
}

func TestClearAllKeepsReferenceData(t *testing.T) {
	s := populatedStore(t)
	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}

	activities, _ := s.Activities()
	entries, _ := s.VitalityEntries()
	tasks, _ := s.Tasks()
	goals, _ := s.DailyGoals()
	if len(activities)+len(entries)+len(tasks)+len(goals) != 0 {
		t.Fatal("mutable collections should be empty")
	}

	categories, _ := s.Categories()
	bonuses, _ := s.VitalityBonuses()
	if len(categories) == 0 || len(bonuses) == 0 {
		t.Fatal("reference collections must survive ClearAll")
	}
}

func TestImportNilSnapshot(t *testing.T) {
	s := newTestStore(t)
	if err := s.ImportAll(nil); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}
