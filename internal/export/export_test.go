package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/oguzb/momentum/internal/store"
)

func sampleSnapshot() *store.Snapshot {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &store.Snapshot{
		ExportedAt: "2026-03-02T18:00:00Z",
		Categories: []store.Category{
			{ID: "deep-work", Name: "Deep Work", Role: store.RoleFocus, Points: 3, Color: "#7AA2F7"},
		},
		Bonuses: []store.VitalityBonus{
			{ID: "exercise", Name: "Exercise", Points: 5},
		},
		Activities: []store.Activity{
			{
				ID: "a1", Name: "Refactor", CategoryID: "deep-work", Date: "2026-03-02",
				StartTime: start, EndTime: start.Add(2 * time.Hour),
				DurationMin: 120, Energy: store.EnergyHigh, Points: 6,
				CreatedAt: start,
			},
		},
		VitalityEntries: []store.VitalityEntry{
			{ID: "e1", Date: "2026-03-02", BonusID: "exercise", Completed: true},
		},
		Tasks: []store.Task{
			{ID: "t1", Title: "Ship", Priority: store.PriorityHigh, Scope: store.ScopeWeek, CreatedDate: "2026-03-01"},
		},
		Goals: []store.DailyGoal{
			{ID: "g1", Date: "2026-03-02", CategoryID: "deep-work", TargetMin: 120},
		},
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	snap := sampleSnapshot()

	if err := WriteSnapshot(snap, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(snap, got) {
		t.Fatalf("round trip changed snapshot:\nwant %+v\ngot  %+v", snap, got)
	}
}

func TestSnapshotCollectionKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := WriteSnapshot(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"exported_at"`, `"categories"`, `"vitality"`, `"activities"`, `"vitalityEntries"`, `"tasks"`, `"goals"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("snapshot missing collection key %s", key)
		}
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadSnapshotBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := ReadSnapshot(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestToCSV(t *testing.T) {
	snap := sampleSnapshot()
	catByID := map[string]store.Category{"deep-work": snap.Categories[0]}
	path := filepath.Join(t.TempDir(), "activities.csv")

	if err := ToCSV(snap.Activities, catByID, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	row := rows[1]
	if row[0] != "a1" || row[3] != "Deep Work" || row[6] != "120" || row[7] != "02:00" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestToCSVUnknownCategory(t *testing.T) {
	snap := sampleSnapshot()
	path := filepath.Join(t.TempDir(), "activities.csv")

	if err := ToCSV(snap.Activities, map[string]store.Category{}, path); err != nil {
		t.Fatal(err)
	}
	f, _ := os.Open(path)
	defer f.Close()
	rows, _ := csv.NewReader(f).ReadAll()
	if rows[1][3] != "Unknown" {
		t.Fatalf("expected Unknown category, got %s", rows[1][3])
	}
}
