package metrics

import (
	"testing"
	"time"

	"github.com/oguzb/momentum/internal/store"
)

var testCategories = []store.Category{
	{ID: "deep-work", Name: "Deep Work", Role: store.RoleFocus, Points: 3},
	{ID: "shallow", Name: "Shallow Work", Role: store.RoleNeutral, Points: 1},
	{ID: "distraction", Name: "Distraction", Role: store.RoleDistraction, Points: -1},
}

var testBonuses = []store.VitalityBonus{
	{ID: "exercise", Name: "Exercise", Points: 5},
	{ID: "sleep", Name: "8h Sleep", Points: 3},
}

func activity(categoryID string, minutes int64, energy store.EnergyLevel, pointsPerHour float64) store.Activity {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return store.Activity{
		ID:          categoryID + "-act",
		Name:        "test",
		CategoryID:  categoryID,
		Date:        "2026-03-02",
		StartTime:   start,
		EndTime:     start.Add(time.Duration(minutes) * time.Minute),
		DurationMin: minutes,
		Energy:      energy,
		Points:      pointsPerHour * float64(minutes) / 60.0,
	}
}

func TestFocusDay(t *testing.T) {
	// One 2h deep-work session at 3 points/hour, high energy.
	acts := []store.Activity{activity("deep-work", 120, store.EnergyHigh, 3)}
	m := ComputeDaily("2026-03-02", acts, testCategories, nil, testBonuses)

	if m.TotalScore != 6 {
		t.Fatalf("expected total score 6, got %f", m.TotalScore)
	}
	if m.FocusRatio != 100 {
		t.Fatalf("expected focus ratio 100, got %f", m.FocusRatio)
	}
	if m.DistractionRatio != 0 {
		t.Fatalf("expected distraction ratio 0, got %f", m.DistractionRatio)
	}
	if m.Throughput != 3 {
		t.Fatalf("expected throughput 3, got %f", m.Throughput)
	}
	if m.EnergyFocus.High != 120 || m.EnergyFocus.Medium != 0 || m.EnergyFocus.Low != 0 {
		t.Fatalf("unexpected energy correlation: %+v", m.EnergyFocus)
	}
}

func TestDistractionDay(t *testing.T) {
	// One 1h distraction at -1 point/hour; no positive points at all.
	acts := []store.Activity{activity("distraction", 60, store.EnergyMedium, -1)}
	m := ComputeDaily("2026-03-02", acts, testCategories, nil, testBonuses)

	if m.TotalScore != -1 {
		t.Fatalf("expected total score -1, got %f", m.TotalScore)
	}
	if m.DistractionRatio != 100 {
		t.Fatalf("expected distraction ratio 100, got %f", m.DistractionRatio)
	}
	if m.FocusRatio != 0 {
		t.Fatalf("expected focus ratio 0, got %f", m.FocusRatio)
	}
	if m.Throughput != 0 {
		t.Fatalf("expected throughput 0, got %f", m.Throughput)
	}
}

func TestVitalityOnlyDay(t *testing.T) {
	entries := []store.VitalityEntry{
		{ID: "e1", Date: "2026-03-02", BonusID: "exercise", Completed: true},
		{ID: "e2", Date: "2026-03-02", BonusID: "sleep", Completed: true},
	}
	m := ComputeDaily("2026-03-02", nil, testCategories, entries, testBonuses)

	if m.TotalScore != 8 {
		t.Fatalf("expected total score 8, got %f", m.TotalScore)
	}
	if m.FocusRatio != 0 || m.DistractionRatio != 0 || m.Throughput != 0 {
		t.Fatalf("ratios and throughput must be zero with no activities: %+v", m)
	}
}

func TestIncompleteEntryIgnored(t *testing.T) {
	entries := []store.VitalityEntry{
		{ID: "e1", Date: "2026-03-02", BonusID: "exercise", Completed: false},
	}
	m := ComputeDaily("2026-03-02", nil, testCategories, entries, testBonuses)
	if m.VitalityScore != 0 {
		t.Fatalf("incomplete entries must not score, got %f", m.VitalityScore)
	}
}

func TestScoreAdditivity(t *testing.T) {
	acts := []store.Activity{
		activity("deep-work", 60, store.EnergyHigh, 3),
		activity("shallow", 30, store.EnergyMedium, 1),
	}
	entries := []store.VitalityEntry{
		{ID: "e1", Date: "2026-03-02", BonusID: "exercise", Completed: true},
	}
	m := ComputeDaily("2026-03-02", acts, testCategories, entries, testBonuses)

	if m.TotalScore != m.ActivityScore+m.VitalityScore {
		t.Fatalf("total %f != activity %f + vitality %f", m.TotalScore, m.ActivityScore, m.VitalityScore)
	}

	// One more completed habit worth 3 raises the total by exactly 3.
	more := append(entries, store.VitalityEntry{ID: "e2", Date: "2026-03-02", BonusID: "sleep", Completed: true})
	m2 := ComputeDaily("2026-03-02", acts, testCategories, more, testBonuses)
	if m2.TotalScore != m.TotalScore+3 {
		t.Fatalf("expected total to rise by 3: %f -> %f", m.TotalScore, m2.TotalScore)
	}
}

func TestRatioBounds(t *testing.T) {
	acts := []store.Activity{
		activity("deep-work", 45, store.EnergyLow, 3),
		activity("shallow", 90, store.EnergyMedium, 1),
		activity("distraction", 15, store.EnergyHigh, -1),
	}
	m := ComputeDaily("2026-03-02", acts, testCategories, nil, nil)

	for name, ratio := range map[string]float64{"focus": m.FocusRatio, "distraction": m.DistractionRatio} {
		if ratio < 0 || ratio > 100 {
			t.Fatalf("%s ratio out of bounds: %f", name, ratio)
		}
	}

	empty := ComputeDaily("2026-03-02", nil, testCategories, nil, nil)
	if empty.FocusRatio != 0 || empty.DistractionRatio != 0 {
		t.Fatalf("ratios must be zero with no time logged: %+v", empty)
	}
}

func TestThroughputNeverNegative(t *testing.T) {
	// Negative points stay out of the numerator but dilute via time.
	acts := []store.Activity{
		activity("deep-work", 60, store.EnergyHigh, 3),
		activity("distraction", 60, store.EnergyLow, -1),
	}
	m := ComputeDaily("2026-03-02", acts, testCategories, nil, nil)

	if m.Throughput < 0 {
		t.Fatalf("throughput must be non-negative, got %f", m.Throughput)
	}
	// 3 positive points over 2 hours of logged time.
	if m.Throughput != 1.5 {
		t.Fatalf("expected throughput 1.5, got %f", m.Throughput)
	}
	if m.TotalMinutes != 120 {
		t.Fatalf("negative activities still count toward logged time: %d", m.TotalMinutes)
	}
}

func TestDanglingReferencesSkipped(t *testing.T) {
	acts := []store.Activity{
		activity("deep-work", 60, store.EnergyHigh, 3),
		activity("deleted-category", 60, store.EnergyHigh, 2),
	}
	entries := []store.VitalityEntry{
		{ID: "e1", Date: "2026-03-02", BonusID: "exercise", Completed: true},
		{ID: "e2", Date: "2026-03-02", BonusID: "deleted-bonus", Completed: true},
	}
	m := ComputeDaily("2026-03-02", acts, testCategories, entries, testBonuses)

	if m.ActivityCount != 1 {
		t.Fatalf("dangling activity must be skipped, counted %d", m.ActivityCount)
	}
	if m.TotalMinutes != 60 {
		t.Fatalf("dangling activity contributed minutes: %d", m.TotalMinutes)
	}
	if m.VitalityScore != 5 {
		t.Fatalf("dangling bonus contributed points: %f", m.VitalityScore)
	}
}
