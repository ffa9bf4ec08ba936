// Package metrics derives effectiveness numbers from one day's raw
// records. Everything here is pure: no store access, no mutation, and
// no failure mode — records with dangling references are skipped.
package metrics

import "github.com/oguzb/momentum/internal/store"

// EnergyMinutes buckets focus-category time by self-reported energy.
type EnergyMinutes struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
}

func (e *EnergyMinutes) Add(o EnergyMinutes) {
	e.High += o.High
	e.Medium += o.Medium
	e.Low += o.Low
}

// DailyMetrics is the fixed set of quantities derived for one day.
type DailyMetrics struct {
	Date string `json:"date"`

	ActivityScore float64 `json:"activityScore"`
	VitalityScore float64 `json:"vitalityScore"`
	TotalScore    float64 `json:"totalScore"`

	TotalMinutes       int64 `json:"totalMinutes"`
	FocusMinutes       int64 `json:"focusMinutes"`
	DistractionMinutes int64 `json:"distractionMinutes"`

	// FocusRatio and DistractionRatio are percentages of logged time,
	// in [0, 100]; both are 0 when no time is logged.
	FocusRatio       float64 `json:"focusRatio"`
	DistractionRatio float64 `json:"distractionRatio"`

	// Throughput is positive points earned per hour of logged time.
	// Negative-point activities dilute it through the denominator but
	// never drive it below zero.
	Throughput float64 `json:"throughput"`

	EnergyFocus EnergyMinutes `json:"energyFocusCorrelation"`

	// ActivityCount distinguishes "no activity" from "net zero score"
	// for tier bucketing.
	ActivityCount int `json:"activityCount"`
}

// ComputeDaily aggregates one day's activities and habit completions.
// Activities whose category id does not resolve, and entries whose
// bonus id does not resolve, are excluded rather than reported as
// errors; partially migrated reference data must not break reporting.
func ComputeDaily(date string, activities []store.Activity, categories []store.Category, entries []store.VitalityEntry, bonuses []store.VitalityBonus) DailyMetrics {
	catByID := make(map[string]store.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	bonusByID := make(map[string]store.VitalityBonus, len(bonuses))
	for _, b := range bonuses {
		bonusByID[b.ID] = b
	}

	m := DailyMetrics{Date: date}
	var positivePoints float64

	for _, a := range activities {
		cat, ok := catByID[a.CategoryID]
		if !ok {
			continue
		}
		m.ActivityCount++
		m.ActivityScore += a.Points
		m.TotalMinutes += a.DurationMin
		if a.Points > 0 {
			positivePoints += a.Points
		}
		switch cat.Role {
		case store.RoleFocus:
			m.FocusMinutes += a.DurationMin
			switch a.Energy {
			case store.EnergyHigh:
				m.EnergyFocus.High += a.DurationMin
			case store.EnergyMedium:
				m.EnergyFocus.Medium += a.DurationMin
			case store.EnergyLow:
				m.EnergyFocus.Low += a.DurationMin
			}
		case store.RoleDistraction:
			m.DistractionMinutes += a.DurationMin
		}
	}

	for _, e := range entries {
		if !e.Completed {
			continue
		}
		b, ok := bonusByID[e.BonusID]
		if !ok {
			continue
		}
		m.VitalityScore += b.Points
	}

	m.TotalScore = m.ActivityScore + m.VitalityScore
	if m.TotalMinutes > 0 {
		m.FocusRatio = 100 * float64(m.FocusMinutes) / float64(m.TotalMinutes)
		m.DistractionRatio = 100 * float64(m.DistractionMinutes) / float64(m.TotalMinutes)
		m.Throughput = positivePoints / (float64(m.TotalMinutes) / 60.0)
	}
	return m
}
