package store

import (
	"fmt"
	"time"
)

// Snapshot is the portable dump of every collection. Collection keys
// match the persisted layout so snapshots stay readable on their own.
type Snapshot struct {
	ExportedAt      string          `json:"exported_at"`
	Categories      []Category      `json:"categories"`
	Bonuses         []VitalityBonus `json:"vitality"`
	Activities      []Activity      `json:"activities"`
	VitalityEntries []VitalityEntry `json:"vitalityEntries"`
	Tasks           []Task          `json:"tasks"`
	Goals           []DailyGoal     `json:"goals"`
}

// ExportAll dumps every collection. Round-tripping the result through
// ImportAll on an untouched store reproduces the record set exactly.
func (s *Store) ExportAll() (*Snapshot, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	snap := &Snapshot{ExportedAt: time.Now().UTC().Format(time.RFC3339)}
	var err error
	if snap.Categories, err = s.Categories(); err != nil {
		return nil, err
	}
	if snap.Bonuses, err = s.VitalityBonuses(); err != nil {
		return nil, err
	}
	if snap.Activities, err = s.Activities(); err != nil {
		return nil, err
	}
	if snap.VitalityEntries, err = s.VitalityEntries(); err != nil {
		return nil, err
	}
	if snap.Tasks, err = s.Tasks(); err != nil {
		return nil, err
	}
	if snap.Goals, err = s.DailyGoals(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ImportAll bulk-upserts every record in the snapshot, preserving ids
// and stored derived fields bit-for-bit. Existing data is kept; use
// ClearAll first for a clean restore.
//
// Reference collections are imported before the collections that point
// at them so foreign keys resolve.
func (s *Store) ImportAll(snap *Snapshot) error {
	if err := s.ready(); err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidRecord)
	}

	for i := range snap.Categories {
		if err := s.upsertCategory(&snap.Categories[i]); err != nil {
			return err
		}
	}
	for i := range snap.Bonuses {
		if err := s.upsertBonus(&snap.Bonuses[i]); err != nil {
			return err
		}
	}
	for i := range snap.Activities {
		if err := s.upsertActivity(&snap.Activities[i]); err != nil {
			return err
		}
	}
	for i := range snap.VitalityEntries {
		if err := s.importVitalityEntry(&snap.VitalityEntries[i]); err != nil {
			return err
		}
	}
	for i := range snap.Tasks {
		if err := s.upsertTask(&snap.Tasks[i]); err != nil {
			return err
		}
	}
	for i := range snap.Goals {
		if err := s.importDailyGoal(&snap.Goals[i]); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll empties the mutable collections. Categories and bonuses are
// reference data and stay untouched.
func (s *Store) ClearAll() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, table := range []string{"activities", "vitality_entries", "tasks", "daily_goals"} {
		if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
