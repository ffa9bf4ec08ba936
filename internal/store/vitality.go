package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// UpsertVitalityEntry records a habit completion for one day. Entries
// are keyed by (date, bonusID); writing the same pair again replaces
// the completion flag instead of creating a second record, so callers
// never need a read-modify-write round trip.
func (s *Store) UpsertVitalityEntry(date, bonusID string, completed bool) (*VitalityEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !validDate(date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRecord, date)
	}
	if _, err := s.GetVitalityBonus(bonusID); err != nil {
		return nil, fmt.Errorf("%w: bonus %s does not exist", ErrInvalidRecord, bonusID)
	}

	_, err := s.db.Exec(
		`INSERT INTO vitality_entries (id, date, bonus_id, completed) VALUES (?, ?, ?, ?)
		 ON CONFLICT(date, bonus_id) DO UPDATE SET completed = excluded.completed`,
		uuid.NewString(), date, bonusID, boolInt(completed),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert vitality entry: %w", err)
	}
	return s.vitalityEntryByKey(date, bonusID)
}

// importVitalityEntry preserves the record's own id, replacing by id
// first and falling back to the composite key for entries that collide
// on (date, bonus_id).
func (s *Store) importVitalityEntry(e *VitalityEntry) error {
	_, err := s.db.Exec(`DELETE FROM vitality_entries WHERE id = ? OR (date = ? AND bonus_id = ?)`,
		e.ID, e.Date, e.BonusID)
	if err != nil {
		return fmt.Errorf("replace vitality entry: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO vitality_entries (id, date, bonus_id, completed) VALUES (?, ?, ?, ?)`,
		e.ID, e.Date, e.BonusID, boolInt(e.Completed),
	)
	if err != nil {
		return fmt.Errorf("import vitality entry: %w", err)
	}
	return nil
}

func (s *Store) vitalityEntryByKey(date, bonusID string) (*VitalityEntry, error) {
	e := &VitalityEntry{}
	var completed int
	err := s.db.QueryRow(
		`SELECT id, date, bonus_id, completed FROM vitality_entries WHERE date = ? AND bonus_id = ?`,
		date, bonusID,
	).Scan(&e.ID, &e.Date, &e.BonusID, &completed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vitality entry (%s, %s): %w", date, bonusID, err)
	}
	e.Completed = completed == 1
	return e, nil
}

func (s *Store) queryVitalityEntries(query string, args ...any) ([]VitalityEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vitality entries: %w", err)
	}
	defer rows.Close()

	var entries []VitalityEntry
	for rows.Next() {
		var e VitalityEntry
		var completed int
		if err := rows.Scan(&e.ID, &e.Date, &e.BonusID, &completed); err != nil {
			return nil, err
		}
		e.Completed = completed == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) VitalityEntries() ([]VitalityEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryVitalityEntries(`SELECT id, date, bonus_id, completed FROM vitality_entries ORDER BY date, bonus_id`)
}

func (s *Store) VitalityEntriesByDate(date string) ([]VitalityEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryVitalityEntries(
		`SELECT id, date, bonus_id, completed FROM vitality_entries WHERE date = ? ORDER BY bonus_id`, date)
}

func (s *Store) VitalityEntriesInRange(from, to string) ([]VitalityEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryVitalityEntries(
		`SELECT id, date, bonus_id, completed FROM vitality_entries WHERE date >= ? AND date <= ? ORDER BY date, bonus_id`,
		from, to)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
