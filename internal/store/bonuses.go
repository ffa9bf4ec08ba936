package store

import (
	"fmt"

	"github.com/google/uuid"
)

func (s *Store) AddVitalityBonus(name string, points float64, description string) (*VitalityBonus, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: bonus name is required", ErrInvalidRecord)
	}
	if points <= 0 {
		return nil, fmt.Errorf("%w: bonus points must be positive", ErrInvalidRecord)
	}

	b := &VitalityBonus{
		ID:          uuid.NewString(),
		Name:        name,
		Points:      points,
		Description: description,
	}
	if err := s.insertBonus(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) insertBonus(b *VitalityBonus) error {
	dup, err := s.exists("vitality_bonuses", b.ID)
	if err != nil {
		return fmt.Errorf("check bonus %s: %w", b.ID, err)
	}
	if dup {
		return fmt.Errorf("bonus %s: %w", b.ID, ErrDuplicateKey)
	}
	_, err = s.db.Exec(
		`INSERT INTO vitality_bonuses (id, name, points, description) VALUES (?, ?, ?, ?)`,
		b.ID, b.Name, b.Points, b.Description,
	)
	if err != nil {
		return fmt.Errorf("insert bonus: %w", err)
	}
	return nil
}

func (s *Store) upsertBonus(b *VitalityBonus) error {
	_, err := s.db.Exec(
		`INSERT INTO vitality_bonuses (id, name, points, description) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, points = excluded.points, description = excluded.description`,
		b.ID, b.Name, b.Points, b.Description,
	)
	if err != nil {
		return fmt.Errorf("upsert bonus: %w", err)
	}
	return nil
}

func (s *Store) GetVitalityBonus(id string) (*VitalityBonus, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	b := &VitalityBonus{}
	err := s.db.QueryRow(
		`SELECT id, name, points, description FROM vitality_bonuses WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &b.Points, &b.Description)
	if err != nil {
		return nil, fmt.Errorf("get bonus %s: %w", id, err)
	}
	return b, nil
}

func (s *Store) VitalityBonuses() ([]VitalityBonus, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, name, points, description FROM vitality_bonuses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []VitalityBonus
	for rows.Next() {
		var b VitalityBonus
		if err := rows.Scan(&b.ID, &b.Name, &b.Points, &b.Description); err != nil {
			return nil, err
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, rows.Err()
}
