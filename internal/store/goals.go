package store

import (
	"fmt"

	"github.com/google/uuid"
)

// SetDailyGoal upserts the target time allocation for one category on
// one day; keyed by (date, categoryID).
func (s *Store) SetDailyGoal(date, categoryID string, targetMin int64) (*DailyGoal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !validDate(date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRecord, date)
	}
	if targetMin <= 0 {
		return nil, fmt.Errorf("%w: target minutes must be positive", ErrInvalidRecord)
	}
	if _, err := s.GetCategory(categoryID); err != nil {
		return nil, fmt.Errorf("%w: category %s does not exist", ErrInvalidRecord, categoryID)
	}

	_, err := s.db.Exec(
		`INSERT INTO daily_goals (id, date, category_id, target_min) VALUES (?, ?, ?, ?)
		 ON CONFLICT(date, category_id) DO UPDATE SET target_min = excluded.target_min`,
		uuid.NewString(), date, categoryID, targetMin,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert daily goal: %w", err)
	}

	g := &DailyGoal{Date: date, CategoryID: categoryID, TargetMin: targetMin}
	err = s.db.QueryRow(
		`SELECT id FROM daily_goals WHERE date = ? AND category_id = ?`, date, categoryID,
	).Scan(&g.ID)
	if err != nil {
		return nil, fmt.Errorf("get daily goal: %w", err)
	}
	return g, nil
}

func (s *Store) importDailyGoal(g *DailyGoal) error {
	_, err := s.db.Exec(`DELETE FROM daily_goals WHERE id = ? OR (date = ? AND category_id = ?)`,
		g.ID, g.Date, g.CategoryID)
	if err != nil {
		return fmt.Errorf("replace daily goal: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO daily_goals (id, date, category_id, target_min) VALUES (?, ?, ?, ?)`,
		g.ID, g.Date, g.CategoryID, g.TargetMin,
	)
	if err != nil {
		return fmt.Errorf("import daily goal: %w", err)
	}
	return nil
}

// DeleteDailyGoal is a no-op when the id is absent.
func (s *Store) DeleteDailyGoal(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM daily_goals WHERE id = ?`, id)
	return err
}

func (s *Store) queryGoals(query string, args ...any) ([]DailyGoal, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily goals: %w", err)
	}
	defer rows.Close()

	var goals []DailyGoal
	for rows.Next() {
		var g DailyGoal
		if err := rows.Scan(&g.ID, &g.Date, &g.CategoryID, &g.TargetMin); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) DailyGoals() ([]DailyGoal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryGoals(`SELECT id, date, category_id, target_min FROM daily_goals ORDER BY date, category_id`)
}

func (s *Store) GoalsByDate(date string) ([]DailyGoal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryGoals(`SELECT id, date, category_id, target_min FROM daily_goals WHERE date = ? ORDER BY category_id`, date)
}
