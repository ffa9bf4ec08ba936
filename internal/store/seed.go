package store

import "fmt"

var defaultCategories = []Category{
	{ID: "deep-work", Name: "Deep Work", Role: RoleFocus, Points: 3, Color: "#7AA2F7", Description: "Uninterrupted high-value work"},
	{ID: "shallow-work", Name: "Shallow Work", Role: RoleNeutral, Points: 1, Color: "#2EC4B6", Description: "Email, meetings, coordination"},
	{ID: "learning", Name: "Learning", Role: RoleNeutral, Points: 2, Color: "#F39C12", Description: "Courses, reading, practice"},
	{ID: "chores", Name: "Chores", Role: RoleNeutral, Points: 0.5, Color: "#666666", Description: "Errands and household upkeep"},
	{ID: "distraction", Name: "Distraction", Role: RoleDistraction, Points: -1, Color: "#E74C3C", Description: "Scrolling, aimless browsing"},
}

var defaultBonuses = []VitalityBonus{
	{ID: "sleep", Name: "8h Sleep", Points: 5, Description: "Slept at least eight hours"},
	{ID: "exercise", Name: "Exercise", Points: 5, Description: "At least 30 minutes of movement"},
	{ID: "meditation", Name: "Meditation", Points: 3, Description: "A mindfulness session"},
	{ID: "reading", Name: "Reading", Points: 3, Description: "Read away from a screen"},
	{ID: "hydration", Name: "Hydration", Points: 2, Description: "Drank enough water"},
}

// SeedDefaults populates the reference collections once. It checks
// emptiness per collection, so repeated calls never duplicate records.
func (s *Store) SeedDefaults() error {
	if err := s.ready(); err != nil {
		return err
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n == 0 {
		for i := range defaultCategories {
			if err := s.insertCategory(&defaultCategories[i]); err != nil {
				return err
			}
		}
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM vitality_bonuses`).Scan(&n); err != nil {
		return fmt.Errorf("count bonuses: %w", err)
	}
	if n == 0 {
		for i := range defaultBonuses {
			if err := s.insertBonus(&defaultBonuses[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
