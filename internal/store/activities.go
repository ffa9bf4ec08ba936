package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AddActivity validates the time span, resolves the category, derives
// the duration and points from the category's current rate, and stores
// the record.
func (s *Store) AddActivity(p ActivityParams) (*Activity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cat, err := s.validateActivity(p)
	if err != nil {
		return nil, err
	}

	a := buildActivity(uuid.NewString(), p, cat)
	a.CreatedAt = time.Now().UTC().Truncate(time.Second)

	dup, err := s.exists("activities", a.ID)
	if err != nil {
		return nil, fmt.Errorf("check activity %s: %w", a.ID, err)
	}
	if dup {
		return nil, fmt.Errorf("activity %s: %w", a.ID, ErrDuplicateKey)
	}
	if err := s.upsertActivity(a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateActivity replaces the mutable fields of an existing activity,
// recomputing duration and points. Returns ErrNotFound if absent.
func (s *Store) UpdateActivity(id string, p ActivityParams) (*Activity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	existing, err := s.GetActivity(id)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	cat, err := s.validateActivity(p)
	if err != nil {
		return nil, err
	}

	a := buildActivity(id, p, cat)
	a.CreatedAt = existing.CreatedAt
	if err := s.upsertActivity(a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteActivity is a no-op when the id is absent.
func (s *Store) DeleteActivity(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM activities WHERE id = ?`, id)
	return err
}

func (s *Store) validateActivity(p ActivityParams) (*Category, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: activity name is required", ErrInvalidRecord)
	}
	if !validDate(p.Date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRecord, p.Date)
	}
	if !p.EndTime.After(p.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidRecord)
	}
	if !p.Energy.Valid() {
		return nil, fmt.Errorf("%w: unknown energy level %q", ErrInvalidRecord, p.Energy)
	}
	cat, err := s.GetCategory(p.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: category %s does not exist", ErrInvalidRecord, p.CategoryID)
	}
	return cat, nil
}

func buildActivity(id string, p ActivityParams, cat *Category) *Activity {
	minutes := int64(p.EndTime.Sub(p.StartTime).Minutes())
	return &Activity{
		ID:          id,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Date:        p.Date,
		StartTime:   p.StartTime.UTC().Truncate(time.Second),
		EndTime:     p.EndTime.UTC().Truncate(time.Second),
		DurationMin: minutes,
		Energy:      p.Energy,
		Points:      cat.Points * float64(minutes) / 60.0,
	}
}

func (s *Store) upsertActivity(a *Activity) error {
	_, err := s.db.Exec(
		`INSERT INTO activities (id, name, category_id, date, start_time, end_time, duration_min, energy, points, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, category_id = excluded.category_id, date = excluded.date,
		   start_time = excluded.start_time, end_time = excluded.end_time,
		   duration_min = excluded.duration_min, energy = excluded.energy,
		   points = excluded.points, created_at = excluded.created_at`,
		a.ID, a.Name, a.CategoryID, a.Date,
		a.StartTime.Format(time.RFC3339), a.EndTime.Format(time.RFC3339),
		a.DurationMin, string(a.Energy), a.Points,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert activity: %w", err)
	}
	return nil
}

const activityColumns = `id, name, category_id, date, start_time, end_time, duration_min, energy, points, created_at`

func scanActivity(scan func(dest ...any) error) (Activity, error) {
	var a Activity
	var start, end, energy, createdAt string
	err := scan(&a.ID, &a.Name, &a.CategoryID, &a.Date, &start, &end, &a.DurationMin, &energy, &a.Points, &createdAt)
	if err != nil {
		return a, err
	}
	a.StartTime, _ = time.Parse(time.RFC3339, start)
	a.EndTime, _ = time.Parse(time.RFC3339, end)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	a.Energy = EnergyLevel(energy)
	return a, nil
}

func (s *Store) GetActivity(id string) (*Activity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}
	return &a, nil
}

func (s *Store) queryActivities(query string, args ...any) ([]Activity, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *Store) Activities() ([]Activity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryActivities(`SELECT ` + activityColumns + ` FROM activities ORDER BY start_time`)
}

// ActivitiesByDate returns activities whose date field exactly equals
// the argument.
func (s *Store) ActivitiesByDate(date string) ([]Activity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryActivities(
		`SELECT `+activityColumns+` FROM activities WHERE date = ? ORDER BY start_time`, date)
}

// ActivitiesInRange returns activities with date in the inclusive
// range [from, to]. YYYY-MM-DD sorts lexicographically the same as
// chronologically, so plain string comparison is correct.
func (s *Store) ActivitiesInRange(from, to string) ([]Activity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryActivities(
		`SELECT `+activityColumns+` FROM activities WHERE date >= ? AND date <= ? ORDER BY date, start_time`,
		from, to)
}
