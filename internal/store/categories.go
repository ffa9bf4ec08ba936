package store

import (
	"fmt"

	"github.com/google/uuid"
)

func (s *Store) AddCategory(name string, role CategoryRole, points float64, color, description string) (*Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidRecord)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown category role %q", ErrInvalidRecord, role)
	}

	c := &Category{
		ID:          uuid.NewString(),
		Name:        name,
		Role:        role,
		Points:      points,
		Color:       color,
		Description: description,
	}
	if err := s.insertCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) insertCategory(c *Category) error {
	dup, err := s.exists("categories", c.ID)
	if err != nil {
		return fmt.Errorf("check category %s: %w", c.ID, err)
	}
	if dup {
		return fmt.Errorf("category %s: %w", c.ID, ErrDuplicateKey)
	}
	_, err = s.db.Exec(
		`INSERT INTO categories (id, name, role, points, color, description) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, string(c.Role), c.Points, c.Color, c.Description,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *Store) upsertCategory(c *Category) error {
	_, err := s.db.Exec(
		`INSERT INTO categories (id, name, role, points, color, description) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, role = excluded.role, points = excluded.points,
		   color = excluded.color, description = excluded.description`,
		c.ID, c.Name, string(c.Role), c.Points, c.Color, c.Description,
	)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(id string) (*Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	c := &Category{}
	var role string
	err := s.db.QueryRow(
		`SELECT id, name, role, points, color, description FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &role, &c.Points, &c.Color, &c.Description)
	if err != nil {
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	c.Role = CategoryRole(role)
	return c, nil
}

func (s *Store) Categories() ([]Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, name, role, points, color, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var role string
		if err := rows.Scan(&c.ID, &c.Name, &role, &c.Points, &c.Color, &c.Description); err != nil {
			return nil, err
		}
		c.Role = CategoryRole(role)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) UpdateCategory(id, name string, role CategoryRole, points float64, color, description string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown category role %q", ErrInvalidRecord, role)
	}
	res, err := s.db.Exec(
		`UPDATE categories SET name = ?, role = ?, points = ?, color = ?, description = ? WHERE id = ?`,
		name, string(role), points, color, description, id,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteCategory refuses to remove a category that activities or goals
// still reference.
func (s *Store) DeleteCategory(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	var refs int
	err := s.db.QueryRow(
		`SELECT (SELECT COUNT(*) FROM activities WHERE category_id = ?) +
		        (SELECT COUNT(*) FROM daily_goals WHERE category_id = ?)`, id, id,
	).Scan(&refs)
	if err != nil {
		return fmt.Errorf("check category references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: category %s is referenced by %d records", ErrInvalidRecord, id, refs)
	}
	_, err = s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
