package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *Store) AddTask(p TaskParams) (*Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := validateTask(p); err != nil {
		return nil, err
	}

	t := &Task{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Priority:    p.Priority,
		Scope:       p.Scope,
		DueDate:     p.DueDate,
		CreatedDate: time.Now().UTC().Format(dateLayout),
	}
	if err := s.upsertTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) UpdateTask(id string, p TaskParams) (*Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	existing, err := s.GetTask(id)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err := validateTask(p); err != nil {
		return nil, err
	}

	existing.Title = p.Title
	existing.Priority = p.Priority
	existing.Scope = p.Scope
	existing.DueDate = p.DueDate
	if err := s.upsertTask(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ToggleTask flips the completion flag.
func (s *Store) ToggleTask(id string) (*Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	res, err := s.db.Exec(`UPDATE tasks SET completed = 1 - completed WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return s.GetTask(id)
}

// LogTaskTime accumulates minutes spent on a task.
func (s *Store) LogTaskTime(id string, minutes int64) (*Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: logged minutes must be positive", ErrInvalidRecord)
	}
	res, err := s.db.Exec(`UPDATE tasks SET time_logged_min = time_logged_min + ? WHERE id = ?`, minutes, id)
	if err != nil {
		return nil, fmt.Errorf("log task time: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return s.GetTask(id)
}

// DeleteTask is a no-op when the id is absent.
func (s *Store) DeleteTask(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

func validateTask(p TaskParams) error {
	if p.Title == "" {
		return fmt.Errorf("%w: task title is required", ErrInvalidRecord)
	}
	if !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidRecord, p.Priority)
	}
	if !p.Scope.Valid() {
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidRecord, p.Scope)
	}
	if p.DueDate != nil && !validDate(*p.DueDate) {
		return fmt.Errorf("%w: bad due date %q", ErrInvalidRecord, *p.DueDate)
	}
	return nil
}

func (s *Store) upsertTask(t *Task) error {
	_, err := s.db.Exec(
		`INSERT INTO tasks (id, title, priority, scope, due_date, completed, time_logged_min, created_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title, priority = excluded.priority, scope = excluded.scope,
		   due_date = excluded.due_date, completed = excluded.completed,
		   time_logged_min = excluded.time_logged_min, created_date = excluded.created_date`,
		t.ID, t.Title, string(t.Priority), string(t.Scope), t.DueDate,
		boolInt(t.Completed), t.TimeLoggedMin, t.CreatedDate,
	)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

const taskColumns = `id, title, priority, scope, due_date, completed, time_logged_min, created_date`

func scanTask(scan func(dest ...any) error) (Task, error) {
	var t Task
	var priority, scope string
	var due *string
	var completed int
	err := scan(&t.ID, &t.Title, &priority, &scope, &due, &completed, &t.TimeLoggedMin, &t.CreatedDate)
	if err != nil {
		return t, err
	}
	t.Priority = TaskPriority(priority)
	t.Scope = TaskScope(scope)
	t.DueDate = due
	t.Completed = completed == 1
	return t, nil
}

func (s *Store) GetTask(id string) (*Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return &t, nil
}

func (s *Store) queryTasks(query string, args ...any) ([]Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) Tasks() ([]Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryTasks(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_date, title`)
}

func (s *Store) TasksByScope(scope TaskScope) ([]Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryTasks(`SELECT `+taskColumns+` FROM tasks WHERE scope = ? ORDER BY created_date, title`, string(scope))
}

// TasksByDate returns tasks due on the given date.
func (s *Store) TasksByDate(date string) ([]Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryTasks(`SELECT `+taskColumns+` FROM tasks WHERE due_date = ? ORDER BY created_date, title`, date)
}
