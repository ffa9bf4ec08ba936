package store

import "time"

// CategoryRole drives the metrics engine's dispatch. Scoring semantics
// hang off the role, never the display name, so renaming a category
// cannot change how it is counted.
type CategoryRole string

const (
	RoleFocus       CategoryRole = "focus"
	RoleDistraction CategoryRole = "distraction"
	RoleNeutral     CategoryRole = "neutral"
)

func (r CategoryRole) Valid() bool {
	switch r {
	case RoleFocus, RoleDistraction, RoleNeutral:
		return true
	}
	return false
}

type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

func (e EnergyLevel) Valid() bool {
	switch e {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type TaskScope string

const (
	ScopeToday TaskScope = "today"
	ScopeWeek  TaskScope = "week"
	ScopeMonth TaskScope = "month"
	ScopeInbox TaskScope = "inbox"
)

func (s TaskScope) Valid() bool {
	switch s {
	case ScopeToday, ScopeWeek, ScopeMonth, ScopeInbox:
		return true
	}
	return false
}

// Category is a scoring rule: Points is a signed per-hour rate.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Role        CategoryRole `json:"role"`
	Points      float64      `json:"points"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
}

// VitalityBonus is a fixed-point reward for completing a daily habit.
type VitalityBonus struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Points      float64 `json:"points"`
	Description string  `json:"description"`
}

// Activity is a logged event. Duration (minutes) and Points are derived
// from the time span and the category's rate at write time; they are
// stored for query performance but never accepted from callers.
type Activity struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	CategoryID  string      `json:"categoryId"`
	Date        string      `json:"date"` // YYYY-MM-DD, the grouping key
	StartTime   time.Time   `json:"startTime"`
	EndTime     time.Time   `json:"endTime"`
	DurationMin int64       `json:"durationMin"`
	Energy      EnergyLevel `json:"energyLevel"`
	Points      float64     `json:"points"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// VitalityEntry records a habit completion for one day. Logically
// unique per (Date, BonusID); the store enforces that with an index.
type VitalityEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	BonusID   string `json:"bonusId"`
	Completed bool   `json:"completed"`
}

// Task is a planning item independent of the metrics pipeline.
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Priority      TaskPriority `json:"priority"`
	Scope         TaskScope    `json:"scope"`
	DueDate       *string      `json:"dueDate,omitempty"`
	Completed     bool         `json:"completed"`
	TimeLoggedMin int64        `json:"timeLoggedMin"`
	CreatedDate   string       `json:"createdDate"`
}

// DailyGoal is a target time allocation for one category on one day.
type DailyGoal struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	CategoryID string `json:"categoryId"`
	TargetMin  int64  `json:"targetMin"`
}

// ActivityParams carries the caller-supplied fields for activity
// writes. Duration and points are computed inside the store.
type ActivityParams struct {
	Name       string
	CategoryID string
	Date       string
	StartTime  time.Time
	EndTime    time.Time
	Energy     EnergyLevel
}

// TaskParams carries the caller-supplied fields for task writes.
type TaskParams struct {
	Title    string
	Priority TaskPriority
	Scope    TaskScope
	DueDate  *string
}
