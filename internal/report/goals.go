package report

import "github.com/oguzb/momentum/internal/store"

// GoalProgress compares one day's logged minutes per category against
// that day's targets.
type GoalProgress struct {
	GoalID       string `json:"goalId"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	TargetMin    int64  `json:"targetMin"`
	ActualMin    int64  `json:"actualMin"`
}

// Percent returns completion as a percentage, uncapped so overshoot
// is visible.
func (g GoalProgress) Percent() float64 {
	if g.TargetMin == 0 {
		return 0
	}
	return 100 * float64(g.ActualMin) / float64(g.TargetMin)
}

// Goals computes progress for every goal set on the given date.
func Goals(st *store.Store, date string) ([]GoalProgress, error) {
	goals, err := st.GoalsByDate(date)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, nil
	}
	activities, err := st.ActivitiesByDate(date)
	if err != nil {
		return nil, err
	}
	categories, err := st.Categories()
	if err != nil {
		return nil, err
	}

	nameByID := make(map[string]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
	}
	actualByCat := make(map[string]int64)
	for _, a := range activities {
		actualByCat[a.CategoryID] += a.DurationMin
	}

	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, GoalProgress{
			GoalID:       g.ID,
			CategoryID:   g.CategoryID,
			CategoryName: nameByID[g.CategoryID],
			TargetMin:    g.TargetMin,
			ActualMin:    actualByCat[g.CategoryID],
		})
	}
	return progress, nil
}
