// Package report assembles per-day metric series and cross-day
// roll-ups over a date range. Results are always derived fresh from
// the store; nothing here caches or mutates.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/oguzb/momentum/internal/metrics"
	"github.com/oguzb/momentum/internal/store"
)

const dateLayout = "2006-01-02"

// CategorySlice is the summed time for one category across a range,
// for pie/bar presentation.
type CategorySlice struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Minutes    int64   `json:"minutes"`
	Points     float64 `json:"points"`
}

type Report struct {
	From string `json:"from"`
	To   string `json:"to"`

	// Days holds one entry per calendar day in [From, To], in order,
	// including all-zero entries for days with no records.
	Days []metrics.DailyMetrics `json:"days"`

	Distribution []CategorySlice       `json:"distribution"`
	Energy       metrics.EnergyMinutes `json:"energyFocusCorrelation"`
}

// TotalScore sums the per-day total scores.
func (r *Report) TotalScore() float64 {
	var total float64
	for _, d := range r.Days {
		total += d.TotalScore
	}
	return total
}

// Build computes the report for the inclusive range [from, to]. Each
// day's records are fetched and run through the metrics engine
// individually, then the cross-day roll-ups are assembled.
func Build(st *store.Store, from, to string) (*Report, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("bad from date %q: %w", from, err)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("bad to date %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s before start %s", to, from)
	}

	categories, err := st.Categories()
	if err != nil {
		return nil, err
	}
	bonuses, err := st.VitalityBonuses()
	if err != nil {
		return nil, err
	}

	r := &Report{From: from, To: to}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		activities, err := st.ActivitiesByDate(date)
		if err != nil {
			return nil, err
		}
		entries, err := st.VitalityEntriesByDate(date)
		if err != nil {
			return nil, err
		}
		day := metrics.ComputeDaily(date, activities, categories, entries, bonuses)
		r.Days = append(r.Days, day)
		r.Energy.Add(day.EnergyFocus)
	}

	if err := r.buildDistribution(st, categories); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Report) buildDistribution(st *store.Store, categories []store.Category) error {
	activities, err := st.ActivitiesInRange(r.From, r.To)
	if err != nil {
		return err
	}

	catByID := make(map[string]store.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}

	slices := make(map[string]*CategorySlice)
	for _, a := range activities {
		cat, ok := catByID[a.CategoryID]
		if !ok {
			continue
		}
		sl, ok := slices[cat.ID]
		if !ok {
			sl = &CategorySlice{CategoryID: cat.ID, Name: cat.Name, Color: cat.Color}
			slices[cat.ID] = sl
		}
		sl.Minutes += a.DurationMin
		sl.Points += a.Points
	}

	for _, sl := range slices {
		r.Distribution = append(r.Distribution, *sl)
	}
	sort.Slice(r.Distribution, func(i, j int) bool {
		if r.Distribution[i].Minutes != r.Distribution[j].Minutes {
			return r.Distribution[i].Minutes > r.Distribution[j].Minutes
		}
		return r.Distribution[i].Name < r.Distribution[j].Name
	})
	return nil
}

// Day computes metrics for a single date.
func Day(st *store.Store, date string) (metrics.DailyMetrics, error) {
	r, err := Build(st, date, date)
	if err != nil {
		return metrics.DailyMetrics{}, err
	}
	return r.Days[0], nil
}

// Week reports the Monday-to-Sunday week containing anchor.
func Week(st *store.Store, anchor time.Time) (*Report, error) {
	monday := StartOfWeek(anchor)
	return Build(st, monday.Format(dateLayout), monday.AddDate(0, 0, 6).Format(dateLayout))
}

// Month reports the calendar month containing anchor.
func Month(st *store.Store, anchor time.Time) (*Report, error) {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Build(st, first.Format(dateLayout), last.Format(dateLayout))
}

// Trailing reports the n-day window ending at end, inclusive.
func Trailing(st *store.Store, end time.Time, n int) (*Report, error) {
	if n < 1 {
		return nil, fmt.Errorf("window must span at least one day, got %d", n)
	}
	start := end.AddDate(0, 0, 1-n)
	return Build(st, start.Format(dateLayout), end.Format(dateLayout))
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}
