package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/oguzb/momentum/internal/store"
)

// ToCSV writes activities as a flat CSV for spreadsheet use.
func ToCSV(activities []store.Activity, categories map[string]store.Category, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Name", "Category", "Start", "End", "Duration (min)", "Duration", "Energy", "Points"}); err != nil {
		return err
	}

	for _, a := range activities {
		categoryName := "Unknown"
		if c, ok := categories[a.CategoryID]; ok {
			categoryName = c.Name
		}
		row := []string{
			a.ID,
			a.Date,
			a.Name,
			categoryName,
			a.StartTime.Local().Format(time.RFC3339),
			a.EndTime.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", a.DurationMin),
			formatDuration(a.DurationMin),
			string(a.Energy),
			fmt.Sprintf("%.2f", a.Points),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(minutes int64) string {
	h := minutes / 60
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
