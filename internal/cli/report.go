package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/metrics"
	"github.com/oguzb/momentum/internal/report"
	"github.com/oguzb/momentum/internal/store"
)

func reportCmd() *cobra.Command {
	var month bool
	var days int
	var anchor string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Weekly, monthly, or trailing-window report",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now().UTC()
			if anchor != "" {
				var err error
				at, err = time.Parse("2006-01-02", anchor)
				if err != nil {
					return fmt.Errorf("bad anchor date %q: %w", anchor, err)
				}
			}
			return withStore(func(st *store.Store) error {
				var r *report.Report
				var err error
				switch {
				case month:
					r, err = report.Month(st, at)
				case days > 0:
					r, err = report.Trailing(st, at, days)
				default:
					r, err = report.Week(st, at)
				}
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(r)
				}
				printReport(r)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&month, "month", false, "report the calendar month")
	cmd.Flags().IntVar(&days, "days", 0, "report a trailing N-day window")
	cmd.Flags().StringVar(&anchor, "date", "", "anchor date YYYY-MM-DD (default today)")
	return cmd
}

func printReport(r *report.Report) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Report %s — %s", r.From, r.To)))
	fmt.Printf("Total score: %.2f\n\n", r.TotalScore())

	fmt.Println(scoreChart(r))

	fmt.Println(titleStyle.Render("Category time distribution"))
	if len(r.Distribution) == 0 {
		fmt.Println(mutedStyle.Render("  no activity in range"))
	} else {
		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Category", "Minutes", "Points"})
		for _, sl := range r.Distribution {
			tw.AppendRow(table.Row{sl.Name, sl.Minutes, fmt.Sprintf("%.2f", sl.Points)})
		}
		tw.Render()
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Focus time by energy level"))
	fmt.Printf("  high %d / medium %d / low %d min\n",
		r.Energy.High, r.Energy.Medium, r.Energy.Low)
}

// scoreChart renders per-day total scores as bars. The chart only
// shows magnitude; negative days are drawn at zero height and flagged
// by their tier color in the calendar view instead.
func scoreChart(r *report.Report) string {
	width := 4 * len(r.Days)
	if width < 20 {
		width = 20
	}
	if width > 72 {
		width = 72
	}
	bc := barchart.New(width, 10)

	var bars []barchart.BarData
	for _, d := range r.Days {
		score := d.TotalScore
		if score < 0 {
			score = 0
		}
		t, _ := time.Parse("2006-01-02", d.Date)
		bars = append(bars, barchart.BarData{
			Label: t.Format("02"),
			Values: []barchart.BarValue{
				{Name: d.Date, Value: score, Style: barStyle},
			},
		})
	}
	bc.PushAll(bars)
	bc.Draw()
	return bc.View()
}

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Month grid colored by daily score tier",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor := time.Now().UTC()
			if len(args) == 1 {
				var err error
				anchor, err = time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("bad month %q: %w", args[0], err)
				}
			}
			return withStore(func(st *store.Store) error {
				r, err := report.Month(st, anchor)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(calendarJSON(r))
				}
				printCalendar(anchor, r)
				return nil
			})
		},
	}
	return cmd
}

type calendarDay struct {
	Date  string  `json:"date"`
	Score float64 `json:"totalScore"`
	Tier  string  `json:"tier"`
}

func calendarJSON(r *report.Report) []calendarDay {
	days := make([]calendarDay, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, calendarDay{
			Date:  d.Date,
			Score: d.TotalScore,
			Tier:  metrics.TierForDay(d).String(),
		})
	}
	return days
}

func printCalendar(anchor time.Time, r *report.Report) {
	fmt.Println(titleStyle.Render(anchor.Format("January 2006")))
	fmt.Println(mutedStyle.Render(" Mo  Tu  We  Th  Fr  Sa  Su"))

	first, _ := time.Parse("2006-01-02", r.From)
	weekday := int(first.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	for i := 1; i < weekday; i++ {
		fmt.Print("    ")
	}

	col := weekday - 1
	for _, d := range r.Days {
		t, _ := time.Parse("2006-01-02", d.Date)
		cell := fmt.Sprintf("%3d ", t.Day())
		fmt.Print(tierCell(metrics.TierForDay(d), cell))
		col++
		if col == 7 {
			fmt.Println()
			col = 0
		}
	}
	if col != 0 {
		fmt.Println()
	}

	fmt.Println()
	for _, t := range []metrics.Tier{metrics.TierNone, metrics.TierVeryLow, metrics.TierLow, metrics.TierMedium, metrics.TierHigh, metrics.TierVeryHigh} {
		fmt.Print(tierCell(t, "■ "+t.String()+"  "))
	}
	fmt.Println()
}
