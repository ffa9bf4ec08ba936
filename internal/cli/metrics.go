package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/metrics"
	"github.com/oguzb/momentum/internal/report"
	"github.com/oguzb/momentum/internal/store"
)

func metricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics [date]",
		Short: "Show derived metrics for one day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().UTC().Format("2006-01-02")
			if len(args) == 1 {
				date = args[0]
			}
			return withStore(func(st *store.Store) error {
				day, err := report.Day(st, date)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(day)
				}
				printDay(day)
				return nil
			})
		},
	}
	return cmd
}

func printDay(m metrics.DailyMetrics) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Metrics for %s", m.Date)))
	fmt.Printf("  Total score:        %.2f (activities %.2f + vitality %.2f)\n", m.TotalScore, m.ActivityScore, m.VitalityScore)
	fmt.Printf("  Time logged:        %d min\n", m.TotalMinutes)
	fmt.Printf("  Focus ratio:        %.1f%% (%d min)\n", m.FocusRatio, m.FocusMinutes)
	fmt.Printf("  Distraction ratio:  %.1f%% (%d min)\n", m.DistractionRatio, m.DistractionMinutes)
	fmt.Printf("  Throughput:         %.2f points/h\n", m.Throughput)
	fmt.Printf("  Focus by energy:    high %d / medium %d / low %d min\n",
		m.EnergyFocus.High, m.EnergyFocus.Medium, m.EnergyFocus.Low)
	tier := metrics.TierForDay(m)
	fmt.Printf("  Tier:               %s\n", tierCell(tier, tier.String()))
}
