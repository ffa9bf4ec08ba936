package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/report"
	"github.com/oguzb/momentum/internal/store"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "goal", Short: "Daily time-allocation goals"}
	cmd.AddCommand(goalSetCmd())
	cmd.AddCommand(goalListCmd())
	return cmd
}

func goalSetCmd() *cobra.Command {
	var date, category string
	var minutes int64
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a category time target for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().UTC().Format("2006-01-02")
			}
			return withStore(func(st *store.Store) error {
				g, err := st.SetDailyGoal(date, category, minutes)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(g)
				}
				fmt.Printf("Goal set: %d min of %s on %s\n", g.TargetMin, g.CategoryID, g.Date)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&category, "category", "", "category id")
	cmd.Flags().Int64Var(&minutes, "minutes", 0, "target minutes")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func goalListCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show goal progress for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().UTC().Format("2006-01-02")
			}
			return withStore(func(st *store.Store) error {
				progress, err := report.Goals(st, date)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(progress)
				}
				if len(progress) == 0 {
					fmt.Printf("No goals set for %s\n", date)
					return nil
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Category", "Target (min)", "Actual (min)", "Progress"})
				for _, g := range progress {
					tw.AppendRow(table.Row{g.CategoryName, g.TargetMin, g.ActualMin, fmt.Sprintf("%.0f%%", g.Percent())})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	return cmd
}
