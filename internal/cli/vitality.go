package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/store"
)

func vitalityCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "vitality", Short: "Daily habit bonuses"}
	cmd.AddCommand(vitalityListCmd())
	cmd.AddCommand(vitalityLogCmd())
	cmd.AddCommand(vitalityEntriesCmd())
	cmd.AddCommand(vitalityAddCmd())
	return cmd
}

func vitalityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habit bonuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				bonuses, err := st.VitalityBonuses()
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(bonuses)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Points", "Description"})
				for _, b := range bonuses {
					tw.AppendRow(table.Row{b.ID, b.Name, b.Points, b.Description})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func vitalityLogCmd() *cobra.Command {
	var date string
	var undo bool
	cmd := &cobra.Command{
		Use:   "log <bonus-id>",
		Short: "Mark a habit completed (or undo it) for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().UTC().Format("2006-01-02")
			}
			return withStore(func(st *store.Store) error {
				e, err := st.UpsertVitalityEntry(date, args[0], !undo)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(e)
				}
				state := "completed"
				if undo {
					state = "cleared"
				}
				fmt.Printf("%s %s on %s\n", args[0], state, date)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&undo, "undo", false, "mark the habit as not completed")
	return cmd
}

func vitalityEntriesCmd() *cobra.Command {
	var date, from, to string
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Show habit completions for a date or range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				var entries []store.VitalityEntry
				var err error
				switch {
				case from != "" && to != "":
					entries, err = st.VitalityEntriesInRange(from, to)
				case date != "":
					entries, err = st.VitalityEntriesByDate(date)
				default:
					entries, err = st.VitalityEntriesByDate(time.Now().UTC().Format("2006-01-02"))
				}
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(entries)
				}
				bonuses, err := st.VitalityBonuses()
				if err != nil {
					return err
				}
				nameByID := make(map[string]string, len(bonuses))
				for _, b := range bonuses {
					nameByID[b.ID] = b.Name
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Date", "Habit", "Completed"})
				for _, e := range entries {
					tw.AppendRow(table.Row{e.Date, nameByID[e.BonusID], e.Completed})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&from, "from", "", "range start YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end YYYY-MM-DD")
	return cmd
}

func vitalityAddCmd() *cobra.Command {
	var name, description string
	var points float64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Define a new habit bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				b, err := st.AddVitalityBonus(name, points, description)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(b)
				}
				fmt.Printf("Added habit %s worth %.0f points (%s)\n", b.Name, b.Points, b.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "habit name")
	cmd.Flags().Float64Var(&points, "points", 0, "points awarded on completion")
	cmd.Flags().StringVar(&description, "description", "", "description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("points")
	return cmd
}
