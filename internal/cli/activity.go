package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/store"
)

func activityCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "activity", Short: "Log and manage activities"}
	cmd.AddCommand(activityAddCmd())
	cmd.AddCommand(activityListCmd())
	cmd.AddCommand(activityUpdateCmd())
	cmd.AddCommand(activityDeleteCmd())
	return cmd
}

// parseActivityFlags turns the shared add/update flags into params.
// Start and end accept either full RFC3339 timestamps or HH:MM on the
// activity's date.
func parseActivityFlags(name, category, date, start, end, energy string) (store.ActivityParams, error) {
	var p store.ActivityParams
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	startT, err := parseClock(date, start)
	if err != nil {
		return p, fmt.Errorf("bad start time %q: %w", start, err)
	}
	endT, err := parseClock(date, end)
	if err != nil {
		return p, fmt.Errorf("bad end time %q: %w", end, err)
	}
	return store.ActivityParams{
		Name:       name,
		CategoryID: category,
		Date:       date,
		StartTime:  startT,
		EndTime:    endT,
		Energy:     store.EnergyLevel(energy),
	}, nil
}

func parseClock(date, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04", date+" "+value)
}

func activityAddCmd() *cobra.Command {
	var name, category, date, start, end, energy string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseActivityFlags(name, category, date, start, end, energy)
			if err != nil {
				return err
			}
			return withStore(func(st *store.Store) error {
				a, err := st.AddActivity(p)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(a)
				}
				fmt.Printf("Logged %s: %d min, %.2f points\n", a.Name, a.DurationMin, a.Points)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "activity name")
	cmd.Flags().StringVar(&category, "category", "", "category id")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&start, "start", "", "start time (HH:MM or RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "end time (HH:MM or RFC3339)")
	cmd.Flags().StringVar(&energy, "energy", "medium", "energy level (high, medium, low)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func activityListCmd() *cobra.Command {
	var date, from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities for a date or range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				var activities []store.Activity
				var err error
				switch {
				case from != "" && to != "":
					activities, err = st.ActivitiesInRange(from, to)
				case date != "":
					activities, err = st.ActivitiesByDate(date)
				default:
					activities, err = st.ActivitiesByDate(time.Now().UTC().Format("2006-01-02"))
				}
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(activities)
				}
				categories, err := st.Categories()
				if err != nil {
					return err
				}
				nameByID := make(map[string]string, len(categories))
				for _, c := range categories {
					nameByID[c.ID] = c.Name
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Date", "Name", "Category", "Minutes", "Energy", "Points"})
				for _, a := range activities {
					tw.AppendRow(table.Row{a.ID, a.Date, a.Name, nameByID[a.CategoryID], a.DurationMin, a.Energy, fmt.Sprintf("%.2f", a.Points)})
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

func activityUpdateCmd() *cobra.Command {
	var name, category, date, start, end, energy string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rewrite an activity (duration and points are recomputed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				existing, err := st.GetActivity(args[0])
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("name") {
					name = existing.Name
				}
				if !cmd.Flags().Changed("category") {
					category = existing.CategoryID
				}
				if !cmd.Flags().Changed("date") {
					date = existing.Date
				}
				if !cmd.Flags().Changed("start") {
					start = existing.StartTime.Format(time.RFC3339)
				}
				if !cmd.Flags().Changed("end") {
					end = existing.EndTime.Format(time.RFC3339)
				}
				if !cmd.Flags().Changed("energy") {
					energy = string(existing.Energy)
				}
				p, err := parseActivityFlags(name, category, date, start, end, energy)
				if err != nil {
					return err
				}
				a, err := st.UpdateActivity(args[0], p)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(a)
				}
				fmt.Printf("Updated %s: %d min, %.2f points\n", a.Name, a.DurationMin, a.Points)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "activity name")
	cmd.Flags().StringVar(&category, "category", "", "category id")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "start", "", "start time (HH:MM or RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "end time (HH:MM or RFC3339)")
	cmd.Flags().StringVar(&energy, "energy", "", "energy level (high, medium, low)")
	return cmd
}

func activityDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				return st.DeleteActivity(args[0])
			})
		},
	}
}
