package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/store"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Manage planning tasks"}
	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskToggleCmd())
	cmd.AddCommand(taskLogCmd())
	cmd.AddCommand(taskDeleteCmd())
	return cmd
}

func taskAddCmd() *cobra.Command {
	var title, priority, scope, due string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			var duePtr *string
			if due != "" {
				duePtr = &due
			}
			return withStore(func(st *store.Store) error {
				t, err := st.AddTask(store.TaskParams{
					Title:    title,
					Priority: store.TaskPriority(priority),
					Scope:    store.TaskScope(scope),
					DueDate:  duePtr,
				})
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(t)
				}
				fmt.Printf("Added task %s (%s)\n", t.Title, t.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&priority, "priority", "medium", "priority (high, medium, low)")
	cmd.Flags().StringVar(&scope, "scope", "inbox", "scope (today, week, month, inbox)")
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func taskListCmd() *cobra.Command {
	var scope, due string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				var tasks []store.Task
				var err error
				switch {
				case scope != "":
					tasks, err = st.TasksByScope(store.TaskScope(scope))
				case due != "":
					tasks, err = st.TasksByDate(due)
				default:
					tasks, err = st.Tasks()
				}
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(tasks)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Title", "Priority", "Scope", "Due", "Done", "Minutes"})
				for _, t := range tasks {
					dueStr := ""
					if t.DueDate != nil {
						dueStr = *t.DueDate
					}
					tw.AppendRow(table.Row{t.ID, t.Title, t.Priority, t.Scope, dueStr, t.Completed, t.TimeLoggedMin})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "filter by scope (today, week, month, inbox)")
	cmd.Flags().StringVar(&due, "due", "", "filter by due date YYYY-MM-DD")
	return cmd
}

func taskToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Complete or reopen a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				t, err := st.ToggleTask(args[0])
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(t)
				}
				state := "reopened"
				if t.Completed {
					state = "completed"
				}
				fmt.Printf("Task %s %s\n", t.Title, state)
				return nil
			})
		},
	}
}

func taskLogCmd() *cobra.Command {
	var minutes int64
	cmd := &cobra.Command{
		Use:   "log <id>",
		Short: "Log time spent on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				t, err := st.LogTaskTime(args[0], minutes)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(t)
				}
				fmt.Printf("Task %s: %d minutes logged total\n", t.Title, t.TimeLoggedMin)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&minutes, "minutes", 0, "minutes to add")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				return st.DeleteTask(args[0])
			})
		},
	}
}
