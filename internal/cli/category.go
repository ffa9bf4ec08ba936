package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/store"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "category", Short: "Manage activity categories"}
	cmd.AddCommand(categoryListCmd())
	cmd.AddCommand(categoryAddCmd())
	cmd.AddCommand(categoryUpdateCmd())
	cmd.AddCommand(categoryDeleteCmd())
	return cmd
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				categories, err := st.Categories()
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(categories)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Role", "Points/h", "Description"})
				for _, c := range categories {
					tw.AppendRow(table.Row{c.ID, c.Name, c.Role, c.Points, c.Description})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func categoryAddCmd() *cobra.Command {
	var name, role, color, description string
	var points float64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				c, err := st.AddCategory(name, store.CategoryRole(role), points, color, description)
				if err != nil {
					return err
				}
				if jsonMode() {
					return printJSON(c)
				}
				fmt.Printf("Added category %s (%s)\n", c.Name, c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&role, "role", "neutral", "role (focus, distraction, neutral)")
	cmd.Flags().Float64Var(&points, "points", 0, "signed points per hour")
	cmd.Flags().StringVar(&color, "color", "#6C63FF", "display color")
	cmd.Flags().StringVar(&description, "description", "", "description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func categoryUpdateCmd() *cobra.Command {
	var name, role, color, description string
	var points float64
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				existing, err := st.GetCategory(args[0])
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("name") {
					name = existing.Name
				}
				if !cmd.Flags().Changed("role") {
					role = string(existing.Role)
				}
				if !cmd.Flags().Changed("points") {
					points = existing.Points
				}
				if !cmd.Flags().Changed("color") {
					color = existing.Color
				}
				if !cmd.Flags().Changed("description") {
					description = existing.Description
				}
				return st.UpdateCategory(args[0], name, store.CategoryRole(role), points, color, description)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&role, "role", "", "role (focus, distraction, neutral)")
	cmd.Flags().Float64Var(&points, "points", 0, "signed points per hour")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().StringVar(&description, "description", "", "description")
	return cmd
}

func categoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an unreferenced category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				return st.DeleteCategory(args[0])
			})
		},
	}
}
