package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oguzb/momentum/internal/export"
	"github.com/oguzb/momentum/internal/store"
)

func dataCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "data", Short: "Export, import, and clear local data"}
	cmd.AddCommand(dataExportCmd())
	cmd.AddCommand(dataImportCmd())
	cmd.AddCommand(dataClearCmd())
	return cmd
}

func dataExportCmd() *cobra.Command {
	var file, csvFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a full snapshot to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				snap, err := st.ExportAll()
				if err != nil {
					return err
				}
				if err := export.WriteSnapshot(snap, file); err != nil {
					return err
				}
				if csvFile != "" {
					catByID := make(map[string]store.Category, len(snap.Categories))
					for _, c := range snap.Categories {
						catByID[c.ID] = c
					}
					if err := export.ToCSV(snap.Activities, catByID, csvFile); err != nil {
						return err
					}
				}
				fmt.Printf("Exported %d activities, %d entries, %d tasks, %d goals to %s\n",
					len(snap.Activities), len(snap.VitalityEntries), len(snap.Tasks), len(snap.Goals), file)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "momentum-export.json", "snapshot file path")
	cmd.Flags().StringVar(&csvFile, "csv", "", "also write activities to a CSV file")
	return cmd
}

func dataImportCmd() *cobra.Command {
	var file string
	var replace bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := export.ReadSnapshot(file)
			if err != nil {
				return err
			}
			return withStore(func(st *store.Store) error {
				if replace {
					if err := st.ClearAll(); err != nil {
						return err
					}
				}
				if err := st.ImportAll(snap); err != nil {
					return err
				}
				fmt.Printf("Imported snapshot from %s (exported at %s)\n", file, snap.ExportedAt)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "snapshot file path")
	cmd.Flags().BoolVar(&replace, "replace", false, "clear mutable collections before importing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func dataClearCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty activities, entries, tasks, and goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("pass --yes to confirm clearing all mutable data")
			}
			return withStore(func(st *store.Store) error {
				return st.ClearAll()
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed default categories and habit bonuses (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(st *store.Store) error {
				if err := st.SeedDefaults(); err != nil {
					return err
				}
				fmt.Println("Defaults seeded")
				return nil
			})
		},
	}
}
