// Package cli wires the command tree. Commands open the store, call
// into store/metrics/report, and render; no business logic lives here.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oguzb/momentum/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Local productivity and vitality tracker",
	Long: `Momentum logs activities and daily habit completions into a local
SQLite database and derives daily, weekly, and monthly effectiveness
metrics: total score, focus and distraction ratios, productivity
throughput, and the energy/focus correlation.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("MOMENTUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("db", "", "database path (default: user config dir)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(categoryCmd())
	rootCmd.AddCommand(activityCmd())
	rootCmd.AddCommand(vitalityCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(goalCmd())
	rootCmd.AddCommand(metricsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(dataCmd())
	rootCmd.AddCommand(seedCmd())
}

// withStore opens the configured database, runs fn, and closes it.
func withStore(fn func(st *store.Store) error) error {
	path := viper.GetString("db")
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}
	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func jsonMode() bool {
	return viper.GetBool("json")
}
