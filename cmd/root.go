package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/config"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/store"
	"github.com/theirongolddev/budgetburn/internal/tui/theme"
)

var (
	flagQuiet bool
	flagDB    string

	// cfg is loaded once before any command runs.
	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "budgetburn",
	Short: "Personal finance planner",
	Long:  "Plan your monthly budget, track spending against it, and simulate debt payoff.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		theme.SetActive(cfg.Appearance.Theme)
		return nil
	},
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (overrides config and "+config.EnvDBPath+")")
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.DBPath(cfg)
}

// openStore opens the planner database. The first open seeds the saved
// payoff settings from the [payoff] config section.
func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath())
	if err != nil {
		return nil, err
	}
	has, err := st.HasPayoffSettings()
	if err != nil {
		st.Close()
		return nil, err
	}
	if !has {
		ps := pipeline.CleanPayoffSettings(model.PayoffSettings{
			Strategy:     model.Strategy(cfg.Payoff.DefaultStrategy),
			ExtraPayment: cfg.Payoff.DefaultExtra,
		})
		if err := st.SavePayoffSettings(ps); err != nil {
			st.Close()
			return nil, err
		}
	}
	return st, nil
}

// withSnapshot opens the store, loads every table, and hands the snapshot to fn.
func withSnapshot(fn func(*store.Store, model.Snapshot) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.LoadSnapshot()
	if err != nil {
		return err
	}
	return fn(st, snap)
}

// resolveMonth validates a --month flag, defaulting to the current month.
func resolveMonth(month string) (string, error) {
	if month == "" {
		return pipeline.CurrentMonth(time.Now()), nil
	}
	if _, err := pipeline.ParseMonth(month); err != nil {
		return "", fmt.Errorf("invalid --month %q: want YYYY-MM", month)
	}
	return month, nil
}

func progressf(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
