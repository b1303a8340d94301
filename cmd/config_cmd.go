// Package cmd implements the budgetburn CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/config"
	"github.com/theirongolddev/budgetburn/internal/store"
	"github.com/theirongolddev/budgetburn/internal/tui/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	db := dbPath()
	source := "default"
	switch {
	case flagDB != "":
		source = "--db"
	case os.Getenv(config.EnvDBPath) != "":
		source = config.EnvDBPath
	case cfg.General.DBPath != "":
		source = "config"
	}
	fmt.Printf("    Database:      %s (%s)\n", db, source)
	if _, err := os.Stat(db); err == nil {
		if st, err := store.Open(db); err == nil {
			if v, err := st.SchemaVersion(); err == nil {
				fmt.Printf("    Schema:        v%d\n", v)
			}
			st.Close()
		}
	}
	fmt.Printf("    Alert limit:   %d\n", cfg.General.AlertLimit)
	fmt.Printf("    Schedule rows: %d\n", cfg.General.ScheduleRows)
	fmt.Println()

	fmt.Println("  [Payoff]")
	fmt.Printf("    Default strategy: %s\n", cfg.Payoff.DefaultStrategy)
	fmt.Printf("    Default extra:    $%.2f\n", cfg.Payoff.DefaultExtra)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s (available: %s)\n", cfg.Appearance.Theme, strings.Join(theme.Names(), ", "))
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Extra step: $%.2f\n", cfg.TUI.ExtraStep)
	fmt.Println()

	fmt.Println("  Run `budgetburn setup` to reconfigure.")
	return nil
}
