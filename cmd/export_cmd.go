package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/export"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/store"
)

var (
	flagExportOut   string
	flagExportMonth string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write reports as CSV",
}

var exportBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget vs actual for one month",
	Args:  cobra.NoArgs,
	RunE:  runExportBudget,
}

var exportScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Full payoff schedule (accepts --strategy and --extra)",
	Args:  cobra.NoArgs,
	RunE:  runExportSchedule,
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&flagExportOut, "out", "o", "-", "Output file (- for stdout)")
	exportBudgetCmd.Flags().StringVar(&flagExportMonth, "month", "", "Budget month (YYYY-MM, default current)")
	exportScheduleCmd.Flags().StringVarP(&flagPayoffStrategy, "strategy", "s", "", "avalanche or snowball (default saved setting)")
	exportScheduleCmd.Flags().Float64VarP(&flagPayoffExtra, "extra", "e", 0, "Extra monthly payment (default saved setting)")

	exportCmd.AddCommand(exportBudgetCmd, exportScheduleCmd)
	rootCmd.AddCommand(exportCmd)
}

// writeOut runs write against --out, creating the file when it is not "-".
func writeOut(write func(io.Writer) error) error {
	if flagExportOut == "" || flagExportOut == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(flagExportOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagExportOut, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", flagExportOut, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", flagExportOut, err)
	}
	progressf("  Wrote %s\n", flagExportOut)
	return nil
}

func runExportBudget(_ *cobra.Command, _ []string) error {
	month, err := resolveMonth(flagExportMonth)
	if err != nil {
		return err
	}
	return withSnapshot(func(_ *store.Store, snap model.Snapshot) error {
		report := engine.AnalyzeBudget(snap.Expenses, pipeline.FilterByMonth(snap.Transactions, month))
		return writeOut(func(w io.Writer) error {
			return export.WriteBudgetCSV(w, report)
		})
	})
}

func runExportSchedule(cmd *cobra.Command, _ []string) error {
	return withSnapshot(func(_ *store.Store, snap model.Snapshot) error {
		ps, err := payoffSettings(cmd, snap.Payoff)
		if err != nil {
			return err
		}
		plan := engine.SimulatePayoff(snap.Debts, ps.Strategy, ps.ExtraPayment)
		return writeOut(func(w io.Writer) error {
			return export.WriteScheduleCSV(w, plan)
		})
	})
}
