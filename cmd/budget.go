package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/store"
)

var flagBudgetMonth string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Planned vs actual spending by category",
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().StringVar(&flagBudgetMonth, "month", "", "Budget month (YYYY-MM, default current)")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	month, err := resolveMonth(flagBudgetMonth)
	if err != nil {
		return err
	}

	return withSnapshot(func(_ *store.Store, snap model.Snapshot) error {
		txns := pipeline.FilterByMonth(snap.Transactions, month)
		report := engine.AnalyzeBudget(snap.Expenses, txns)

		fmt.Println()
		fmt.Println(cli.RenderTitle("BUDGET VS ACTUAL  " + cli.FormatMonthLabel(month)))
		fmt.Println()

		if len(report.Rows) == 0 {
			fmt.Println("  No planned expenses or spending this month.")
			fmt.Println("  Add some with `budgetburn expense add` or `budgetburn txn import`.")
			return nil
		}

		rows := make([][]string, 0, len(report.Rows)+2)
		for _, r := range report.Rows {
			rows = append(rows, []string{
				string(r.Category),
				cli.FormatMoney(r.Planned),
				cli.FormatMoney(r.Actual),
				cli.FormatSigned(r.Remaining),
				cli.RenderUsageBar(r.PctUsed, 10) + " " + cli.FormatPercent(r.PctUsed),
				cli.StatusBadge(r.Status),
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{
			"Total",
			cli.FormatMoney(report.TotalPlanned),
			cli.FormatMoney(report.TotalActual),
			cli.FormatSigned(report.TotalRemaining),
			"",
			"",
		})

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Category", "Planned", "Actual", "Remaining", "Used", "Status"},
			Rows:    rows,
		}))
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  %d transactions in %s", len(txns), month)))
		return nil
	})
}
