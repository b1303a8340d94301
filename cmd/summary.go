package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/store"
)

var flagSummaryMonth string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, budget, and payoff at a glance",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagSummaryMonth, "month", "", "Budget month (YYYY-MM, default current)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	month, err := resolveMonth(flagSummaryMonth)
	if err != nil {
		return err
	}

	return withSnapshot(func(_ *store.Store, snap model.Snapshot) error {
		if snap.Income.GrossPerPaycheck == 0 && len(snap.Expenses) == 0 && len(snap.Debts) == 0 {
			fmt.Println("\n  Nothing planned yet.")
			fmt.Println("  Run `budgetburn setup` to enter your income, then add expenses and debts.")
			return nil
		}

		ov := pipeline.Overview(snap, month)
		inc := ov.Income
		bud := ov.Budget
		plan := ov.Payoff

		fmt.Println()
		fmt.Println(cli.RenderTitle("BUDGET  " + cli.FormatMonthLabel(month)))
		fmt.Println()

		rows := [][]string{
			{"Monthly gross", cli.FormatMoney(inc.MonthlyGross)},
			{"Taxes", cli.FormatMoney(inc.Taxes)},
			{"Deductions", cli.FormatMoney(inc.Deductions)},
			{"Monthly net", cli.FormatMoney(inc.MonthlyNet)},
			{"---"},
			{"Planned", cli.FormatMoney(bud.TotalPlanned)},
			{"Spent", cli.FormatMoney(bud.TotalActual)},
			{"Remaining", cli.FormatSigned(bud.TotalRemaining)},
			{"Cash flow", cli.FormatSigned(ov.CashFlow)},
			{"---"},
			{"Strategy", string(plan.Strategy)},
			{"Extra / month", cli.FormatMoney(plan.ExtraPayment)},
			{"Debt-free in", cli.FormatMonths(plan.Months)},
			{"Payoff date", cli.FormatPayoffDate(time.Now(), plan.Months)},
			{"Total interest", cli.FormatMoney(plan.TotalInterest)},
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}))

		if alerts := bud.TopAlerts(cfg.General.AlertLimit); len(alerts) > 0 {
			fmt.Println()
			fmt.Println("  Alerts")
			for _, r := range alerts {
				fmt.Printf("    %s %-15s %s of %s\n",
					cli.StatusBadge(r.Status), r.Category,
					cli.FormatMoney(r.Actual), cli.FormatMoney(r.Planned))
			}
		}
		if !plan.Feasible() {
			fmt.Println()
			fmt.Println(cli.RenderWarning(plan.Label))
		}
		return nil
	})
}
