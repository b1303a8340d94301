package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/store"
)

var (
	flagPayoffStrategy string
	flagPayoffExtra    float64
	flagPayoffCompare  bool
	flagPayoffRows     int
	flagPayoffSave     bool
)

var payoffCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Simulate debt payoff month by month",
	RunE:  runPayoff,
}

func init() {
	f := payoffCmd.Flags()
	f.StringVarP(&flagPayoffStrategy, "strategy", "s", "", "avalanche or snowball (default saved setting)")
	f.Float64VarP(&flagPayoffExtra, "extra", "e", 0, "Extra monthly payment (default saved setting)")
	f.BoolVar(&flagPayoffCompare, "compare", false, "Compare avalanche and snowball")
	f.IntVar(&flagPayoffRows, "rows", 0, "Schedule rows to show (0 uses config, -1 shows all)")
	f.BoolVar(&flagPayoffSave, "save", false, "Save --strategy and --extra as the default settings")
	rootCmd.AddCommand(payoffCmd)
}

// payoffSettings merges --strategy and --extra over the saved settings.
func payoffSettings(cmd *cobra.Command, saved model.PayoffSettings) (model.PayoffSettings, error) {
	ps := saved
	if cmd.Flags().Changed("strategy") {
		s, err := pipeline.ParseStrategy(flagPayoffStrategy)
		if err != nil {
			return ps, err
		}
		ps.Strategy = s
	}
	if cmd.Flags().Changed("extra") {
		if flagPayoffExtra < 0 {
			return ps, fmt.Errorf("--extra must not be negative")
		}
		ps.ExtraPayment = engine.Round2(flagPayoffExtra)
	}
	return ps, nil
}

func runPayoff(cmd *cobra.Command, _ []string) error {
	return withSnapshot(func(st *store.Store, snap model.Snapshot) error {
		ps, err := payoffSettings(cmd, snap.Payoff)
		if err != nil {
			return err
		}
		if flagPayoffSave {
			if err := st.SavePayoffSettings(ps); err != nil {
				return err
			}
			progressf("  Saved %s with %s extra as default\n", ps.Strategy, cli.FormatMoney(ps.ExtraPayment))
		}

		if len(snap.Debts) == 0 {
			fmt.Println("\n  " + engine.LabelNoDebts + ". Add one with `budgetburn debt add`.")
			return nil
		}

		if flagPayoffCompare {
			printComparison(engine.ComparePayoff(snap.Debts, ps.ExtraPayment))
			return nil
		}

		plan := engine.SimulatePayoff(snap.Debts, ps.Strategy, ps.ExtraPayment)
		printPlan(plan)
		return nil
	})
}

func printPlan(plan model.PayoffPlan) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PAYOFF  %s + %s/mo", strings.ToUpper(string(plan.Strategy)), cli.FormatMoney(plan.ExtraPayment))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Result", plan.Label},
			{"Months", cli.FormatMonths(plan.Months)},
			{"Payoff date", cli.FormatPayoffDate(time.Now(), plan.Months)},
			{"Total interest", cli.FormatMoney(plan.TotalInterest)},
			{"Total paid", cli.FormatMoney(plan.TotalPaid)},
		},
	}))

	if len(plan.Schedule) == 0 {
		return
	}

	balances := make([]float64, len(plan.Schedule))
	for i, rec := range plan.Schedule {
		balances[i] = rec.TotalBalanceRemaining
	}
	fmt.Printf("\n  Balance  %s\n", cli.RenderSparkline(cli.Downsample(balances, 48)))

	limit := flagPayoffRows
	if limit == 0 {
		limit = cfg.General.ScheduleRows
	}
	if limit < 0 || limit > len(plan.Schedule) {
		limit = len(plan.Schedule)
	}

	rows := make([][]string, 0, limit)
	for _, rec := range plan.Schedule[:limit] {
		target := rec.Target
		if target == "" {
			target = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", rec.Month),
			target,
			cli.FormatMoney(rec.Paid),
			cli.FormatMoney(rec.Interest),
			cli.FormatMoney(rec.Principal),
			cli.FormatMoney(rec.TotalBalanceRemaining),
			strings.Join(rec.PaidOff, ", "),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Schedule",
		Headers: []string{"Mo", "Target", "Paid", "Interest", "Principal", "Balance", "Paid Off"},
		Rows:    rows,
	}))
	if rest := len(plan.Schedule) - limit; rest > 0 {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  … %d more months (--rows -1 or `budgetburn export schedule`)", rest)))
	}
}

func printComparison(cmp model.PayoffComparison) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("AVALANCHE VS SNOWBALL  + %s/mo", cli.FormatMoney(cmp.Avalanche.ExtraPayment))))
	fmt.Println()

	a, s := cmp.Avalanche, cmp.Snowball
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Avalanche", "Snowball"},
		Rows: [][]string{
			{"Result", a.Label, s.Label},
			{"Months", cli.FormatMonths(a.Months), cli.FormatMonths(s.Months)},
			{"Total interest", cli.FormatMoney(a.TotalInterest), cli.FormatMoney(s.TotalInterest)},
			{"Total paid", cli.FormatMoney(a.TotalPaid), cli.FormatMoney(s.TotalPaid)},
		},
	}))

	if !a.Feasible() || !s.Feasible() {
		fmt.Println(cli.RenderWarning("  At least one plan never finishes; raise the extra payment."))
		return
	}
	fmt.Printf("\n  Avalanche saves %s in interest and %d months.\n",
		cli.FormatSigned(cmp.InterestSaved), cmp.MonthsSaved)
}
