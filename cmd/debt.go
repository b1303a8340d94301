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

var (
	flagDebtName    string
	flagDebtBalance float64
	flagDebtAPR     float64
	flagDebtMin     float64
)

var debtCmd = &cobra.Command{
	Use:     "debt",
	Aliases: []string{"debts"},
	Short:   "Manage debts",
	RunE:    runDebtList,
}

var debtAddCmd = &cobra.Command{
	Use:   "add NAME BALANCE APR MIN_PAYMENT",
	Short: "Add a debt (APR in percent)",
	Args:  cobra.ExactArgs(4),
	RunE:  runDebtAdd,
}

var debtListCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts",
	Args:  cobra.NoArgs,
	RunE:  runDebtList,
}

var debtUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a debt's name, balance, APR, or minimum payment",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtUpdate,
}

var debtRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a debt",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtRm,
}

func init() {
	f := debtUpdateCmd.Flags()
	f.StringVar(&flagDebtName, "name", "", "New name")
	f.Float64Var(&flagDebtBalance, "balance", 0, "New balance")
	f.Float64Var(&flagDebtAPR, "apr", 0, "New APR percent")
	f.Float64Var(&flagDebtMin, "min", 0, "New minimum payment")

	debtCmd.AddCommand(debtAddCmd, debtListCmd, debtUpdateCmd, debtRmCmd)
	rootCmd.AddCommand(debtCmd)
}

func runDebtAdd(_ *cobra.Command, args []string) error {
	d, err := pipeline.NewDebt(args[0], args[1], args[2], args[3])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if d, err = st.AddDebt(d); err != nil {
		return err
	}
	fmt.Printf("  Added %s: %s at %.2f%% APR, %s minimum  id %s\n",
		d.Name, cli.FormatMoney(d.Balance), d.APRPct, cli.FormatMoney(d.MinPayment), d.ID)
	return nil
}

func runDebtList(_ *cobra.Command, _ []string) error {
	return withSnapshot(func(_ *store.Store, snap model.Snapshot) error {
		if len(snap.Debts) == 0 {
			fmt.Println("\n  No debts. Add one with `budgetburn debt add NAME BALANCE APR MIN_PAYMENT`.")
			return nil
		}

		plan := engine.SimulatePayoff(snap.Debts, snap.Payoff.Strategy, snap.Payoff.ExtraPayment)
		paidOff := make(map[string]int)
		for _, rec := range plan.Schedule {
			for _, name := range rec.PaidOff {
				if _, ok := paidOff[name]; !ok {
					paidOff[name] = rec.Month
				}
			}
		}

		var balance, minimums float64
		rows := make([][]string, 0, len(snap.Debts)+2)
		for _, d := range snap.Debts {
			balance += d.Balance
			minimums += d.MinPayment
			done := "never"
			if m, ok := paidOff[d.Name]; ok {
				done = cli.FormatMonths(&m)
			}
			rows = append(rows, []string{
				d.Name,
				cli.FormatMoney(d.Balance),
				fmt.Sprintf("%.2f%%", d.APRPct),
				cli.FormatMoney(d.MinPayment),
				done,
				d.ID,
			})
		}
		rows = append(rows, []string{"---"},
			[]string{"Total", cli.FormatMoney(balance), "", cli.FormatMoney(minimums), cli.FormatMonths(plan.Months), ""})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Debts (%s, %s extra)", plan.Strategy, cli.FormatMoney(plan.ExtraPayment)),
			Headers: []string{"Name", "Balance", "APR", "Minimum", "Paid Off In", "ID"},
			Rows:    rows,
		}))
		return nil
	})
}

func runDebtUpdate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	debts, err := st.ListDebts()
	if err != nil {
		return err
	}
	var d *model.Debt
	for i := range debts {
		if debts[i].ID == args[0] {
			d = &debts[i]
			break
		}
	}
	if d == nil {
		return fmt.Errorf("updating debt %s: %w", args[0], store.ErrNotFound)
	}

	flags := cmd.Flags()
	name, balance, apr, minPay := d.Name, d.Balance, d.APRPct, d.MinPayment
	if flags.Changed("name") {
		name = flagDebtName
	}
	if flags.Changed("balance") {
		balance = flagDebtBalance
	}
	if flags.Changed("apr") {
		apr = flagDebtAPR
	}
	if flags.Changed("min") {
		minPay = flagDebtMin
	}

	updated, err := pipeline.NewDebt(name, balance, apr, minPay)
	if err != nil {
		return err
	}
	updated.ID = d.ID
	if err := st.UpdateDebt(updated); err != nil {
		return err
	}
	fmt.Printf("  Updated %s: %s at %.2f%% APR, %s minimum\n",
		updated.Name, cli.FormatMoney(updated.Balance), updated.APRPct, cli.FormatMoney(updated.MinPayment))
	return nil
}

func runDebtRm(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteDebt(args[0]); err != nil {
		return fmt.Errorf("removing debt %s: %w", args[0], err)
	}
	fmt.Printf("  Removed debt %s\n", args[0])
	return nil
}
