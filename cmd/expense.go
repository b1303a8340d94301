package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
)

var flagExpenseCategory string

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Manage planned monthly expenses",
	RunE:    runExpenseList,
}

var expenseAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Add a planned expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List planned expenses",
	Args:  cobra.NoArgs,
	RunE:  runExpenseList,
}

var expenseRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a planned expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseRm,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "Other", "Spending category")
	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseRmCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
	e, err := pipeline.NewExpense(args[0], flagExpenseCategory, args[1])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if e, err = st.AddExpense(e); err != nil {
		return err
	}
	fmt.Printf("  Added %s (%s, %s/mo)  id %s\n", e.Name, e.Category, cli.FormatMoney(e.Amount), e.ID)
	return nil
}

func runExpenseList(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	expenses, err := st.ListExpenses()
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Println("\n  No planned expenses. Add one with `budgetburn expense add NAME AMOUNT`.")
		return nil
	}

	var total float64
	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		total += e.Amount
		rows = append(rows, []string{e.Name, string(e.Category), cli.FormatMoney(e.Amount), e.ID})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatMoney(total), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Planned Expenses",
		Headers: []string{"Name", "Category", "Monthly", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runExpenseRm(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteExpense(args[0]); err != nil {
		return fmt.Errorf("removing expense %s: %w", args[0], err)
	}
	fmt.Printf("  Removed expense %s\n", args[0])
	return nil
}
