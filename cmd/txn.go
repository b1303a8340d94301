package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/source"
)

var (
	flagTxnDesc   string
	flagTxnMonth  string
	flagTxnDryRun bool
)

var txnCmd = &cobra.Command{
	Use:     "txn",
	Aliases: []string{"transactions"},
	Short:   "Record and import spending",
	RunE:    runTxnList,
}

var txnAddCmd = &cobra.Command{
	Use:   "add DATE CATEGORY AMOUNT",
	Short: "Record a transaction (DATE is YYYY-MM-DD)",
	Args:  cobra.ExactArgs(3),
	RunE:  runTxnAdd,
}

var txnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTxnList,
}

var txnRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxnRm,
}

var txnImportCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Import transactions from .csv, .jsonl, and .yaml files under DIR",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxnImport,
}

func init() {
	txnAddCmd.Flags().StringVarP(&flagTxnDesc, "desc", "m", "", "Description (defaults to the category)")
	txnCmd.Flags().StringVar(&flagTxnMonth, "month", "", "Only show this month (YYYY-MM)")
	txnListCmd.Flags().StringVar(&flagTxnMonth, "month", "", "Only show this month (YYYY-MM)")
	txnImportCmd.Flags().BoolVar(&flagTxnDryRun, "dry-run", false, "Parse and validate without saving")
	txnCmd.AddCommand(txnAddCmd, txnListCmd, txnRmCmd, txnImportCmd)
	rootCmd.AddCommand(txnCmd)
}

func runTxnAdd(_ *cobra.Command, args []string) error {
	t, err := pipeline.NewTransaction(args[0], args[1], flagTxnDesc, args[2])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.AddTransactions([]model.Transaction{t}); err != nil {
		return err
	}
	fmt.Printf("  Recorded %s %s on %s (%s)  id %s\n",
		cli.FormatMoney(t.Amount), t.Category, t.Date.Format("2006-01-02"), t.Description, t.ID)
	return nil
}

func runTxnList(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	txns, err := st.ListTransactions()
	if err != nil {
		return err
	}
	if flagTxnMonth != "" {
		if _, err := pipeline.ParseMonth(flagTxnMonth); err != nil {
			return fmt.Errorf("invalid --month %q: want YYYY-MM", flagTxnMonth)
		}
		txns = pipeline.FilterByMonth(txns, flagTxnMonth)
	}
	if len(txns) == 0 {
		fmt.Println("\n  No transactions. Record one with `budgetburn txn add` or `budgetburn txn import DIR`.")
		return nil
	}

	var total float64
	rows := make([][]string, 0, len(txns)+2)
	for _, t := range txns {
		total += t.Amount
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			string(t.Category),
			t.Description,
			cli.FormatMoney(t.Amount),
			t.ID,
		})
	}
	rows = append(rows, []string{"---"},
		[]string{"Total", "", cli.FormatNumber(int64(len(txns))) + " txns", cli.FormatMoney(total), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Transactions",
		Headers: []string{"Date", "Category", "Description", "Amount", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runTxnRm(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteTransaction(args[0]); err != nil {
		return fmt.Errorf("removing transaction %s: %w", args[0], err)
	}
	fmt.Printf("  Removed transaction %s\n", args[0])
	return nil
}

func runTxnImport(_ *cobra.Command, args []string) error {
	progressf("  Scanning %s...\n", args[0])

	result, err := pipeline.Load(args[0], func(current, total int) {
		progressf("\r  Parsing %s", cli.RenderProgressBar(current, total, 20))
	})
	if err != nil {
		return err
	}
	if result.TotalFiles > 0 {
		progressf("\n")
	}

	if result.TotalFiles == 0 {
		fmt.Println("  No .csv, .jsonl, or .yaml files found.")
		return nil
	}

	if !flagTxnDryRun && len(result.Transactions) > 0 {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if _, err := st.AddTransactions(result.Transactions); err != nil {
			return err
		}
	}

	verb := "Imported"
	if flagTxnDryRun {
		verb = "Would import"
	}
	fmt.Printf("  %s %s transactions from %d files (%s)\n",
		verb, cli.FormatNumber(int64(len(result.Transactions))), result.ParsedFiles, formatCounts(result.Formats))

	if result.Rejected > 0 {
		fmt.Fprintf(os.Stderr, "  %d records failed validation (bad date or non-positive amount)\n", result.Rejected)
	}
	if result.ParseErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d records could not be parsed\n", result.ParseErrors)
	}
	if result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d files could not be read\n", result.FileErrors)
	}
	return nil
}

// formatCounts renders per-format file counts as "2 csv, 1 yaml".
func formatCounts(counts map[source.Format]int) string {
	var parts []string
	for _, f := range []source.Format{source.FormatCSV, source.FormatJSONL, source.FormatYAML} {
		if n := counts[f]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, f))
		}
	}
	return strings.Join(parts, ", ")
}
