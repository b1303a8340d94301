package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
)

var (
	flagIncomeFrequency  string
	flagIncomeGross      float64
	flagIncomeTaxRate    float64
	flagIncomeDeductions float64
	flagIncomeOther      float64
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Show the monthly income breakdown",
	RunE:  runIncome,
}

var incomeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the income profile",
	Long:  "Update the income profile. Only the flags you pass are changed.",
	RunE:  runIncomeSet,
}

func init() {
	f := incomeSetCmd.Flags()
	f.StringVar(&flagIncomeFrequency, "frequency", "", "Pay frequency: monthly, semimonthly, biweekly, weekly")
	f.Float64Var(&flagIncomeGross, "gross", 0, "Gross pay per paycheck")
	f.Float64Var(&flagIncomeTaxRate, "tax-rate", 0, "Tax rate percent (0-60)")
	f.Float64Var(&flagIncomeDeductions, "deductions", 0, "Other deductions per paycheck")
	f.Float64Var(&flagIncomeOther, "other", 0, "Other monthly income")

	incomeCmd.AddCommand(incomeSetCmd)
	rootCmd.AddCommand(incomeCmd)
}

func runIncome(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.LoadIncome()
	if err != nil {
		return err
	}
	printIncome(p)
	return nil
}

func runIncomeSet(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.LoadIncome()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("frequency") {
		if p.Frequency, err = pipeline.ParseFrequency(flagIncomeFrequency); err != nil {
			return err
		}
	}
	if flags.Changed("gross") {
		p.GrossPerPaycheck = flagIncomeGross
	}
	if flags.Changed("tax-rate") {
		if flagIncomeTaxRate > pipeline.MaxTaxRatePct {
			progressf("  Tax rate capped at %d%%\n", pipeline.MaxTaxRatePct)
		}
		p.TaxRatePct = flagIncomeTaxRate
	}
	if flags.Changed("deductions") {
		p.OtherDeductionsPerPaycheck = flagIncomeDeductions
	}
	if flags.Changed("other") {
		p.OtherMonthlyIncome = flagIncomeOther
	}

	p = pipeline.CleanIncome(p)
	if err := st.SaveIncome(p); err != nil {
		return err
	}
	printIncome(p)
	return nil
}

func printIncome(p model.IncomeProfile) {
	b := engine.NormalizeIncome(p)

	fmt.Println()
	fmt.Println(cli.RenderTitle("INCOME"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Per Paycheck", "Monthly"},
		Rows: [][]string{
			{"Frequency", string(p.Frequency), fmt.Sprintf("%.2f checks", b.PaychecksPerMonth)},
			{"---"},
			{"Gross", cli.FormatMoney(p.GrossPerPaycheck), cli.FormatMoney(b.MonthlyGross)},
			{"Taxes", cli.FormatPercent(p.TaxRatePct), cli.FormatMoney(b.Taxes)},
			{"Deductions", cli.FormatMoney(p.OtherDeductionsPerPaycheck), cli.FormatMoney(b.Deductions)},
			{"Other income", "", cli.FormatMoney(p.OtherMonthlyIncome)},
			{"---"},
			{"Net", "", cli.FormatMoney(b.MonthlyNet)},
		},
	}))
}
