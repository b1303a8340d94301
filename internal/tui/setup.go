package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
)

// IncomeValues holds the text fields of the income setup form.
type IncomeValues struct {
	Frequency  string
	Gross      string
	TaxRate    string
	Deductions string
	Other      string
}

// NewIncomeValues prefills the form from a saved profile.
func NewIncomeValues(p model.IncomeProfile) IncomeValues {
	format := func(v float64) string {
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	freq := string(p.Frequency)
	if freq == "" {
		freq = string(model.Monthly)
	}
	return IncomeValues{
		Frequency:  freq,
		Gross:      format(p.GrossPerPaycheck),
		TaxRate:    format(p.TaxRatePct),
		Deductions: format(p.OtherDeductionsPerPaycheck),
		Other:      format(p.OtherMonthlyIncome),
	}
}

// Profile converts the form values into a cleaned income profile.
func (v IncomeValues) Profile() (model.IncomeProfile, error) {
	freq, err := pipeline.ParseFrequency(v.Frequency)
	if err != nil {
		return model.IncomeProfile{}, err
	}
	p := model.IncomeProfile{Frequency: freq}
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"gross pay", v.Gross, &p.GrossPerPaycheck},
		{"tax rate", v.TaxRate, &p.TaxRatePct},
		{"deductions", v.Deductions, &p.OtherDeductionsPerPaycheck},
		{"other income", v.Other, &p.OtherMonthlyIncome},
	}
	for _, f := range fields {
		n, err := engine.ParseAmount(f.raw)
		if err != nil {
			return model.IncomeProfile{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}
	return pipeline.CleanIncome(p), nil
}

func validateAmount(s string) error {
	v, err := engine.ParseAmount(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateTaxRate(s string) error {
	if err := validateAmount(s); err != nil {
		return err
	}
	if v, _ := engine.ParseAmount(s); v > pipeline.MaxTaxRatePct {
		return fmt.Errorf("must be at most %d%%", pipeline.MaxTaxRatePct)
	}
	return nil
}

// NewIncomeForm builds the income profile form bound to v.
func NewIncomeForm(v *IncomeValues) *huh.Form {
	freqOptions := []huh.Option[string]{
		huh.NewOption("Monthly (12/yr)", string(model.Monthly)),
		huh.NewOption("Semi-monthly (24/yr)", string(model.Semimonthly)),
		huh.NewOption("Bi-weekly (26/yr)", string(model.Biweekly)),
		huh.NewOption("Weekly (52/yr)", string(model.Weekly)),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgetburn").
				Description("Tell us about your paycheck.\nAmounts are per paycheck unless noted."),
			huh.NewSelect[string]().
				Title("Pay frequency").
				Options(freqOptions...).
				Value(&v.Frequency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Gross pay per paycheck").
				Placeholder("3200").
				Validate(validateAmount).
				Value(&v.Gross),
			huh.NewInput().
				Title("Tax rate (%)").
				Placeholder("22").
				Validate(validateTaxRate).
				Value(&v.TaxRate),
			huh.NewInput().
				Title("Other deductions per paycheck").
				Description("401k, insurance premiums, and similar.").
				Placeholder("0").
				Validate(validateAmount).
				Value(&v.Deductions),
			huh.NewInput().
				Title("Other monthly income").
				Placeholder("0").
				Validate(validateAmount).
				Value(&v.Other),
		),
	).WithTheme(huh.ThemeCharm())
}
