package engine

import "github.com/theirongolddev/budgetburn/internal/model"

// paychecksPerMonth maps a pay frequency to its average paychecks per month.
var paychecksPerMonth = map[model.Frequency]float64{
	model.Monthly:     1,
	model.Semimonthly: 2,
	model.Biweekly:    26.0 / 12.0,
	model.Weekly:      52.0 / 12.0,
}

// PaychecksPerMonth returns the average number of paychecks a frequency
// produces in one month. Unrecognized frequencies count as monthly.
func PaychecksPerMonth(f model.Frequency) float64 {
	if n, ok := paychecksPerMonth[f]; ok {
		return n
	}
	return 1
}

// NormalizeIncome converts a paycheck profile into a monthly breakdown.
// Inputs are assumed to be already cleaned at the boundary.
func NormalizeIncome(p model.IncomeProfile) model.IncomeBreakdown {
	ppm := PaychecksPerMonth(p.Frequency)

	gross := p.GrossPerPaycheck * ppm
	taxes := gross * (p.TaxRatePct / 100)
	deductions := p.OtherDeductionsPerPaycheck * ppm

	return model.IncomeBreakdown{
		PaychecksPerMonth: ppm,
		MonthlyGross:      gross,
		Taxes:             taxes,
		Deductions:        deductions,
		MonthlyNet:        gross - taxes - deductions + p.OtherMonthlyIncome,
	}
}
