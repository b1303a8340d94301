package model

// Frequency is how often a paycheck arrives.
type Frequency string

const (
	Monthly     Frequency = "monthly"
	Semimonthly Frequency = "semimonthly"
	Biweekly    Frequency = "biweekly"
	Weekly      Frequency = "weekly"
)

// Frequencies lists the supported pay frequencies.
var Frequencies = []Frequency{Monthly, Semimonthly, Biweekly, Weekly}

// IncomeProfile describes one earner's paycheck.
type IncomeProfile struct {
	Frequency                  Frequency `json:"frequency"`
	GrossPerPaycheck           float64   `json:"gross_per_paycheck"`
	TaxRatePct                 float64   `json:"tax_rate_pct"`
	OtherDeductionsPerPaycheck float64   `json:"other_deductions_per_paycheck"`
	OtherMonthlyIncome         float64   `json:"other_monthly_income"`
}

// IncomeBreakdown is the monthly view of an IncomeProfile.
type IncomeBreakdown struct {
	PaychecksPerMonth float64 `json:"paychecks_per_month"`
	MonthlyGross      float64 `json:"monthly_gross"`
	Taxes             float64 `json:"taxes"`
	Deductions        float64 `json:"deductions"`
	MonthlyNet        float64 `json:"monthly_net"`
}
