package model

// Debt is a balance being repaid.
type Debt struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
	APRPct     float64 `json:"apr_pct"`
	MinPayment float64 `json:"min_payment"`
}

// Strategy picks which debt receives the extra payment.
type Strategy string

const (
	// Avalanche targets the highest APR first.
	Avalanche Strategy = "avalanche"
	// Snowball targets the smallest balance first.
	Snowball Strategy = "snowball"
)

// Strategies lists the supported repayment strategies.
var Strategies = []Strategy{Avalanche, Snowball}

// PayoffSettings holds the user's chosen strategy and extra monthly payment.
type PayoffSettings struct {
	Strategy     Strategy `json:"strategy"`
	ExtraPayment float64  `json:"extra_payment"`
}

// PayoffMonthRecord summarizes one simulated month.
type PayoffMonthRecord struct {
	Month                 int      `json:"month"`
	Target                string   `json:"target"`
	Paid                  float64  `json:"paid"`
	Interest              float64  `json:"interest"`
	Principal             float64  `json:"principal"`
	TotalBalanceRemaining float64  `json:"total_balance_remaining"`
	PaidOff               []string `json:"paid_off,omitempty"`
}

// PayoffOutcome reports how a simulation ended.
type PayoffOutcome string

const (
	OutcomeCompleted      PayoffOutcome = "completed"
	OutcomeInfeasible     PayoffOutcome = "infeasible"
	OutcomeCeilingReached PayoffOutcome = "ceiling_reached"
)

// PayoffPlan is the result of a payoff simulation. Months is nil when the
// plan did not resolve.
type PayoffPlan struct {
	Strategy      Strategy            `json:"strategy"`
	ExtraPayment  float64             `json:"extra_payment"`
	Months        *int                `json:"months"`
	Outcome       PayoffOutcome       `json:"outcome"`
	Label         string              `json:"label"`
	Schedule      []PayoffMonthRecord `json:"schedule"`
	TotalInterest float64             `json:"total_interest"`
	TotalPaid     float64             `json:"total_paid"`
}

// Feasible reports whether the plan reached a zero balance.
func (p PayoffPlan) Feasible() bool {
	return p.Months != nil
}

// PayoffComparison holds both strategies run against the same debts.
type PayoffComparison struct {
	Avalanche     PayoffPlan `json:"avalanche"`
	Snowball      PayoffPlan `json:"snowball"`
	InterestSaved float64    `json:"interest_saved"`
	MonthsSaved   int        `json:"months_saved"`
}
