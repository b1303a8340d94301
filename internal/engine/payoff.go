package engine

import (
	"fmt"

	"github.com/theirongolddev/budgetburn/internal/model"
)

const (
	// MaxPayoffMonths caps how long a simulation may run.
	MaxPayoffMonths = 600

	// principalEpsilon is the smallest monthly principal reduction that
	// counts as progress.
	principalEpsilon = 0.01

	// stallLimit is how many consecutive months without progress abort a plan.
	stallLimit = 3

	// paidOffEpsilon absorbs float residue left after a balance is paid in full.
	paidOffEpsilon = 1e-9
)

// Labels for unresolved plans.
const (
	LabelNoDebts    = "No debts to pay off"
	LabelInfeasible = "Payments never reduce principal"
	LabelCeiling    = "Not feasible within 600 months"
)

// workingDebt is the simulator's private, mutable copy of a model.Debt.
type workingDebt struct {
	name       string
	balance    float64
	apr        float64
	minPayment float64
}

// SimulatePayoff amortizes debts month by month under strategy, applying
// extra on top of the minimum payments. The input slice is never modified.
//
// The plan ends when every balance reaches zero, when principal fails to
// drop by more than a cent for three months running, or at MaxPayoffMonths.
// The latter two return a nil Months and the schedule simulated so far.
func SimulatePayoff(debts []model.Debt, strategy model.Strategy, extra float64) model.PayoffPlan {
	plan := model.PayoffPlan{
		Strategy:     strategy,
		ExtraPayment: extra,
		Schedule:     []model.PayoffMonthRecord{},
	}

	work := make([]*workingDebt, 0, len(debts))
	for _, d := range debts {
		if d.Balance <= 0 {
			continue
		}
		work = append(work, &workingDebt{
			name:       d.Name,
			balance:    d.Balance,
			apr:        d.APRPct,
			minPayment: d.MinPayment,
		})
	}

	if len(work) == 0 {
		zero := 0
		plan.Months = &zero
		plan.Outcome = model.OutcomeCompleted
		plan.Label = LabelNoDebts
		return plan
	}

	less := comparator(strategy)
	var stall stallCounter

	for month := 1; month <= MaxPayoffMonths; month++ {
		active := activeOrder(work, less)

		var interest, paid float64
		for _, d := range active {
			accrued := d.balance * (d.apr / 100 / 12)
			d.balance += accrued
			interest += accrued
		}

		for _, d := range active {
			p := min(d.minPayment, d.balance)
			d.balance -= p
			paid += p
			settle(d)
		}

		cascade := activeOrder(work, less)
		target := ""
		if len(cascade) > 0 {
			target = cascade[0].name
		}
		remaining := extra
		for _, d := range cascade {
			if remaining <= 0 {
				break
			}
			p := min(remaining, d.balance)
			d.balance -= p
			remaining -= p
			paid += p
			settle(d)
		}

		rec := model.PayoffMonthRecord{
			Month:     month,
			Target:    target,
			Paid:      paid,
			Interest:  interest,
			Principal: paid - interest,
		}
		for _, d := range active {
			if d.balance == 0 {
				rec.PaidOff = append(rec.PaidOff, d.name)
			}
		}
		for _, d := range work {
			rec.TotalBalanceRemaining += d.balance
		}

		plan.Schedule = append(plan.Schedule, rec)
		plan.TotalInterest += interest
		plan.TotalPaid += paid

		if rec.TotalBalanceRemaining == 0 {
			m := month
			plan.Months = &m
			plan.Outcome = model.OutcomeCompleted
			plan.Label = completedLabel(month)
			return plan
		}

		if stall.observe(rec.Principal) {
			plan.Outcome = model.OutcomeInfeasible
			plan.Label = LabelInfeasible
			return plan
		}
	}

	plan.Outcome = model.OutcomeCeilingReached
	plan.Label = LabelCeiling
	return plan
}

// stallCounter tracks consecutive months whose principal reduction is
// below principalEpsilon. Any month with progress resets it.
type stallCounter struct {
	months int
}

// observe records one month and reports whether the plan has stalled out.
func (c *stallCounter) observe(principal float64) bool {
	if principal <= principalEpsilon {
		c.months++
	} else {
		c.months = 0
	}
	return c.months >= stallLimit
}

// settle clamps a fully paid balance to exactly zero.
func settle(d *workingDebt) {
	if d.balance < paidOffEpsilon {
		d.balance = 0
	}
}

func completedLabel(months int) string {
	if months == 1 {
		return "Debt-free in 1 month"
	}
	return fmt.Sprintf("Debt-free in %d months", months)
}

// ComparePayoff runs both strategies against the same debts. Savings are
// avalanche relative to snowball and are only filled in when both plans
// complete.
func ComparePayoff(debts []model.Debt, extra float64) model.PayoffComparison {
	cmp := model.PayoffComparison{
		Avalanche: SimulatePayoff(debts, model.Avalanche, extra),
		Snowball:  SimulatePayoff(debts, model.Snowball, extra),
	}
	if cmp.Avalanche.Feasible() && cmp.Snowball.Feasible() {
		cmp.InterestSaved = cmp.Snowball.TotalInterest - cmp.Avalanche.TotalInterest
		cmp.MonthsSaved = *cmp.Snowball.Months - *cmp.Avalanche.Months
	}
	return cmp
}
