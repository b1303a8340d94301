package engine

import (
	"sort"

	"github.com/theirongolddev/budgetburn/internal/model"
)

// NearThresholdPct is the percent-used level at which a planned category
// starts raising a Near alert.
const NearThresholdPct = 90

// AnalyzeBudget compares the plan against one month of transactions. The
// caller filters txns to the target month beforehand.
//
// Rows follow model.Categories order and skip categories with neither a plan
// nor spending. Alerts hold every Over and Near row, largest overage first.
func AnalyzeBudget(planned []model.PlannedExpense, txns []model.Transaction) model.BudgetReport {
	plannedBy := SumPlanned(planned)
	actualBy := SumActual(txns)

	var report model.BudgetReport
	for _, cat := range model.Categories {
		p := plannedBy[cat]
		a := actualBy[cat]
		if p == 0 && a == 0 {
			continue
		}

		pct := PercentUsed(p, a)
		report.Rows = append(report.Rows, model.BudgetRow{
			Category:  cat,
			Planned:   p,
			Actual:    a,
			Remaining: p - a,
			PctUsed:   pct,
			Status:    Status(p, a),
		})
		report.TotalPlanned += p
		report.TotalActual += a
	}
	report.TotalRemaining = report.TotalPlanned - report.TotalActual

	for _, r := range report.Rows {
		if r.Status == model.StatusOver || r.Status == model.StatusNear {
			report.Alerts = append(report.Alerts, r)
		}
	}
	sort.SliceStable(report.Alerts, func(i, j int) bool {
		return report.Alerts[i].Overage() > report.Alerts[j].Overage()
	})

	return report
}

// PercentUsed returns actual as a percentage of planned. Unplanned spending
// counts as 100%.
func PercentUsed(planned, actual float64) float64 {
	if planned <= 0 {
		if actual > 0 {
			return 100
		}
		return 0
	}
	return actual / planned * 100
}

// Status classifies one category. Unplanned spending is always Over.
func Status(planned, actual float64) model.BudgetStatus {
	switch {
	case planned > 0 && actual > planned:
		return model.StatusOver
	case planned > 0 && actual/planned*100 >= NearThresholdPct:
		return model.StatusNear
	case planned <= 0 && actual > 0:
		return model.StatusOver
	default:
		return model.StatusOK
	}
}
