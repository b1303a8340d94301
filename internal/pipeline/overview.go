// Package pipeline sits between raw state and the engine: it validates user
// entry, filters ledgers to a month, loads import files, and bundles the
// engine's analyses for presentation layers.
package pipeline

import (
	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
)

// Overview runs every analysis against one ledger month of a snapshot.
// CashFlow is monthly net income minus the total planned budget.
func Overview(snap model.Snapshot, month string) model.Overview {
	income := engine.NormalizeIncome(snap.Income)
	budget := engine.AnalyzeBudget(snap.Expenses, FilterByMonth(snap.Transactions, month))
	payoff := engine.SimulatePayoff(snap.Debts, snap.Payoff.Strategy, snap.Payoff.ExtraPayment)

	var planned float64
	for _, e := range snap.Expenses {
		planned += e.Amount
	}

	return model.Overview{
		Month:    month,
		Income:   income,
		Budget:   budget,
		Payoff:   payoff,
		CashFlow: income.MonthlyNet - planned,
	}
}
