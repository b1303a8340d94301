package model

import "time"

// PlannedExpense is one line of the monthly plan.
type PlannedExpense struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// Transaction is one recorded purchase.
type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

// Month returns the ledger month of the transaction as "YYYY-MM".
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// BudgetStatus classifies a category's spending against its plan.
type BudgetStatus string

const (
	StatusOK   BudgetStatus = "OK"
	StatusNear BudgetStatus = "Near"
	StatusOver BudgetStatus = "Over"
)

// BudgetRow compares planned and actual spending for one category.
type BudgetRow struct {
	Category  Category     `json:"category"`
	Planned   float64      `json:"planned"`
	Actual    float64      `json:"actual"`
	Remaining float64      `json:"remaining"`
	PctUsed   float64      `json:"pct_used"`
	Status    BudgetStatus `json:"status"`
}

// Overage is how far actual spending exceeds the plan (negative when under).
func (r BudgetRow) Overage() float64 {
	return r.Actual - r.Planned
}

// BudgetReport is the budget-vs-actual result for one month.
type BudgetReport struct {
	Rows           []BudgetRow `json:"rows"`
	Alerts         []BudgetRow `json:"alerts"`
	TotalPlanned   float64     `json:"total_planned"`
	TotalActual    float64     `json:"total_actual"`
	TotalRemaining float64     `json:"total_remaining"`
}

// TopAlerts returns at most n alerts, largest overage first.
func (r BudgetReport) TopAlerts(n int) []BudgetRow {
	if n < 0 || n >= len(r.Alerts) {
		return r.Alerts
	}
	return r.Alerts[:n]
}
