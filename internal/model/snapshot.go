package model

// Snapshot bundles all persisted planner state.
type Snapshot struct {
	Income       IncomeProfile    `json:"income"`
	Expenses     []PlannedExpense `json:"expenses"`
	Transactions []Transaction    `json:"transactions"`
	Debts        []Debt           `json:"debts"`
	Payoff       PayoffSettings   `json:"payoff"`
}

// Overview combines every analysis for one ledger month.
type Overview struct {
	Month    string          `json:"month"`
	Income   IncomeBreakdown `json:"income"`
	Budget   BudgetReport    `json:"budget"`
	Payoff   PayoffPlan      `json:"payoff"`
	CashFlow float64         `json:"cash_flow"`
}
