package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/budgetburn/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "budget.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion = %d, want 2", v)
	}
	_ = s.Close()

	// Reopening an up-to-date database is a no-op.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = s.Close()
}

func TestIncomeDefaultsAndRoundTrip(t *testing.T) {
	s := openTemp(t)

	p, err := s.LoadIncome()
	if err != nil {
		t.Fatal(err)
	}
	if p != (model.IncomeProfile{Frequency: model.Monthly}) {
		t.Errorf("default income = %+v", p)
	}

	want := model.IncomeProfile{
		Frequency:                  model.Biweekly,
		GrossPerPaycheck:           2400,
		TaxRatePct:                 22,
		OtherDeductionsPerPaycheck: 150,
		OtherMonthlyIncome:         300,
	}
	if err := s.SaveIncome(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadIncome()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("LoadIncome = %+v, want %+v", got, want)
	}
}

func TestExpenses(t *testing.T) {
	s := openTemp(t)

	rent, err := s.AddExpense(model.PlannedExpense{Name: "Rent", Category: model.Housing, Amount: 1500})
	if err != nil {
		t.Fatal(err)
	}
	if rent.ID == "" {
		t.Fatal("AddExpense did not assign an ID")
	}
	if _, err := s.AddExpense(model.PlannedExpense{ID: "fixed", Name: "Misc", Category: "Nonsense", Amount: 40}); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListExpenses()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len(ListExpenses) = %d, want 2", len(list))
	}
	if list[0].Name != "Rent" || list[1].ID != "fixed" || list[1].Category != model.Other {
		t.Errorf("ListExpenses = %+v", list)
	}

	if err := s.DeleteExpense(rent.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if err := s.DeleteExpense(rent.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestTransactions(t *testing.T) {
	s := openTemp(t)

	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	stored, err := s.AddTransactions([]model.Transaction{
		{Date: day(3), Category: model.Groceries, Description: "Market", Amount: 82.4},
		{Date: day(9), Category: model.Dining, Description: "Tacos", Amount: 18},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 || stored[0].ID == "" || stored[1].ID == "" {
		t.Fatalf("AddTransactions = %+v", stored)
	}

	list, err := s.ListTransactions()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Description != "Tacos" || !list[1].Date.Equal(day(3)) {
		t.Errorf("ListTransactions = %+v", list)
	}

	// A duplicate ID fails the whole batch.
	_, err = s.AddTransactions([]model.Transaction{
		{Date: day(10), Category: model.Dining, Description: "new", Amount: 5},
		{ID: stored[0].ID, Date: day(11), Category: model.Dining, Description: "dup", Amount: 5},
	})
	if err == nil {
		t.Fatal("expected duplicate ID error")
	}
	list, _ = s.ListTransactions()
	if len(list) != 2 {
		t.Errorf("len after failed batch = %d, want 2", len(list))
	}

	if err := s.DeleteTransaction("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTransaction(missing) err = %v, want ErrNotFound", err)
	}
}

func TestDebts(t *testing.T) {
	s := openTemp(t)

	card, err := s.AddDebt(model.Debt{Name: "Visa", Balance: 3200, APRPct: 24.9, MinPayment: 90})
	if err != nil {
		t.Fatal(err)
	}
	card.Balance = 2800
	if err := s.UpdateDebt(card); err != nil {
		t.Fatalf("UpdateDebt: %v", err)
	}
	if err := s.UpdateDebt(model.Debt{ID: "nope", Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateDebt(missing) err = %v, want ErrNotFound", err)
	}

	list, err := s.ListDebts()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0] != card {
		t.Errorf("ListDebts = %+v, want [%+v]", list, card)
	}

	if err := s.DeleteDebt(card.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteDebt(card.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteDebt err = %v, want ErrNotFound", err)
	}
}

func TestPayoffSettings(t *testing.T) {
	s := openTemp(t)

	has, err := s.HasPayoffSettings()
	if err != nil || has {
		t.Fatalf("HasPayoffSettings = %v, %v; want false", has, err)
	}
	ps, err := s.LoadPayoffSettings()
	if err != nil {
		t.Fatal(err)
	}
	if ps != (model.PayoffSettings{Strategy: model.Avalanche}) {
		t.Errorf("default settings = %+v", ps)
	}

	if err := s.SavePayoffSettings(model.PayoffSettings{Strategy: model.Snowball, ExtraPayment: -10}); err != nil {
		t.Fatal(err)
	}
	ps, _ = s.LoadPayoffSettings()
	if ps != (model.PayoffSettings{Strategy: model.Snowball}) {
		t.Errorf("saved settings = %+v, want snowball with no extra", ps)
	}
	if has, _ := s.HasPayoffSettings(); !has {
		t.Error("HasPayoffSettings = false after save")
	}
}

func TestLoadSnapshotNormalizes(t *testing.T) {
	s := openTemp(t)

	// Rows written outside the store API, the way a hand edit or an
	// older version would leave them.
	mustExec := func(q string, args ...any) {
		t.Helper()
		if _, err := s.db.Exec(q, args...); err != nil {
			t.Fatalf("exec %q: %v", q, err)
		}
	}
	mustExec(`INSERT INTO income_profile (id, frequency, gross_per_paycheck, tax_rate_pct, deductions, other_monthly, updated_at)
		VALUES (1, 'fortnightly', -5, 99, 0, 0, 'x')`)
	mustExec(`INSERT INTO expenses (id, name, category, amount, created_at) VALUES ('a', 'Null', 'Dining', NULL, 'x')`)
	mustExec(`INSERT INTO expenses (id, name, category, amount, created_at) VALUES ('b', 'Books', 'Education', 30, 'x')`)
	mustExec(`INSERT INTO transactions (id, date, category, amount, created_at) VALUES ('t1', 'garbage', 'Dining', 5, 'x')`)
	mustExec(`INSERT INTO debts (id, name, balance, apr_pct, min_payment, created_at) VALUES ('d1', 'Loan', 900, NULL, -3, 'x')`)
	mustExec(`INSERT INTO payoff_settings (id, strategy, extra_payment, updated_at) VALUES (1, 'random', 50, 'x')`)

	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Income.Frequency != model.Monthly || snap.Income.GrossPerPaycheck != 0 || snap.Income.TaxRatePct != 60 {
		t.Errorf("Income = %+v", snap.Income)
	}
	if len(snap.Expenses) != 1 || snap.Expenses[0].ID != "b" {
		t.Errorf("Expenses = %+v", snap.Expenses)
	}
	if len(snap.Transactions) != 0 {
		t.Errorf("Transactions = %+v, want none", snap.Transactions)
	}
	if len(snap.Debts) != 1 || snap.Debts[0].APRPct != 0 || snap.Debts[0].MinPayment != 0 {
		t.Errorf("Debts = %+v", snap.Debts)
	}
	if snap.Payoff != (model.PayoffSettings{Strategy: model.Avalanche, ExtraPayment: 50}) {
		t.Errorf("Payoff = %+v", snap.Payoff)
	}
}
