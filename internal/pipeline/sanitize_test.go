package pipeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/budgetburn/internal/model"
)

func TestNewExpense(t *testing.T) {
	e, err := NewExpense("  Rent ", "housing", "1,450.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name != "Rent" || e.Category != model.Housing || e.Amount != 1450 {
		t.Errorf("NewExpense = %+v", e)
	}
	if e.ID == "" {
		t.Error("ID is empty, want generated")
	}

	if _, err := NewExpense(" ", "Housing", 10); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name err = %v, want ErrEmptyName", err)
	}
	for _, amt := range []any{0, -4, "abc", math.NaN()} {
		if _, err := NewExpense("x", "Housing", amt); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %v err = %v, want ErrInvalidAmount", amt, err)
		}
	}

	other, err := NewExpense("Gym", "Fitness", 40)
	if err != nil {
		t.Fatal(err)
	}
	if other.Category != model.Other {
		t.Errorf("unknown category = %s, want Other", other.Category)
	}
}

func TestNewTransaction(t *testing.T) {
	txn, err := NewTransaction("2025-02-28", "Dining", "", 12.345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !txn.Date.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", txn.Date)
	}
	if txn.Amount != 12.35 {
		t.Errorf("Amount = %v, want 12.35", txn.Amount)
	}
	if txn.Description != "Dining" {
		t.Errorf("Description = %q, want category fallback", txn.Description)
	}
	if txn.Month() != "2025-02" {
		t.Errorf("Month() = %q, want 2025-02", txn.Month())
	}

	if _, err := NewTransaction("02/28/2025", "Dining", "x", 5); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date err = %v, want ErrInvalidDate", err)
	}
	if _, err := NewTransaction("2025-02-28", "Dining", "x", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount err = %v, want ErrInvalidAmount", err)
	}
}

func TestNewDebt(t *testing.T) {
	d, err := NewDebt("Visa", "2500", -3, "75")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Balance != 2500 || d.APRPct != 0 || d.MinPayment != 75 {
		t.Errorf("NewDebt = %+v", d)
	}
	if _, err := NewDebt("Visa", 0, 10, 10); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero balance err = %v, want ErrInvalidAmount", err)
	}
	if _, err := NewDebt("", 10, 10, 10); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name err = %v, want ErrEmptyName", err)
	}
}

func TestCleanIncome(t *testing.T) {
	got := CleanIncome(model.IncomeProfile{
		Frequency:                  "daily",
		GrossPerPaycheck:           -100,
		TaxRatePct:                 85,
		OtherDeductionsPerPaycheck: math.Inf(1),
		OtherMonthlyIncome:         200,
	})
	want := model.IncomeProfile{Frequency: model.Monthly, TaxRatePct: 60, OtherMonthlyIncome: 200}
	if got != want {
		t.Errorf("CleanIncome = %+v, want %+v", got, want)
	}
}

func TestParseFrequencyAndStrategy(t *testing.T) {
	if f, err := ParseFrequency(" BiWeekly "); err != nil || f != model.Biweekly {
		t.Errorf("ParseFrequency = %q, %v", f, err)
	}
	if _, err := ParseFrequency("hourly"); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("err = %v, want ErrInvalidFrequency", err)
	}
	if s, err := ParseStrategy("Snowball"); err != nil || s != model.Snowball {
		t.Errorf("ParseStrategy = %q, %v", s, err)
	}
	if _, err := ParseStrategy("tsunami"); !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("err = %v, want ErrInvalidStrategy", err)
	}
}

func TestCleanSnapshot(t *testing.T) {
	day := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	snap := CleanSnapshot(model.Snapshot{
		Expenses: []model.PlannedExpense{
			{Name: "ok", Category: "weird", Amount: 10},
			{Name: "", Category: model.Dining, Amount: 10},
			{Name: "neg", Category: model.Dining, Amount: -1},
		},
		Transactions: []model.Transaction{
			{Date: day, Category: model.Dining, Amount: 5},
			{Category: model.Dining, Amount: 5},
			{Date: day, Category: model.Dining, Amount: 0},
		},
		Debts: []model.Debt{
			{Name: "card", Balance: 100, APRPct: -2, MinPayment: -5},
			{Name: "paid", Balance: 0},
		},
		Payoff: model.PayoffSettings{Strategy: "???", ExtraPayment: -50},
	})

	if len(snap.Expenses) != 1 || snap.Expenses[0].Category != model.Other {
		t.Errorf("Expenses = %+v", snap.Expenses)
	}
	if len(snap.Transactions) != 1 {
		t.Errorf("len(Transactions) = %d, want 1", len(snap.Transactions))
	}
	if len(snap.Debts) != 1 || snap.Debts[0].APRPct != 0 || snap.Debts[0].MinPayment != 0 {
		t.Errorf("Debts = %+v", snap.Debts)
	}
	if snap.Payoff != (model.PayoffSettings{Strategy: model.Avalanche}) {
		t.Errorf("Payoff = %+v", snap.Payoff)
	}
	if snap.Income.Frequency != model.Monthly {
		t.Errorf("Income.Frequency = %q, want monthly", snap.Income.Frequency)
	}
}
