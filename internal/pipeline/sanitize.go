package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
)

// MaxTaxRatePct is the highest tax rate an income profile may carry.
const MaxTaxRatePct = 60

// Boundary validation errors.
var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidFrequency = errors.New("frequency must be monthly, semimonthly, biweekly or weekly")
	ErrInvalidStrategy  = errors.New("strategy must be avalanche or snowball")
)

const dateLayout = "2006-01-02"

// NewExpense validates raw entry and returns a planned expense with a fresh ID.
func NewExpense(name, category string, amount any) (model.PlannedExpense, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.PlannedExpense{}, ErrEmptyName
	}
	amt := engine.Round2(engine.Coerce(amount))
	if amt <= 0 {
		return model.PlannedExpense{}, ErrInvalidAmount
	}
	return model.PlannedExpense{
		ID:       uuid.NewString(),
		Name:     name,
		Category: model.ParseCategory(category),
		Amount:   amt,
	}, nil
}

// NewTransaction validates raw entry and returns a transaction with a fresh ID.
// An empty description falls back to the category name.
func NewTransaction(date, category, description string, amount any) (model.Transaction, error) {
	d, err := ParseDate(date)
	if err != nil {
		return model.Transaction{}, err
	}
	amt := engine.Round2(engine.Coerce(amount))
	if amt <= 0 {
		return model.Transaction{}, ErrInvalidAmount
	}
	cat := model.ParseCategory(category)
	description = strings.TrimSpace(description)
	if description == "" {
		description = string(cat)
	}
	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        d,
		Category:    cat,
		Description: description,
		Amount:      amt,
	}, nil
}

// NewDebt validates raw entry and returns a debt with a fresh ID. Negative
// APR and minimum payment are treated as zero.
func NewDebt(name string, balance, aprPct, minPayment any) (model.Debt, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Debt{}, ErrEmptyName
	}
	bal := engine.Round2(engine.Coerce(balance))
	if bal <= 0 {
		return model.Debt{}, ErrInvalidAmount
	}
	return model.Debt{
		ID:         uuid.NewString(),
		Name:       name,
		Balance:    bal,
		APRPct:     engine.NonNegative(engine.Coerce(aprPct)),
		MinPayment: engine.Round2(engine.NonNegative(engine.Coerce(minPayment))),
	}, nil
}

// ParseDate reads a calendar date at day precision.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseFrequency reads a pay frequency.
func ParseFrequency(s string) (model.Frequency, error) {
	f := model.Frequency(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range model.Frequencies {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
}

// ParseStrategy reads a repayment strategy.
func ParseStrategy(s string) (model.Strategy, error) {
	st := model.Strategy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range model.Strategies {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// CleanIncome fills defaults and bounds every field of an income profile.
func CleanIncome(p model.IncomeProfile) model.IncomeProfile {
	if _, err := ParseFrequency(string(p.Frequency)); err != nil {
		p.Frequency = model.Monthly
	}
	p.GrossPerPaycheck = engine.NonNegative(p.GrossPerPaycheck)
	p.TaxRatePct = engine.Clamp(engine.Finite(p.TaxRatePct), 0, MaxTaxRatePct)
	p.OtherDeductionsPerPaycheck = engine.NonNegative(p.OtherDeductionsPerPaycheck)
	p.OtherMonthlyIncome = engine.NonNegative(p.OtherMonthlyIncome)
	return p
}

// CleanPayoffSettings fills defaults for missing or malformed payoff settings.
func CleanPayoffSettings(s model.PayoffSettings) model.PayoffSettings {
	if _, err := ParseStrategy(string(s.Strategy)); err != nil {
		s.Strategy = model.Avalanche
	}
	s.ExtraPayment = engine.NonNegative(s.ExtraPayment)
	return s
}

// CleanSnapshot drops records that fail validation and normalizes the rest.
// It covers state persisted by older versions or edited by hand.
func CleanSnapshot(snap model.Snapshot) model.Snapshot {
	snap.Income = CleanIncome(snap.Income)
	snap.Payoff = CleanPayoffSettings(snap.Payoff)

	expenses := snap.Expenses[:0:0]
	for _, e := range snap.Expenses {
		e.Name = strings.TrimSpace(e.Name)
		e.Amount = engine.NonNegative(e.Amount)
		if e.Name == "" || e.Amount <= 0 {
			continue
		}
		e.Category = e.Category.Normalize()
		expenses = append(expenses, e)
	}
	snap.Expenses = expenses

	txns := snap.Transactions[:0:0]
	for _, t := range snap.Transactions {
		t.Amount = engine.NonNegative(t.Amount)
		if t.Amount <= 0 || t.Date.IsZero() {
			continue
		}
		t.Category = t.Category.Normalize()
		txns = append(txns, t)
	}
	snap.Transactions = txns

	debts := snap.Debts[:0:0]
	for _, d := range snap.Debts {
		d.Name = strings.TrimSpace(d.Name)
		d.Balance = engine.NonNegative(d.Balance)
		if d.Name == "" || d.Balance <= 0 {
			continue
		}
		d.APRPct = engine.NonNegative(d.APRPct)
		d.MinPayment = engine.NonNegative(d.MinPayment)
		debts = append(debts, d)
	}
	snap.Debts = debts

	return snap
}
