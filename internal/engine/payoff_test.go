package engine

import (
	"reflect"
	"testing"

	"github.com/theirongolddev/budgetburn/internal/model"
)

func TestSimulatePayoff_NoDebts(t *testing.T) {
	for _, debts := range [][]model.Debt{nil, {}, {{Name: "done", Balance: 0, MinPayment: 50}}} {
		plan := SimulatePayoff(debts, model.Snowball, 100)
		if plan.Months == nil || *plan.Months != 0 {
			t.Fatalf("Months = %v, want 0", plan.Months)
		}
		if len(plan.Schedule) != 0 {
			t.Errorf("len(Schedule) = %d, want 0", len(plan.Schedule))
		}
		if plan.Outcome != model.OutcomeCompleted {
			t.Errorf("Outcome = %s, want completed", plan.Outcome)
		}
	}
}

func TestSimulatePayoff_SingleMonth(t *testing.T) {
	plan := SimulatePayoff([]model.Debt{{Name: "card", Balance: 1200, APRPct: 0, MinPayment: 1200}}, model.Avalanche, 0)

	if plan.Months == nil || *plan.Months != 1 {
		t.Fatalf("Months = %v, want 1", plan.Months)
	}
	if len(plan.Schedule) != 1 {
		t.Fatalf("len(Schedule) = %d, want 1", len(plan.Schedule))
	}
	m := plan.Schedule[0]
	if m.Principal != 1200 {
		t.Errorf("Principal = %v, want 1200", m.Principal)
	}
	if m.TotalBalanceRemaining != 0 {
		t.Errorf("TotalBalanceRemaining = %v, want 0", m.TotalBalanceRemaining)
	}
	if plan.Label != "Debt-free in 1 month" {
		t.Errorf("Label = %q", plan.Label)
	}
	if !reflect.DeepEqual(m.PaidOff, []string{"card"}) {
		t.Errorf("PaidOff = %v, want [card]", m.PaidOff)
	}
}

func TestSimulatePayoff_InterestExceedsMinimum(t *testing.T) {
	plan := SimulatePayoff([]model.Debt{{Name: "loan", Balance: 1000, APRPct: 24, MinPayment: 10}}, model.Avalanche, 0)

	if plan.Months != nil {
		t.Fatalf("Months = %d, want nil", *plan.Months)
	}
	if plan.Outcome != model.OutcomeInfeasible {
		t.Errorf("Outcome = %s, want infeasible", plan.Outcome)
	}
	if len(plan.Schedule) != 3 {
		t.Fatalf("len(Schedule) = %d, want 3", len(plan.Schedule))
	}
	first := plan.Schedule[0]
	if !approx(first.Interest, 20) || !approx(first.Paid, 10) || !approx(first.Principal, -10) {
		t.Errorf("month 1 = %+v, want interest 20, paid 10, principal -10", first)
	}
	if plan.Label != LabelInfeasible {
		t.Errorf("Label = %q, want %q", plan.Label, LabelInfeasible)
	}
}

func TestSimulatePayoff_ExtraOnlyProgress(t *testing.T) {
	// Minimums cover nothing, but the extra payment makes progress every month.
	plan := SimulatePayoff([]model.Debt{{Name: "a", Balance: 300, MinPayment: 0}}, model.Avalanche, 100)
	if plan.Months == nil || *plan.Months != 3 {
		t.Fatalf("Months = %v, want 3", plan.Months)
	}
}

func TestStallCounter(t *testing.T) {
	tests := []struct {
		name       string
		principals []float64
		wantAbort  int // 1-based month that aborts, 0 for never
	}{
		{"three stalls abort", []float64{0, 0, 0}, 3},
		{"progress resets", []float64{0, 0, 50, 0, 0}, 0},
		{"stall progress stall stall", []float64{0, 100, 0, 0}, 0},
		{"reset then three stalls", []float64{0, 0, 5, 0, 0.01, -2}, 6},
		{"one cent is not progress", []float64{0.01, 0.01, 0.01}, 3},
		{"just over a cent is progress", []float64{0, 0, 0.011, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c stallCounter
			got := 0
			for i, p := range tt.principals {
				if c.observe(p) {
					got = i + 1
					break
				}
			}
			if got != tt.wantAbort {
				t.Errorf("aborted at month %d, want %d", got, tt.wantAbort)
			}
		})
	}
}

func TestSimulatePayoff_Ceiling(t *testing.T) {
	// 0.02 principal per month never stalls but needs far more than 600 months.
	plan := SimulatePayoff([]model.Debt{{Name: "slow", Balance: 100000, APRPct: 0, MinPayment: 0.02}}, model.Avalanche, 0)
	if plan.Months != nil {
		t.Fatalf("Months = %d, want nil", *plan.Months)
	}
	if plan.Outcome != model.OutcomeCeilingReached {
		t.Errorf("Outcome = %s, want ceiling_reached", plan.Outcome)
	}
	if len(plan.Schedule) != MaxPayoffMonths {
		t.Errorf("len(Schedule) = %d, want %d", len(plan.Schedule), MaxPayoffMonths)
	}
	if plan.Label != LabelCeiling {
		t.Errorf("Label = %q, want %q", plan.Label, LabelCeiling)
	}
}

func TestSimulatePayoff_StrategyTargets(t *testing.T) {
	debts := []model.Debt{
		{Name: "A", Balance: 100, APRPct: 5, MinPayment: 10},
		{Name: "B", Balance: 500, APRPct: 20, MinPayment: 10},
	}

	avalanche := SimulatePayoff(debts, model.Avalanche, 50)
	if got := avalanche.Schedule[0].Target; got != "B" {
		t.Errorf("avalanche target = %s, want B", got)
	}

	snowball := SimulatePayoff(debts, model.Snowball, 50)
	if got := snowball.Schedule[0].Target; got != "A" {
		t.Errorf("snowball target = %s, want A", got)
	}
}

func TestComparator_TieBreaks(t *testing.T) {
	a := &workingDebt{name: "a", balance: 200, apr: 10}
	b := &workingDebt{name: "b", balance: 100, apr: 10}
	c := &workingDebt{name: "c", balance: 100, apr: 18}

	av := activeOrder([]*workingDebt{a, b, c}, comparator(model.Avalanche))
	if av[0] != c || av[1] != b || av[2] != a {
		t.Errorf("avalanche order = %s %s %s, want c b a", av[0].name, av[1].name, av[2].name)
	}

	sb := activeOrder([]*workingDebt{a, b, c}, comparator(model.Snowball))
	if sb[0] != c || sb[1] != b || sb[2] != a {
		t.Errorf("snowball order = %s %s %s, want c b a", sb[0].name, sb[1].name, sb[2].name)
	}

	if got := activeOrder([]*workingDebt{a, b}, comparator("bogus")); got[0] != b {
		t.Errorf("unknown strategy first = %s, want b (avalanche)", got[0].name)
	}
}

func TestSimulatePayoff_ExtraCascades(t *testing.T) {
	debts := []model.Debt{
		{Name: "small", Balance: 30, MinPayment: 10},
		{Name: "big", Balance: 1000, MinPayment: 10},
	}
	plan := SimulatePayoff(debts, model.Snowball, 100)

	m := plan.Schedule[0]
	// small: 30-10=20, extra pays 20 and cascades 80 into big: 1000-10-80=910.
	if !approx(m.TotalBalanceRemaining, 910) {
		t.Errorf("TotalBalanceRemaining = %v, want 910", m.TotalBalanceRemaining)
	}
	if !approx(m.Paid, 120) {
		t.Errorf("Paid = %v, want 120", m.Paid)
	}
	if !reflect.DeepEqual(m.PaidOff, []string{"small"}) {
		t.Errorf("PaidOff = %v, want [small]", m.PaidOff)
	}
	if plan.Schedule[1].Target != "big" {
		t.Errorf("month 2 target = %s, want big", plan.Schedule[1].Target)
	}
}

func TestSimulatePayoff_DoesNotMutateInput(t *testing.T) {
	debts := []model.Debt{
		{ID: "1", Name: "card", Balance: 2500, APRPct: 19.9, MinPayment: 75},
		{ID: "2", Name: "car", Balance: 8000, APRPct: 6.5, MinPayment: 250},
	}
	orig := append([]model.Debt(nil), debts...)

	SimulatePayoff(debts, model.Avalanche, 200)

	if !reflect.DeepEqual(debts, orig) {
		t.Errorf("input debts mutated: %+v, want %+v", debts, orig)
	}
}

func TestSimulatePayoff_Deterministic(t *testing.T) {
	debts := []model.Debt{
		{Name: "card", Balance: 2500, APRPct: 19.9, MinPayment: 75},
		{Name: "car", Balance: 8000, APRPct: 6.5, MinPayment: 250},
		{Name: "store", Balance: 600, APRPct: 24.99, MinPayment: 25},
	}
	first := SimulatePayoff(debts, model.Snowball, 150)
	second := SimulatePayoff(debts, model.Snowball, 150)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different plans")
	}
	if !first.Feasible() {
		t.Fatalf("plan not feasible: %s", first.Label)
	}
	last := first.Schedule[len(first.Schedule)-1]
	if last.TotalBalanceRemaining != 0 {
		t.Errorf("final balance = %v, want 0", last.TotalBalanceRemaining)
	}
	for _, m := range first.Schedule {
		if m.TotalBalanceRemaining < 0 {
			t.Fatalf("month %d balance %v < 0", m.Month, m.TotalBalanceRemaining)
		}
	}
}

func TestComparePayoff(t *testing.T) {
	debts := []model.Debt{
		{Name: "low-rate big", Balance: 5000, APRPct: 4, MinPayment: 100},
		{Name: "high-rate small", Balance: 1500, APRPct: 29.99, MinPayment: 40},
		{Name: "mid", Balance: 900, APRPct: 12, MinPayment: 30},
	}
	cmp := ComparePayoff(debts, 300)
	if !cmp.Avalanche.Feasible() || !cmp.Snowball.Feasible() {
		t.Fatal("expected both strategies to complete")
	}
	if cmp.InterestSaved < 0 {
		t.Errorf("InterestSaved = %v, want >= 0 (avalanche minimizes interest)", cmp.InterestSaved)
	}
	if cmp.Avalanche.Strategy != model.Avalanche || cmp.Snowball.Strategy != model.Snowball {
		t.Error("comparison strategies mislabeled")
	}
}
