package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/budgetburn/internal/model"
)

type fakeSource struct {
	mu   sync.Mutex
	snap model.Snapshot
	err  error
}

func (f *fakeSource) LoadSnapshot() (model.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.err
}

func (f *fakeSource) set(snap model.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
}

var fixedNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Income: model.IncomeProfile{Frequency: model.Biweekly, GrossPerPaycheck: 2000, TaxRatePct: 25},
		Expenses: []model.PlannedExpense{
			{ID: "e1", Name: "Rent", Category: model.Housing, Amount: 1500},
			{ID: "e2", Name: "Food", Category: model.Groceries, Amount: 400},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), Category: model.Groceries, Amount: 380},
			{ID: "t2", Date: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), Category: model.Groceries, Amount: 900},
		},
		Debts: []model.Debt{
			{ID: "d1", Name: "Card", Balance: 1000, APRPct: 18, MinPayment: 50},
			{ID: "d2", Name: "Loan", Balance: 400, APRPct: 5, MinPayment: 40},
		},
		Payoff: model.PayoffSettings{Strategy: model.Avalanche, ExtraPayment: 100},
	}
}

func newTestService(src SnapshotSource) *Service {
	return New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:          func() time.Time { return fixedNow },
	}, src)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDiffSummaries(t *testing.T) {
	three, five := 3, 5
	prev := Summary{TotalActual: 100, Alerts: 1, DebtBalance: 900, PayoffMonths: &five, Transactions: 4}
	curr := Summary{TotalActual: 142.5, Alerts: 2, DebtBalance: 850, PayoffMonths: &three, Transactions: 6}

	delta := diffSummaries(prev, curr)
	if math.Abs(delta.TotalActual-42.5) > 1e-9 {
		t.Fatalf("TotalActual delta = %.2f, want 42.50", delta.TotalActual)
	}
	if delta.Alerts != 1 {
		t.Fatalf("Alerts delta = %d, want 1", delta.Alerts)
	}
	if delta.DebtBalance != -50 {
		t.Fatalf("DebtBalance delta = %.2f, want -50", delta.DebtBalance)
	}
	if delta.PayoffMonths != -2 {
		t.Fatalf("PayoffMonths delta = %d, want -2", delta.PayoffMonths)
	}
	if delta.Transactions != 2 {
		t.Fatalf("Transactions delta = %d, want 2", delta.Transactions)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSummaries(curr, curr).isZero() {
		t.Fatal("self delta not zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := newTestService(&fakeSource{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ids = [%d %d], want [2 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOncePublishesOnChange(t *testing.T) {
	src := &fakeSource{snap: testSnapshot()}
	s := newTestService(src)

	s.pollOnce()
	s.pollOnce() // unchanged, no event

	snap := testSnapshot()
	snap.Transactions = append(snap.Transactions, model.Transaction{
		ID: "t3", Date: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC), Category: model.Dining, Amount: 60,
	})
	src.set(snap)
	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.events) != 2 {
		t.Fatalf("events = %d, want 2", len(s.events))
	}
	if s.events[0].Type != "snapshot" || s.events[1].Type != "overview_delta" {
		t.Errorf("event types = %q, %q", s.events[0].Type, s.events[1].Type)
	}
	if s.events[1].Delta.TotalActual != 60 || s.events[1].Delta.Transactions != 1 {
		t.Errorf("delta = %+v", s.events[1].Delta)
	}
	if s.pollCount != 3 {
		t.Errorf("pollCount = %d, want 3", s.pollCount)
	}
}

func TestPollOnceRecordsError(t *testing.T) {
	s := newTestService(&fakeSource{err: errors.New("disk gone")})
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError != "disk gone" || st.PollCount != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestHandleBudget(t *testing.T) {
	h := newTestService(&fakeSource{snap: testSnapshot()}).Handler()

	rec := get(t, h, "/v1/budget")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var body struct {
		Month       string            `json:"month"`
		Rows        []model.BudgetRow `json:"rows"`
		TotalActual float64           `json:"total_actual"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Month != "2025-05" {
		t.Errorf("month = %q, want current month 2025-05", body.Month)
	}
	if body.TotalActual != 380 {
		t.Errorf("total_actual = %v, want 380", body.TotalActual)
	}

	rec = get(t, h, "/v1/budget?month=2025-04")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.TotalActual != 900 {
		t.Errorf("April total_actual = %v, want 900", body.TotalActual)
	}

	if rec := get(t, h, "/v1/budget?month=May"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad month status = %d, want 400", rec.Code)
	}
}

func TestHandlePayoff(t *testing.T) {
	h := newTestService(&fakeSource{snap: testSnapshot()}).Handler()

	rec := get(t, h, "/v1/payoff?strategy=snowball&extra=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var plan model.PayoffPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatal(err)
	}
	if plan.Strategy != model.Snowball || plan.ExtraPayment != 0 {
		t.Errorf("plan = %s extra %v", plan.Strategy, plan.ExtraPayment)
	}
	if plan.Months == nil || plan.Outcome != model.OutcomeCompleted {
		t.Errorf("outcome = %s, months %v", plan.Outcome, plan.Months)
	}

	for _, target := range []string{"/v1/payoff?strategy=random", "/v1/payoff?extra=-5", "/v1/payoff/compare?extra=abc"} {
		if rec := get(t, h, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, rec.Code)
		}
	}
}

func TestHandleCompare(t *testing.T) {
	h := newTestService(&fakeSource{snap: testSnapshot()}).Handler()

	rec := get(t, h, "/v1/payoff/compare")
	var cmp model.PayoffComparison
	if err := json.Unmarshal(rec.Body.Bytes(), &cmp); err != nil {
		t.Fatal(err)
	}
	if cmp.Avalanche.ExtraPayment != 100 {
		t.Errorf("extra = %v, want saved 100", cmp.Avalanche.ExtraPayment)
	}
	if !cmp.Avalanche.Feasible() || !cmp.Snowball.Feasible() {
		t.Fatalf("outcomes = %s, %s; want both completed", cmp.Avalanche.Outcome, cmp.Snowball.Outcome)
	}
	if cmp.Snowball.Strategy != model.Snowball {
		t.Errorf("Snowball.Strategy = %s", cmp.Snowball.Strategy)
	}
}

func TestHandleOverviewAndIncome(t *testing.T) {
	h := newTestService(&fakeSource{snap: testSnapshot()}).Handler()

	var ov model.Overview
	if err := json.Unmarshal(get(t, h, "/v1/overview").Body.Bytes(), &ov); err != nil {
		t.Fatal(err)
	}
	// 2000 * 26/12 * 0.75
	if math.Abs(ov.Income.MonthlyNet-3250) > 1e-6 {
		t.Errorf("MonthlyNet = %v, want 3250", ov.Income.MonthlyNet)
	}
	if math.Abs(ov.CashFlow-1350) > 1e-6 {
		t.Errorf("CashFlow = %v, want 1350", ov.CashFlow)
	}

	rec := get(t, h, "/v1/income")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("income status = %d, type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestHandlerSourceError(t *testing.T) {
	h := newTestService(&fakeSource{err: errors.New("locked")}).Handler()
	if rec := get(t, h, "/v1/overview"); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}
