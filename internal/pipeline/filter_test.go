package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/theirongolddev/budgetburn/internal/model"
)

func txnOn(y int, m time.Month, d int, desc string) model.Transaction {
	return model.Transaction{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Description: desc, Amount: 1}
}

func TestFilterByMonth(t *testing.T) {
	txns := []model.Transaction{
		txnOn(2025, 1, 31, "jan"),
		txnOn(2025, 2, 1, "feb-1"),
		txnOn(2025, 2, 28, "feb-28"),
		txnOn(2024, 2, 10, "last year"),
	}

	got := FilterByMonth(txns, "2025-02")
	if len(got) != 2 || got[0].Description != "feb-1" || got[1].Description != "feb-28" {
		t.Errorf("FilterByMonth = %+v", got)
	}
	if got := FilterByMonth(txns, "2025-03"); len(got) != 0 {
		t.Errorf("FilterByMonth(empty month) = %d txns, want 0", len(got))
	}
}

func TestMonths(t *testing.T) {
	txns := []model.Transaction{
		txnOn(2025, 1, 3, ""),
		txnOn(2024, 12, 3, ""),
		txnOn(2025, 3, 3, ""),
		txnOn(2025, 1, 9, ""),
	}
	want := []string{"2025-03", "2025-01", "2024-12"}
	if got := Months(txns); !reflect.DeepEqual(got, want) {
		t.Errorf("Months = %v, want %v", got, want)
	}
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		in    string
		delta int
		want  string
	}{
		{"2025-01", -1, "2024-12"},
		{"2025-12", 1, "2026-01"},
		{"2025-06", 0, "2025-06"},
		{"bogus", 1, "bogus"},
	}
	for _, tt := range tests {
		if got := ShiftMonth(tt.in, tt.delta); got != tt.want {
			t.Errorf("ShiftMonth(%q, %d) = %q, want %q", tt.in, tt.delta, got, tt.want)
		}
	}
	if got := CurrentMonth(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)); got != "2026-10" {
		t.Errorf("CurrentMonth = %q, want 2026-10", got)
	}
}

func TestSortTransactions(t *testing.T) {
	txns := []model.Transaction{
		txnOn(2025, 1, 1, "b"),
		txnOn(2025, 1, 5, "z"),
		txnOn(2025, 1, 1, "a"),
	}
	SortTransactions(txns)
	got := []string{txns[0].Description, txns[1].Description, txns[2].Description}
	if !reflect.DeepEqual(got, []string{"z", "a", "b"}) {
		t.Errorf("order = %v, want [z a b]", got)
	}
}
