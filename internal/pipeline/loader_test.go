package pipeline

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/budgetburn/internal/source"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"bank.csv": "date,category,description,amount\n" +
			"2025-03-01,Housing,Rent,1500\n" +
			"2025-03-02,Groceries,Market,-4\n",
		"card.jsonl": `{"date":"2025-03-03","category":"Dining","amount":22.5}` + "\n" +
			`{"date":"March 4","category":"Dining","amount":10}` + "\n" +
			`{oops` + "\n",
		"cash.yaml": "- date: 2025-03-05\n  category: Personal\n  amount: 9.99\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	var calls atomic.Int64
	result, err := Load(dir, func(_, total int) {
		calls.Add(1)
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if result.TotalFiles != 3 || result.ParsedFiles != 3 {
		t.Errorf("files = %d/%d, want 3/3", result.ParsedFiles, result.TotalFiles)
	}
	if len(result.Transactions) != 3 {
		t.Errorf("len(Transactions) = %d, want 3", len(result.Transactions))
	}
	if result.Rejected != 2 {
		t.Errorf("Rejected = %d, want 2", result.Rejected)
	}
	if result.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", result.ParseErrors)
	}
	if calls.Load() != 3 {
		t.Errorf("progress calls = %d, want 3", calls.Load())
	}
	if len(result.Transactions) == 3 {
		first, last := result.Transactions[0], result.Transactions[2]
		if first.Amount != 9.99 || last.Description != "Rent" {
			t.Errorf("Transactions not newest first: %+v", result.Transactions)
		}
	}
	for _, f := range []source.Format{source.FormatCSV, source.FormatJSONL, source.FormatYAML} {
		if result.Formats[f] != 1 {
			t.Errorf("Formats[%s] = %d, want 1", f, result.Formats[f])
		}
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	result, err := Load(filepath.Join(t.TempDir(), "missing"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalFiles != 0 || len(result.Transactions) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}
