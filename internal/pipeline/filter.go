package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/budgetburn/internal/model"
)

const monthLayout = "2006-01"

// CurrentMonth returns the ledger month containing now.
func CurrentMonth(now time.Time) string {
	return now.Format(monthLayout)
}

// ParseMonth reads a "YYYY-MM" ledger month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return t, nil
}

// ShiftMonth moves a ledger month by delta months. Invalid input is returned unchanged.
func ShiftMonth(month string, delta int) string {
	t, err := ParseMonth(month)
	if err != nil {
		return month
	}
	return t.AddDate(0, delta, 0).Format(monthLayout)
}

// FilterByMonth returns the transactions whose date falls in month ("YYYY-MM").
func FilterByMonth(txns []model.Transaction, month string) []model.Transaction {
	var result []model.Transaction
	for _, t := range txns {
		if t.Month() == month {
			result = append(result, t)
		}
	}
	return result
}

// Months returns the distinct ledger months present in txns, newest first.
func Months(txns []model.Transaction) []string {
	seen := make(map[string]struct{})
	for _, t := range txns {
		seen[t.Month()] = struct{}{}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// SortTransactions orders transactions newest first, then by description.
func SortTransactions(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].Description < txns[j].Description
	})
}
