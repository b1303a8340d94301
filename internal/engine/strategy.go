package engine

import (
	"sort"

	"github.com/theirongolddev/budgetburn/internal/model"
)

// debtLess reports whether a should receive extra payment before b.
type debtLess func(a, b *workingDebt) bool

// comparator returns the ordering for a strategy. Unknown strategies order
// like avalanche.
func comparator(s model.Strategy) debtLess {
	if s == model.Snowball {
		return snowballLess
	}
	return avalancheLess
}

// avalancheLess orders by APR descending, then balance ascending.
func avalancheLess(a, b *workingDebt) bool {
	if a.apr != b.apr {
		return a.apr > b.apr
	}
	return a.balance < b.balance
}

// snowballLess orders by balance ascending, then APR descending.
func snowballLess(a, b *workingDebt) bool {
	if a.balance != b.balance {
		return a.balance < b.balance
	}
	return a.apr > b.apr
}

// activeOrder returns the debts with a positive balance, ordered by less.
// Ties beyond the comparator keep input order.
func activeOrder(debts []*workingDebt, less debtLess) []*workingDebt {
	active := make([]*workingDebt, 0, len(debts))
	for _, d := range debts {
		if d.balance > 0 {
			active = append(active, d)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return less(active[i], active[j])
	})
	return active
}
