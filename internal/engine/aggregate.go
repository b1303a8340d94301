package engine

import "github.com/theirongolddev/budgetburn/internal/model"

// SumByCategory totals amount(item) per category(item). Only categories that
// appear in items are present in the result; labels outside the fixed
// category set are counted under Other.
func SumByCategory[T any](items []T, category func(T) model.Category, amount func(T) float64) map[model.Category]float64 {
	sums := make(map[model.Category]float64)
	for _, it := range items {
		sums[category(it).Normalize()] += amount(it)
	}
	return sums
}

// SumPlanned totals planned expenses per category.
func SumPlanned(expenses []model.PlannedExpense) map[model.Category]float64 {
	return SumByCategory(expenses,
		func(e model.PlannedExpense) model.Category { return e.Category },
		func(e model.PlannedExpense) float64 { return e.Amount },
	)
}

// SumActual totals transactions per category.
func SumActual(txns []model.Transaction) map[model.Category]float64 {
	return SumByCategory(txns,
		func(t model.Transaction) model.Category { return t.Category },
		func(t model.Transaction) float64 { return t.Amount },
	)
}
