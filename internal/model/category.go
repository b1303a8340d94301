// Package model defines the plain data types shared by the engine and its collaborators.
package model

import "strings"

// Category is a spending category label.
type Category string

// The fixed category set, in display order.
const (
	Housing        Category = "Housing"
	Utilities      Category = "Utilities"
	Groceries      Category = "Groceries"
	Transportation Category = "Transportation"
	Insurance      Category = "Insurance"
	Healthcare     Category = "Healthcare"
	DebtPayments   Category = "Debt"
	Dining         Category = "Dining"
	Entertainment  Category = "Entertainment"
	Shopping       Category = "Shopping"
	Personal       Category = "Personal"
	Education      Category = "Education"
	Savings        Category = "Savings"
	Giving         Category = "Giving"
	Other          Category = "Other"
)

// Categories lists every category in the order budget rows are reported.
var Categories = []Category{
	Housing, Utilities, Groceries, Transportation, Insurance, Healthcare, DebtPayments,
	Dining, Entertainment, Shopping, Personal, Education, Savings, Giving, Other,
}

// Known reports whether c is one of Categories.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Normalize returns c, or Other when c is not a known category.
func (c Category) Normalize() Category {
	if c.Known() {
		return c
	}
	return Other
}

// ParseCategory matches s case-insensitively against Categories, falling back to Other.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, k := range Categories {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return Other
}
