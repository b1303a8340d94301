// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats a dollar amount with thousands separators and cents.
// e.g., 1234.5 -> "$1,234.50", -12 -> "-$12.00"
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if v < 0 && math.Round(v*100) != 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", math.Abs(v))
}

// FormatSigned formats an amount with an explicit sign.
func FormatSigned(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMonths formats a payoff horizon. A nil count means the plan never
// completes.
// e.g., 1 -> "1 month", 30 -> "30 months (2y 6m)"
func FormatMonths(months *int) string {
	if months == nil {
		return "never"
	}
	n := *months
	switch {
	case n == 1:
		return "1 month"
	case n < 12:
		return fmt.Sprintf("%d months", n)
	case n%12 == 0:
		return fmt.Sprintf("%d months (%dy)", n, n/12)
	default:
		return fmt.Sprintf("%d months (%dy %dm)", n, n/12, n%12)
	}
}

// FormatMonthLabel turns a "YYYY-MM" ledger month into "Jan 2025".
// Unparseable input is returned unchanged.
func FormatMonthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan 2006")
}

// FormatPayoffDate returns the calendar month a plan of n months completes,
// counting from the month containing start.
func FormatPayoffDate(start time.Time, months *int) string {
	if months == nil {
		return "never"
	}
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	return first.AddDate(0, *months, 0).Format("Jan 2006")
}
