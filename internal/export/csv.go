// Package export writes analyses as CSV for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetburn/internal/model"
)

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteBudgetCSV writes one row per budget category plus a totals row.
func WriteBudgetCSV(w io.Writer, report model.BudgetReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "planned", "actual", "remaining", "pct_used", "status"}); err != nil {
		return err
	}
	for _, r := range report.Rows {
		rec := []string{
			string(r.Category),
			money(r.Planned),
			money(r.Actual),
			money(r.Remaining),
			decimal.NewFromFloat(r.PctUsed).StringFixed(1),
			string(r.Status),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{
		"Total",
		money(report.TotalPlanned),
		money(report.TotalActual),
		money(report.TotalRemaining),
		"",
		"",
	}); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing budget csv: %w", err)
	}
	return nil
}

// WriteScheduleCSV writes the month-by-month payoff schedule. Debts paid off
// in a month are joined with "; ".
func WriteScheduleCSV(w io.Writer, plan model.PayoffPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "target", "paid", "interest", "principal", "balance_remaining", "paid_off"}); err != nil {
		return err
	}
	for _, m := range plan.Schedule {
		rec := []string{
			strconv.Itoa(m.Month),
			m.Target,
			money(m.Paid),
			money(m.Interest),
			money(m.Principal),
			money(m.TotalBalanceRemaining),
			strings.Join(m.PaidOff, "; "),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing schedule csv: %w", err)
	}
	return nil
}
