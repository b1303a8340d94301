package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/tui/components"
	"github.com/theirongolddev/budgetburn/internal/tui/theme"
)

func (a App) renderDebtsTab(cw int) string {
	t := theme.Active
	debts := a.snap.Debts
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	if len(debts) == 0 {
		return components.ContentCard("Debts",
			mutedStyle.Render("No debts tracked. Add one with `budgetburn debt add`."), cw)
	}

	var total, minimums float64
	for _, d := range debts {
		total += d.Balance
		minimums += d.MinPayment
	}
	paidOff := paidOffMonths(a.overview.Payoff)

	const nameW, numW, aprW, doneW = 18, 12, 7, 9
	barW := max(innerW-nameW-numW*2-aprW-doneW-6-5, 6)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s ",
		nameW, "Debt", numW, "Balance", aprW, "APR", numW, "Minimum", doneW, "Paid off")))
	b.WriteString(headerStyle.Render("Share"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	for _, d := range debts {
		done := "-"
		if m, ok := paidOff[d.Name]; ok {
			done = fmt.Sprintf("mo %d", m)
		} else if d.Balance <= 0 {
			done = "paid"
		}
		share := 0.0
		if total > 0 {
			share = d.Balance / total
		}
		aprStyle := rowStyle
		if d.APRPct >= 20 {
			aprStyle = aprStyle.Foreground(t.Bad)
		}

		b.WriteString(rowStyle.Render(fmt.Sprintf("%-*s %*s ",
			nameW, truncStr(d.Name, nameW), numW, cli.FormatMoney(d.Balance))))
		b.WriteString(aprStyle.Render(fmt.Sprintf("%*s", aprW, fmt.Sprintf("%.2f%%", d.APRPct))))
		b.WriteString(rowStyle.Render(fmt.Sprintf(" %*s ", numW, cli.FormatMoney(d.MinPayment))))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%*s", doneW, done)))
		b.WriteString(space.Render(" "))
		b.WriteString(components.ShareBar(share, barW))
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %5s", cli.FormatPercent(share*100))))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s",
		nameW, "Total", numW, cli.FormatMoney(total), aprW, "", numW, cli.FormatMoney(minimums))))

	if net := a.overview.Income.MonthlyNet; net > 0 {
		pct := minimums / net * 100
		tone := t.Good
		switch {
		case pct >= 36:
			tone = t.Bad
		case pct >= 20:
			tone = t.Warn
		}
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Minimum payments use "))
		b.WriteString(lipgloss.NewStyle().Foreground(tone).Background(t.Surface).Bold(true).
			Render(cli.FormatPercent(pct)))
		b.WriteString(mutedStyle.Render(" of monthly net income"))
	}

	return components.ContentCard(fmt.Sprintf("Debts (%d)", len(debts)), b.String(), cw)
}

// paidOffMonths maps each debt name to the month the plan clears it.
func paidOffMonths(plan model.PayoffPlan) map[string]int {
	out := make(map[string]int)
	for _, rec := range plan.Schedule {
		for _, name := range rec.PaidOff {
			if _, seen := out[name]; !seen {
				out[name] = rec.Month
			}
		}
	}
	return out
}
