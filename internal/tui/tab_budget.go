package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/tui/components"
	"github.com/theirongolddev/budgetburn/internal/tui/theme"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	rep := a.overview.Budget
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	// Fixed columns: name(14) planned(11) actual(11) remaining(12) status(6) + gaps
	const nameW, numW, remW, statusW = 14, 11, 12, 6
	fixed := nameW + numW*2 + remW + statusW + 5
	barW := max(innerW-fixed-6, 6)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %-*s ",
		nameW, "Category", numW, "Planned", numW, "Actual", remW, "Remaining", statusW, "Status")))
	b.WriteString(headerStyle.Render("Used"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	if len(rep.Rows) == 0 {
		b.WriteString(mutedStyle.Render("No planned expenses or spending for this month."))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Add some with `budgetburn expense add` or `budgetburn txn import`."))
	}

	for _, r := range rep.Rows {
		remStyle := rowStyle.Foreground(t.SignedColor(r.Remaining))
		statusStyle := rowStyle.Foreground(t.StatusColor(r.Status)).Bold(true)

		b.WriteString(rowStyle.Render(fmt.Sprintf("%-*s %*s %*s ",
			nameW, truncStr(string(r.Category), nameW),
			numW, cli.FormatMoney(r.Planned),
			numW, cli.FormatMoney(r.Actual))))
		b.WriteString(remStyle.Render(fmt.Sprintf("%*s", remW, cli.FormatSigned(r.Remaining))))
		b.WriteString(space.Render(" "))
		b.WriteString(statusStyle.Render(fmt.Sprintf("%-*s", statusW, r.Status)))
		b.WriteString(space.Render(" "))
		b.WriteString(components.UsageBar(r.PctUsed, r.Status, barW))
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %5s", cli.FormatPercent(r.PctUsed))))
		b.WriteString("\n")
	}

	if len(rep.Rows) > 0 {
		b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s ",
			nameW, "Total",
			numW, cli.FormatMoney(rep.TotalPlanned),
			numW, cli.FormatMoney(rep.TotalActual))))
		b.WriteString(rowStyle.Foreground(t.SignedColor(rep.TotalRemaining)).Bold(true).
			Render(fmt.Sprintf("%*s", remW, cli.FormatSigned(rep.TotalRemaining))))
	}

	month := a.overview.Month
	txns := len(pipeline.FilterByMonth(a.snap.Transactions, month))
	title := fmt.Sprintf("Budget vs Actual · %s · %d transactions", cli.FormatMonthLabel(month), txns)
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), cw)
}
