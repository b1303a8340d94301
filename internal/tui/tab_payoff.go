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

func (a App) renderPayoffTab(cw int) string {
	t := theme.Active
	plan := a.overview.Payoff
	var b strings.Builder

	if len(a.snap.Debts) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Debt Payoff",
			muted.Render(plan.Label+". Add one with `budgetburn debt add`."), cw)
	}

	// Row 1: Metric cards
	monthsTone := t.Good
	if !plan.Feasible() {
		monthsTone = t.Bad
	}
	cards := []components.Metric{
		{Label: "Time to Debt-Free", Value: cli.FormatMonths(plan.Months), Delta: plan.Label, Tone: monthsTone},
		{Label: "Payoff Date", Value: cli.FormatPayoffDate(a.opts.Now(), plan.Months), Delta: string(plan.Strategy)},
		{Label: "Total Interest", Value: cli.FormatMoney(plan.TotalInterest), Tone: t.Warn,
			Delta: fmt.Sprintf("%s total paid", cli.FormatMoney(plan.TotalPaid))},
		{Label: "Extra / Month", Value: cli.FormatMoney(plan.ExtraPayment), Delta: "[+/-] to adjust"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Balance chart + strategy comparison
	chartW, cmpW := cw, cw
	if !a.isCompactLayout() {
		cols := components.LayoutRow(cw, 3)
		chartW = cols[0] + cols[1]
		cmpW = cols[2]
	}

	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	chart := components.BalanceChart(balanceSeries(plan), "now", cli.FormatMonths(plan.Months),
		t.Accent, components.CardInnerWidth(chartW), chartH)
	if chart == "" {
		chart = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No schedule")
	}
	chartCard := components.ContentCard("Remaining Balance", chart, chartW)
	cmpCard := components.ContentCard("Avalanche vs Snowball", a.comparisonBody(components.CardInnerWidth(cmpW)), cmpW)

	if a.isCompactLayout() {
		b.WriteString(chartCard)
		b.WriteString("\n")
		b.WriteString(cmpCard)
	} else {
		b.WriteString(components.CardRow([]string{chartCard, cmpCard}))
	}
	b.WriteString("\n")

	// Row 3: Schedule
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Schedule (first %d months)", min(a.opts.ScheduleRows, len(plan.Schedule))),
		a.scheduleBody(plan, components.CardInnerWidth(cw)), cw))

	return b.String()
}

func (a App) comparisonBody(innerW int) string {
	t := theme.Active
	cmp := a.comparison
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	row := func(l, v string, style lipgloss.Style) {
		gap := max(1, innerW-lipgloss.Width(l)-lipgloss.Width(v))
		b.WriteString(label.Render(l))
		b.WriteString(space.Render(strings.Repeat(" ", gap)))
		b.WriteString(style.Render(v))
		b.WriteString("\n")
	}

	for _, p := range []model.PayoffPlan{cmp.Avalanche, cmp.Snowball} {
		style := value
		if p.Strategy == a.strategy {
			style = style.Foreground(t.AccentBright).Bold(true)
		}
		row(strings.ToUpper(string(p.Strategy[:1]))+string(p.Strategy[1:]), cli.FormatMonths(p.Months), style)
		row("  interest", cli.FormatMoney(p.TotalInterest), label)
	}

	if cmp.Avalanche.Feasible() && cmp.Snowball.Feasible() {
		b.WriteString("\n")
		row("Avalanche saves", cli.FormatMoney(cmp.InterestSaved), value.Foreground(t.SignedColor(cmp.InterestSaved)))
		row("Months saved", fmt.Sprintf("%d", cmp.MonthsSaved), value)
	}
	b.WriteString(label.Render("[s] switch strategy"))
	return b.String()
}

func (a App) scheduleBody(plan model.PayoffPlan, innerW int) string {
	t := theme.Active
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	paidStyle := lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface)

	const monthW, numW = 5, 11
	targetW := max(innerW-monthW-numW*4-5-16, 8)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%*s %-*s %*s %*s %*s %*s",
		monthW, "Mo", targetW, "Target", numW, "Paid", numW, "Interest", numW, "Principal", numW, "Balance")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))

	n := min(a.opts.ScheduleRows, len(plan.Schedule))
	for _, rec := range plan.Schedule[:n] {
		target := rec.Target
		if target == "" {
			target = "-"
		}
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(fmt.Sprintf("%*d %-*s %*s %*s %*s %*s",
			monthW, rec.Month,
			targetW, truncStr(target, targetW),
			numW, cli.FormatMoney(rec.Paid),
			numW, cli.FormatMoney(rec.Interest),
			numW, cli.FormatMoney(rec.Principal),
			numW, cli.FormatMoney(rec.TotalBalanceRemaining))))
		if len(rec.PaidOff) > 0 {
			b.WriteString(paidStyle.Render(" ✓ " + truncStr(strings.Join(rec.PaidOff, ", "), 13)))
		}
	}
	if len(plan.Schedule) > n {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more months (`budgetburn export schedule` for all)", len(plan.Schedule)-n)))
	}
	return b.String()
}
