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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	ov := a.overview
	inc := ov.Income
	bud := ov.Budget
	var b strings.Builder

	// Row 1: Metric cards
	spentDelta := "no spending yet"
	if bud.TotalPlanned > 0 {
		spentDelta = cli.FormatPercent(bud.TotalActual/bud.TotalPlanned*100) + " of plan"
	} else if bud.TotalActual > 0 {
		spentDelta = "nothing planned"
	}
	cards := []components.Metric{
		{Label: "Net Income", Value: cli.FormatMoney(inc.MonthlyNet),
			Delta: cli.FormatMoney(inc.MonthlyGross) + " gross"},
		{Label: "Planned", Value: cli.FormatMoney(bud.TotalPlanned),
			Delta: fmt.Sprintf("%d categories", len(bud.Rows))},
		{Label: "Spent", Value: cli.FormatMoney(bud.TotalActual),
			Delta: spentDelta, Tone: spentTone(bud)},
		{Label: "Cash Flow", Value: cli.FormatSigned(ov.CashFlow),
			Delta: "net minus planned", Tone: t.SignedColor(ov.CashFlow)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Income breakdown + Alerts
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	innerW := components.CardInnerWidth(halves[0])
	line := func(body *strings.Builder, l, v string, color lipgloss.Color) {
		gap := max(1, innerW-lipgloss.Width(l)-lipgloss.Width(v))
		body.WriteString(label.Render(l))
		body.WriteString(space.Render(strings.Repeat(" ", gap)))
		body.WriteString(value.Foreground(color).Render(v))
		body.WriteString("\n")
	}

	var incBody strings.Builder
	line(&incBody, "Pay frequency", string(a.snap.Income.Frequency), t.TextPrimary)
	line(&incBody, "Paychecks / month", fmt.Sprintf("%.2f", inc.PaychecksPerMonth), t.TextPrimary)
	line(&incBody, "Monthly gross", cli.FormatMoney(inc.MonthlyGross), t.TextPrimary)
	line(&incBody, "Taxes", "-"+cli.FormatMoney(inc.Taxes), t.Warn)
	line(&incBody, "Deductions", "-"+cli.FormatMoney(inc.Deductions), t.Warn)
	line(&incBody, "Monthly net", cli.FormatMoney(inc.MonthlyNet), t.Good)

	alertW := components.CardInnerWidth(halves[1])
	var alertBody strings.Builder
	alerts := bud.TopAlerts(a.opts.AlertLimit)
	if len(alerts) == 0 {
		alertBody.WriteString(lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface).
			Render("All categories on track"))
	}
	for _, r := range alerts {
		status := lipgloss.NewStyle().Foreground(t.StatusColor(r.Status)).Background(t.Surface).Bold(true)
		detail := fmt.Sprintf("%s of %s", cli.FormatMoney(r.Actual), cli.FormatMoney(r.Planned))
		name := fmt.Sprintf("%-5s %s", r.Status, r.Category)
		gap := max(1, alertW-lipgloss.Width(name)-lipgloss.Width(detail))
		alertBody.WriteString(status.Render(fmt.Sprintf("%-5s", r.Status)))
		alertBody.WriteString(value.Render(" " + string(r.Category)))
		alertBody.WriteString(space.Render(strings.Repeat(" ", gap)))
		alertBody.WriteString(label.Render(detail))
		alertBody.WriteString("\n")
	}

	incCard := components.ContentCard("Income", strings.TrimRight(incBody.String(), "\n"), halves[0])
	alertCard := components.ContentCard(
		fmt.Sprintf("Alerts · %s", cli.FormatMonthLabel(ov.Month)),
		strings.TrimRight(alertBody.String(), "\n"), halves[1])
	if a.isCompactLayout() {
		b.WriteString(incCard)
		b.WriteString("\n")
		b.WriteString(alertCard)
	} else {
		b.WriteString(components.CardRow([]string{incCard, alertCard}))
	}
	b.WriteString("\n")

	// Row 3: Payoff summary
	b.WriteString(components.ContentCard("Debt Payoff", a.payoffSummary(ov.Payoff, components.CardInnerWidth(cw)), cw))

	return b.String()
}

// payoffSummary renders the plan label, projected date and a balance sparkline.
func (a App) payoffSummary(plan model.PayoffPlan, innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	tone := t.Good
	if !plan.Feasible() {
		tone = t.Bad
	}
	if plan.Outcome == model.OutcomeCompleted && len(a.snap.Debts) == 0 {
		tone = t.TextMuted
	}
	head := lipgloss.NewStyle().Foreground(tone).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(head.Render(plan.Label))
	if plan.Feasible() && len(plan.Schedule) > 0 {
		b.WriteString(muted.Render(fmt.Sprintf("  ·  %s  ·  %s interest  ·  debt-free %s",
			plan.Strategy,
			cli.FormatMoney(plan.TotalInterest),
			cli.FormatPayoffDate(a.opts.Now(), plan.Months))))
	}
	if vals := balanceSeries(plan); len(vals) > 1 {
		b.WriteString("\n")
		b.WriteString(components.Sparkline(sampleTail(vals, innerW), t.Accent))
	}
	return b.String()
}

func spentTone(r model.BudgetReport) lipgloss.Color {
	t := theme.Active
	switch {
	case r.TotalPlanned <= 0 && r.TotalActual <= 0:
		return t.TextPrimary
	case r.TotalActual > r.TotalPlanned:
		return t.Bad
	case r.TotalActual >= 0.9*r.TotalPlanned:
		return t.Warn
	}
	return t.Good
}

// balanceSeries is the total remaining balance at the end of each month,
// starting from the opening balance.
func balanceSeries(plan model.PayoffPlan) []float64 {
	if len(plan.Schedule) == 0 {
		return nil
	}
	first := plan.Schedule[0]
	vals := make([]float64, 0, len(plan.Schedule)+1)
	vals = append(vals, first.TotalBalanceRemaining+first.Principal)
	for _, rec := range plan.Schedule {
		vals = append(vals, rec.TotalBalanceRemaining)
	}
	return vals
}

// sampleTail keeps at most n values spread evenly, always including the last.
func sampleTail(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	out[n-1] = values[len(values)-1]
	return out
}
