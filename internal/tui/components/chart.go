package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetburn/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BalanceChart renders a column chart of values, one column per value,
// height rows tall, with a labeled Y axis and the first and last X labels.
// Values wider than the chart are sampled down, always keeping the last.
func BalanceChart(values []float64, firstLabel, lastLabel string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 3 || width < 15 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	axisW := len(compactMoney(peak)) + 1
	plotW := width - axisW - 1
	values = sample(values, plotW)

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := peak * float64(row) / float64(height)
		bottom := peak * float64(row-1) / float64(height)

		label := ""
		switch row {
		case height:
			label = compactMoney(peak)
		case (height + 1) / 2:
			label = compactMoney(top)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", axisW, label)))

		var line strings.Builder
		for _, v := range values {
			switch {
			case v >= top:
				line.WriteRune('█')
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(sparkBlocks)))
				line.WriteRune(sparkBlocks[max(0, min(idx, len(sparkBlocks)-1))])
			default:
				line.WriteRune(' ')
			}
		}
		b.WriteString(bar.Render(line.String()))
		if pad := plotW - len(values); pad > 0 {
			b.WriteString(blank.Render(strings.Repeat(" ", pad)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", axisW, "0", strings.Repeat("─", len(values)))))
	b.WriteString("\n")

	gap := len(values) - len(firstLabel) - len(lastLabel)
	if gap < 1 {
		lastLabel = ""
		gap = 1
	}
	b.WriteString(axis.Render(strings.Repeat(" ", axisW+1) + firstLabel + strings.Repeat(" ", gap) + lastLabel))

	return b.String()
}

func sample(values []float64, n int) []float64 {
	if n <= 1 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

// compactMoney formats axis labels like "$12k" or "$1.5M".
func compactMoney(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e4:
		return fmt.Sprintf("$%.0fk", v/1e3)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
