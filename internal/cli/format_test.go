package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetburn/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12, "$12.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-42.1, "-$42.10"},
		{-0.004, "$0.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(250); got != "+$250.00" {
		t.Errorf("FormatSigned(250) = %q", got)
	}
	if got := FormatSigned(-80); got != "-$80.00" {
		t.Errorf("FormatSigned(-80) = %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	n := func(v int) *int { return &v }
	tests := []struct {
		in   *int
		want string
	}{
		{nil, "never"},
		{n(1), "1 month"},
		{n(7), "7 months"},
		{n(24), "24 months (2y)"},
		{n(30), "30 months (2y 6m)"},
	}
	for _, tt := range tests {
		if got := FormatMonths(tt.in); got != tt.want {
			t.Errorf("FormatMonths = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatMonthLabelAndPayoffDate(t *testing.T) {
	if got := FormatMonthLabel("2025-04"); got != "Apr 2025" {
		t.Errorf("FormatMonthLabel = %q", got)
	}
	if got := FormatMonthLabel("soon"); got != "soon" {
		t.Errorf("FormatMonthLabel(bad) = %q", got)
	}

	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	months := 3
	if got := FormatPayoffDate(start, &months); got != "Feb 2026" {
		t.Errorf("FormatPayoffDate = %q, want Feb 2026", got)
	}
}

func TestFormatPayoffDateMonthEnd(t *testing.T) {
	tests := []struct {
		start  time.Time
		months int
		want   string
	}{
		{time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC), 1, "Feb 2026"},
		{time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), 1, "Feb 2026"},
		{time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), 1, "Sep 2025"},
		{time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), 2, "Feb 2026"},
		{time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 0, "Mar 2025"},
	}
	for _, tt := range tests {
		m := tt.months
		if got := FormatPayoffDate(tt.start, &m); got != tt.want {
			t.Errorf("FormatPayoffDate(%s, %d) = %q, want %q",
				tt.start.Format("2006-01-02"), tt.months, got, tt.want)
		}
	}
	if got := FormatPayoffDate(time.Now(), nil); got != "never" {
		t.Errorf("FormatPayoffDate(nil) = %q, want never", got)
	}
}

func TestRenderTableAlignsStyledCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Status"},
		Rows: [][]string{
			{"Dining", StatusBadge(model.StatusOver)},
			{"Housing", StatusBadge(model.StatusOK)},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
}

func TestDownsample(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	got := Downsample(values, 5)
	if len(got) != 5 || got[0] != 0 || got[4] != 99 {
		t.Errorf("Downsample = %v", got)
	}
	if got := Downsample(values[:3], 5); len(got) != 3 {
		t.Errorf("short input len = %d, want 3", len(got))
	}
}
