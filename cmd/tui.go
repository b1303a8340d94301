package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/tui"
)

var flagTUIMonth string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&flagTUIMonth, "month", "", "Initial budget month (YYYY-MM, default current)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if flagTUIMonth != "" {
		if _, err := resolveMonth(flagTUIMonth); err != nil {
			return err
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	income, err := st.LoadIncome()
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(st, tui.Options{
		Month:        flagTUIMonth,
		ExtraStep:    cfg.TUI.ExtraStep,
		AlertLimit:   cfg.General.AlertLimit,
		ScheduleRows: cfg.General.ScheduleRows,
		FirstRun:     income.GrossPerPaycheck == 0 && income.OtherMonthlyIncome == 0,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
