package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetburn/internal/config"
	"github.com/theirongolddev/budgetburn/internal/tui"
	"github.com/theirongolddev/budgetburn/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup: income profile and theme",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	current, err := st.LoadIncome()
	if err != nil {
		return err
	}

	vals := tui.NewIncomeValues(current)
	if err := tui.NewIncomeForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return fmt.Errorf("income form: %w", err)
	}

	p, err := vals.Profile()
	if err != nil {
		return err
	}
	if err := st.SaveIncome(p); err != nil {
		return err
	}

	themeName := cfg.Appearance.Theme
	opts := make([]huh.Option[string], 0, len(theme.Names()))
	for _, name := range theme.Names() {
		opts = append(opts, huh.NewOption(name, name))
	}
	themeForm := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Color theme").
			Options(opts...).
			Value(&themeName),
	)).WithTheme(huh.ThemeCharm())
	if err := themeForm.Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("theme form: %w", err)
	}

	cfg.Appearance.Theme = themeName
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	printIncome(p)
	fmt.Println()
	fmt.Printf("  Saved income to %s\n", dbPath())
	fmt.Printf("  Saved config to %s\n", config.ConfigPath())
	fmt.Println("  Run `budgetburn setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
