// Package tui provides the interactive Bubble Tea dashboard for budgetburn.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetburn/internal/cli"
	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
	"github.com/theirongolddev/budgetburn/internal/tui/components"
	"github.com/theirongolddev/budgetburn/internal/tui/theme"
)

// Source is the planner state the dashboard reads and writes.
type Source interface {
	LoadSnapshot() (model.Snapshot, error)
	SaveIncome(model.IncomeProfile) error
	SavePayoffSettings(model.PayoffSettings) error
}

// Options configures a dashboard run.
type Options struct {
	Month        string  // initial budget month, "YYYY-MM"; empty means current
	ExtraStep    float64 // +/- adjustment to the extra payment
	AlertLimit   int
	ScheduleRows int
	FirstRun     bool // show the income form once data loads
	Now          func() time.Time
}

// SnapshotLoadedMsg is sent when a state load finishes.
type SnapshotLoadedMsg struct {
	Snapshot model.Snapshot
	Err      error
	LoadTime time.Duration
}

// SavedMsg reports the result of a background save. Seq is the payoff
// change it persisted, zero for other saves.
type SavedMsg struct {
	What string
	Seq  int
	Err  error
}

// saveDueMsg fires once payoff edits have been quiet for saveDelay.
type saveDueMsg struct{ seq int }

// saveDelay debounces bursts of what-if key presses into one save.
const saveDelay = 400 * time.Millisecond

const (
	tabOverview = iota
	tabBudget
	tabPayoff
	tabDebts
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// App is the root Bubble Tea model.
type App struct {
	src  Source
	opts Options

	// Data
	snap     model.Snapshot
	loaded   bool
	loadErr  error
	loadTime time.Duration
	loading  bool

	// What-if state, seeded from saved settings
	month    string
	strategy model.Strategy
	extra    float64

	// Payoff persistence. At most one save is in flight; pendingSeq counts
	// edits and savedSeq is the newest edit already written.
	pendingSeq int
	savedSeq   int
	saving     bool
	quitting   bool

	// Pre-computed for the current month and settings
	overview   model.Overview
	comparison model.PayoffComparison

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// First-run income form (huh)
	setupForm *huh.Form
	setupVals IncomeValues
	needSetup bool

	spinner spinner.Model
}

// NewApp creates a new TUI app model.
func NewApp(src Source, opts Options) App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExtraStep <= 0 {
		opts.ExtraStep = 25
	}
	if opts.AlertLimit <= 0 {
		opts.AlertLimit = 6
	}
	if opts.ScheduleRows <= 0 {
		opts.ScheduleRows = 24
	}
	month := opts.Month
	if month == "" {
		month = pipeline.CurrentMonth(opts.Now())
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		src:       src,
		opts:      opts,
		month:     month,
		needSetup: opts.FirstRun,
		loading:   true,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.src),
		a.spinner.Tick,
	)
}

func loadCmd(src Source) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := src.LoadSnapshot()
		return SnapshotLoadedMsg{Snapshot: snap, Err: err, LoadTime: time.Since(start)}
	}
}

func savePayoffCmd(src Source, ps model.PayoffSettings, seq int) tea.Cmd {
	return func() tea.Msg {
		return SavedMsg{What: "payoff settings", Seq: seq, Err: src.SavePayoffSettings(ps)}
	}
}

func debounceSave(seq int) tea.Cmd {
	return tea.Tick(saveDelay, func(time.Time) tea.Msg {
		return saveDueMsg{seq: seq}
	})
}

// payoffChanged records a what-if edit and schedules its save.
func (a *App) payoffChanged() tea.Cmd {
	a.recompute()
	a.pendingSeq++
	return debounceSave(a.pendingSeq)
}

// flushPayoff starts a save of the current settings unless one is already
// in flight or nothing changed since the last write.
func (a *App) flushPayoff() tea.Cmd {
	if a.saving || a.savedSeq >= a.pendingSeq {
		return nil
	}
	a.saving = true
	return savePayoffCmd(a.src, a.payoffSettings(), a.pendingSeq)
}

// quit exits once unsaved payoff edits are written.
func (a *App) quit() tea.Cmd {
	cmd := a.flushPayoff()
	if cmd == nil && !a.saving {
		return tea.Quit
	}
	a.quitting = true
	return cmd
}

func saveIncomeCmd(src Source, p model.IncomeProfile) tea.Cmd {
	return func() tea.Msg {
		return SavedMsg{What: "income", Err: src.SaveIncome(p)}
	}
}

func (a *App) recompute() {
	a.snap.Payoff = model.PayoffSettings{Strategy: a.strategy, ExtraPayment: a.extra}
	a.overview = pipeline.Overview(a.snap, a.month)
	a.comparison = engine.ComparePayoff(a.snap.Debts, a.extra)
}

func (a App) payoffSettings() model.PayoffSettings {
	return model.PayoffSettings{Strategy: a.strategy, ExtraPayment: a.extra}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case SnapshotLoadedMsg:
		a.loading = false
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		first := !a.loaded
		a.loadErr = nil
		a.loaded = true
		a.snap = msg.Snapshot
		if first {
			a.strategy = msg.Snapshot.Payoff.Strategy
			a.extra = msg.Snapshot.Payoff.ExtraPayment
		}
		a.recompute()

		if first && a.needSetup {
			a.setupVals = NewIncomeValues(a.snap.Income)
			a.setupForm = NewIncomeForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case saveDueMsg:
		if msg.seq != a.pendingSeq {
			return a, nil
		}
		cmd := a.flushPayoff()
		return a, cmd

	case SavedMsg:
		if msg.Err != nil {
			a.flash = fmt.Sprintf("Could not save %s: %v", msg.What, msg.Err)
		} else {
			a.flash = "Saved " + msg.What
		}
		if msg.Seq == 0 {
			return a, nil
		}
		a.saving = false
		a.savedSeq = max(a.savedSeq, msg.Seq)
		if a.quitting {
			cmd := a.quit()
			return a, cmd
		}
		// Write any edit that arrived while the save was running.
		cmd := a.flushPayoff()
		return a, cmd

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if a.setupForm != nil || !a.loaded || a.quitting {
			return a, tea.Quit
		}
		cmd := a.quit()
		return a, cmd
	}
	if a.quitting {
		return a, nil
	}

	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if !a.loaded {
		if key == "q" {
			return a, tea.Quit
		}
		if key == "r" && !a.loading {
			a.loading = true
			return a, tea.Batch(loadCmd(a.src), a.spinner.Tick)
		}
		return a, nil
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.flash = ""

	switch key {
	case "q":
		cmd := a.quit()
		return a, cmd
	case "r":
		if a.loading {
			return a, nil
		}
		a.loading = true
		return a, loadCmd(a.src)
	case "[":
		a.month = pipeline.ShiftMonth(a.month, -1)
		a.recompute()
	case "]":
		a.month = pipeline.ShiftMonth(a.month, 1)
		a.recompute()
	case "s":
		if a.strategy == model.Snowball {
			a.strategy = model.Avalanche
		} else {
			a.strategy = model.Snowball
		}
		cmd := a.payoffChanged()
		return a, cmd
	case "+", "=":
		a.extra = engine.Round2(a.extra + a.opts.ExtraStep)
		cmd := a.payoffChanged()
		return a, cmd
	case "-", "_":
		if a.extra == 0 {
			return a, nil
		}
		a.extra = engine.Round2(max(0, a.extra-a.opts.ExtraStep))
		cmd := a.payoffChanged()
		return a, cmd
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.needSetup = false
		p, err := a.setupVals.Profile()
		if err != nil {
			a.flash = "Income not saved: " + err.Error()
			return a, nil
		}
		a.snap.Income = p
		a.recompute()
		return a, saveIncomeCmd(a.src, p)
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if !a.loaded {
		if a.loadErr != nil && !a.loading {
			return a.viewError()
		}
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetburn needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) centeredCard(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logo.Render("◈ budgetburn"))
	b.WriteString(muted.Render(" · Personal Finance Planner"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(muted.Render(" Loading your budget..."))
	return a.centeredCard(b.String())
}

func (a App) viewError() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Bad).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := title.Render("Could not load planner data") + "\n\n" +
		muted.Render(truncStr(a.loadErr.Error(), 70)) + "\n\n" +
		muted.Render("[r] retry   [q] quit")
	return a.centeredCard(body)
}

type binding struct{ key, desc string }

func (a App) viewHelp() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	section := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(title.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")

	groups := []struct {
		name     string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o b p d", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"[ ]", "Previous / Next budget month"},
		}},
		{"What-if", []binding{
			{"s", "Toggle avalanche / snowball"},
			{"+ -", fmt.Sprintf("Extra payment ± %s", cli.FormatMoney(a.opts.ExtraStep))},
		}},
		{"General", []binding{
			{"r", "Reload data"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for _, g := range groups {
		b.WriteString("\n")
		b.WriteString(section.Render(g.name))
		b.WriteString("\n")
		for _, bind := range g.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				desc.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("Press any key to close"))

	return a.centeredCard(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + context line
	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	ctx := pill.Render(" ") + accent.Render(cli.FormatMonthLabel(a.month)) +
		pill.Render(" │ ") + accent.Render(string(a.strategy)) +
		pill.Render(" │ extra ") + accent.Render(cli.FormatMoney(a.extra)) +
		pill.Render(" ")
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(ctx)

	// 2. Status bar
	status := a.flash
	if status == "" {
		status = fmt.Sprintf("Loaded in %s", a.loadTime.Round(time.Millisecond))
		if a.loading {
			status = "Reloading..."
		}
	}
	statusBar := components.RenderStatusBar(w, "[?]help  [s]trategy  [+/-]extra  [ ]month  [q]uit", status)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabPayoff:
		content = a.renderPayoffTab(cw)
	case tabDebts:
		content = a.renderDebtsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
