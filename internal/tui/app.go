// Package tui provides the interactive Bubble Tea room budget calculator.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/store"
	"github.com/theirongolddev/roombudget/internal/tui/components"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indices, matching components.Tabs.
const (
	tabEstimate = iota
	tabAddOns
	tabScope
	tabSettings
)

// editTarget says which value the shared text input is editing.
type editTarget int

const (
	editNone editTarget = iota
	editPrice
	editAddOn
)

// QuoteSavedMsg is sent when a background history save completes.
type QuoteSavedMsg struct {
	ID  string
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	cat     catalog.Catalog
	session model.Session
	est     model.Estimate
	evalErr error
	history *store.History

	// Estimate tab
	cursor int

	// Add-ons tab
	addOnCursor int

	// Whole Home tab: counts in catalog room order
	scopeCounts []int
	scopeCursor int

	// Shared numeric input for custom prices and add-on rates
	editing editTarget
	input   textinput.Model

	settings settingsState

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model starting from cfg's defaults. hist may
// be nil, in which case quotes cannot be saved.
func NewApp(cat catalog.Catalog, cfg config.Config, hist *store.History) App {
	return newApp(cat, cfg, hist, !config.Exists())
}

func newApp(cat catalog.Catalog, cfg config.Config, hist *store.History, needSetup bool) App {
	brand := cfg.General.Brand
	if _, ok := cat.Brand(brand); !ok && len(cat.Brands) > 0 {
		brand = cat.Brands[0].Key
	}
	room := cfg.General.Room
	if _, ok := cat.Room(room); !ok && len(cat.Rooms) > 0 {
		room = cat.Rooms[0].Key
	}

	s := estimate.NewSession(cat, brand, room)
	if tier, err := model.ParseTier(cfg.General.Tier); err == nil {
		s = estimate.SetTier(s, tier)
	}
	s.AddOns = cfg.AddOns.ToModel()

	counts := make([]int, len(cat.Rooms))
	for i, r := range cat.Rooms {
		if r.Key == room {
			counts[i] = 1
		}
	}

	a := App{
		cat:         cat,
		session:     s,
		history:     hist,
		scopeCounts: counts,
		needSetup:   needSetup,
		settings:    settingsState{historyEnabled: cfg.History.Enabled},
	}
	if needSetup {
		a.setupVals = setupValuesFromConfig(cfg)
		a.setupForm = newSetupForm(cat, &a.setupVals)
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// recompute re-evaluates the session. It is called after every transition.
func (a *App) recompute() {
	a.est, a.evalErr = estimate.Evaluate(a.cat, a.session)
	if n := len(a.currentRoom().Items); a.cursor >= n {
		a.cursor = max(n-1, 0)
	}
}

func (a App) currentRoom() catalog.RoomDef {
	r, _ := a.cat.Room(a.session.Room)
	return r
}

func (a App) currentItem() (catalog.ItemDef, bool) {
	items := a.currentRoom().Items
	if a.cursor < 0 || a.cursor >= len(items) {
		return catalog.ItemDef{}, false
	}
	return items[a.cursor], true
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
		if a.showHelp || (a.needSetup && a.setupForm != nil) || a.editing != editNone {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.editing != editNone {
			return a.updateInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.status = ""

		var (
			handled bool
			cmd     tea.Cmd
		)
		switch a.activeTab {
		case tabEstimate:
			a, cmd, handled = a.updateEstimateKeys(key)
		case tabAddOns:
			a, cmd, handled = a.updateAddOnsKeys(key)
		case tabScope:
			a, handled = a.updateScopeKeys(key)
		case tabSettings:
			a, handled = a.updateSettingsKeys(key)
		}
		if handled {
			return a, cmd
		}

		return a.updateGlobalKeys(key)

	case QuoteSavedMsg:
		if msg.Err != nil {
			a.status = "save failed: " + msg.Err.Error()
		} else {
			a.status = "saved quote " + shortID(msg.ID)
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form or the text input
	// (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.editing != editNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

// updateGlobalKeys handles keys shared by every tab: session controls and
// tab navigation.
func (a App) updateGlobalKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "b":
		a.session = estimate.SelectBrand(a.cat, a.session, nextKey(a.cat.BrandKeys(), a.session.Brand))
		a.recompute()
		a.status = "brand: " + a.cat.BrandLabel(a.session.Brand)
	case "r":
		a.session = estimate.SelectRoom(a.cat, a.session, nextKey(a.cat.RoomKeys(), a.session.Room))
		a.cursor = 0
		a.recompute()
		a.status = "room: " + a.currentRoom().Label
	case "t":
		a.session = estimate.SetTier(a.session, a.session.Tier.Next())
		a.recompute()
	case "R":
		a.session = estimate.ResetControls(a.session)
		a.recompute()
		a.status = "controls reset"
	case "S":
		return a, a.saveQuoteCmd()
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return a.updateGlobalOrTab("up")
	case tea.MouseButtonWheelDown:
		return a.updateGlobalOrTab("down")
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		// Tab bar is the first line
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateGlobalOrTab(key string) (tea.Model, tea.Cmd) {
	return a.Update(tea.KeyMsg{Type: keyTypeFor(key)})
}

func keyTypeFor(key string) tea.KeyType {
	if key == "up" {
		return tea.KeyUp
	}
	return tea.KeyDown
}

// updateInput handles keys while the shared text input is focused.
func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		target := a.editing
		a.editing = editNone
		a.input.Blur()
		switch target {
		case editPrice:
			a.commitPrice(a.input.Value())
		case editAddOn:
			a.commitAddOn(a.input.Value())
		}
		a.recompute()
		return a, nil
	case "esc":
		a.editing = editNone
		a.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func newNumberInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 14
	ti.Prompt = "$ "
	ti.SetValue(value)
	ti.Focus()
	return ti
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.applySetup(); err != nil {
			a.status = "setup not saved: " + err.Error()
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// applySetup saves the wizard answers and applies them to the live session.
func (a *App) applySetup() error {
	cfg := loadConfigOrDefault()
	if err := a.setupVals.apply(&cfg); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	a.session = estimate.NewSession(a.cat, cfg.General.Brand, cfg.General.Room)
	if tier, err := model.ParseTier(cfg.General.Tier); err == nil {
		a.session = estimate.SetTier(a.session, tier)
	}
	a.session.AddOns = cfg.AddOns.ToModel()
	a.settings.historyEnabled = cfg.History.Enabled
	a.recompute()
	return config.Save(cfg)
}

func (a App) saveQuoteCmd() tea.Cmd {
	if a.history == nil || !a.settings.historyEnabled {
		return func() tea.Msg {
			return QuoteSavedMsg{Err: fmt.Errorf("quote history is disabled")}
		}
	}
	if a.evalErr != nil {
		err := a.evalErr
		return func() tea.Msg { return QuoteSavedMsg{Err: err} }
	}
	hist, est := a.history, a.est
	return func() tea.Msg {
		q, err := hist.SaveQuote(est)
		return QuoteSavedMsg{ID: q.ID, Err: err}
	}
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

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  roombudget needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"e a w x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move cursor"},
		}},
		{"Estimate", []struct{ key, desc string }{
			{"b r t", "Cycle brand / room / tier"},
			{"space", "Include / exclude item"},
			{"+ -", "Change quantity or room count"},
			{"p", "Set custom price (Custom tier)"},
			{"R", "Reset tier and add-ons"},
			{"S", "Save quote to history"},
		}},
		{"General", []struct{ key, desc string }{
			{"Enter", "Edit / Confirm"},
			{"Esc", "Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + session pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(a.cat.BrandLabel(a.session.Brand)) +
		pillStyle.Render(" │ ") + pillAccentStyle.Render(a.currentRoom().Label) +
		pillStyle.Render(" │ ") + pillAccentStyle.Render(a.session.Tier.Label()) +
		pillStyle.Render(" ")

	header := components.RenderTabBar(a.activeTab, w) +
		"\n" + lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	status := a.status
	if a.evalErr != nil {
		status = a.evalErr.Error()
	}
	statusBar := components.RenderStatusBar(w, a.hints(), status)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabEstimate:
		content = a.renderEstimateTab(cw)
	case tabAddOns:
		content = a.renderAddOnsTab(cw)
	case tabScope:
		content = a.renderScopeTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	if a.editing != editNone {
		return "[Enter] apply  [Esc] cancel"
	}
	switch a.activeTab {
	case tabEstimate:
		return "[j/k] item  [space] toggle  [+/-] qty  [p] price  [b/r/t] brand/room/tier  [?] help"
	case tabAddOns:
		return "[j/k] field  [Enter] edit  [space] toggle  [R] reset  [?] help"
	case tabScope:
		return "[j/k] room  [+/-] count  [b] brand  [?] help"
	default:
		return "[j/k] navigate  [Enter] change  [?] help"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// nextKey returns the key after cur in keys, wrapping around.
func nextKey(keys []string, cur string) string {
	if len(keys) == 0 {
		return cur
	}
	for i, k := range keys {
		if k == cur {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

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

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
