package tui

import (
	"strings"
	"testing"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/tui/components"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func testApp(t *testing.T) App {
	t.Helper()
	return newApp(catalog.Default(), config.DefaultConfig(), nil, false)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestNewAppStartsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.Brand = catalog.BrandBirchLane
	cfg.General.Room = "bedroom"
	cfg.General.Tier = "best"
	cfg.AddOns.TaxPct = 8

	a := newApp(catalog.Default(), cfg, nil, false)
	if a.session.Brand != catalog.BrandBirchLane || a.session.Room != "bedroom" {
		t.Fatalf("session = %s/%s, want birchLane/bedroom", a.session.Brand, a.session.Room)
	}
	if a.session.Tier != model.TierHighest {
		t.Fatalf("tier = %s, want highest", a.session.Tier)
	}
	if a.session.AddOns.TaxPct != 8 {
		t.Fatalf("tax = %v, want 8", a.session.AddOns.TaxPct)
	}
	if a.evalErr != nil {
		t.Fatalf("evalErr = %v", a.evalErr)
	}
}

func TestNewAppFallsBackOnUnknownKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.Brand = "nope"
	cfg.General.Room = "garage"

	a := newApp(catalog.Default(), cfg, nil, false)
	if a.session.Brand != catalog.BrandJossMain || a.session.Room != "living" {
		t.Fatalf("session = %s/%s, want first brand and room", a.session.Brand, a.session.Room)
	}
}

func TestRoomSwitchResetsSelection(t *testing.T) {
	a := testApp(t)
	a = press(t, a, "down", "space") // enable sectional
	if !a.session.Selection["sectional"].Enabled {
		t.Fatal("sectional should be enabled after toggle")
	}

	a = press(t, a, "r")
	if a.session.Room != "bedroom" {
		t.Fatalf("room = %s, want bedroom", a.session.Room)
	}
	if a.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", a.cursor)
	}

	// Cycle back to the living room: defaults, not the old toggle.
	for a.session.Room != "living" {
		a = press(t, a, "r")
	}
	if a.session.Selection["sectional"].Enabled {
		t.Fatal("selection was not reset on room switch")
	}
}

func TestBrandSwitchResetsSelection(t *testing.T) {
	a := testApp(t)
	a = press(t, a, "+") // sofa qty 2
	if got := a.session.Selection["sofa"].Quantity; got != 2 {
		t.Fatalf("sofa qty = %d, want 2", got)
	}
	a = press(t, a, "b")
	if a.session.Brand != catalog.BrandAllModern {
		t.Fatalf("brand = %s, want allModern", a.session.Brand)
	}
	if got := a.session.Selection["sofa"].Quantity; got != 1 {
		t.Fatalf("sofa qty after brand switch = %d, want 1", got)
	}
}

func TestTierCycle(t *testing.T) {
	a := testApp(t)
	want := []model.Tier{model.TierHighest, model.TierCustom, model.TierLowest, model.TierBlended}
	for _, w := range want {
		a = press(t, a, "t")
		if a.session.Tier != w {
			t.Fatalf("tier = %s, want %s", a.session.Tier, w)
		}
	}
}

func TestQuantityClampsAtZero(t *testing.T) {
	a := testApp(t)
	a = press(t, a, "down") // sectional, qty 0
	a = press(t, a, "-", "-")
	if got := a.session.Selection["sectional"].Quantity; got != 0 {
		t.Fatalf("sectional qty = %d, want 0", got)
	}
}

func TestTotalsFollowSession(t *testing.T) {
	a := testApp(t)
	want, err := estimate.Evaluate(catalog.Default(), a.session)
	if err != nil {
		t.Fatal(err)
	}
	if a.est.Totals != want.Totals {
		t.Fatalf("totals = %+v, want %+v", a.est.Totals, want.Totals)
	}

	a = press(t, a, "space") // drop the sofa
	if a.est.Totals.Merchandise >= want.Totals.Merchandise {
		t.Fatalf("merchandise %v should drop below %v", a.est.Totals.Merchandise, want.Totals.Merchandise)
	}
}

func TestCustomPriceOnlyInCustomTier(t *testing.T) {
	a := testApp(t)
	a = press(t, a, "p")
	if a.editing != editNone {
		t.Fatal("price edit should not start outside the custom tier")
	}
	if a.status == "" {
		t.Fatal("expected a status hint")
	}

	a = press(t, a, "t", "t") // highest -> custom
	a = press(t, a, "p")
	if a.editing != editPrice {
		t.Fatalf("editing = %v, want editPrice", a.editing)
	}
	a.input.SetValue("1,000")
	a = press(t, a, "enter")

	p := a.session.Selection["sofa"].CustomPrice
	if p == nil || *p != 1000 {
		t.Fatalf("sofa custom price = %v, want 1000", p)
	}
	if a.est.Lines[0].UnitPrice != 1000 {
		t.Fatalf("sofa unit = %v, want 1000", a.est.Lines[0].UnitPrice)
	}

	// Clearing the input removes the override.
	a = press(t, a, "p")
	a.input.SetValue("")
	a = press(t, a, "enter")
	if a.session.Selection["sofa"].CustomPrice != nil {
		t.Fatal("empty input should clear the custom price")
	}
}

func TestCustomPriceNegativeClamps(t *testing.T) {
	a := testApp(t)
	a.session = estimate.SetTier(a.session, model.TierCustom)
	a.commitPrice("-40")
	p := a.session.Selection["sofa"].CustomPrice
	if p == nil || *p != 0 {
		t.Fatalf("custom price = %v, want 0", p)
	}
}

func TestCustomPriceRejectsNonFinite(t *testing.T) {
	a := testApp(t)
	a.session = estimate.SetTier(a.session, model.TierCustom)
	for _, raw := range []string{"NaN", "Inf", "-inf"} {
		a.commitPrice(raw)
		if p := a.session.Selection["sofa"].CustomPrice; p != nil {
			t.Fatalf("commitPrice(%q) stored %v, want unset", raw, *p)
		}
		if a.status == "" {
			t.Fatalf("commitPrice(%q) should report an invalid price", raw)
		}
	}
}

func TestAddOnEdit(t *testing.T) {
	a := testApp(t)
	a = press(t, a, "a")
	if a.activeTab != tabAddOns {
		t.Fatalf("activeTab = %d, want add-ons", a.activeTab)
	}

	a = press(t, a, "enter") // delivery
	if a.editing != editAddOn {
		t.Fatal("enter should start editing the delivery rate")
	}
	a.input.SetValue("-5")
	a = press(t, a, "enter")
	if a.session.AddOns.DeliveryPct != 0 {
		t.Fatalf("delivery = %v, want 0 after negative input", a.session.AddOns.DeliveryPct)
	}

	a = press(t, a, "down", "space") // white-glove
	if !a.session.AddOns.WhiteGlove {
		t.Fatal("white-glove should toggle on")
	}
	if got, want := a.est.Totals.Delivery, estimate.Round(a.est.Totals.Merchandise*0.06); got != want {
		t.Fatalf("delivery = %v, want %v", got, want)
	}
}

func TestAddOnEditEscKeepsValue(t *testing.T) {
	a := testApp(t)
	a = press(t, a, "a", "enter")
	a.input.SetValue("50")
	a = press(t, a, "esc")
	if a.session.AddOns.DeliveryPct != 3 {
		t.Fatalf("delivery = %v, want unchanged 3", a.session.AddOns.DeliveryPct)
	}
}

func TestResetControls(t *testing.T) {
	a := testApp(t)
	a.session.AddOns.TaxPct = 9
	a = press(t, a, "t", "R")
	if a.session.Tier != model.TierBlended {
		t.Fatalf("tier = %s, want blended", a.session.Tier)
	}
	if a.session.AddOns != model.DefaultAddOns() {
		t.Fatalf("add-ons = %+v, want defaults", a.session.AddOns)
	}
}

func TestScopeCounts(t *testing.T) {
	a := testApp(t)
	a = press(t, a, "w")
	if a.activeTab != tabScope {
		t.Fatalf("activeTab = %d, want scope", a.activeTab)
	}

	counts := a.roomCounts()
	if len(counts) != 1 || counts[0].Room != "living" || counts[0].Count != 1 {
		t.Fatalf("initial counts = %+v, want living×1", counts)
	}

	before := a.scopeCounts
	a = press(t, a, "+", "down", "+", "+")
	counts = a.roomCounts()
	if len(counts) != 2 || counts[0].Count != 2 || counts[1].Room != "bedroom" || counts[1].Count != 2 {
		t.Fatalf("counts = %+v, want living×2 bedroom×2", counts)
	}
	if before[0] != 1 {
		t.Fatal("earlier model copy was mutated")
	}

	a = press(t, a, "-", "-", "-")
	if a.scopeCounts[1] != 0 {
		t.Fatalf("bedroom count = %d, want 0", a.scopeCounts[1])
	}
}

func TestSaveQuoteWithoutHistory(t *testing.T) {
	a := testApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	msg, ok := cmd().(QuoteSavedMsg)
	if !ok || msg.Err == nil {
		t.Fatalf("msg = %+v, want an error without history", msg)
	}
}

func TestSettingsApplyTo(t *testing.T) {
	defer theme.SetActive(theme.Active.Name)

	a := testApp(t)
	a.session = estimate.SelectRoom(a.cat, a.session, "office")
	cfg := config.DefaultConfig()

	a.settings.cursor = settingsFieldSaveDefaults
	a.settingsApplyTo(&cfg)
	if cfg.General.Room != "office" {
		t.Fatalf("saved room = %s, want office", cfg.General.Room)
	}

	a.settings.cursor = settingsFieldHistory
	a.settingsApplyTo(&cfg)
	if cfg.History.Enabled {
		t.Fatal("history should toggle off")
	}

	start := theme.Active.Name
	a.settings.cursor = settingsFieldTheme
	a.settingsApplyTo(&cfg)
	if cfg.Appearance.Theme == start || theme.Active.Name != cfg.Appearance.Theme {
		t.Fatalf("theme = %s (active %s), want the one after %s", cfg.Appearance.Theme, theme.Active.Name, start)
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := setupValues{
		brand: catalog.BrandAllModern, room: "dining", tier: "good",
		theme: "tokyo-night", taxPct: "7.5%", history: false,
	}
	if err := vals.apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.General.Tier != string(model.TierLowest) {
		t.Fatalf("tier = %s, want lowest", cfg.General.Tier)
	}
	if cfg.AddOns.TaxPct != 7.5 || cfg.History.Enabled {
		t.Fatalf("cfg = %+v", cfg)
	}

	vals.taxPct = "abc"
	if err := vals.apply(&cfg); err == nil {
		t.Fatal("expected an error for a bad tax rate")
	}
}

func TestTabAtX(t *testing.T) {
	a := testApp(t)
	if got := a.tabAtX(0); got != 0 {
		t.Fatalf("tabAtX(0) = %d, want 0", got)
	}
	first := components.TabVisualWidth(components.Tabs[0], true)
	if got := a.tabAtX(first + 1); got != 1 {
		t.Fatalf("tabAtX(%d) = %d, want 1", first+1, got)
	}
	if got := a.tabAtX(10_000); got != -1 {
		t.Fatalf("tabAtX(10000) = %d, want -1", got)
	}
}

func TestViewRendersEstimate(t *testing.T) {
	a := testApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	a = m.(App)

	out := a.View()
	for _, want := range []string{"Sofa", "Total", "Living Room", "Joss & Main"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := lipgloss.Height(out); got != 45 {
		t.Errorf("view height = %d, want 45", got)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := testApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if out := m.(App).View(); !strings.Contains(out, "too narrow") {
		t.Fatalf("narrow view = %q", out)
	}
}
