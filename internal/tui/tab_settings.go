package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/tui/components"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldHistory
	settingsFieldSaveDefaults
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor         int
	historyEnabled bool
	saved          bool  // flash "saved" message
	saveErr        error // non-nil if last save failed
}

func (a App) updateSettingsKeys(key string) (App, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, true
	case "enter", " ", "space":
		a.settingsApply()
		return a, true
	}
	return a, false
}

// settingsApply changes the field under the cursor and persists config.
func (a *App) settingsApply() {
	cfg := loadConfigOrDefault()
	a.settingsApplyTo(&cfg)
	a.settings.saveErr = config.Save(cfg)
	a.settings.saved = a.settings.saveErr == nil
}

func (a *App) settingsApplyTo(cfg *config.Config) {
	switch a.settings.cursor {
	case settingsFieldTheme:
		next := theme.Next(theme.Active.Name)
		theme.SetActive(next.Name)
		cfg.Appearance.Theme = next.Name
	case settingsFieldHistory:
		a.settings.historyEnabled = !a.settings.historyEnabled
		cfg.History.Enabled = a.settings.historyEnabled
	case settingsFieldSaveDefaults:
		cfg.General.Brand = a.session.Brand
		cfg.General.Room = a.session.Room
		cfg.General.Tier = string(a.session.Tier)
		cfg.AddOns = config.AddOnsFromModel(a.session.AddOns)
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	history := "off"
	if a.settings.historyEnabled {
		history = "on"
	}

	fields := []struct{ label, value string }{
		{"Theme", t.Name},
		{"Quote history", history},
		{"Save as defaults", fmt.Sprintf("%s · %s · %s",
			a.cat.BrandLabel(a.session.Brand), a.currentRoom().Label, a.session.Tier.Label())},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			form.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			form.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		form.WriteString("\n")
		form.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		form.WriteString("\n")
		form.WriteString(greenStyle.Render("Saved!"))
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("History file: ") + valueStyle.Render(config.HistoryPath()) + "\n")
	quotes := "unavailable"
	if a.history != nil {
		if n, err := a.history.Count(); err == nil {
			quotes = cli.FormatNumber(int64(n))
		}
	}
	info.WriteString(labelStyle.Render("Saved quotes: ") + valueStyle.Render(quotes) + "\n")
	info.WriteString(labelStyle.Render("Catalog:      ") + valueStyle.Render(fmt.Sprintf("%d brands, %d rooms", len(a.cat.Brands), len(a.cat.Rooms))))

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("General", info.String(), cw)
}
