package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/tui/components"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	addOnDelivery = iota
	addOnWhiteGlove
	addOnAssembly
	addOnProtection
	addOnTax
	addOnContingency
	addOnPromo
	addOnFieldCount // sentinel
)

var addOnLabels = [addOnFieldCount]string{
	"Delivery",
	"White-glove",
	"Assembly",
	"Protection plan",
	"Sales tax",
	"Contingency",
	"Promo / discount",
}

// addOnValue returns the numeric value of a field. White-glove has none.
func addOnValue(a model.AddOns, field int) float64 {
	switch field {
	case addOnDelivery:
		return a.DeliveryPct
	case addOnAssembly:
		return a.AssemblyPct
	case addOnProtection:
		return a.ProtectionPct
	case addOnTax:
		return a.TaxPct
	case addOnContingency:
		return a.ContingencyPct
	case addOnPromo:
		return a.Promo
	}
	return 0
}

// setAddOnValue writes a field, clamping negatives to 0.
func setAddOnValue(a model.AddOns, field int, v float64) model.AddOns {
	v = max(v, 0)
	switch field {
	case addOnDelivery:
		a.DeliveryPct = v
	case addOnAssembly:
		a.AssemblyPct = v
	case addOnProtection:
		a.ProtectionPct = v
	case addOnTax:
		a.TaxPct = v
	case addOnContingency:
		a.ContingencyPct = v
	case addOnPromo:
		a.Promo = v
	}
	return a
}

func formatAddOn(a model.AddOns, field int) string {
	switch field {
	case addOnWhiteGlove:
		if a.WhiteGlove {
			return "on (min 6%)"
		}
		return "off"
	case addOnPromo:
		return cli.FormatCurrency(a.Promo)
	}
	return cli.FormatPercent(addOnValue(a, field))
}

func (a App) updateAddOnsKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.addOnCursor < addOnFieldCount-1 {
			a.addOnCursor++
		}
		return a, nil, true
	case "k", "up":
		if a.addOnCursor > 0 {
			a.addOnCursor--
		}
		return a, nil, true
	case " ", "space", "enter":
		if a.addOnCursor == addOnWhiteGlove {
			a.session.AddOns.WhiteGlove = !a.session.AddOns.WhiteGlove
			a.recompute()
			return a, nil, true
		}
		if key != "enter" {
			return a, nil, false
		}
		v := addOnValue(a.session.AddOns, a.addOnCursor)
		a.input = newNumberInput("0", strconv.FormatFloat(v, 'f', -1, 64))
		if a.addOnCursor != addOnPromo {
			a.input.Prompt = "% "
		}
		a.editing = editAddOn
		return a, a.input.Cursor.BlinkCmd(), true
	}
	return a, nil, false
}

// commitAddOn applies the edited add-on value. Negative input clamps to 0.
func (a *App) commitAddOn(raw string) {
	raw = strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "$%"))
	if raw == "" {
		raw = "0"
	}
	v, err := parseAmount(raw)
	if err != nil {
		a.status = fmt.Sprintf("invalid number %q", raw)
		return
	}
	a.session.AddOns = setAddOnValue(a.session.AddOns, a.addOnCursor, v)
}

func (a App) renderAddOnsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	formW, totalsW := cw, cw
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 2)
		formW, totalsW = widths[0], widths[1]
	}
	innerW := components.CardInnerWidth(formW)

	var form strings.Builder
	for i := range addOnFieldCount {
		label := addOnLabels[i]
		value := formatAddOn(a.session.AddOns, i)

		if a.editing == editAddOn && i == a.addOnCursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", label)))
			form.WriteString(a.input.View())
			form.WriteString("\n")
			continue
		}

		if i == a.addOnCursor {
			marker := markerStyle.Render("▸ ")
			l := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", label+":"))
			v := selectedStyle.Render(value)
			form.WriteString(marker + l + v)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(l) - lipgloss.Width(v); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			form.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", label+":")))
			form.WriteString(valueStyle.Render(value))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [space] toggle white-glove"))

	formCard := components.ContentCard("Add-ons", form.String(), formW)
	totalsCard := components.ContentCard("Totals",
		renderTotalsBody(a.est.Totals, a.session.AddOns, components.CardInnerWidth(totalsW)), totalsW)

	if a.isCompactLayout() {
		return formCard + "\n" + totalsCard
	}
	return components.CardRow([]string{formCard, totalsCard})
}
