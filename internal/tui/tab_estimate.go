package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/tui/components"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateEstimateKeys(key string) (App, tea.Cmd, bool) {
	items := a.currentRoom().Items
	it, ok := a.currentItem()

	switch key {
	case "j", "down":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil, true
	case "g":
		a.cursor = 0
		return a, nil, true
	case "G":
		a.cursor = max(len(items)-1, 0)
		return a, nil, true
	}

	if !ok {
		return a, nil, false
	}

	switch key {
	case " ", "space", "enter":
		a.session = estimate.ToggleItem(a.session, it.Key)
	case "+", "=":
		a.session = estimate.SetQuantity(a.session, it.Key, a.session.Selection[it.Key].Quantity+1)
	case "-", "_":
		a.session = estimate.SetQuantity(a.session, it.Key, a.session.Selection[it.Key].Quantity-1)
	case "p":
		if a.session.Tier != model.TierCustom {
			a.status = "custom prices apply in the Custom tier (press t)"
			return a, nil, true
		}
		a = a.startPriceEdit()
		return a, a.input.Cursor.BlinkCmd(), true
	case "P":
		a.session = estimate.SetCustomPrice(a.session, it.Key, nil)
	default:
		return a, nil, false
	}
	a.recompute()
	return a, nil, true
}

func (a App) startPriceEdit() App {
	it, ok := a.currentItem()
	if !ok {
		return a
	}
	value := ""
	if p := a.session.Selection[it.Key].CustomPrice; p != nil {
		value = strconv.FormatFloat(*p, 'f', -1, 64)
	} else if r, ok := it.RangeFor(a.session.Brand); ok {
		value = strconv.FormatFloat(estimate.ResolveUnitPrice(r, model.TierBlended, nil), 'f', -1, 64)
	}
	a.input = newNumberInput("blended price", value)
	a.editing = editPrice
	return a
}

// commitPrice applies the edited custom price. An empty value clears it.
func (a *App) commitPrice(raw string) {
	it, ok := a.currentItem()
	if !ok {
		return
	}
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		a.session = estimate.SetCustomPrice(a.session, it.Key, nil)
		return
	}
	p, err := parseAmount(raw)
	if err != nil {
		a.status = fmt.Sprintf("invalid price %q", raw)
		return
	}
	a.session = estimate.SetCustomPrice(a.session, it.Key, &p)
}

// parseAmount parses a plain or comma-grouped finite number.
func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

func (a App) renderEstimateTab(cw int) string {
	t := theme.Active
	tot := a.est.Totals

	metrics := []components.Metric{
		{Label: "Merchandise", Value: cli.FormatCurrency(tot.Merchandise), Note: fmt.Sprintf("%d items", len(a.est.Lines))},
		{Label: "Fees & Tax", Value: cli.FormatCurrency(tot.Delivery + tot.Assembly + tot.Protection + tot.Tax)},
		{Label: "Contingency", Value: cli.FormatCurrency(tot.Contingency)},
		{Label: "Total", Value: cli.FormatCurrency(tot.Total), Note: a.session.Tier.Label() + " tier"},
	}

	itemsW, totalsW := cw, cw
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 3)
		itemsW = widths[0] + widths[1]
		totalsW = widths[2]
	}

	items := components.ContentCard(a.currentRoom().Label, a.renderItemRows(components.CardInnerWidth(itemsW)), itemsW)
	totals := components.ContentCard("Totals", renderTotalsBody(tot, a.session.AddOns, components.CardInnerWidth(totalsW)), totalsW)

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")
	if a.isCompactLayout() {
		b.WriteString(items)
		b.WriteString("\n")
		b.WriteString(totals)
	} else {
		b.WriteString(components.CardRow([]string{items, totals}))
	}

	if a.editing == editPrice {
		it, _ := a.currentItem()
		accent := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background)
		b.WriteString("\n")
		b.WriteString(accent.Render(fmt.Sprintf(" Custom price for %s: ", it.Label)))
		b.WriteString(a.input.View())
	}
	return b.String()
}

func (a App) renderItemRows(innerW int) string {
	t := theme.Active

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selDimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceBright)
	customStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)

	const (
		qtyW   = 4
		rangeW = 17
		unitW  = 9
		subW   = 10
	)
	labelW := max(innerW-2-4-qtyW-rangeW-unitW-subW-4, 10)

	lines := make(map[string]model.Line, len(a.est.Lines))
	for _, l := range a.est.Lines {
		lines[l.Key] = l
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("      %-*s %*s %*s %*s %*s",
		labelW, "Item", qtyW, "Qty", rangeW, "Range", unitW, "Unit", subW, "Subtotal")))

	for i, it := range a.currentRoom().Items {
		b.WriteString("\n")
		sel := a.session.Selection[it.Key]
		r, _ := it.RangeFor(a.session.Brand)

		check := "[ ]"
		if sel.Enabled {
			check = "[x]"
		}
		marker := "  "
		if i == a.cursor {
			marker = "▸ "
		}

		unit, sub := "-", "-"
		if l, ok := lines[it.Key]; ok {
			unit = cli.FormatCurrency(l.UnitPrice)
			sub = cli.FormatCurrency(l.Subtotal)
		}

		label := truncStr(it.Label, labelW)
		row := fmt.Sprintf("%s%s %-*s %*d %*s %*s %*s",
			marker, check, labelW, label, qtyW, sel.Quantity,
			rangeW, cli.FormatRange(r), unitW, unit, subW, sub)

		switch {
		case i == a.cursor && sel.Enabled:
			b.WriteString(selStyle.Render(row))
		case i == a.cursor:
			b.WriteString(selDimStyle.Render(row))
		case !sel.Enabled:
			b.WriteString(dimStyle.Render(row))
		default:
			b.WriteString(rowStyle.Render(row))
		}
		if sel.CustomPrice != nil && a.session.Tier == model.TierCustom {
			b.WriteString(customStyle.Render(" *"))
		}
	}
	return b.String()
}

// renderTotalsBody lays out the fee rollup, one labeled amount per line.
func renderTotalsBody(tot model.Totals, addOns model.AddOns, innerW int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	deliveryLabel := "Delivery (" + cli.FormatPercent(addOns.DeliveryPct) + ")"
	if addOns.WhiteGlove {
		deliveryLabel = "White-glove (" + cli.FormatPercent(estimate.DeliveryPercent(addOns)) + ")"
	}

	rows := []struct {
		label string
		value float64
		style lipgloss.Style
	}{
		{"Merchandise", tot.Merchandise, valueStyle},
		{deliveryLabel, tot.Delivery, valueStyle},
		{"Assembly (" + cli.FormatPercent(addOns.AssemblyPct) + ")", tot.Assembly, valueStyle},
		{"Protection (" + cli.FormatPercent(addOns.ProtectionPct) + ")", tot.Protection, valueStyle},
		{"Promo", -tot.Promo, greenStyle},
		{"Before tax", tot.SubBeforeTax, valueStyle},
		{"Tax (" + cli.FormatPercent(addOns.TaxPct) + ")", tot.Tax, valueStyle},
		{"Contingency (" + cli.FormatPercent(addOns.ContingencyPct) + ")", tot.Contingency, valueStyle},
	}

	valueW := 10
	labelW := max(innerW-valueW-1, 8)

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s ", labelW, truncStr(r.label, labelW))))
		b.WriteString(r.style.Render(fmt.Sprintf("%*s", valueW, cli.FormatCurrency(r.value))))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(strings.Repeat("─", max(innerW, 1))))
	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("%-*s %*s", labelW, "Total", valueW, cli.FormatCurrency(tot.Total))))
	return b.String()
}
