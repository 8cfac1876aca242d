package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/tui/components"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) updateScopeKeys(key string) (App, bool) {
	if a.scopeCursor >= len(a.scopeCounts) {
		return a, false
	}
	switch key {
	case "j", "down":
		if a.scopeCursor < len(a.scopeCounts)-1 {
			a.scopeCursor++
		}
	case "k", "up":
		if a.scopeCursor > 0 {
			a.scopeCursor--
		}
	case "+", "=":
		a.scopeCounts = slices.Clone(a.scopeCounts)
		a.scopeCounts[a.scopeCursor]++
	case "-", "_":
		a.scopeCounts = slices.Clone(a.scopeCounts)
		a.scopeCounts[a.scopeCursor] = max(a.scopeCounts[a.scopeCursor]-1, 0)
	case "0":
		a.scopeCounts = slices.Clone(a.scopeCounts)
		a.scopeCounts[a.scopeCursor] = 0
	default:
		return a, false
	}
	return a, true
}

// roomCounts returns the non-zero counts in catalog order.
func (a App) roomCounts() []model.RoomCount {
	var counts []model.RoomCount
	for i, r := range a.cat.Rooms {
		if i < len(a.scopeCounts) && a.scopeCounts[i] > 0 {
			counts = append(counts, model.RoomCount{Room: r.Key, Count: a.scopeCounts[i]})
		}
	}
	return counts
}

func (a App) renderScopeTab(cw int) string {
	t := theme.Active

	scope, err := estimate.ComputeWholeScope(a.cat, a.roomCounts(), a.session.Brand)
	if err != nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		return components.ContentCard("Whole Home", warn.Render(err.Error()), cw)
	}

	metrics := []components.Metric{
		{Label: "Good (lowest)", Value: cli.FormatCurrency(scope.Lowest)},
		{Label: "Better (blended)", Value: cli.FormatCurrency(scope.Blended)},
		{Label: "Best (highest)", Value: cli.FormatCurrency(scope.Highest)},
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	countsW, shareW := cw, cw
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 2)
		countsW, shareW = widths[0], widths[1]
	}

	var counts strings.Builder
	for i, r := range a.cat.Rooms {
		n := 0
		if i < len(a.scopeCounts) {
			n = a.scopeCounts[i]
		}
		row := fmt.Sprintf("%-22s × %d", truncStr(r.Label, 22), n)
		switch {
		case i == a.scopeCursor:
			counts.WriteString(selectedStyle.Render("▸ " + row))
		case n == 0:
			counts.WriteString(dimStyle.Render("  " + row))
		default:
			counts.WriteString(valueStyle.Render("  " + row))
		}
		counts.WriteString("\n")
	}
	counts.WriteString("\n")
	counts.WriteString(labelStyle.Render("Defaults only, merchandise before add-ons."))

	var share strings.Builder
	if len(scope.Rooms) == 0 {
		share.WriteString(dimStyle.Render("Add rooms with + to project a whole home."))
	}
	barW := max(components.CardInnerWidth(shareW)-16-12, 10)
	for i, rs := range scope.Rooms {
		if i > 0 {
			share.WriteString("\n")
		}
		pct := 0.0
		if scope.Blended > 0 {
			pct = rs.Blended / scope.Blended
		}
		label := rs.Label
		if rs.Count > 1 {
			label = fmt.Sprintf("%s ×%d", rs.Label, rs.Count)
		}
		share.WriteString(components.ShareBar(label, pct, cli.FormatCurrency(rs.Blended), 15, barW))
	}

	countsCard := components.ContentCard("Rooms", counts.String(), countsW)
	shareCard := components.ContentCard("Blended share · "+a.cat.BrandLabel(a.session.Brand), share.String(), shareW)

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")
	if a.isCompactLayout() {
		b.WriteString(countsCard + "\n" + shareCard)
	} else {
		b.WriteString(components.CardRow([]string{countsCard, shareCard}))
	}
	return b.String()
}
