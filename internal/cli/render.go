package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette for one-shot command output.
var (
	colorFrame  = lipgloss.Color("#575653")
	colorInk    = lipgloss.Color("#FFFCF0")
	colorHeader = lipgloss.Color("#3AA99F")
	colorMoney  = lipgloss.Color("#879A39")
)

var (
	frameStyle  = lipgloss.NewStyle().Foreground(colorFrame)
	cellStyle   = lipgloss.NewStyle().Foreground(colorInk)
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	footerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInk)
	barStyle    = lipgloss.NewStyle().Foreground(colorMoney)
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Foreground(colorInk).
			Bold(true).
			Width(55).
			Align(lipgloss.Center).
			Padding(0, 1)
)

// Table is a boxed table. Columns whose cells are all amounts or counts are
// right-aligned; the rest are left-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Footer is drawn bold below a rule, e.g. a totals row.
	Footer []string
}

// RenderTitle renders title centered in a rounded box.
func RenderTitle(title string) string {
	return bannerStyle.Render(title)
}

// RenderTable draws t with box-drawing borders. An empty table renders as "".
func RenderTable(t Table) string {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	cols = max(cols, len(t.Footer))
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}
	measure(t.Footer)

	right := make([]bool, cols)
	for i := range right {
		right[i] = i > 0 && numericColumn(t.Rows, i)
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, widths, right, headStyle))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		b.WriteString(line(r, widths, right, cellStyle))
	}
	if len(t.Footer) > 0 {
		b.WriteString(rule(widths, "├", "┼", "┤"))
		b.WriteString(line(t.Footer, widths, right, footerStyle))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func rule(widths []int, left, mid, end string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return frameStyle.Render(left+strings.Join(segs, mid)+end) + "\n"
}

func line(cells []string, widths []int, right []bool, style lipgloss.Style) string {
	bar := frameStyle.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, w := range widths {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		gap := strings.Repeat(" ", w-lipgloss.Width(c))
		if right[i] {
			c = gap + c
		} else {
			c += gap
		}
		b.WriteString(style.Render(" " + c + " "))
		b.WriteString(bar)
	}
	b.WriteString("\n")
	return b.String()
}

// numericColumn reports whether every non-empty cell in column i reads as
// an amount, percentage or count.
func numericColumn(rows [][]string, i int) bool {
	seen := false
	for _, r := range rows {
		if i >= len(r) || r[i] == "" {
			continue
		}
		if !strings.ContainsAny(r[i][:1], "0123456789$-+") {
			return false
		}
		seen = true
	}
	return seen
}

// RenderHorizontalBar renders a labelled bar scaled against maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return "  " + label
	}
	n := max(0, min(int(value/maxValue*float64(maxWidth)), maxWidth))
	bar := strings.Repeat("█", n) + strings.Repeat("░", maxWidth-n)
	return "  " + label + " " + barStyle.Render(bar) + " " + FormatCurrency(value)
}
