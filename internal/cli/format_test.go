package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/roombudget/internal/catalog"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{439, "$439"},
		{2129, "$2,129"},
		{1234567, "$1,234,567"},
		{1689.5, "$1,690"},
		{-50, "-$50"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	got := FormatRange(catalog.Range{Min: 700, Max: 2500})
	if got != "$700 - $2,500" {
		t.Fatalf("FormatRange = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	for in, want := range map[float64]string{6.25: "6.25%", 3: "3%", 0: "0%", 12.5: "12.5%"} {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(3200, 2129); got != "+$1,071" {
		t.Fatalf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(820, 2129); got != "-$1,309" {
		t.Fatalf("FormatDelta down = %q", got)
	}
}

func TestRenderTable_FooterAndUnicodeWidths(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Living Room",
		Headers: []string{"Item", "Subtotal"},
		Rows:    [][]string{{"Area Rug (8×10)", "$675"}},
		Footer:  []string{"Total", "$675"},
	})

	if !strings.Contains(out, "Living Room") {
		t.Fatal("table title missing")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, top, header, header rule, row, footer rule, footer, bottom
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[1])
	for i, l := range lines[1:] {
		if w := lipgloss.Width(l); w != width {
			t.Fatalf("line %d width = %d, want %d:\n%s", i+1, w, width, out)
		}
	}
}

func TestRenderTable_RightAlignsAmounts(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Room", "Blended"},
		Rows:    [][]string{{"Office", "$950"}, {"Living Room", "$12,400"}},
	})
	if !strings.Contains(out, "    $950 ") {
		t.Fatalf("amount column not right-aligned:\n%s", out)
	}
	if !strings.Contains(out, " Office      ") {
		t.Fatalf("text column not left-aligned:\n%s", out)
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	got := RenderHorizontalBar("Living", 50, 100, 10)
	if !strings.Contains(got, "█████░░░░░") || !strings.HasSuffix(got, "$50") {
		t.Fatalf("RenderHorizontalBar = %q", got)
	}
	if got := RenderHorizontalBar("Empty", 0, 0, 10); got != "  Empty" {
		t.Fatalf("RenderHorizontalBar(max 0) = %q", got)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}
