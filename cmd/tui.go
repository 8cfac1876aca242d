package cmd

import (
	"fmt"

	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/store"
	"github.com/theirongolddev/roombudget/internal/tui"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget calculator",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	rc, err := loadRunContext()
	if err != nil {
		return err
	}
	theme.SetActive(rc.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Flags override the configured starting point.
	cfg := rc.cfg
	cfg.General.Brand = rc.brand
	cfg.General.Room = rc.room
	cfg.General.Tier = string(rc.tier)

	var hist *store.History
	if cfg.History.Enabled {
		if h, err := store.Open(config.HistoryPath()); err != nil {
			notef("  Quote history unavailable: %v\n", err)
		} else {
			hist = h
			defer func() { _ = hist.Close() }()
		}
	}

	app := tui.NewApp(rc.cat, cfg, hist)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
