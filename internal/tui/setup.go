package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/model"
	"github.com/theirongolddev/roombudget/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run wizard answers bound to the huh form.
type setupValues struct {
	brand   string
	room    string
	tier    string
	theme   string
	taxPct  string
	history bool
}

func setupValuesFromConfig(cfg config.Config) setupValues {
	return setupValues{
		brand:   cfg.General.Brand,
		room:    cfg.General.Room,
		tier:    cfg.General.Tier,
		theme:   cfg.Appearance.Theme,
		taxPct:  strconv.FormatFloat(cfg.AddOns.TaxPct, 'f', -1, 64),
		history: cfg.History.Enabled,
	}
}

func validatePercent(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return errors.New("enter a number, e.g. 6.25")
	}
	if v < 0 || v > 100 {
		return errors.New("must be between 0 and 100")
	}
	return nil
}

// apply copies the answers onto cfg.
func (v setupValues) apply(cfg *config.Config) error {
	tier, err := model.ParseTier(v.tier)
	if err != nil {
		return err
	}
	if err := validatePercent(v.taxPct); err != nil {
		return fmt.Errorf("tax rate: %w", err)
	}
	tax, _ := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v.taxPct), "%"), 64)

	cfg.General.Brand = v.brand
	cfg.General.Room = v.room
	cfg.General.Tier = string(tier)
	if _, ok := theme.Lookup(v.theme); ok {
		cfg.Appearance.Theme = v.theme
	}
	cfg.AddOns.TaxPct = tax
	cfg.History.Enabled = v.history
	return nil
}

// newSetupForm builds the first-run wizard bound to vals.
func newSetupForm(cat catalog.Catalog, vals *setupValues) *huh.Form {
	brandOpts := make([]huh.Option[string], 0, len(cat.Brands))
	for _, b := range cat.Brands {
		brandOpts = append(brandOpts, huh.NewOption(b.Label, b.Key))
	}
	roomOpts := make([]huh.Option[string], 0, len(cat.Rooms))
	for _, r := range cat.Rooms {
		roomOpts = append(roomOpts, huh.NewOption(r.Label, r.Key))
	}
	tierOpts := make([]huh.Option[string], 0, len(model.Tiers))
	for _, t := range model.Tiers {
		tierOpts = append(tierOpts, huh.NewOption(t.Label(), string(t)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to roombudget!").
				Description(fmt.Sprintf("%d brands and %d room presets loaded.\nPick the defaults every estimate starts from.",
					len(cat.Brands), len(cat.Rooms))),
			huh.NewSelect[string]().
				Title("Default brand").
				Options(brandOpts...).
				Value(&vals.brand),
			huh.NewSelect[string]().
				Title("Default room").
				Options(roomOpts...).
				Value(&vals.room),
			huh.NewSelect[string]().
				Title("Default pricing tier").
				Description("Good = lowest, Better = blended, Best = highest").
				Options(tierOpts...).
				Value(&vals.tier),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Sales tax rate (%)").
				Placeholder("6.25").
				Value(&vals.taxPct).
				Validate(validatePercent),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.theme),
			huh.NewConfirm().
				Title("Keep a local history of saved quotes?").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.history),
		),
	).WithTheme(huh.ThemeDracula())
}

// RunSetup runs the first-run wizard standalone and writes the config file.
func RunSetup(cat catalog.Catalog) error {
	cfg, _ := config.Load()
	vals := setupValuesFromConfig(cfg)

	if err := newSetupForm(cat, &vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("running setup: %w", err)
	}

	if err := vals.apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\n  Saved to %s\n  Run `roombudget setup` anytime to reconfigure.\n\n", config.ConfigPath())
	return nil
}
