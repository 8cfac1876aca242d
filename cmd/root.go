package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagBrand   string
	flagRoom    string
	flagTier    string
	flagCatalog string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:          "roombudget",
	Short:        "Room furniture budget estimator",
	Long:         "Estimate furnishing budgets per room from brand price ranges, with fees, tax and contingency.",
	RunE:         runEstimate,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	// A missing .env is normal; only the process environment applies then.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagBrand, "brand", "b", "", "Brand key (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagRoom, "room", "r", "", "Room key (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagTier, "tier", "t", "", "Pricing tier: lowest|blended|highest|custom (or good|better|best)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Catalog file (.toml or .yaml) replacing the built-in catalog")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices on stderr")

	addEstimateFlags(rootCmd)
}

// runContext is the resolved configuration shared by commands.
type runContext struct {
	cfg   config.Config
	cat   catalog.Catalog
	brand string
	room  string
	tier  model.Tier
}

// loadRunContext loads config and catalog, then resolves brand, room and
// tier with flags taking precedence over config.
func loadRunContext() (runContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return runContext{}, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return runContext{}, err
	}

	rc := runContext{
		cfg:   cfg,
		cat:   cat,
		brand: firstNonEmpty(flagBrand, cfg.General.Brand),
		room:  firstNonEmpty(flagRoom, cfg.General.Room),
	}

	if _, ok := cat.Brand(rc.brand); !ok {
		return runContext{}, fmt.Errorf("%w %q (known: %s)", estimate.ErrUnknownBrand, rc.brand, strings.Join(cat.BrandKeys(), ", "))
	}
	if _, ok := cat.Room(rc.room); !ok {
		return runContext{}, fmt.Errorf("%w %q (known: %s)", estimate.ErrUnknownRoom, rc.room, strings.Join(cat.RoomKeys(), ", "))
	}

	rc.tier, err = model.ParseTier(firstNonEmpty(flagTier, cfg.General.Tier, string(model.TierBlended)))
	if err != nil {
		return runContext{}, err
	}
	return rc, nil
}

func loadCatalog(cfg config.Config) (catalog.Catalog, error) {
	path := firstNonEmpty(flagCatalog, cfg.General.Catalog)
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return catalog.Catalog{}, err
	}
	notef("  Using catalog %s\n", path)
	return cat, nil
}

// currentCatalog loads the catalog without resolving brand and room.
func currentCatalog() (catalog.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return catalog.Catalog{}, err
	}
	return loadCatalog(cfg)
}

// notef writes a notice to stderr unless --quiet is set.
func notef(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
