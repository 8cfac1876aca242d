package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Environment variables that override the config file.
const (
	EnvBrand   = "ROOMBUDGET_BRAND"
	EnvTier    = "ROOMBUDGET_TIER"
	EnvTaxPct  = "ROOMBUDGET_TAX_PCT"
	EnvCatalog = "ROOMBUDGET_CATALOG"
)

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvBrand); v != "" {
		cfg.General.Brand = v
	}
	if v := os.Getenv(EnvTier); v != "" {
		cfg.General.Tier = v
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		cfg.General.Catalog = v
	}
	if v := os.Getenv(EnvTaxPct); v != "" {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTaxPct, err)
		}
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			return fmt.Errorf("parsing %s: %q is not a finite number", EnvTaxPct, v)
		}
		cfg.AddOns.TaxPct = pct
	}
	return nil
}
