// Package cmd implements the roombudget CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Brand: %s\n", cfg.General.Brand)
	fmt.Printf("    Room:  %s\n", cfg.General.Room)
	fmt.Printf("    Tier:  %s\n", cfg.General.Tier)
	if cfg.General.Catalog != "" {
		fmt.Printf("    Catalog: %s\n", cfg.General.Catalog)
	} else {
		fmt.Println("    Catalog: built-in")
	}
	fmt.Println()

	a := cfg.AddOns.ToModel()
	fmt.Println("  [Add-ons]")
	fmt.Printf("    Delivery:    %s\n", cli.FormatPercent(a.DeliveryPct))
	fmt.Printf("    White-glove: %v\n", a.WhiteGlove)
	fmt.Printf("    Assembly:    %s\n", cli.FormatPercent(a.AssemblyPct))
	fmt.Printf("    Protection:  %s\n", cli.FormatPercent(a.ProtectionPct))
	fmt.Printf("    Sales tax:   %s\n", cli.FormatPercent(a.TaxPct))
	fmt.Printf("    Contingency: %s\n", cli.FormatPercent(a.ContingencyPct))
	fmt.Printf("    Promo:       %s\n", cli.FormatCurrency(a.Promo))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	if cfg.Server.LogFile != "" {
		fmt.Printf("    Log file: %s\n", cfg.Server.LogFile)
	}
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Enabled: %v\n", cfg.History.Enabled)
	fmt.Printf("    Database: %s\n", config.HistoryPath())
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s, %s\n",
		config.EnvBrand, config.EnvTier, config.EnvTaxPct, config.EnvCatalog)
	fmt.Println("  Run `roombudget setup` to reconfigure.")
	return nil
}
