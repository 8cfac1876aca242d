package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/roombudget/internal/model"
)

// Config holds all roombudget configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	AddOns     AddOnsConfig     `toml:"addons"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	History    HistoryConfig    `toml:"history"`
}

// GeneralConfig holds the starting brand, room and tier.
type GeneralConfig struct {
	Brand   string `toml:"brand"`
	Room    string `toml:"room"`
	Tier    string `toml:"tier"`
	Catalog string `toml:"catalog,omitempty"`
}

// AddOnsConfig holds the default add-on rates, in percent.
type AddOnsConfig struct {
	DeliveryPct    float64 `toml:"delivery_pct"`
	WhiteGlove     bool    `toml:"white_glove"`
	AssemblyPct    float64 `toml:"assembly_pct"`
	ProtectionPct  float64 `toml:"protection_pct"`
	TaxPct         float64 `toml:"tax_pct"`
	ContingencyPct float64 `toml:"contingency_pct"`
	Promo          float64 `toml:"promo"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	LogFile string `toml:"log_file,omitempty"`
}

// HistoryConfig controls the local quote history.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	d := model.DefaultAddOns()
	return Config{
		General: GeneralConfig{
			Brand: "jossMain",
			Room:  "living",
			Tier:  string(model.TierBlended),
		},
		AddOns: AddOnsConfig{
			DeliveryPct:    d.DeliveryPct,
			WhiteGlove:     d.WhiteGlove,
			AssemblyPct:    d.AssemblyPct,
			ProtectionPct:  d.ProtectionPct,
			TaxPct:         d.TaxPct,
			ContingencyPct: d.ContingencyPct,
			Promo:          d.Promo,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// ToModel converts configured rates to model add-ons. Negative, NaN and
// infinite values become 0.
func (a AddOnsConfig) ToModel() model.AddOns {
	return model.AddOns{
		DeliveryPct:    nonNegative(a.DeliveryPct),
		WhiteGlove:     a.WhiteGlove,
		AssemblyPct:    nonNegative(a.AssemblyPct),
		ProtectionPct:  nonNegative(a.ProtectionPct),
		TaxPct:         nonNegative(a.TaxPct),
		ContingencyPct: nonNegative(a.ContingencyPct),
		Promo:          nonNegative(a.Promo),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// AddOnsFromModel is the inverse of ToModel, used when saving settings.
func AddOnsFromModel(a model.AddOns) AddOnsConfig {
	return AddOnsConfig{
		DeliveryPct:    a.DeliveryPct,
		WhiteGlove:     a.WhiteGlove,
		AssemblyPct:    a.AssemblyPct,
		ProtectionPct:  a.ProtectionPct,
		TaxPct:         a.TaxPct,
		ContingencyPct: a.ContingencyPct,
		Promo:          a.Promo,
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "roombudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "roombudget")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory holding quote history.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "roombudget")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "roombudget")
}

// HistoryPath returns the quote history database path.
func HistoryPath() string {
	return filepath.Join(CacheDir(), "quotes.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ApplyEnv(&cfg)
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, ApplyEnv(&cfg)
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
