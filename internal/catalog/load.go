package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) (Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Catalog{}, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the local user
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog: %w", err)
	}

	c, err := Decode(data, format)
	if err != nil {
		return Catalog{}, err
	}
	if err := Validate(c); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return c, nil
}

// Decode parses catalog bytes without validating them.
func Decode(data []byte, format Format) (Catalog, error) {
	var c Catalog
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &c); err != nil {
			return Catalog{}, fmt.Errorf("parsing catalog toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Catalog{}, fmt.Errorf("parsing catalog yaml: %w", err)
		}
	default:
		return Catalog{}, fmt.Errorf("unknown catalog format %q", format)
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	return c, nil
}

// Encode writes c to w in the given format.
func Encode(w io.Writer, c Catalog, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding catalog yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown catalog format %q", format)
	}
}

// EncodeBytes is Encode into a byte slice.
func EncodeBytes(c Catalog, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks a loaded catalog. The estimate functions assume valid
// input and never call this themselves.
func Validate(c Catalog) error {
	var errs []error

	if len(c.Brands) == 0 {
		errs = append(errs, errors.New("no brands defined"))
	}
	if len(c.Rooms) == 0 {
		errs = append(errs, errors.New("no rooms defined"))
	}

	brandSeen := make(map[string]struct{}, len(c.Brands))
	for _, b := range c.Brands {
		if b.Key == "" {
			errs = append(errs, errors.New("brand with empty key"))
			continue
		}
		if _, dup := brandSeen[b.Key]; dup {
			errs = append(errs, fmt.Errorf("duplicate brand %q", b.Key))
		}
		brandSeen[b.Key] = struct{}{}
	}

	roomSeen := make(map[string]struct{}, len(c.Rooms))
	for _, room := range c.Rooms {
		if room.Key == "" {
			errs = append(errs, errors.New("room with empty key"))
			continue
		}
		if _, dup := roomSeen[room.Key]; dup {
			errs = append(errs, fmt.Errorf("duplicate room %q", room.Key))
		}
		roomSeen[room.Key] = struct{}{}

		itemSeen := make(map[string]struct{}, len(room.Items))
		for _, it := range room.Items {
			where := room.Key + "." + it.Key
			if it.Key == "" {
				errs = append(errs, fmt.Errorf("room %q: item with empty key", room.Key))
				continue
			}
			if _, dup := itemSeen[it.Key]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate item", where))
			}
			itemSeen[it.Key] = struct{}{}

			if it.QuantityDefault != nil && *it.QuantityDefault < 0 {
				errs = append(errs, fmt.Errorf("%s: negative default quantity", where))
			}
			for _, b := range c.Brands {
				rg, ok := it.Ranges[b.Key]
				if !ok {
					errs = append(errs, fmt.Errorf("%s: no range for brand %q", where, b.Key))
					continue
				}
				if rg.Min < 0 || rg.Max < 0 {
					errs = append(errs, fmt.Errorf("%s/%s: negative price", where, b.Key))
				}
				if rg.Min > rg.Max {
					errs = append(errs, fmt.Errorf("%s/%s: min %.0f exceeds max %.0f", where, b.Key, rg.Min, rg.Max))
				}
			}
		}
	}

	return errors.Join(errs...)
}
