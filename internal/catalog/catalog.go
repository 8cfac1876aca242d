// Package catalog defines the static brand, room, and item price tables
// that budget estimates are computed from.
package catalog

// Range is a min/max unit price for one item at one brand.
type Range struct {
	Min float64 `toml:"min" yaml:"min" json:"min"`
	Max float64 `toml:"max" yaml:"max" json:"max"`
}

// Brand is a selectable brand. Ranges are keyed by Brand.Key.
type Brand struct {
	Key   string `toml:"key" yaml:"key" json:"key"`
	Label string `toml:"label" yaml:"label" json:"label"`
	Note  string `toml:"note,omitempty" yaml:"note,omitempty" json:"note,omitempty"`
}

// ItemDef is one furniture line item of a room.
type ItemDef struct {
	Key             string           `toml:"key" yaml:"key" json:"key"`
	Label           string           `toml:"label" yaml:"label" json:"label"`
	QuantityDefault *int             `toml:"quantity_default,omitempty" yaml:"quantity_default,omitempty" json:"quantity_default,omitempty"`
	Required        bool             `toml:"required,omitempty" yaml:"required,omitempty" json:"required,omitempty"`
	Ranges          map[string]Range `toml:"ranges" yaml:"ranges" json:"ranges"`
}

// DefaultQuantity is the quantity an item starts with when a selection is reset.
func (it ItemDef) DefaultQuantity() int {
	if it.QuantityDefault != nil {
		return *it.QuantityDefault
	}
	if it.Required {
		return 1
	}
	return 0
}

// DefaultEnabled reports whether the item is included when a selection is reset.
func (it ItemDef) DefaultEnabled() bool {
	return it.Required || (it.QuantityDefault != nil && *it.QuantityDefault > 0)
}

// RangeFor returns the price range of the item for a brand.
func (it ItemDef) RangeFor(brand string) (Range, bool) {
	r, ok := it.Ranges[brand]
	return r, ok
}

// RoomDef is a room preset with its ordered items.
type RoomDef struct {
	Key   string    `toml:"key" yaml:"key" json:"key"`
	Label string    `toml:"label" yaml:"label" json:"label"`
	Items []ItemDef `toml:"items" yaml:"items" json:"items"`
}

// Item returns the item with the given key.
func (r RoomDef) Item(key string) (ItemDef, bool) {
	for _, it := range r.Items {
		if it.Key == key {
			return it, true
		}
	}
	return ItemDef{}, false
}

// Catalog is the full set of brands and rooms. It is never mutated at runtime.
type Catalog struct {
	Currency string    `toml:"currency" yaml:"currency" json:"currency"`
	Brands   []Brand   `toml:"brands" yaml:"brands" json:"brands"`
	Rooms    []RoomDef `toml:"rooms" yaml:"rooms" json:"rooms"`
}

// Room looks up a room by key.
func (c Catalog) Room(key string) (RoomDef, bool) {
	for _, r := range c.Rooms {
		if r.Key == key {
			return r, true
		}
	}
	return RoomDef{}, false
}

// Brand looks up a brand by key.
func (c Catalog) Brand(key string) (Brand, bool) {
	for _, b := range c.Brands {
		if b.Key == key {
			return b, true
		}
	}
	return Brand{}, false
}

// RoomKeys returns room keys in catalog order.
func (c Catalog) RoomKeys() []string {
	keys := make([]string, 0, len(c.Rooms))
	for _, r := range c.Rooms {
		keys = append(keys, r.Key)
	}
	return keys
}

// BrandKeys returns brand keys in catalog order.
func (c Catalog) BrandKeys() []string {
	keys := make([]string, 0, len(c.Brands))
	for _, b := range c.Brands {
		keys = append(keys, b.Key)
	}
	return keys
}

// BrandLabel returns the display label for a brand key, or the key itself.
func (c Catalog) BrandLabel(key string) string {
	if b, ok := c.Brand(key); ok {
		return b.Label
	}
	return key
}
