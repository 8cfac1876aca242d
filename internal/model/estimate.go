package model

import "github.com/theirongolddev/roombudget/internal/catalog"

// ItemSelection is the caller-held state of one item in the active room.
// CustomPrice is only consulted in the custom tier; nil means unset.
type ItemSelection struct {
	Enabled     bool     `json:"enabled"`
	Quantity    int      `json:"quantity"`
	CustomPrice *float64 `json:"custom_price,omitempty"`
}

// Selection maps item keys of the active room to their state.
type Selection map[string]ItemSelection

// Clone returns a deep copy of s.
func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	out := make(Selection, len(s))
	for k, v := range s {
		if v.CustomPrice != nil {
			p := *v.CustomPrice
			v.CustomPrice = &p
		}
		out[k] = v
	}
	return out
}

// AddOns holds the percentage fees and flat promo applied after merchandise.
// Percentages are whole numbers: 6.25 means 6.25%.
type AddOns struct {
	DeliveryPct    float64 `json:"delivery_pct" toml:"delivery_pct"`
	WhiteGlove     bool    `json:"white_glove" toml:"white_glove"`
	AssemblyPct    float64 `json:"assembly_pct" toml:"assembly_pct"`
	ProtectionPct  float64 `json:"protection_pct" toml:"protection_pct"`
	TaxPct         float64 `json:"tax_pct" toml:"tax_pct"`
	ContingencyPct float64 `json:"contingency_pct" toml:"contingency_pct"`
	Promo          float64 `json:"promo" toml:"promo"`
}

// DefaultAddOns returns the calculator's starting add-on values.
func DefaultAddOns() AddOns {
	return AddOns{
		DeliveryPct:    3,
		TaxPct:         6.25,
		ContingencyPct: 10,
	}
}

// Session is the full interactive state: what the user picked and typed.
type Session struct {
	Brand     string    `json:"brand"`
	Room      string    `json:"room"`
	Tier      Tier      `json:"tier"`
	Selection Selection `json:"selection"`
	AddOns    AddOns    `json:"add_ons"`
}

// Line is one priced, enabled item.
type Line struct {
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Range     catalog.Range `json:"range"`
	Quantity  int           `json:"quantity"`
	UnitPrice float64       `json:"unit_price"`
	Subtotal  float64       `json:"subtotal"`
}

// Totals is the fee and tax rollup of a set of lines.
type Totals struct {
	Merchandise  float64 `json:"merchandise"`
	Delivery     float64 `json:"delivery"`
	Assembly     float64 `json:"assembly"`
	Protection   float64 `json:"protection"`
	Promo        float64 `json:"promo"`
	SubBeforeTax float64 `json:"sub_before_tax"`
	Tax          float64 `json:"tax"`
	Contingency  float64 `json:"contingency"`
	Total        float64 `json:"total"`
}

// Estimate bundles a session with its computed lines and totals.
type Estimate struct {
	Session Session `json:"session"`
	Lines   []Line  `json:"lines"`
	Totals  Totals  `json:"totals"`
}

// RoomCount asks for Count instances of a room in a whole-home projection.
type RoomCount struct {
	Room  string `json:"room" validate:"required"`
	Count int    `json:"count" validate:"min=0"`
}

// RoomScope is one room type's contribution to a whole-home projection.
type RoomScope struct {
	Room    string  `json:"room"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Lowest  float64 `json:"lowest"`
	Blended float64 `json:"blended"`
	Highest float64 `json:"highest"`
}

// ScopeTotals is the lowest/blended/highest projection across rooms.
type ScopeTotals struct {
	Lowest  float64     `json:"lowest"`
	Blended float64     `json:"blended"`
	Highest float64     `json:"highest"`
	Rooms   []RoomScope `json:"rooms"`
}
