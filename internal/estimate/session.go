package estimate

import (
	"fmt"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/model"
)

// DefaultSelection returns every item of room at its catalog defaults.
func DefaultSelection(room catalog.RoomDef) model.Selection {
	sel := make(model.Selection, len(room.Items))
	for _, it := range room.Items {
		sel[it.Key] = model.ItemSelection{
			Enabled:  it.DefaultEnabled(),
			Quantity: it.DefaultQuantity(),
		}
	}
	return sel
}

// NewSession starts a blended-tier session with default add-ons. An unknown
// room yields an empty selection.
func NewSession(cat catalog.Catalog, brand, room string) model.Session {
	r, _ := cat.Room(room)
	return model.Session{
		Brand:     brand,
		Room:      room,
		Tier:      model.TierBlended,
		Selection: DefaultSelection(r),
		AddOns:    model.DefaultAddOns(),
	}
}

// SelectRoom switches room and resets the selection to that room's defaults.
func SelectRoom(cat catalog.Catalog, s model.Session, room string) model.Session {
	r, _ := cat.Room(room)
	s.Room = room
	s.Selection = DefaultSelection(r)
	return s
}

// SelectBrand switches brand and resets the selection of the current room.
func SelectBrand(cat catalog.Catalog, s model.Session, brand string) model.Session {
	r, _ := cat.Room(s.Room)
	s.Brand = brand
	s.Selection = DefaultSelection(r)
	return s
}

// SetTier changes the pricing tier. Custom prices are kept.
func SetTier(s model.Session, tier model.Tier) model.Session {
	s.Tier = tier
	return s
}

// SetQuantity sets an item's quantity, clamping negatives to 0.
func SetQuantity(s model.Session, key string, qty int) model.Session {
	s.Selection = s.Selection.Clone()
	if s.Selection == nil {
		s.Selection = model.Selection{}
	}
	it := s.Selection[key]
	it.Quantity = max(qty, 0)
	s.Selection[key] = it
	return s
}

// ToggleItem flips an item's enabled flag.
func ToggleItem(s model.Session, key string) model.Session {
	s.Selection = s.Selection.Clone()
	if s.Selection == nil {
		s.Selection = model.Selection{}
	}
	it := s.Selection[key]
	it.Enabled = !it.Enabled
	s.Selection[key] = it
	return s
}

// SetCustomPrice sets the custom-tier override for an item. Negatives clamp
// to 0; nil clears the override.
func SetCustomPrice(s model.Session, key string, price *float64) model.Session {
	s.Selection = s.Selection.Clone()
	if s.Selection == nil {
		s.Selection = model.Selection{}
	}
	it := s.Selection[key]
	if price == nil {
		it.CustomPrice = nil
	} else {
		p := max(*price, 0)
		it.CustomPrice = &p
	}
	s.Selection[key] = it
	return s
}

// ResetControls restores the blended tier and default add-ons. The item
// selection is left alone.
func ResetControls(s model.Session) model.Session {
	s.Tier = model.TierBlended
	s.AddOns = model.DefaultAddOns()
	return s
}

// Evaluate prices a session against cat. Unknown brand or room keys are errors.
func Evaluate(cat catalog.Catalog, s model.Session) (model.Estimate, error) {
	if _, ok := cat.Brand(s.Brand); !ok {
		return model.Estimate{}, fmt.Errorf("%w %q", ErrUnknownBrand, s.Brand)
	}
	room, ok := cat.Room(s.Room)
	if !ok {
		return model.Estimate{}, fmt.Errorf("%w %q", ErrUnknownRoom, s.Room)
	}
	if s.Tier == "" {
		s.Tier = model.TierBlended
	}

	lines := ComputeLines(room, s.Brand, s.Tier, s.Selection)
	addOns := s.AddOns
	return model.Estimate{
		Session: s,
		Lines:   lines,
		Totals:  ComputeTotals(lines, &addOns),
	}, nil
}
