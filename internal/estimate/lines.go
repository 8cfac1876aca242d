package estimate

import (
	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/model"
)

// ComputeLines prices every enabled item of room in catalog order.
// Items missing from sel fall back to their catalog defaults.
func ComputeLines(room catalog.RoomDef, brand string, tier model.Tier, sel model.Selection) []model.Line {
	lines := make([]model.Line, 0, len(room.Items))
	for _, it := range room.Items {
		enabled, qty := it.DefaultEnabled(), it.DefaultQuantity()
		var custom *float64
		if s, ok := sel[it.Key]; ok {
			enabled, qty, custom = s.Enabled, s.Quantity, s.CustomPrice
		}
		if !enabled {
			continue
		}
		if tier != model.TierCustom {
			custom = nil
		}

		r := it.Ranges[brand]
		unit := ResolveUnitPrice(r, tier, custom)
		lines = append(lines, model.Line{
			Key:       it.Key,
			Label:     it.Label,
			Range:     r,
			Quantity:  qty,
			UnitPrice: unit,
			Subtotal:  unit * float64(qty),
		})
	}
	return lines
}

// Merchandise sums line subtotals without rounding.
func Merchandise(lines []model.Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal
	}
	return sum
}
