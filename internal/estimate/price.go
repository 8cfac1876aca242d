// Package estimate turns a catalog and a caller-held session into line items,
// fee totals, and whole-home projections. Everything here is pure: no I/O,
// no shared state.
package estimate

import (
	"math"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/model"
)

// BlendWeight positions the blended price between a range's min and max.
const BlendWeight = 0.55

// Round rounds half-up to whole currency units.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// ResolveUnitPrice collapses a range to one unit price for the tier.
// In the custom tier a nil override falls back to blended; an explicit 0 is kept.
func ResolveUnitPrice(r catalog.Range, tier model.Tier, custom *float64) float64 {
	switch tier {
	case model.TierLowest:
		return r.Min
	case model.TierHighest:
		return r.Max
	case model.TierCustom:
		if custom != nil {
			return *custom
		}
	}
	return Round(r.Min + (r.Max-r.Min)*BlendWeight)
}
