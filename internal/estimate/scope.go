package estimate

import (
	"fmt"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/model"
)

// RoomScopeInput is a resolved room definition and how many of it to project.
type RoomScopeInput struct {
	Room  catalog.RoomDef
	Count int
}

// ComputeScopeRooms projects default-selection merchandise for each room at
// the three range tiers, multiplied by its count. Add-ons are not applied.
func ComputeScopeRooms(rooms []RoomScopeInput, brand string) model.ScopeTotals {
	var st model.ScopeTotals
	st.Rooms = make([]model.RoomScope, 0, len(rooms))
	for _, in := range rooms {
		sel := DefaultSelection(in.Room)
		n := float64(in.Count)
		rs := model.RoomScope{
			Room:    in.Room.Key,
			Label:   in.Room.Label,
			Count:   in.Count,
			Lowest:  Merchandise(ComputeLines(in.Room, brand, model.TierLowest, sel)) * n,
			Blended: Merchandise(ComputeLines(in.Room, brand, model.TierBlended, sel)) * n,
			Highest: Merchandise(ComputeLines(in.Room, brand, model.TierHighest, sel)) * n,
		}
		st.Lowest += rs.Lowest
		st.Blended += rs.Blended
		st.Highest += rs.Highest
		st.Rooms = append(st.Rooms, rs)
	}
	return st
}

// ComputeWholeScope resolves room keys against cat and runs ComputeScopeRooms.
func ComputeWholeScope(cat catalog.Catalog, counts []model.RoomCount, brand string) (model.ScopeTotals, error) {
	if _, ok := cat.Brand(brand); !ok {
		return model.ScopeTotals{}, fmt.Errorf("%w %q", ErrUnknownBrand, brand)
	}
	inputs := make([]RoomScopeInput, 0, len(counts))
	for _, rc := range counts {
		room, ok := cat.Room(rc.Room)
		if !ok {
			return model.ScopeTotals{}, fmt.Errorf("%w %q", ErrUnknownRoom, rc.Room)
		}
		inputs = append(inputs, RoomScopeInput{Room: room, Count: max(rc.Count, 0)})
	}
	return ComputeScopeRooms(inputs, brand), nil
}
