package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/model"
)

func ptr(f float64) *float64 { return &f }

func livingRoom(t *testing.T) catalog.RoomDef {
	t.Helper()
	room, ok := catalog.Default().Room("living")
	require.True(t, ok)
	return room
}

// onlyEnabled returns a default selection with every item except keys disabled.
func onlyEnabled(room catalog.RoomDef, keys ...string) model.Selection {
	sel := DefaultSelection(room)
	keep := make(map[string]bool, len(keys))
	for _, k := range keys {
		keep[k] = true
	}
	for k, s := range sel {
		s.Enabled = keep[k]
		s.Quantity = 1
		sel[k] = s
	}
	return sel
}

func TestResolveUnitPrice(t *testing.T) {
	r := catalog.Range{Min: 100, Max: 200}
	tests := []struct {
		name   string
		tier   model.Tier
		custom *float64
		want   float64
	}{
		{"lowest", model.TierLowest, nil, 100},
		{"highest", model.TierHighest, nil, 200},
		{"blended", model.TierBlended, nil, 155},
		{"custom set", model.TierCustom, ptr(180), 180},
		{"custom unset falls back", model.TierCustom, nil, 155},
		{"custom explicit zero kept", model.TierCustom, ptr(0), 0},
		{"lowest ignores custom", model.TierLowest, ptr(999), 100},
		{"unknown tier blends", model.Tier("premium"), nil, 155},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveUnitPrice(r, tt.tier, tt.custom))
		})
	}
}

func TestResolveUnitPriceRoundsHalfUp(t *testing.T) {
	// 0 + 0.55*10 = 5.5
	assert.Equal(t, 6.0, ResolveUnitPrice(catalog.Range{Min: 0, Max: 10}, model.TierBlended, nil))
	// 0 + 0.55*1 = 0.55
	assert.Equal(t, 1.0, ResolveUnitPrice(catalog.Range{Min: 0, Max: 1}, model.TierBlended, nil))
	assert.Equal(t, 50.0, ResolveUnitPrice(catalog.Range{Min: 50, Max: 50}, model.TierBlended, nil))
}

func TestLivingRoomExample(t *testing.T) {
	room := livingRoom(t)
	sel := onlyEnabled(room, "sofa", "coffeeTable")

	tests := []struct {
		tier model.Tier
		want float64
	}{
		{model.TierBlended, 2129},
		{model.TierLowest, 820},
		{model.TierHighest, 3200},
	}
	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			lines := ComputeLines(room, catalog.BrandJossMain, tt.tier, sel)
			require.Len(t, lines, 2)
			assert.Equal(t, tt.want, Merchandise(lines))
			assert.Equal(t, tt.want, ComputeTotals(lines, nil).Total)
		})
	}

	lines := ComputeLines(room, catalog.BrandJossMain, model.TierBlended, sel)
	assert.Equal(t, "sofa", lines[0].Key)
	assert.Equal(t, 1690.0, lines[0].UnitPrice)
	assert.Equal(t, "coffeeTable", lines[1].Key)
	assert.Equal(t, 439.0, lines[1].UnitPrice)
}

func TestComputeLinesDefaultsAndOrder(t *testing.T) {
	room := livingRoom(t)

	// nil selection uses catalog defaults: sofa, accentChair x2, coffeeTable,
	// sideTable x2, rug, lighting x2.
	lines := ComputeLines(room, catalog.BrandJossMain, model.TierLowest, nil)
	keys := make([]string, 0, len(lines))
	for _, l := range lines {
		keys = append(keys, l.Key)
	}
	assert.Equal(t, []string{"sofa", "accentChair", "coffeeTable", "sideTable", "rug", "lighting"}, keys)
	assert.Equal(t, 320.0, lines[1].Subtotal)
	assert.Equal(t, 2, lines[1].Quantity)

	fromDefaults := ComputeLines(room, catalog.BrandJossMain, model.TierLowest, DefaultSelection(room))
	assert.Equal(t, lines, fromDefaults)
}

func TestComputeLinesCustomOnlyInCustomTier(t *testing.T) {
	room := livingRoom(t)
	sel := onlyEnabled(room, "sofa")
	sel["sofa"] = model.ItemSelection{Enabled: true, Quantity: 2, CustomPrice: ptr(1000)}

	custom := ComputeLines(room, catalog.BrandJossMain, model.TierCustom, sel)
	require.Len(t, custom, 1)
	assert.Equal(t, 1000.0, custom[0].UnitPrice)
	assert.Equal(t, 2000.0, custom[0].Subtotal)

	blended := ComputeLines(room, catalog.BrandJossMain, model.TierBlended, sel)
	assert.Equal(t, 1690.0, blended[0].UnitPrice)
}

func TestEnabledWithZeroQuantityContributesNothing(t *testing.T) {
	room := livingRoom(t)
	sel := onlyEnabled(room, "sofa")
	sel["sofa"] = model.ItemSelection{Enabled: true, Quantity: 0}

	lines := ComputeLines(room, catalog.BrandJossMain, model.TierBlended, sel)
	require.Len(t, lines, 1)
	assert.Zero(t, lines[0].Subtotal)
}

func TestComputeTotalsNoItems(t *testing.T) {
	room := livingRoom(t)
	sel := onlyEnabled(room)
	add := model.DefaultAddOns()

	lines := ComputeLines(room, catalog.BrandJossMain, model.TierBlended, sel)
	assert.Empty(t, lines)
	tot := ComputeTotals(lines, &add)
	assert.Equal(t, model.Totals{}, tot)
}

func TestComputeTotalsStepwise(t *testing.T) {
	lines := []model.Line{{Key: "a", Quantity: 1, UnitPrice: 1001, Subtotal: 1001}}
	add := model.AddOns{
		DeliveryPct:    3,
		AssemblyPct:    2.5,
		ProtectionPct:  1,
		TaxPct:         6.25,
		ContingencyPct: 10,
		Promo:          50,
	}
	tot := ComputeTotals(lines, &add)

	assert.Equal(t, 1001.0, tot.Merchandise)
	assert.Equal(t, 30.0, tot.Delivery)   // 30.03
	assert.Equal(t, 25.0, tot.Assembly)   // 25.025
	assert.Equal(t, 10.0, tot.Protection) // 10.01
	assert.Equal(t, 50.0, tot.Promo)
	assert.Equal(t, 1016.0, tot.SubBeforeTax)
	assert.Equal(t, 64.0, tot.Tax)          // 63.5
	assert.Equal(t, 102.0, tot.Contingency) // 101.6
	assert.Equal(t, 1182.0, tot.Total)
}

func TestComputeTotalsRateAsFraction(t *testing.T) {
	// 7.25% is inexact in binary: 3000*0.0725 lands just under .5, while
	// 3000*7.25/100 lands exactly on it.
	sub := []model.Line{{Subtotal: 3000}}
	tax := model.AddOns{TaxPct: 7.25}
	assert.Equal(t, 217.0, ComputeTotals(sub, &tax).Tax)

	contingency := model.AddOns{ContingencyPct: 7.25}
	assert.Equal(t, 217.0, ComputeTotals(sub, &contingency).Contingency)

	small := []model.Line{{Subtotal: 200}}
	fees := model.AddOns{AssemblyPct: 7.25, ProtectionPct: 7.25}
	tot := ComputeTotals(small, &fees)
	assert.Equal(t, 14.0, tot.Assembly)
	assert.Equal(t, 14.0, tot.Protection)
	assert.Equal(t, 228.0, tot.SubBeforeTax)
}

func TestComputeTotalsWhiteGloveFloor(t *testing.T) {
	lines := []model.Line{{Subtotal: 1000}}

	low := model.AddOns{DeliveryPct: 3, WhiteGlove: true}
	assert.Equal(t, 60.0, ComputeTotals(lines, &low).Delivery)

	high := model.AddOns{DeliveryPct: 8, WhiteGlove: true}
	assert.Equal(t, 80.0, ComputeTotals(lines, &high).Delivery)

	off := model.AddOns{DeliveryPct: 3}
	assert.Equal(t, 30.0, ComputeTotals(lines, &off).Delivery)
}

func TestComputeTotalsPromoClamped(t *testing.T) {
	lines := []model.Line{{Subtotal: 100}}
	add := model.AddOns{DeliveryPct: 10, TaxPct: 6.25, ContingencyPct: 10, Promo: 500}

	tot := ComputeTotals(lines, &add)
	assert.Equal(t, 10.0, tot.Delivery)
	assert.Equal(t, 110.0, tot.Promo)
	assert.Zero(t, tot.SubBeforeTax)
	assert.Zero(t, tot.Tax)
	assert.Zero(t, tot.Contingency)
	assert.Zero(t, tot.Total)
}

func TestComputeTotalsTotalIdentity(t *testing.T) {
	room := livingRoom(t)
	add := model.DefaultAddOns()
	add.WhiteGlove = true
	add.Promo = 125

	for _, tier := range model.RangeTiers {
		tot := ComputeTotals(ComputeLines(room, catalog.BrandBirchLane, tier, nil), &add)
		assert.Equal(t, tot.SubBeforeTax+tot.Tax+tot.Contingency, tot.Total, tier)
		assert.GreaterOrEqual(t, tot.SubBeforeTax, 0.0)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	room := livingRoom(t)
	sel := DefaultSelection(room)
	add := model.DefaultAddOns()

	a := ComputeLines(room, catalog.BrandAllModern, model.TierBlended, sel)
	b := ComputeLines(room, catalog.BrandAllModern, model.TierBlended, sel)
	assert.Equal(t, a, b)
	assert.Equal(t, ComputeTotals(a, &add), ComputeTotals(b, &add))
}

func TestTierOrdering(t *testing.T) {
	cat := catalog.Default()
	for _, room := range cat.Rooms {
		for _, brand := range cat.BrandKeys() {
			sel := DefaultSelection(room)
			lo := Merchandise(ComputeLines(room, brand, model.TierLowest, sel))
			mid := Merchandise(ComputeLines(room, brand, model.TierBlended, sel))
			hi := Merchandise(ComputeLines(room, brand, model.TierHighest, sel))
			assert.LessOrEqual(t, lo, mid, "%s/%s", room.Key, brand)
			assert.LessOrEqual(t, mid, hi, "%s/%s", room.Key, brand)
		}
	}
}

func TestDeliveryPercent(t *testing.T) {
	assert.Equal(t, 3.0, DeliveryPercent(model.AddOns{DeliveryPct: 3}))
	assert.Equal(t, 6.0, DeliveryPercent(model.AddOns{DeliveryPct: 3, WhiteGlove: true}))
	assert.Equal(t, 7.5, DeliveryPercent(model.AddOns{DeliveryPct: 7.5, WhiteGlove: true}))
}
