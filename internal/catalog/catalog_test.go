package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, Validate(c))
	assert.Equal(t, []string{"living", "bedroom", "dining", "office"}, c.RoomKeys())
	assert.Equal(t, []string{BrandJossMain, BrandAllModern, BrandBirchLane}, c.BrandKeys())
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Rooms[0].Items[0].Ranges[BrandJossMain] = Range{Min: 1, Max: 2}

	b := Default()
	assert.Equal(t, Range{Min: 700, Max: 2500}, b.Rooms[0].Items[0].Ranges[BrandJossMain])
}

func TestItemDefaults(t *testing.T) {
	living, ok := Default().Room("living")
	require.True(t, ok)

	cases := []struct {
		key     string
		qty     int
		enabled bool
	}{
		{"sofa", 1, true},
		{"coffeeTable", 1, true},
		{"accentChair", 2, true},
		{"sectional", 0, false},
		{"mediaConsole", 0, false},
	}
	for _, tc := range cases {
		it, ok := living.Item(tc.key)
		require.True(t, ok, tc.key)
		assert.Equal(t, tc.qty, it.DefaultQuantity(), tc.key)
		assert.Equal(t, tc.enabled, it.DefaultEnabled(), tc.key)
	}
}

func TestLookups(t *testing.T) {
	c := Default()

	_, ok := c.Room("garage")
	assert.False(t, ok)

	b, ok := c.Brand(BrandBirchLane)
	require.True(t, ok)
	assert.Equal(t, "Birch Lane", b.Label)
	assert.Equal(t, "unknown", c.BrandLabel("unknown"))

	dining, _ := c.Room("dining")
	chairs, ok := dining.Item("chairs")
	require.True(t, ok)
	rg, ok := chairs.RangeFor(BrandAllModern)
	require.True(t, ok)
	assert.Equal(t, Range{Min: 75, Max: 450}, rg)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	c := Catalog{
		Brands: []Brand{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}},
		Rooms: []RoomDef{{
			Key: "den",
			Items: []ItemDef{
				{Key: "chair", Ranges: map[string]Range{"a": {Min: 300, Max: 100}}},
				{Key: "chair", Ranges: map[string]Range{"a": {Min: -1, Max: 5}, "b": {Min: 1, Max: 2}}},
			},
		}},
	}

	err := Validate(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min 300 exceeds max 100")
	assert.Contains(t, err.Error(), `no range for brand "b"`)
	assert.Contains(t, err.Error(), "duplicate item")
	assert.Contains(t, err.Error(), "negative price")
}

func TestValidateEmptyCatalog(t *testing.T) {
	err := Validate(Catalog{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no brands")
	assert.Contains(t, err.Error(), "no rooms")
}

func TestEncodeDecodeTOML(t *testing.T) {
	data, err := EncodeBytes(Default(), FormatTOML)
	require.NoError(t, err)

	got, err := Decode(data, FormatTOML)
	require.NoError(t, err)
	require.NoError(t, Validate(got))

	living, ok := got.Room("living")
	require.True(t, ok)
	sofa, _ := living.Item("sofa")
	require.NotNil(t, sofa.QuantityDefault)
	assert.Equal(t, 1, *sofa.QuantityDefault)
	assert.Nil(t, living.Items[1].QuantityDefault)
}

func TestLoadFileYAML(t *testing.T) {
	const doc = `
currency: EUR
brands:
  - key: house
    label: House Brand
rooms:
  - key: patio
    label: Patio
    items:
      - key: lounger
        label: Lounger
        required: true
        quantity_default: 2
        ranges:
          house: {min: 100, max: 300}
`
	path := filepath.Join(t.TempDir(), "patio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", c.Currency)

	patio, ok := c.Room("patio")
	require.True(t, ok)
	require.Len(t, patio.Items, 1)
	assert.Equal(t, 2, patio.Items[0].DefaultQuantity())
	assert.Equal(t, Range{Min: 100, Max: 300}, patio.Items[0].Ranges["house"])
}

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	_, err := LoadFile("catalog.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog extension")
}
