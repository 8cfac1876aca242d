package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"
)

func livingSession(t *testing.T) (model.Session, catalog.RoomDef) {
	t.Helper()
	cat := catalog.Default()
	room, ok := cat.Room("living")
	require.True(t, ok)
	return estimate.NewSession(cat, catalog.BrandJossMain, "living"), room
}

func TestParseKeyValues(t *testing.T) {
	kvs, err := parseKeyValues("qty", []string{"sofa=2", "rug=1, lighting=0"})
	require.NoError(t, err)
	assert.Equal(t, []keyValue{{"sofa", 2}, {"rug", 1}, {"lighting", 0}}, kvs)

	_, err = parseKeyValues("qty", []string{"sofa"})
	assert.Error(t, err)
	_, err = parseKeyValues("price", []string{"sofa=abc"})
	assert.Error(t, err)
}

func TestParseKeyValuesRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"sofa=NaN", "sofa=Inf", "sofa=-inf"} {
		_, err := parseKeyValues("price", []string{v})
		assert.Error(t, err, v)
	}
}

func newEstimateFlagsCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "estimate"}
	addEstimateFlags(cmd)
	return cmd
}

func TestAddOnsFromFlags(t *testing.T) {
	cmd := newEstimateFlagsCmd(t)
	require.NoError(t, cmd.Flags().Set("tax", "7.25"))
	require.NoError(t, cmd.Flags().Set("promo", "-20"))

	defaults := config.DefaultConfig().AddOns
	a, err := addOnsFromFlags(cmd, defaults)
	require.NoError(t, err)
	assert.Equal(t, 7.25, a.TaxPct)
	assert.Zero(t, a.Promo)
	assert.Equal(t, defaults.DeliveryPct, a.DeliveryPct)
}

func TestAddOnsFromFlagsRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf"} {
		cmd := newEstimateFlagsCmd(t)
		require.NoError(t, cmd.Flags().Set("tax", v))

		_, err := addOnsFromFlags(cmd, config.DefaultConfig().AddOns)
		assert.Error(t, err, v)
	}
}

func TestApplySelectionFlags(t *testing.T) {
	s, room := livingSession(t)

	s, err := applySelectionFlags(s, room, selectionFlags{
		enable:  []string{"mediaConsole"},
		qty:     []string{"sectional=1", "accentChair=0"},
		price:   []string{"sofa=-10"},
		disable: []string{"rug"},
	})
	require.NoError(t, err)

	assert.True(t, s.Selection["mediaConsole"].Enabled)
	assert.True(t, s.Selection["sectional"].Enabled, "qty > 0 includes the item")
	assert.Equal(t, 1, s.Selection["sectional"].Quantity)
	assert.Equal(t, 0, s.Selection["accentChair"].Quantity)
	assert.False(t, s.Selection["rug"].Enabled)
	require.NotNil(t, s.Selection["sofa"].CustomPrice)
	assert.Equal(t, 0.0, *s.Selection["sofa"].CustomPrice, "negative prices clamp to 0")
}

func TestApplySelectionFlagsDisableWins(t *testing.T) {
	s, room := livingSession(t)
	s, err := applySelectionFlags(s, room, selectionFlags{
		qty:     []string{"sofa=3"},
		disable: []string{"sofa"},
	})
	require.NoError(t, err)
	assert.False(t, s.Selection["sofa"].Enabled)
	assert.Equal(t, 3, s.Selection["sofa"].Quantity)
}

func TestApplySelectionFlagsRejectsBadInput(t *testing.T) {
	s, room := livingSession(t)

	_, err := applySelectionFlags(s, room, selectionFlags{enable: []string{"hotTub"}})
	assert.ErrorContains(t, err, "unknown item")

	_, err = applySelectionFlags(s, room, selectionFlags{qty: []string{"sofa=1.5"}})
	assert.ErrorContains(t, err, "whole number")
}

func TestParseRoomCounts(t *testing.T) {
	counts, err := parseRoomCounts("living=1, bedroom=3,office")
	require.NoError(t, err)
	assert.Equal(t, []model.RoomCount{
		{Room: "living", Count: 1},
		{Room: "bedroom", Count: 3},
		{Room: "office", Count: 1},
	}, counts)

	_, err = parseRoomCounts("bedroom=-1")
	assert.Error(t, err)
	_, err = parseRoomCounts(" , ")
	assert.Error(t, err)
}

func TestExportFormat(t *testing.T) {
	f, err := exportFormat("", "out/Living.XLSX")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", f)

	f, err = exportFormat("pdf", "quote.bin")
	require.NoError(t, err)
	assert.Equal(t, "pdf", f)

	_, err = exportFormat("", "quote.docx")
	assert.Error(t, err)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
