package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/estimate"
)

func livingData(t *testing.T) Data {
	t.Helper()
	cat := catalog.Default()
	s := estimate.NewSession(cat, catalog.BrandJossMain, "living")
	s.AddOns.WhiteGlove = true
	est, err := estimate.Evaluate(cat, s)
	require.NoError(t, err)
	return BuildData(cat, est)
}

func TestBuildData(t *testing.T) {
	d := livingData(t)

	assert.Equal(t, "Living Room Budget", d.Title)
	assert.Equal(t, "Joss & Main", d.Brand)
	assert.Equal(t, "Better", d.Tier)
	require.Len(t, d.Rows, 6)
	assert.Equal(t, "1", d.Rows[0].Index)
	assert.Equal(t, "Sofa", d.Rows[0].Item)
	assert.Equal(t, "$700 - $2,500", d.Rows[0].Range)
	assert.Equal(t, "White-glove delivery (6%)", d.Summary[1].Label)

	var sum float64
	for _, r := range d.Rows {
		sum += r.Subtotal
	}
	assert.Equal(t, d.Summary[0].Amount, sum)
}

func TestGenerateExcel(t *testing.T) {
	d := livingData(t)

	out, err := GenerateExcel(d)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Living Room"}, sheets)

	title, err := f.GetCellValue("Living Room", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Living Room Budget", title)

	item, _ := f.GetCellValue("Living Room", "B5")
	assert.Equal(t, "Sofa", item)
	unit, _ := f.GetCellValue("Living Room", "E5", excelize.Options{RawCellValue: true})
	assert.Equal(t, "1690", unit)
}

func TestGenerateExcelEmptyRows(t *testing.T) {
	out, err := GenerateExcel(Data{Title: "Empty", Room: "Den/Study"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"DenStudy"}, f.GetSheetList())
}

func TestGeneratePDF(t *testing.T) {
	out, err := GeneratePDF(livingData(t))
	require.NoError(t, err)
	require.Greater(t, len(out), 5)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestSanitizeExcelCell(t *testing.T) {
	assert.Equal(t, "'=SUM(A1)", sanitizeExcelCell("=SUM(A1)"))
	assert.Equal(t, "Sofa", sanitizeExcelCell("Sofa"))
	assert.Equal(t, "", sanitizeExcelCell(""))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Estimate", sheetName(""))
	assert.Equal(t, "Living Room", sheetName("Living Room"))
	assert.Len(t, []rune(sheetName("A very long room name that exceeds the limit")), 31)
}
