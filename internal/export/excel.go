package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const currencyFmt = `"$"#,##0;-"$"#,##0`

// GenerateExcel writes data as a single-sheet workbook.
func GenerateExcel(data Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(data.Room)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]
	widths := []float64{5, 36, 20, 8, 14, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	money := currencyFmt
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 11}})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	rowStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &money,
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		CustomNumFmt: &money,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge subtitle: %w", err)
	}
	f.SetCellValue(sheet, "A2", sanitizeExcelCell(fmt.Sprintf("%s · %s tier · %s", data.Brand, data.Tier, data.CreatedDate)))
	f.SetCellStyle(sheet, "A2", lastCol+"2", subtitleStyle)

	headers := []string{"#", "Item", "Range", "Qty", "Unit", "Subtotal"}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+"4", h)
	}
	f.SetCellStyle(sheet, "A4", lastCol+"4", headerStyle)

	row := 5
	for _, r := range data.Rows {
		n := fmt.Sprint(row)
		f.SetCellValue(sheet, "A"+n, r.Index)
		f.SetCellValue(sheet, "B"+n, sanitizeExcelCell(r.Item))
		f.SetCellValue(sheet, "C"+n, sanitizeExcelCell(r.Range))
		f.SetCellValue(sheet, "D"+n, r.Qty)
		f.SetCellValue(sheet, "E"+n, r.UnitPrice)
		f.SetCellValue(sheet, "F"+n, r.Subtotal)
		f.SetCellStyle(sheet, "A"+n, "D"+n, rowStyle)
		f.SetCellStyle(sheet, "E"+n, "F"+n, moneyStyle)
		row++
	}

	row++
	for _, s := range data.Summary {
		n := fmt.Sprint(row)
		f.SetCellValue(sheet, "E"+n, sanitizeExcelCell(s.Label))
		f.SetCellStyle(sheet, "E"+n, "E"+n, labelStyle)
		f.SetCellValue(sheet, "F"+n, s.Amount)
		f.SetCellStyle(sheet, "F"+n, "F"+n, totalStyle)
		row++
	}

	n := fmt.Sprint(row)
	f.SetCellValue(sheet, "E"+n, "Client budget target")
	f.SetCellStyle(sheet, "E"+n, "E"+n, labelStyle)
	f.SetCellValue(sheet, "F"+n, data.Total)
	f.SetCellStyle(sheet, "F"+n, "F"+n, totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName strips characters Excel rejects and truncates to 31 runes.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, s)
	if rs := []rune(s); len(rs) > 31 {
		s = string(rs[:31])
	}
	if strings.TrimSpace(s) == "" {
		return "Estimate"
	}
	return s
}

// sanitizeExcelCell prefixes formula-leading characters with a quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
