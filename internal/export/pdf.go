package export

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/theirongolddev/roombudget/internal/cli"
)

var (
	gray   = &props.Color{Red: 80, Green: 80, Blue: 80}
	shaded = &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
)

// GeneratePDF renders data as a one-page A4 handout.
func GeneratePDF(data Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r)
	}
	addSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, data Data) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(data.Title, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Center,
			})),
		),
		row.New(8).Add(
			col.New(6).Add(text.New(data.Brand+" · "+data.Tier+" tier", props.Text{
				Size:  9,
				Align: align.Left,
				Color: gray,
			})),
			col.New(6).Add(text.New("Date: "+data.CreatedDate, props.Text{
				Size:  9,
				Align: align.Right,
				Color: gray,
			})),
		),
		row.New(4),
	)
}

func addTableHeader(m core.Maroto) {
	cell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	th := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	left := th
	left.Align = align.Left

	m.AddRows(row.New(8).Add(
		col.New(1).Add(text.New("#", th)).WithStyle(cell),
		col.New(4).Add(text.New("Item", left)).WithStyle(cell),
		col.New(2).Add(text.New("Range", th)).WithStyle(cell),
		col.New(1).Add(text.New("Qty", th)).WithStyle(cell),
		col.New(2).Add(text.New("Unit", th)).WithStyle(cell),
		col.New(2).Add(text.New("Subtotal", th)).WithStyle(cell),
	))
}

func addTableRow(m core.Maroto, r Row) {
	base := props.Text{Size: 8, Align: align.Center}
	left, right := base, base
	left.Align = align.Left
	right.Align = align.Right

	m.AddRows(row.New(7).Add(
		col.New(1).Add(text.New(r.Index, base)),
		col.New(4).Add(text.New(r.Item, left)),
		col.New(2).Add(text.New(r.Range, base)),
		col.New(1).Add(text.New(strconv.Itoa(r.Qty), right)),
		col.New(2).Add(text.New(cli.FormatCurrency(r.UnitPrice), right)),
		col.New(2).Add(text.New(cli.FormatCurrency(r.Subtotal), right)),
	))
}

func addSummary(m core.Maroto, data Data) {
	m.AddRows(row.New(6))

	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}
	for _, s := range data.Summary {
		m.AddRows(row.New(7).Add(
			col.New(9).Add(text.New(s.Label, label)),
			col.New(3).Add(text.New(cli.FormatCurrency(s.Amount), value)),
		))
	}

	label.Style, value.Style = fontstyle.Bold, fontstyle.Bold
	label.Size, value.Size = 11, 11
	m.AddRows(row.New(9).Add(
		col.New(9).Add(text.New("Client budget target", label)).WithStyle(shaded),
		col.New(3).Add(text.New(cli.FormatCurrency(data.Total), value)).WithStyle(shaded),
	))
}
