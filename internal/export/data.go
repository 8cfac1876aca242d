// Package export renders an estimate as a spreadsheet or PDF handout.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/cli"
	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"
)

// Data is an estimate flattened for document output.
type Data struct {
	Title       string
	Brand       string
	Room        string
	Tier        string
	Currency    string
	CreatedDate string
	Rows        []Row
	Summary     []SummaryRow
	Total       float64
}

// Row is one line item.
type Row struct {
	Index     string
	Item      string
	Range     string
	Qty       int
	UnitPrice float64
	Subtotal  float64
}

// SummaryRow is one fee or total below the line items.
type SummaryRow struct {
	Label  string
	Amount float64
}

// BuildData flattens est into export rows using cat for display labels.
func BuildData(cat catalog.Catalog, est model.Estimate) Data {
	s := est.Session
	roomLabel := s.Room
	if r, ok := cat.Room(s.Room); ok {
		roomLabel = r.Label
	}

	d := Data{
		Title:       roomLabel + " Budget",
		Brand:       cat.BrandLabel(s.Brand),
		Room:        roomLabel,
		Tier:        s.Tier.Label(),
		Currency:    cat.Currency,
		CreatedDate: time.Now().Format("2006-01-02"),
		Total:       est.Totals.Total,
	}

	for i, l := range est.Lines {
		d.Rows = append(d.Rows, Row{
			Index:     strconv.Itoa(i + 1),
			Item:      l.Label,
			Range:     cli.FormatRange(l.Range),
			Qty:       l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}

	t, a := est.Totals, s.AddOns
	delivery := fmt.Sprintf("Delivery (%s)", cli.FormatPercent(estimate.DeliveryPercent(a)))
	if a.WhiteGlove {
		delivery = fmt.Sprintf("White-glove delivery (%s)", cli.FormatPercent(estimate.DeliveryPercent(a)))
	}
	d.Summary = []SummaryRow{
		{"Merchandise", t.Merchandise},
		{delivery, t.Delivery},
		{fmt.Sprintf("Assembly (%s)", cli.FormatPercent(a.AssemblyPct)), t.Assembly},
		{fmt.Sprintf("Protection plan (%s)", cli.FormatPercent(a.ProtectionPct)), t.Protection},
		{"Promo", -t.Promo},
		{"Subtotal before tax", t.SubBeforeTax},
		{fmt.Sprintf("Sales tax (%s)", cli.FormatPercent(a.TaxPct)), t.Tax},
		{fmt.Sprintf("Contingency (%s)", cli.FormatPercent(a.ContingencyPct)), t.Contingency},
	}
	return d
}
