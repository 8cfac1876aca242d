package estimate

import (
	"math"

	"github.com/theirongolddev/roombudget/internal/model"
)

// WhiteGloveMinRate is the delivery rate floor when white-glove is on.
const WhiteGloveMinRate = 0.06

// DeliveryRate returns the effective delivery fraction for a.
func DeliveryRate(a model.AddOns) float64 {
	rate := a.DeliveryPct / 100
	if a.WhiteGlove {
		rate = math.Max(WhiteGloveMinRate, rate)
	}
	return rate
}

// DeliveryPercent is DeliveryRate expressed in percent for display, with
// float noise removed.
func DeliveryPercent(a model.AddOns) float64 {
	return math.Round(DeliveryRate(a)*1e4) / 1e2
}

// ComputeTotals rolls lines up through fees, promo, tax and contingency.
// Each fee is rounded as it is computed, with the percentage taken as a
// fraction first. A nil addOns applies no fees.
func ComputeTotals(lines []model.Line, addOns *model.AddOns) model.Totals {
	merch := Merchandise(lines)
	if addOns == nil {
		return model.Totals{Merchandise: merch, SubBeforeTax: merch, Total: merch}
	}
	a := *addOns

	t := model.Totals{Merchandise: merch}
	t.Delivery = Round(merch * DeliveryRate(a))
	t.Assembly = Round(merch * (a.AssemblyPct / 100))
	t.Protection = Round(merch * (a.ProtectionPct / 100))

	gross := merch + t.Delivery + t.Assembly + t.Protection
	// A promo larger than the pre-tax subtotal only zeroes it out.
	t.Promo = math.Min(a.Promo, gross)
	t.SubBeforeTax = gross - t.Promo

	t.Tax = Round(t.SubBeforeTax * (a.TaxPct / 100))
	t.Contingency = Round(t.SubBeforeTax * (a.ContingencyPct / 100))
	t.Total = t.SubBeforeTax + t.Tax + t.Contingency
	return t
}
