package billing

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// Totals is the document-level fold of line results. Values are unrounded.
type Totals struct {
	Lines       []LineResult    `json:"lines"`
	SubTotal    decimal.Decimal `json:"subtotal"`
	TotalTax    decimal.Decimal `json:"total_tax"`
	ExtraCharge decimal.Decimal `json:"extra_charge"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// Aggregate sums the lines and folds in the extra charge. The subtotal is
// always tax-exclusive; tax only adds to the grand total in exclusive mode.
func Aggregate(lines []LineItem, mode enum.TaxMode, extraCharge decimal.Decimal) Totals {
	t := Totals{
		Lines:       make([]LineResult, 0, len(lines)),
		SubTotal:    decimal.Zero,
		TotalTax:    decimal.Zero,
		ExtraCharge: extraCharge,
	}
	for _, line := range lines {
		r := Calculate(line, mode)
		t.Lines = append(t.Lines, r)
		t.SubTotal = t.SubTotal.Add(r.DiscountedBase)
		t.TotalTax = t.TotalTax.Add(r.TaxAmount)
	}

	t.GrandTotal = t.SubTotal.Add(extraCharge)
	if !mode.IsInclusive() {
		t.GrandTotal = t.GrandTotal.Add(t.TotalTax)
	}
	return t
}
