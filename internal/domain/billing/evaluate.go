package billing

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// MoneyPlaces is the number of decimal places amounts are rounded to on output.
const MoneyPlaces = 2

// PaymentInput is the payment state entered for a document.
type PaymentInput struct {
	Status     enum.PaymentStatus `json:"payment_status"`
	PaidAmount *decimal.Decimal   `json:"paid_amount,omitempty"`
}

// LineSummary is one line of a Summary, rounded for output.
type LineSummary struct {
	LineItem
	DisplayPrice   decimal.Decimal `json:"display_price"`
	DiscountedBase decimal.Decimal `json:"discounted_base"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// Summary is the rounded result of evaluating a document. Its totals are
// what gets persisted, printed and exported.
type Summary struct {
	TaxMode       enum.TaxMode       `json:"tax_mode"`
	Lines         []LineSummary      `json:"lines"`
	SubTotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	ExtraCharge   decimal.Decimal    `json:"extra_charge"`
	Total         decimal.Decimal    `json:"total"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	PaidAmount    decimal.Decimal    `json:"partial_pay_amount"`
	DueAmount     decimal.Decimal    `json:"due_payment"`
}

// Round rounds half away from zero to MoneyPlaces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Evaluate runs the line calculator, the aggregator and settlement over
// doc, rounding only the returned figures. The total is built from the
// rounded subtotal, extra charge and (exclusive mode only) tax, so the
// printed figures always add up; it can sit a cent away from rounding
// the exact grand total. Settlement is taken against that total.
func Evaluate(doc Document, payment PaymentInput) (Summary, error) {
	totals := doc.Totals()
	subTotal := Round(totals.SubTotal)
	tax := Round(totals.TotalTax)
	extra := Round(totals.ExtraCharge)

	total := subTotal.Add(extra)
	if !doc.Mode().IsInclusive() {
		total = total.Add(tax)
	}

	settlement, err := Settle(total, payment.Status, payment.PaidAmount)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		TaxMode:       doc.Mode(),
		Lines:         make([]LineSummary, 0, len(doc.lines)),
		SubTotal:      subTotal,
		Tax:           tax,
		ExtraCharge:   extra,
		Total:         total,
		PaymentStatus: settlement.Status,
		PaidAmount:    Round(settlement.PaidAmount),
		DueAmount:     Round(settlement.DueAmount),
	}
	for i, line := range doc.lines {
		r := totals.Lines[i]
		s.Lines = append(s.Lines, LineSummary{
			LineItem:       line,
			DisplayPrice:   Round(line.DisplayPrice),
			DiscountedBase: Round(r.DiscountedBase),
			TaxAmount:      Round(r.TaxAmount),
			LineTotal:      Round(r.LineTotal),
		})
	}
	return s, nil
}
