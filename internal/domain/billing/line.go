package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

var hundred = decimal.NewFromInt(100)

// LineItem is a canonical cart line. BasePrice is the tax-exclusive unit
// price and the only stored price; DisplayPrice is derived from it.
type LineItem struct {
	ProductRef      *uuid.UUID      `json:"product_ref,omitempty"`
	Name            string          `json:"name"`
	UnitLabel       string          `json:"unit_label"`
	Quantity        int             `json:"quantity"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	DisplayPrice    decimal.Decimal `json:"display_price"`
}

// LineResult holds the derived amounts of one line. Values are unrounded.
type LineResult struct {
	DiscountedBase decimal.Decimal `json:"discounted_base"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

func taxFactor(rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate.Div(hundred))
}

// DisplayPriceFor returns the unit price shown to the customer under mode.
func (l LineItem) DisplayPriceFor(mode enum.TaxMode) decimal.Decimal {
	if mode.IsInclusive() {
		return l.BasePrice.Mul(taxFactor(l.TaxRatePercent))
	}
	return l.BasePrice
}

// Calculate derives the discounted base, tax and line total of one line.
// Tax is always taken on the post-discount, pre-tax amount.
func Calculate(line LineItem, mode enum.TaxMode) LineResult {
	qty := decimal.NewFromInt(int64(line.Quantity))
	keep := decimal.NewFromInt(1).Sub(line.DiscountPercent.Div(hundred))
	discounted := line.BasePrice.Mul(qty).Mul(keep)
	tax := discounted.Mul(line.TaxRatePercent).Div(hundred)

	total := discounted
	if !mode.IsInclusive() {
		total = discounted.Add(tax)
	}
	return LineResult{
		DiscountedBase: discounted,
		TaxAmount:      tax,
		LineTotal:      total,
	}
}
