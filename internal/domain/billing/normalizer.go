package billing

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// Scales and bounds of stored line values. Normalize rounds to these so a
// line read back from storage evaluates to the same totals.
const (
	PricePlaces   = 6
	PercentPlaces = 2
	MaxQuantity   = math.MaxInt32
)

// RawLine is a cart entry as edited in a form.
type RawLine struct {
	ProductRef      *uuid.UUID   `json:"product_ref,omitempty"`
	Name            string       `json:"name"`
	UnitLabel       string       `json:"unit_label"`
	UnitPrice       NumericInput `json:"unit_price"`
	Quantity        NumericInput `json:"quantity"`
	DiscountPercent NumericInput `json:"discount_percent"`
	TaxRatePercent  NumericInput `json:"tax_rate_percent"`
}

// Normalize turns a raw entry into a LineItem with a fixed base price.
// Under inclusive mode UnitPrice is read as tax-inclusive and the tax is
// backed out; under exclusive mode it is the base price as-is.
//
// Empty or malformed numbers fall back to 0 (price, discount, tax) and 1
// (quantity). Negative prices clamp to 0, discounts clamp to [0, 100] and
// quantities below 1 become 1 and above MaxQuantity become MaxQuantity.
// A tax rate outside [0, 100] is rejected. Prices keep PricePlaces decimals
// and percentages keep PercentPlaces.
func Normalize(raw RawLine, mode enum.TaxMode) (LineItem, error) {
	rate := raw.TaxRatePercent.Decimal(decimal.Zero)
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return LineItem{}, fmt.Errorf("%w: got %s", ErrTaxRateOutOfRange, rate.String())
	}
	rate = rate.Round(PercentPlaces)

	price := clampNonNegative(raw.UnitPrice.Decimal(decimal.Zero))
	if mode.IsInclusive() {
		price = price.Div(taxFactor(rate))
	}

	line := LineItem{
		ProductRef:      raw.ProductRef,
		Name:            raw.Name,
		UnitLabel:       raw.UnitLabel,
		Quantity:        normalizeQuantity(raw.Quantity),
		BasePrice:       price.Round(PricePlaces),
		DiscountPercent: clampPercent(raw.DiscountPercent.Decimal(decimal.Zero)).Round(PercentPlaces),
		TaxRatePercent:  rate,
	}
	line.DisplayPrice = line.DisplayPriceFor(mode)
	return line, nil
}

// NormalizeExtraCharge applies the price rules to a document extra charge,
// rounded to MoneyPlaces.
func NormalizeExtraCharge(in NumericInput) decimal.Decimal {
	return Round(clampNonNegative(in.Decimal(decimal.Zero)))
}

func normalizeQuantity(in NumericInput) int {
	q, ok := in.Parse()
	if !ok {
		return 1
	}
	return clampQuantity(q)
}

func clampQuantity(q decimal.Decimal) int {
	switch {
	case q.LessThan(decimal.NewFromInt(1)):
		return 1
	case q.GreaterThanOrEqual(decimal.NewFromInt(MaxQuantity)):
		return MaxQuantity
	}
	return int(q.IntPart())
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func clampPercent(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}
