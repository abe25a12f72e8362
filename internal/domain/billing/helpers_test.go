package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, Round(got).StringFixed(MoneyPlaces), msgAndArgs...)
}

func scenarioALine() LineItem {
	return LineItem{
		Name:            "Rice 5kg",
		UnitLabel:       "bag",
		Quantity:        2,
		BasePrice:       dec("100"),
		DiscountPercent: dec("10"),
		TaxRatePercent:  dec("18"),
	}
}

func scenarioCLine() LineItem {
	return LineItem{
		Name:            "Soap",
		UnitLabel:       "pc",
		Quantity:        1,
		BasePrice:       dec("50"),
		DiscountPercent: decimal.Zero,
		TaxRatePercent:  dec("5"),
	}
}
