package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

func TestEvaluate_Scenarios(t *testing.T) {
	cases := []struct {
		name     string
		mode     enum.TaxMode
		lines    []LineItem
		extra    string
		payment  PaymentInput
		subtotal string
		tax      string
		total    string
		paid     string
		due      string
	}{
		{
			name: "single line exclusive", mode: enum.TaxModeExclusive,
			lines: []LineItem{scenarioALine()}, extra: "0",
			payment:  PaymentInput{Status: enum.PaymentStatusUnpaid},
			subtotal: "180.00", tax: "32.40", total: "212.40", paid: "0.00", due: "212.40",
		},
		{
			name: "single line inclusive", mode: enum.TaxModeInclusive,
			lines: []LineItem{scenarioALine()}, extra: "0",
			payment:  PaymentInput{Status: enum.PaymentStatusPaid},
			subtotal: "180.00", tax: "32.40", total: "180.00", paid: "180.00", due: "0.00",
		},
		{
			name: "two lines with extra charge", mode: enum.TaxModeExclusive,
			lines: []LineItem{scenarioALine(), scenarioCLine()}, extra: "20",
			payment:  PaymentInput{Status: enum.PaymentStatusUnpaid},
			subtotal: "230.00", tax: "34.90", total: "284.90", paid: "0.00", due: "284.90",
		},
		{
			name: "partial payment", mode: enum.TaxModeExclusive,
			lines: []LineItem{scenarioALine()}, extra: "0",
			payment:  PaymentInput{Status: enum.PaymentStatusPartial, PaidAmount: decPtr("100")},
			subtotal: "180.00", tax: "32.40", total: "212.40", paid: "100.00", due: "112.40",
		},
		{
			name: "overpaid partial", mode: enum.TaxModeExclusive,
			lines: []LineItem{scenarioALine()}, extra: "0",
			payment:  PaymentInput{Status: enum.PaymentStatusPartial, PaidAmount: decPtr("300")},
			subtotal: "180.00", tax: "32.40", total: "212.40", paid: "300.00", due: "0.00",
		},
		{
			name: "empty document", mode: enum.TaxModeInclusive,
			extra:    "20",
			payment:  PaymentInput{Status: enum.PaymentStatusUnpaid},
			subtotal: "0.00", tax: "0.00", total: "20.00", paid: "0.00", due: "20.00",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := NewDocument(tc.mode, dec(tc.extra), tc.lines...)

			s, err := Evaluate(doc, tc.payment)
			require.NoError(t, err)

			assert.Equal(t, tc.mode, s.TaxMode)
			assert.Equal(t, tc.subtotal, s.SubTotal.StringFixed(2))
			assert.Equal(t, tc.tax, s.Tax.StringFixed(2))
			assert.Equal(t, tc.total, s.Total.StringFixed(2))
			assert.Equal(t, tc.paid, s.PaidAmount.StringFixed(2))
			assert.Equal(t, tc.due, s.DueAmount.StringFixed(2))
			assert.Len(t, s.Lines, len(tc.lines))
		})
	}
}

func TestEvaluate_LineSummaries(t *testing.T) {
	doc := NewDocument(enum.TaxModeInclusive, dec("0"), scenarioALine())

	s, err := Evaluate(doc, PaymentInput{Status: enum.PaymentStatusUnpaid})
	require.NoError(t, err)

	require.Len(t, s.Lines, 1)
	line := s.Lines[0]
	assert.Equal(t, "Rice 5kg", line.Name)
	assert.Equal(t, "118.00", line.DisplayPrice.StringFixed(2))
	assert.Equal(t, "180.00", line.DiscountedBase.StringFixed(2))
	assert.Equal(t, "32.40", line.TaxAmount.StringFixed(2))
	assert.Equal(t, "180.00", line.LineTotal.StringFixed(2))
}

func TestEvaluate_RoundsOnlyAtOutput(t *testing.T) {
	// 3 x 0.333 at 0% tax: rounding per line first would give 3 x 0.33.
	lines := []LineItem{
		{Quantity: 1, BasePrice: dec("0.333"), TaxRatePercent: dec("0")},
		{Quantity: 1, BasePrice: dec("0.333"), TaxRatePercent: dec("0")},
		{Quantity: 1, BasePrice: dec("0.333"), TaxRatePercent: dec("0")},
	}
	s, err := Evaluate(NewDocument(enum.TaxModeExclusive, dec("0"), lines...), PaymentInput{Status: enum.PaymentStatusUnpaid})
	require.NoError(t, err)

	assert.Equal(t, "1.00", s.SubTotal.StringFixed(2))
	assert.Equal(t, "1.00", s.Total.StringFixed(2))
}

func TestEvaluate_PartialWithoutAmountIsRejected(t *testing.T) {
	doc := NewDocument(enum.TaxModeExclusive, dec("0"), scenarioALine())

	_, err := Evaluate(doc, PaymentInput{Status: enum.PaymentStatusPartial})
	assert.ErrorIs(t, err, ErrPaidAmountRequired)
}

func TestEvaluate_RoundedFiguresAddUp(t *testing.T) {
	cases := []struct {
		name  string
		mode  enum.TaxMode
		lines []LineItem
		extra string
		total string
	}{
		{
			// exact: 0.425 + 0.0765 = 0.5015
			name: "half cent subtotal", mode: enum.TaxModeExclusive,
			lines: []LineItem{{Quantity: 1, BasePrice: dec("0.425"), TaxRatePercent: dec("18")}},
			extra: "0", total: "0.51",
		},
		{
			name: "half cent tax with extra charge", mode: enum.TaxModeExclusive,
			lines: []LineItem{
				{Quantity: 3, BasePrice: dec("0.335"), TaxRatePercent: dec("5")},
				{Quantity: 7, BasePrice: dec("1.115"), DiscountPercent: dec("3"), TaxRatePercent: dec("12")},
			},
			extra: "0.005",
		},
		{
			name: "inclusive ignores tax", mode: enum.TaxModeInclusive,
			lines: []LineItem{{Quantity: 1, BasePrice: dec("0.425"), TaxRatePercent: dec("18")}},
			extra: "0", total: "0.43",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Evaluate(NewDocument(tc.mode, dec(tc.extra), tc.lines...), PaymentInput{Status: enum.PaymentStatusUnpaid})
			require.NoError(t, err)

			want := s.SubTotal.Add(s.ExtraCharge)
			if tc.mode == enum.TaxModeExclusive {
				want = want.Add(s.Tax)
			}
			assert.True(t, want.Equal(s.Total), "subtotal %s tax %s extra %s total %s", s.SubTotal, s.Tax, s.ExtraCharge, s.Total)
			assert.True(t, s.Total.Equal(s.DueAmount))
			if tc.total != "" {
				assert.Equal(t, tc.total, s.Total.StringFixed(2))
			}
		})
	}
}
