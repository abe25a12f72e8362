package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// Settlement is the paid/due split of a grand total.
type Settlement struct {
	Status     enum.PaymentStatus `json:"payment_status"`
	PaidAmount decimal.Decimal    `json:"paid_amount"`
	DueAmount  decimal.Decimal    `json:"due_amount"`
}

// Settle derives the paid and due amounts for a grand total. paid is only
// read for Partial, where it is required and must not be negative.
// Over-payment is accepted; the due amount never goes below zero.
func Settle(grandTotal decimal.Decimal, status enum.PaymentStatus, paid *decimal.Decimal) (Settlement, error) {
	switch status {
	case enum.PaymentStatusPaid:
		return Settlement{Status: status, PaidAmount: grandTotal, DueAmount: decimal.Zero}, nil
	case enum.PaymentStatusUnpaid:
		return Settlement{Status: status, PaidAmount: decimal.Zero, DueAmount: grandTotal}, nil
	case enum.PaymentStatusPartial:
		if paid == nil {
			return Settlement{}, ErrPaidAmountRequired
		}
		if paid.IsNegative() {
			return Settlement{}, fmt.Errorf("%w: got %s", ErrNegativePaidAmount, paid.String())
		}
		due := grandTotal.Sub(*paid)
		if due.IsNegative() {
			due = decimal.Zero
		}
		return Settlement{Status: status, PaidAmount: *paid, DueAmount: due}, nil
	}
	return Settlement{}, fmt.Errorf("%w: %d", ErrUnknownPaymentStatus, int(status))
}
