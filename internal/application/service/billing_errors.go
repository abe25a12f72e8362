package service

import (
	"errors"

	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/pkg/apperror"
)

// billingError maps engine errors to validation errors. field names the
// input the error belongs to when the engine cannot know it (line index).
func billingError(err error, field string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, billing.ErrTaxRateOutOfRange):
		if field == "" {
			field = "tax_rate_percent"
		}
		return apperror.NewFieldError(field, "must be between 0 and 100")
	case errors.Is(err, billing.ErrPaidAmountRequired):
		return apperror.NewFieldError("paid_amount", "is required when payment status is Partial")
	case errors.Is(err, billing.ErrNegativePaidAmount):
		return apperror.NewFieldError("paid_amount", "cannot be negative")
	case errors.Is(err, billing.ErrUnknownPaymentStatus):
		return apperror.NewFieldError("payment_status", "must be one of Paid, Unpaid, Partial")
	case errors.Is(err, billing.ErrLineIndexOutOfRange):
		return apperror.NewBadRequestError("Line index out of range")
	}
	return err
}
