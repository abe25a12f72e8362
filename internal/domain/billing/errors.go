package billing

import "errors"

var (
	ErrTaxRateOutOfRange    = errors.New("tax rate must be between 0 and 100")
	ErrPaidAmountRequired   = errors.New("paid amount is required for partial payment")
	ErrNegativePaidAmount   = errors.New("paid amount cannot be negative")
	ErrUnknownPaymentStatus = errors.New("unknown payment status")
	ErrLineIndexOutOfRange  = errors.New("line index out of range")
)
