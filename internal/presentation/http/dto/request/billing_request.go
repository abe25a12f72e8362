package request

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// CalculateRequest is an unsaved cart as typed into a billing form.
// Numeric fields accept numbers or strings; malformed values fall back to
// their defaults.
type CalculateRequest struct {
	TaxMode       *enum.TaxMode        `json:"tax_mode"`
	Lines         []billing.RawLine    `json:"lines"`
	ExtraCharge   billing.NumericInput `json:"extra_charge"`
	PaymentStatus enum.PaymentStatus   `json:"payment_status"`
	PaidAmount    *decimal.Decimal     `json:"paid_amount"`
}

// ToInput converts the request to a service input
func (r *CalculateRequest) ToInput() *service.CalculateInput {
	return &service.CalculateInput{
		TaxMode:       r.TaxMode,
		Lines:         r.Lines,
		ExtraCharge:   r.ExtraCharge,
		PaymentStatus: r.PaymentStatus,
		PaidAmount:    r.PaidAmount,
	}
}

// SwitchModeRequest carries canonical lines and the target mode
type SwitchModeRequest struct {
	To            *enum.TaxMode      `json:"to" binding:"required"`
	Lines         []billing.LineItem `json:"lines"`
	ExtraCharge   decimal.Decimal    `json:"extra_charge"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	PaidAmount    *decimal.Decimal   `json:"paid_amount"`
}

// ToInput converts the request to a service input
func (r *SwitchModeRequest) ToInput() *service.SwitchModeInput {
	return &service.SwitchModeInput{
		To:            *r.To,
		Lines:         r.Lines,
		ExtraCharge:   r.ExtraCharge,
		PaymentStatus: r.PaymentStatus,
		PaidAmount:    r.PaidAmount,
	}
}

// SettleRequest is a grand total and the payment state entered against it
type SettleRequest struct {
	Total         decimal.Decimal    `json:"total"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	PaidAmount    *decimal.Decimal   `json:"paid_amount"`
}

// ToInput converts the request to a service input
func (r *SettleRequest) ToInput() *service.SettleInput {
	return &service.SettleInput{
		Total:         r.Total,
		PaymentStatus: r.PaymentStatus,
		PaidAmount:    r.PaidAmount,
	}
}
