package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/pkg/apperror"
)

// BillingService is the stateless calculation surface used by the billing
// screens on every logical edit. Nothing is persisted.
type BillingService struct {
	defaultMode enum.TaxMode
}

// NewBillingService creates a new billing service
func NewBillingService(defaultMode enum.TaxMode) *BillingService {
	return &BillingService{defaultMode: defaultMode}
}

// CalculateInput is an unsaved cart as typed into a form
type CalculateInput struct {
	TaxMode       *enum.TaxMode
	Lines         []billing.RawLine
	ExtraCharge   billing.NumericInput
	PaymentStatus enum.PaymentStatus
	PaidAmount    *decimal.Decimal
}

// Calculate normalises the raw lines under the document mode and evaluates them
func (s *BillingService) Calculate(input *CalculateInput) (*billing.Summary, error) {
	mode := s.mode(input.TaxMode)

	lines, err := normalizeLines(input.Lines, mode)
	if err != nil {
		return nil, err
	}
	doc := billing.NewDocument(mode, billing.NormalizeExtraCharge(input.ExtraCharge), lines...)

	summary, err := billing.Evaluate(doc, billing.PaymentInput{Status: input.PaymentStatus, PaidAmount: input.PaidAmount})
	if err != nil {
		return nil, billingError(err, "")
	}
	return &summary, nil
}

// SwitchModeInput carries canonical lines (with base prices) and the mode
// to move them to
type SwitchModeInput struct {
	To            enum.TaxMode
	Lines         []billing.LineItem
	ExtraCharge   decimal.Decimal
	PaymentStatus enum.PaymentStatus
	PaidAmount    *decimal.Decimal
}

// SwitchMode re-derives display prices from the stored base prices under
// the new mode and re-evaluates the document
func (s *BillingService) SwitchMode(input *SwitchModeInput) (*billing.Summary, error) {
	lines := make([]billing.LineItem, 0, len(input.Lines))
	for i, line := range input.Lines {
		canonical, err := canonicalLine(line)
		if err != nil {
			return nil, billingError(err, fmt.Sprintf("lines[%d].tax_rate_percent", i))
		}
		lines = append(lines, canonical)
	}

	doc := billing.NewDocument(input.To, input.ExtraCharge, lines...)

	summary, err := billing.Evaluate(doc, billing.PaymentInput{Status: input.PaymentStatus, PaidAmount: input.PaidAmount})
	if err != nil {
		return nil, billingError(err, "")
	}
	return &summary, nil
}

// SettleInput is a grand total and the payment state entered against it
type SettleInput struct {
	Total         decimal.Decimal
	PaymentStatus enum.PaymentStatus
	PaidAmount    *decimal.Decimal
}

// Settle splits a grand total into paid and due amounts
func (s *BillingService) Settle(input *SettleInput) (*billing.Settlement, error) {
	if input.Total.IsNegative() {
		return nil, apperror.NewFieldError("total", "cannot be negative")
	}
	settlement, err := billing.Settle(billing.Round(input.Total), input.PaymentStatus, input.PaidAmount)
	if err != nil {
		return nil, billingError(err, "")
	}
	settlement.PaidAmount = billing.Round(settlement.PaidAmount)
	settlement.DueAmount = billing.Round(settlement.DueAmount)
	return &settlement, nil
}

func (s *BillingService) mode(m *enum.TaxMode) enum.TaxMode {
	if m == nil {
		return s.defaultMode
	}
	return *m
}

func normalizeLines(raw []billing.RawLine, mode enum.TaxMode) ([]billing.LineItem, error) {
	lines := make([]billing.LineItem, 0, len(raw))
	for i, r := range raw {
		line, err := billing.Normalize(r, mode)
		if err != nil {
			return nil, billingError(err, fmt.Sprintf("lines[%d].tax_rate_percent", i))
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// canonicalLine runs a line that already carries a base price back through
// the normaliser so the same clamps apply
func canonicalLine(line billing.LineItem) (billing.LineItem, error) {
	out, err := billing.Normalize(billing.RawLine{
		ProductRef:      line.ProductRef,
		Name:            line.Name,
		UnitLabel:       line.UnitLabel,
		UnitPrice:       billing.Num(line.BasePrice),
		Quantity:        billing.Num(decimal.NewFromInt(int64(line.Quantity))),
		DiscountPercent: billing.Num(line.DiscountPercent),
		TaxRatePercent:  billing.Num(line.TaxRatePercent),
	}, enum.TaxModeExclusive)
	if err != nil {
		return billing.LineItem{}, err
	}
	return out, nil
}
