package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/apperror"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

// DateLayout is the wire format of document dates
const DateLayout = "2006-01-02"

// DocumentLineRequest is one line of a document request
type DocumentLineRequest struct {
	ProductID       *uuid.UUID           `json:"product_id"`
	Name            string               `json:"name" binding:"max=255"`
	UnitLabel       string               `json:"unit_label" binding:"max=50"`
	UnitPrice       billing.NumericInput `json:"unit_price"`
	Quantity        billing.NumericInput `json:"quantity"`
	DiscountPercent billing.NumericInput `json:"discount_percent"`
	TaxRatePercent  billing.NumericInput `json:"tax_rate_percent"`
}

// DocumentRequest holds the editable document fields
type DocumentRequest struct {
	CustomerID      *uuid.UUID            `json:"customer_id"`
	CustomerName    string                `json:"customer_name" binding:"max=255"`
	Date            string                `json:"date"`
	TaxMode         *enum.TaxMode         `json:"tax_mode"`
	ExtraCharge     billing.NumericInput  `json:"extra_charge"`
	ExtraChargeNote *string               `json:"extra_charge_note" binding:"omitempty,max=255"`
	PaymentStatus   enum.PaymentStatus    `json:"payment_status"`
	PaidAmount      *decimal.Decimal      `json:"partial_pay_amount"`
	Note            *string               `json:"note"`
	Lines           []DocumentLineRequest `json:"lines"`
}

// ToInput converts the request to the shared service input
func (r *DocumentRequest) ToInput() (service.DocumentInput, error) {
	in := service.DocumentInput{
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		TaxMode:         r.TaxMode,
		ExtraCharge:     r.ExtraCharge,
		ExtraChargeNote: r.ExtraChargeNote,
		PaymentStatus:   r.PaymentStatus,
		PaidAmount:      r.PaidAmount,
		Note:            r.Note,
		Lines:           make([]service.DocumentLineInput, 0, len(r.Lines)),
	}

	if r.Date != "" {
		date, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			return in, apperror.NewFieldError("date", "must be formatted as YYYY-MM-DD")
		}
		in.Date = &date
	}

	for _, l := range r.Lines {
		in.Lines = append(in.Lines, service.DocumentLineInput{
			ProductID:       l.ProductID,
			Name:            l.Name,
			UnitLabel:       l.UnitLabel,
			UnitPrice:       l.UnitPrice,
			Quantity:        l.Quantity,
			DiscountPercent: l.DiscountPercent,
			TaxRatePercent:  l.TaxRatePercent,
		})
	}
	return in, nil
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Type   *enum.DocumentType  `json:"type" binding:"required"`
	Status enum.DocumentStatus `json:"status"`
	DocumentRequest
}

// UpdateDocumentRequest replaces the contents of a draft
type UpdateDocumentRequest struct {
	DocumentRequest
}

// UpdateStatusRequest moves a document to a new status
type UpdateStatusRequest struct {
	Status *enum.DocumentStatus `json:"status" binding:"required"`
}

// RecordPaymentRequest represents a payment against an issued document
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" binding:"omitempty,max=50"`
	Note   *string         `json:"note" binding:"omitempty,max=255"`
	PaidAt *time.Time      `json:"paid_at"`
}

// DocumentFilterRequest represents document filter parameters
type DocumentFilterRequest struct {
	Search        string `form:"search"`
	Type          string `form:"type"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	CustomerID    string `form:"customer_id"`
	From          string `form:"from"`
	To            string `form:"to"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// ToParams parses the query into repository filter params
func (r *DocumentFilterRequest) ToParams() (*repository.DocumentFilterParams, error) {
	params := &repository.DocumentFilterParams{
		Pagination: &pagination.PaginationParams{Page: r.Page, PerPage: r.PerPage},
		Search:     r.Search,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
	}
	params.Pagination.Validate()

	if r.Type != "" {
		t, err := enum.ParseDocumentType(r.Type)
		if err != nil {
			return nil, apperror.NewFieldError("type", err.Error())
		}
		params.Type = &t
	}
	if r.Status != "" {
		s, err := enum.ParseDocumentStatus(r.Status)
		if err != nil {
			return nil, apperror.NewFieldError("status", err.Error())
		}
		params.Status = &s
	}
	if r.PaymentStatus != "" {
		s, err := enum.ParsePaymentStatus(r.PaymentStatus)
		if err != nil {
			return nil, apperror.NewFieldError("payment_status", err.Error())
		}
		params.PaymentStatus = &s
	}
	if r.CustomerID != "" {
		id, err := uuid.Parse(r.CustomerID)
		if err != nil {
			return nil, apperror.NewFieldError("customer_id", "must be a UUID")
		}
		params.CustomerID = &id
	}

	from, to, err := ParseDateRange(r.From, r.To)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() {
		params.From = &from
	}
	if !to.IsZero() {
		params.To = &to
	}
	return params, nil
}

// ParseDateRange parses optional YYYY-MM-DD bounds. to is moved to the end
// of its day so the range is inclusive.
func ParseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if fromStr != "" {
		if from, err = time.Parse(DateLayout, fromStr); err != nil {
			return from, to, apperror.NewFieldError("from", "must be formatted as YYYY-MM-DD")
		}
	}
	if toStr != "" {
		if to, err = time.Parse(DateLayout, toStr); err != nil {
			return from, to, apperror.NewFieldError("to", "must be formatted as YYYY-MM-DD")
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
