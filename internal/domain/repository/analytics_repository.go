package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// SalesBucket is an aggregate of stored document totals for one
// document type and payment status.
type SalesBucket struct {
	Type          enum.DocumentType
	PaymentStatus enum.PaymentStatus
	Count         int64
	SubTotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Paid          decimal.Decimal
	Due           decimal.Decimal
}

// TaxRateBucket aggregates stored line amounts per GST rate.
type TaxRateBucket struct {
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
}

// TopCustomerResult represents a customer's billed total
type TopCustomerResult struct {
	CustomerID   *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Documents    int64           `json:"documents"`
}

// AnalyticsRepository defines aggregation queries over stored documents.
// Canceled and draft documents are excluded.
type AnalyticsRepository interface {
	GetSalesBuckets(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SalesBucket, error)
	GetTaxByRate(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]TaxRateBucket, error)
	GetTopCustomers(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]TopCustomerResult, error)
}
