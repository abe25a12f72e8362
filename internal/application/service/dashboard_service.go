package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/apperror"
)

const topCustomersLimit = 5

// DashboardService provides sales and GST statistics over issued documents
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo, now: time.Now}
}

// SalesTotals is a sum of stored document amounts
type SalesTotals struct {
	Documents int64           `json:"documents"`
	SubTotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Due       decimal.Decimal `json:"due"`
}

func (t *SalesTotals) add(b repository.SalesBucket) {
	t.Documents += b.Count
	t.SubTotal = t.SubTotal.Add(b.SubTotal)
	t.Tax = t.Tax.Add(b.Tax)
	t.Total = t.Total.Add(b.Total)
	t.Paid = t.Paid.Add(b.Paid)
	t.Due = t.Due.Add(b.Due)
}

// TypeSales are the totals of one document type
type TypeSales struct {
	Type enum.DocumentType `json:"type"`
	SalesTotals
	ByPaymentStatus map[string]SalesTotals `json:"by_payment_status"`
}

// SalesSummary represents the dashboard for a date range
type SalesSummary struct {
	From         time.Time                      `json:"from"`
	To           time.Time                      `json:"to"`
	Sales        SalesTotals                    `json:"sales"`
	Quotations   SalesTotals                    `json:"quotations"`
	ByType       []TypeSales                    `json:"by_type"`
	TaxByRate    []repository.TaxRateBucket     `json:"tax_by_rate"`
	TopCustomers []repository.TopCustomerResult `json:"top_customers"`
}

// GetSalesSummary aggregates issued documents between from and to. Zero
// bounds default to the start of the current month and now. Quotations are
// reported separately and never counted as sales.
func (s *DashboardService) GetSalesSummary(ctx context.Context, actor Actor, from, to time.Time) (*SalesSummary, error) {
	now := s.now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	}
	if from.After(to) {
		return nil, apperror.NewBadRequestError("from must not be after to")
	}

	buckets, err := s.analyticsRepo.GetSalesBuckets(ctx, actor.scope(), from, to)
	if err != nil {
		return nil, err
	}
	taxByRate, err := s.analyticsRepo.GetTaxByRate(ctx, actor.scope(), from, to)
	if err != nil {
		return nil, err
	}
	top, err := s.analyticsRepo.GetTopCustomers(ctx, actor.scope(), from, to, topCustomersLimit)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		From:         from,
		To:           to,
		TaxByRate:    taxByRate,
		TopCustomers: top,
	}
	if summary.TaxByRate == nil {
		summary.TaxByRate = []repository.TaxRateBucket{}
	}
	if summary.TopCustomers == nil {
		summary.TopCustomers = []repository.TopCustomerResult{}
	}

	byType := make(map[enum.DocumentType]*TypeSales)
	for _, b := range buckets {
		ts, ok := byType[b.Type]
		if !ok {
			ts = &TypeSales{Type: b.Type, ByPaymentStatus: make(map[string]SalesTotals)}
			byType[b.Type] = ts
		}
		ts.add(b)

		status := ts.ByPaymentStatus[b.PaymentStatus.String()]
		status.add(b)
		ts.ByPaymentStatus[b.PaymentStatus.String()] = status

		if b.Type.AcceptsPayments() {
			summary.Sales.add(b)
		} else {
			summary.Quotations.add(b)
		}
	}

	for t := enum.DocumentTypeQuotation; t <= enum.DocumentTypePettyCash; t++ {
		if ts, ok := byType[t]; ok {
			summary.ByType = append(summary.ByType, *ts)
		}
	}
	if summary.ByType == nil {
		summary.ByType = []TypeSales{}
	}

	return summary, nil
}
