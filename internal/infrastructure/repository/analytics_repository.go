package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billdesk-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// issued scopes a query to issued documents in [from, to]. A zero userID
// covers all users.
func (r *analyticsRepository) issued(ctx context.Context, userID uuid.UUID, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("documents AS d").
		Where("d.deleted_at IS NULL").
		Where("d.status = ?", enum.DocumentStatusIssued).
		Where("d.date BETWEEN ? AND ?", from, to).
		Scopes(ownerScope("d.user_id", userID))
}

// All figures are sums of stored engine output; nothing is recomputed here.
func (r *analyticsRepository) GetSalesBuckets(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domainRepo.SalesBucket, error) {
	var results []domainRepo.SalesBucket

	err := r.issued(ctx, userID, from, to).
		Select(`d.type AS type,
			d.payment_status AS payment_status,
			COUNT(*) AS count,
			COALESCE(SUM(d.sub_total), 0) AS sub_total,
			COALESCE(SUM(d.tax), 0) AS tax,
			COALESCE(SUM(d.total), 0) AS total,
			COALESCE(SUM(d.paid_amount), 0) AS paid,
			COALESCE(SUM(d.due_amount), 0) AS due`).
		Group("d.type, d.payment_status").
		Order("d.type, d.payment_status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) GetTaxByRate(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domainRepo.TaxRateBucket, error) {
	var results []domainRepo.TaxRateBucket

	err := r.issued(ctx, userID, from, to).
		Joins("JOIN document_lines l ON l.document_id = d.id").
		Where("d.type <> ?", enum.DocumentTypeQuotation).
		Select(`l.tax_rate_percent AS tax_rate_percent,
			COALESCE(SUM(l.discounted_base), 0) AS taxable_amount,
			COALESCE(SUM(l.tax_amount), 0) AS tax_amount`).
		Group("l.tax_rate_percent").
		Order("l.tax_rate_percent").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) GetTopCustomers(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult

	err := r.issued(ctx, userID, from, to).
		Where("d.type <> ?", enum.DocumentTypeQuotation).
		Select(`d.customer_id AS customer_id,
			d.customer_name AS customer_name,
			COALESCE(SUM(d.total), 0) AS total,
			COUNT(*) AS documents`).
		Group("d.customer_id, d.customer_name").
		Order("total DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
