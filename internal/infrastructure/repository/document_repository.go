package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billdesk-api/internal/domain/repository"
)

var documentSortColumns = map[string]string{
	"date":       "date",
	"reference":  "reference",
	"total":      "total",
	"due":        "due_amount",
	"created_at": "created_at",
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domainRepo.DocumentRepository {
	return &documentRepository{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *documentRepository) Create(ctx context.Context, document *entity.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var document entity.Document
	err := r.db.WithContext(ctx).First(&document, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &document, err
}

func (r *documentRepository) GetByReference(ctx context.Context, reference string) (*entity.Document, error) {
	var document entity.Document
	err := r.db.WithContext(ctx).First(&document, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &document, err
}

func (r *documentRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var document entity.Document
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines", orderedLines).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC") }).
		First(&document, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &document, err
}

func (r *documentRepository) Update(ctx context.Context, document *entity.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Lines", "Payments").Save(document).Error; err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		if err := tx.Where("document_id = ?", document.ID).Delete(&entity.DocumentLine{}).Error; err != nil {
			return fmt.Errorf("clear document lines: %w", err)
		}
		if len(document.Lines) == 0 {
			return nil
		}
		for i := range document.Lines {
			document.Lines[i].ID = uuid.Nil
			document.Lines[i].DocumentID = document.ID
		}
		if err := tx.Create(&document.Lines).Error; err != nil {
			return fmt.Errorf("insert document lines: %w", err)
		}
		return nil
	})
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&entity.DocumentLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Document{}, "id = ?", id).Error
	})
}

func (r *documentRepository) filtered(ctx context.Context, userID uuid.UUID, params *domainRepo.DocumentFilterParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Document{}).Scopes(OwnerScope(userID))
	if params.Search != "" {
		query = query.Where("reference ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.From != nil {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("date <= ?", *params.To)
	}
	return query
}

func documentOrder(params *domainRepo.DocumentFilterParams) string {
	sortBy := "created_at"
	if col, ok := documentSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	return sortBy + " " + sortOrder
}

func (r *documentRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.DocumentFilterParams) ([]entity.Document, int64, error) {
	var documents []entity.Document
	var total int64

	query := r.filtered(ctx, userID, params)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(documentOrder(params)).
		Find(&documents).Error

	return documents, total, err
}

func (r *documentRepository) ListForExport(ctx context.Context, userID uuid.UUID, params *domainRepo.DocumentFilterParams) ([]entity.Document, error) {
	var documents []entity.Document
	err := r.filtered(ctx, userID, params).
		Preload("Lines", orderedLines).
		Order(documentOrder(params)).
		Find(&documents).Error
	return documents, err
}

func (r *documentRepository) GetNextReferenceNumber(ctx context.Context, docType enum.DocumentType) (int, error) {
	var count int64
	// Soft-deleted rows still hold their reference, so they are counted.
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Document{}).
		Where("type = ?", docType).
		Count(&count).Error
	return int(count) + 1, err
}

func (r *documentRepository) AddPayment(ctx context.Context, payment *entity.Payment, document *entity.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return tx.Model(&entity.Document{}).
			Where("id = ?", document.ID).
			Updates(map[string]interface{}{
				"payment_status": document.PaymentStatus,
				"paid_amount":    document.PaidAmount,
				"due_amount":     document.DueAmount,
			}).Error
	})
}
