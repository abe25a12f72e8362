package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

// DocumentRepository defines the interface for document data operations.
// Create and Update write the header and its lines together.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetByReference(ctx context.Context, reference string) (*entity.Document, error)
	// GetWithLines loads the document with its lines, payments and customer
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	// Update replaces the header and all lines of the document
	Update(ctx context.Context, document *entity.Document) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *DocumentFilterParams) ([]entity.Document, int64, error)
	// ListForExport returns every matching document with lines, unpaginated
	ListForExport(ctx context.Context, userID uuid.UUID, params *DocumentFilterParams) ([]entity.Document, error)
	// GetNextReferenceNumber returns the next sequence number for a document type
	GetNextReferenceNumber(ctx context.Context, docType enum.DocumentType) (int, error)
	// AddPayment appends a payment and stores the new settlement on the header
	AddPayment(ctx context.Context, payment *entity.Payment, document *entity.Document) error
}

// DocumentFilterParams contains filtering parameters for document queries
type DocumentFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Type          *enum.DocumentType
	Status        *enum.DocumentStatus
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	From          *time.Time
	To            *time.Time
	SortBy        string
	SortOrder     string
}
