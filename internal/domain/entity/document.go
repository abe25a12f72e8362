package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
)

// Document is a stored quotation, estimate, invoice or petty cash slip.
// Money columns hold the rounded output of the billing engine and are
// read as-is by printing, export and reporting.
type Document struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID      *uuid.UUID          `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName    string              `gorm:"size:255;not null" json:"customer_name"`
	Type            enum.DocumentType   `gorm:"not null;default:0;index" json:"type"`
	Status          enum.DocumentStatus `gorm:"not null;default:0;index" json:"status"`
	Reference       string              `gorm:"size:100;unique;not null" json:"reference"`
	Date            time.Time           `gorm:"type:date;not null" json:"date"`
	TaxMode         enum.TaxMode        `gorm:"not null;default:0" json:"tax_mode"`
	ExtraCharge     decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"extra_charge"`
	ExtraChargeNote *string             `gorm:"size:255" json:"extra_charge_note,omitempty"`
	PaymentStatus   enum.PaymentStatus  `gorm:"not null;default:0;index" json:"payment_status"`
	SubTotal        decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	Tax             decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"tax"`
	Total           decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	PaidAmount      decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"partial_pay_amount"`
	DueAmount       decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0" json:"due_payment"`
	Note            *string             `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DeletedAt       gorm.DeletedAt      `gorm:"index" json:"-"`

	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []DocumentLine `gorm:"foreignKey:DocumentID" json:"lines,omitempty"`
	Payments []Payment      `gorm:"foreignKey:DocumentID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// IsEditable reports whether lines and totals may still change.
func (d *Document) IsEditable() bool {
	return d.Status == enum.DocumentStatusDraft
}

// DocumentLine is one stored line of a document. BasePrice is the source of
// truth; the other money columns are the rounded engine output.
type DocumentLine struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	ProductID       *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Position        int             `gorm:"not null;default:0" json:"position"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	UnitLabel       string          `gorm:"size:50;not null" json:"unit_label"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"base_price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate_percent"`
	DisplayPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"display_price"`
	DiscountedBase  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"discounted_base"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"tax_amount"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new document line
func (l *DocumentLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DocumentLine model
func (DocumentLine) TableName() string {
	return "document_lines"
}
