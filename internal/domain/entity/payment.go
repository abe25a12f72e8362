package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one entry of a document's payment ledger
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method     string          `gorm:"size:50;not null;default:'cash'" json:"method"`
	Note       *string         `gorm:"size:255" json:"note,omitempty"`
	PaidAt     time.Time       `gorm:"not null" json:"paid_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
