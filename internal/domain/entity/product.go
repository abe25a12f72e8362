package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalogue item. BasePrice is always tax-exclusive.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Code          string          `gorm:"size:100;unique;not null" json:"code"`
	HSNCode       *string         `gorm:"size:20;column:hsn_code" json:"hsn_code,omitempty"`
	UnitLabel     string          `gorm:"size:50;not null;default:'pc'" json:"unit_label"`
	BasePrice     decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"base_price"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gst_rate"`
	Quantity      int             `gorm:"default:0" json:"quantity"`
	QuantityAlert int             `gorm:"default:0" json:"quantity_alert"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether stock is at or below the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.QuantityAlert > 0 && p.Quantity <= p.QuantityAlert
}
