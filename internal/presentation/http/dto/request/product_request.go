package request

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/apperror"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name             string               `json:"name" binding:"required,min=2,max=255"`
	Code             string               `json:"code" binding:"omitempty,max=100"`
	HSNCode          *string              `json:"hsn_code" binding:"omitempty,max=20"`
	UnitLabel        string               `json:"unit_label" binding:"omitempty,max=50"`
	Price            billing.NumericInput `json:"price"`
	PriceIncludesTax bool                 `json:"price_includes_tax"`
	GSTRate          billing.NumericInput `json:"gst_rate"`
	Quantity         int                  `json:"quantity" binding:"min=0"`
	QuantityAlert    int                  `json:"quantity_alert" binding:"min=0"`
	Notes            *string              `json:"notes"`
}

// ToInput converts the request to a service input
func (r *CreateProductRequest) ToInput(actor service.Actor) *service.CreateProductInput {
	return &service.CreateProductInput{
		Actor:         actor,
		Name:          r.Name,
		Code:          r.Code,
		HSNCode:       r.HSNCode,
		UnitLabel:     r.UnitLabel,
		Quantity:      r.Quantity,
		QuantityAlert: r.QuantityAlert,
		Notes:         r.Notes,
		ProductPriceInput: service.ProductPriceInput{
			Price:            r.Price,
			PriceIncludesTax: r.PriceIncludesTax,
			GSTRate:          r.GSTRate,
		},
	}
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name             *string              `json:"name" binding:"omitempty,min=2,max=255"`
	Code             *string              `json:"code" binding:"omitempty,min=1,max=100"`
	HSNCode          *string              `json:"hsn_code" binding:"omitempty,max=20"`
	UnitLabel        *string              `json:"unit_label" binding:"omitempty,max=50"`
	Price            billing.NumericInput `json:"price"`
	PriceIncludesTax bool                 `json:"price_includes_tax"`
	GSTRate          billing.NumericInput `json:"gst_rate"`
	Quantity         *int                 `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert    *int                 `json:"quantity_alert" binding:"omitempty,min=0"`
	Notes            *string              `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	GSTRate   string `form:"gst_rate"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ToParams parses the query into repository filter params
func (r *ProductFilterRequest) ToParams() (*repository.ProductFilterParams, error) {
	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: r.Page, PerPage: r.PerPage},
		Search:     r.Search,
		LowStock:   r.LowStock,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
	}
	params.Pagination.Validate()

	if r.GSTRate != "" {
		rate, err := decimal.NewFromString(r.GSTRate)
		if err != nil {
			return nil, apperror.NewFieldError("gst_rate", "must be a number")
		}
		params.GSTRate = &rate
	}
	return params, nil
}
