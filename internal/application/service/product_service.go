package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/internal/domain/billing"
	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/apperror"
	"github.com/sangkips/billdesk-api/pkg/pagination"
	"github.com/sangkips/billdesk-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
	billing     config.BillingConfig
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, billingCfg config.BillingConfig) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		billing:     billingCfg,
	}
}

// ProductPriceInput is a price as typed in the catalogue form. When
// PriceIncludesTax is set the GST is backed out to get the base price.
type ProductPriceInput struct {
	Price            billing.NumericInput
	PriceIncludesTax bool
	GSTRate          billing.NumericInput
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Actor         Actor
	Name          string
	Code          string
	HSNCode       *string
	UnitLabel     string
	Quantity      int
	QuantityAlert int
	Notes         *string
	ProductPriceInput
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	// Auto-generate code if not provided
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = utils.GenerateProductCode()
	}
	if err := s.checkCode(ctx, code, uuid.Nil); err != nil {
		return nil, err
	}

	base, rate, err := s.price(&input.ProductPriceInput)
	if err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.UnitLabel)
	if unit == "" {
		unit = defaultUnitLabel
	}

	product := &entity.Product{
		UserID:        input.Actor.UserID,
		Name:          name,
		Code:          code,
		HSNCode:       input.HSNCode,
		UnitLabel:     unit,
		BasePrice:     base,
		GSTRate:       rate,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		Notes:         input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !actor.CanAccess(product.UserID) {
		return nil, apperror.ErrForbidden
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, actor Actor, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, actor.scope(), params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input. Price fields are
// only applied when Price or GSTRate is non-empty.
type UpdateProductInput struct {
	Actor         Actor
	ID            uuid.UUID
	Name          *string
	Code          *string
	HSNCode       *string
	UnitLabel     *string
	Quantity      *int
	QuantityAlert *int
	Notes         *string
	ProductPriceInput
}

// UpdateProduct updates a product. Stored documents keep the prices they
// were issued with.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "is required")
		}
		product.Name = name
	}
	if input.Code != nil && *input.Code != product.Code {
		if err := s.checkCode(ctx, *input.Code, product.ID); err != nil {
			return nil, err
		}
		product.Code = *input.Code
	}
	if input.HSNCode != nil {
		product.HSNCode = input.HSNCode
	}
	if input.UnitLabel != nil && strings.TrimSpace(*input.UnitLabel) != "" {
		product.UnitLabel = strings.TrimSpace(*input.UnitLabel)
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if !input.Price.IsEmpty() || !input.GSTRate.IsEmpty() {
		priceIn := input.ProductPriceInput
		if priceIn.Price.IsEmpty() {
			priceIn.Price = billing.Num(product.BasePrice)
			priceIn.PriceIncludesTax = false
		}
		if priceIn.GSTRate.IsEmpty() {
			priceIn.GSTRate = billing.Num(product.GSTRate)
		}
		base, rate, err := s.price(&priceIn)
		if err != nil {
			return nil, err
		}
		product.BasePrice = base
		product.GSTRate = rate
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, actor, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) checkCode(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Product code already exists")
	}
	return nil
}

// price turns a form price into a tax-exclusive base price and GST rate
func (s *ProductService) price(in *ProductPriceInput) (decimal.Decimal, decimal.Decimal, error) {
	mode := enum.TaxModeExclusive
	if in.PriceIncludesTax {
		mode = enum.TaxModeInclusive
	}

	line, err := billing.Normalize(billing.RawLine{UnitPrice: in.Price, TaxRatePercent: in.GSTRate}, mode)
	if err != nil {
		return decimal.Zero, decimal.Zero, billingError(err, "gst_rate")
	}

	if s.billing.EnforceGSTSlabs && !s.isSlab(line.TaxRatePercent) {
		return decimal.Zero, decimal.Zero, apperror.NewFieldError("gst_rate", "is not a configured GST slab")
	}
	return line.BasePrice, line.TaxRatePercent, nil
}

func (s *ProductService) isSlab(rate decimal.Decimal) bool {
	for _, slab := range s.billing.GSTSlabs {
		if slab.Equal(rate) {
			return true
		}
	}
	return false
}
