package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sangkips/billdesk-api/internal/domain/entity"
	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/apperror"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

// gstinPattern matches a 15 character GST identification number
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the input for creating a customer
type CreateCustomerInput struct {
	Actor   Actor
	Name    string
	Email   *string
	Phone   *string
	GSTIN   *string
	Address *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	gstin, err := s.checkGSTIN(ctx, input.GSTIN, uuid.Nil)
	if err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		UserID:  input.Actor.UserID,
		Name:    name,
		Email:   input.Email,
		Phone:   input.Phone,
		GSTIN:   gstin,
		Address: input.Address,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if !actor.CanAccess(customer.UserID) {
		return nil, apperror.ErrForbidden
	}
	return customer, nil
}

// ListCustomers lists customers with page-based pagination
func (s *CustomerService) ListCustomers(ctx context.Context, actor Actor, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()

	customers, total, err := s.customerRepo.List(ctx, actor.scope(), params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers with cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, actor Actor, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	params.Validate()
	if _, err := params.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError("Invalid cursor")
	}

	customers, err := s.customerRepo.ListWithCursor(ctx, actor.scope(), params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewCursorPage(customers, params, func(c entity.Customer) (string, time.Time) {
		return c.ID.String(), c.CreatedAt
	}), nil
}

// UpdateCustomerInput represents the input for updating a customer
type UpdateCustomerInput struct {
	Actor   Actor
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	GSTIN   *string
	Address *string
}

// UpdateCustomer updates a customer. Documents keep the customer name they
// were issued with.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "is required")
		}
		customer.Name = name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.GSTIN != nil {
		gstin, err := s.checkGSTIN(ctx, input.GSTIN, customer.ID)
		if err != nil {
			return nil, err
		}
		customer.GSTIN = gstin
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, actor, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// checkGSTIN normalises and validates a GSTIN and makes sure no other
// customer holds it. An empty value clears the field.
func (s *CustomerService) checkGSTIN(ctx context.Context, in *string, self uuid.UUID) (*string, error) {
	if in == nil {
		return nil, nil
	}
	gstin := strings.ToUpper(strings.TrimSpace(*in))
	if gstin == "" {
		return nil, nil
	}
	if !gstinPattern.MatchString(gstin) {
		return nil, apperror.NewFieldError("gstin", "is not a valid GSTIN")
	}

	existing, err := s.customerRepo.GetByGSTIN(ctx, gstin)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != self {
		return nil, apperror.NewConflictError("A customer with this GSTIN already exists")
	}
	return &gstin, nil
}
