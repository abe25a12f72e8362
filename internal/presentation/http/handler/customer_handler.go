package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billdesk-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List serves both page and cursor listing; a cursor or limit switches to
// keyset pages.
func (h *CustomerHandler) List(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	var params pagination.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	search := c.Query("search")

	if params.IsCursorBased() {
		result, err := h.customerService.ListCustomersWithCursor(c.Request.Context(), actor, params.CursorParams(), search)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithCursor(c, 200, "Customers retrieved successfully", result)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), actor, params.PageParams(), search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Actor:   actor,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		GSTIN:   req.GSTIN,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		Actor:   actor,
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		GSTIN:   req.GSTIN,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
