package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	var req request.ProductFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params, err := req.ToParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.ToInput(actor))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		Actor:         actor,
		ID:            id,
		Name:          req.Name,
		Code:          req.Code,
		HSNCode:       req.HSNCode,
		UnitLabel:     req.UnitLabel,
		Quantity:      req.Quantity,
		QuantityAlert: req.QuantityAlert,
		Notes:         req.Notes,
		ProductPriceInput: service.ProductPriceInput{
			Price:            req.Price,
			PriceIncludesTax: req.PriceIncludesTax,
			GSTRate:          req.GSTRate,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
