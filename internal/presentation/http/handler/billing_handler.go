package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/response"
)

// BillingHandler exposes the stateless calculator used by billing screens
// while a cart is being edited.
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// Calculate normalizes raw lines and returns the rounded summary
func (h *BillingHandler) Calculate(c *gin.Context) {
	var req request.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.billingService.Calculate(req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals calculated", summary)
}

// SwitchMode re-expresses canonical lines in another tax mode
func (h *BillingHandler) SwitchMode(c *gin.Context) {
	var req request.SwitchModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.billingService.SwitchMode(req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax mode switched", summary)
}

// Settle computes paid and due for a total
func (h *BillingHandler) Settle(c *gin.Context) {
	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settlement, err := h.billingService.Settle(req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment settled", settlement)
}
