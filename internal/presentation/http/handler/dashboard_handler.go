package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billdesk-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSales returns issued totals for ?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *DashboardHandler) GetSales(c *gin.Context) {
	actor, ok := GetActor(c)
	if !ok {
		return
	}

	from, to, err := request.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.dashboardService.GetSalesSummary(c.Request.Context(), actor, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", summary)
}
