package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billdesk-api/internal/config"
	domainRepo "github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/billdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/billdesk-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Billing   *handler.BillingHandler
	Document  *handler.DocumentHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit))
		}
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Stateless calculator
	registerBillingRoutes(protected, h)

	// Dashboard
	protected.GET("/dashboard/sales", h.Dashboard.GetSales)

	// Documents
	registerDocumentRoutes(protected, h, deps)

	// Products
	registerProductRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers) {
	billing := protected.Group("/billing")
	{
		billing.POST("/calculate", h.Billing.Calculate)
		billing.POST("/switch-mode", h.Billing.SwitchMode)
		billing.POST("/settle", h.Billing.Settle)
	}
}

func registerDocumentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	documents := protected.Group("/documents")
	{
		documents.GET("", h.Document.List)
		documents.GET("/export", middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin), h.Document.Export)
		documents.POST("", idempotent, h.Document.Create)
		documents.GET("/:id", h.Document.Get)
		documents.PUT("/:id", h.Document.Update)
		documents.POST("/:id/switch-mode", h.Document.SwitchMode)
		documents.PUT("/:id/status", h.Document.UpdateStatus)
		documents.POST("/:id/payments", idempotent, h.Document.RecordPayment)
		documents.DELETE("/:id", middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin), h.Document.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
	}

	manage := products.Group("")
	manage.Use(middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin))
	{
		manage.POST("", h.Product.Create)
		manage.PUT("/:id", h.Product.Update)
		manage.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin), h.Customer.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/documents/:id", h.Printer.PrintReceipt)
	}
}
