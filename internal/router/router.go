package router

import (
	"github.com/gin-gonic/gin"

	"rentdesk/internal/domain"
	"rentdesk/internal/handler"
	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	adminH *handler.AdminHandler,
	propertyH *handler.PropertyHandler,
	tenantH *handler.TenantHandler,
	billH *handler.BillHandler,
	billingH *handler.BillingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Admin account provisioning
	admins := protected.Group("/admins")
	admins.Use(middleware.RequireRole(domain.RoleSuperAdmin))
	admins.POST("", adminH.Create)
	admins.GET("", adminH.List)

	// Property routes
	properties := protected.Group("/properties")
	properties.POST("", propertyH.Create)
	properties.GET("", propertyH.List)
	properties.GET("/:id", propertyH.Get)
	properties.PUT("/:id", propertyH.Update)
	properties.DELETE("/:id", propertyH.Delete)

	// Tenant routes
	tenants := protected.Group("/tenants")
	tenants.POST("", tenantH.Create)
	tenants.GET("", tenantH.List)
	tenants.GET("/:id", tenantH.Get)
	tenants.PUT("/:id", tenantH.Update)
	tenants.DELETE("/:id", tenantH.Delete)

	// Bill routes, including payment transitions
	bills := protected.Group("/bills")
	bills.GET("", billH.List)
	bills.POST("", billH.Create)
	bills.GET("/:id", billH.Get)
	bills.DELETE("/:id", billH.Delete)
	bills.POST("/:id/pay", billH.MarkPaid)
	bills.POST("/:id/undo-payment", billH.UndoPayment)

	// Generation engine and reports
	billing := protected.Group("/billing")
	billing.POST("/generate", billingH.Generate)
	billing.GET("/stats", billingH.Stats)
	billing.GET("/status", billingH.Status)
	billing.POST("/reset", middleware.RequireRole(domain.RoleSuperAdmin), billingH.Reset)
	billing.GET("/export", billingH.Export)
	billing.POST("/archive", middleware.RequireRole(domain.RoleSuperAdmin), billingH.Archive)

	// Profit ledger
	profit := protected.Group("/profit")
	profit.GET("", billingH.Profit)
	profit.GET("/reconcile", billingH.ReconcileProfit)

	return r
}
