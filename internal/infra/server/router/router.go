// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/splitledger/backend/internal/integration/entrypoint/controller"
	"github.com/splitledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	groupController      *controller.GroupController
	splitController      *controller.SplitController
	settlementController *controller.SettlementController
	balanceController    *controller.BalanceController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	groupController *controller.GroupController,
	splitController *controller.SplitController,
	settlementController *controller.SettlementController,
	balanceController *controller.BalanceController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		groupController:      groupController,
		splitController:      splitController,
		settlementController: settlementController,
		balanceController:    balanceController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Group routes (require authentication)
		if r.groupController != nil && r.authMiddleware != nil {
			groups := v1.Group("/groups")
			groups.Use(r.authMiddleware.Authenticate())
			{
				groups.POST("", r.groupController.Create)
				groups.GET("", r.groupController.List)
				groups.GET("/:id", r.groupController.Get)
				groups.PUT("/:id", r.groupController.Update)
				groups.DELETE("/:id", r.groupController.Delete)

				// Splits scoped to a group
				if r.splitController != nil {
					groups.GET("/:id/splits", r.splitController.ListByGroup)
				}
			}
		}

		// Split routes (require authentication)
		if r.splitController != nil && r.authMiddleware != nil {
			splits := v1.Group("/splits")
			splits.Use(r.authMiddleware.Authenticate())
			{
				splits.POST("", r.splitController.Create)
				splits.PUT("/:id", r.splitController.Replace)
				splits.DELETE("/:id", r.splitController.Delete)
			}
		}

		// Settlement routes (require authentication)
		if r.settlementController != nil && r.authMiddleware != nil {
			settlements := v1.Group("/settlements")
			settlements.Use(r.authMiddleware.Authenticate())
			{
				settlements.POST("", r.settlementController.Record)
				settlements.GET("", r.settlementController.List)
				settlements.GET("/candidates", r.settlementController.ListCandidates)
			}
		}

		// Balance routes (require authentication)
		if r.balanceController != nil && r.authMiddleware != nil {
			balances := v1.Group("/balances")
			balances.Use(r.authMiddleware.Authenticate())
			{
				balances.GET("", r.balanceController.Get)
				balances.GET("/:user_id", r.balanceController.GetByUser)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
