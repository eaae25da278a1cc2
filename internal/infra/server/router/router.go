// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	settingController     *controller.SettingController
	bankAliasController   *controller.BankAliasController
	smsController         *controller.SMSController
	analyticsController   *controller.AnalyticsController
	backupController      *controller.BackupController
	loginRateLimiter      *middleware.RateLimiter
	smsRateLimiter        *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	settingController *controller.SettingController,
	bankAliasController *controller.BankAliasController,
	smsController *controller.SMSController,
	analyticsController *controller.AnalyticsController,
	backupController *controller.BackupController,
	loginRateLimiter *middleware.RateLimiter,
	smsRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		categoryController:    categoryController,
		transactionController: transactionController,
		settingController:     settingController,
		bankAliasController:   bankAliasController,
		smsController:         smsController,
		analyticsController:   analyticsController,
		backupController:      backupController,
		loginRateLimiter:      loginRateLimiter,
		smsRateLimiter:        smsRateLimiter,
		authMiddleware:        authMiddleware,
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
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
		}
	}

	if r.authMiddleware == nil {
		return
	}
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	if r.userController != nil {
		users := protected.Group("/users")
		{
			users.POST("/me/password", r.userController.ChangePassword)
			users.DELETE("/me", r.userController.DeleteAccount)
		}
	}

	if r.transactionController != nil {
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.PUT("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}
	}

	if r.categoryController != nil {
		categories := protected.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.GET("/by-name/:name", r.categoryController.GetByName)
			categories.PUT("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
		}
	}

	if r.settingController != nil {
		settings := protected.Group("/settings")
		{
			settings.GET("", r.settingController.Get)
			settings.POST("", r.settingController.Upsert)
			settings.PUT("/:id", r.settingController.Update)
			settings.DELETE("/:id", r.settingController.Delete)
		}
	}

	if r.bankAliasController != nil {
		aliases := protected.Group("/aliases")
		{
			aliases.GET("", r.bankAliasController.List)
			aliases.POST("", r.bankAliasController.Create)
			aliases.DELETE("/:alias", r.bankAliasController.Delete)
		}
	}

	if r.smsController != nil {
		handlers := []gin.HandlerFunc{r.smsController.Parse}
		if r.smsRateLimiter != nil {
			handlers = append([]gin.HandlerFunc{r.smsRateLimiter.Middleware()}, handlers...)
		}
		protected.POST("/sms/parse", handlers...)
	}

	if r.analyticsController != nil {
		analytics := protected.Group("/analytics")
		{
			analytics.POST("/generate", r.analyticsController.Generate)
			analytics.GET("", r.analyticsController.List)
			analytics.DELETE("/:id", r.analyticsController.Delete)
		}
	}

	if r.backupController != nil {
		backup := protected.Group("/backup")
		{
			backup.GET("/export", r.backupController.Export)
			backup.POST("/import", r.backupController.Import)
		}
	}
}
