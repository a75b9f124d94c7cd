package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/till-api/internal/config"
	"github.com/sangkips/till-api/internal/domain/entity"
	domainRepo "github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/presentation/http/handler"
	"github.com/sangkips/till-api/internal/presentation/http/middleware"
	"github.com/sangkips/till-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Terminal    *handler.TerminalHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Stats       *handler.StatsHandler
	Settings    *handler.SettingsHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          logrus.FieldLogger
}

// Setup creates the Gin router and registers all routes. ctx stops the
// rate limiter's cleanup loop.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rps := float64(deps.Cfg.RateLimit.Requests)
	if d := deps.Cfg.RateLimit.Duration; d > 0 {
		rps /= float64(d)
	}
	rateLimiter := middleware.NewTerminalRateLimiter(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: rps,
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	registerTerminalRoutes(protected, h, deps)
	registerCustomerRoutes(protected, h)
	registerTransactionRoutes(protected, h)
	registerStatsRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerTerminalRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	terminal := protected.Group("/terminal")
	terminal.Use(middleware.TerminalMiddleware())
	terminal.Use(middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	}))
	{
		terminal.GET("/state", h.Terminal.GetState)
		terminal.POST("/intents", h.Terminal.Fire)
		terminal.POST("/complete", h.Terminal.Complete)
		terminal.PUT("/draft/header", h.Terminal.UpdateHeader)
		terminal.POST("/draft/lines", h.Terminal.AddLine)
		terminal.DELETE("/draft/lines/:index", h.Terminal.RemoveLine)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.Search)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", middleware.RequireRole(entity.RoleAdmin, entity.RoleSupervisor), h.Customer.Create)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/import", middleware.RequireRole(entity.RoleAdmin, entity.RoleSupervisor), h.Transaction.Import)
	}
}

func registerStatsRoutes(protected *gin.RouterGroup, h *Handlers) {
	stats := protected.Group("/stats")
	{
		stats.GET("", h.Stats.Get)
		stats.GET("/export", h.Stats.Export)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/receipt", h.Printer.PrintReceipt)
		printer.POST("/x-report", middleware.RequireRole(entity.RoleAdmin, entity.RoleSupervisor), h.Printer.PrintXReport)
	}
}
