package http

import (
	"github.com/gin-gonic/gin"

	"github.com/openraise/fundbridge-backend/internal/http/handlers"
	"github.com/openraise/fundbridge-backend/internal/http/middleware"
)

type RouterConfig struct {
	HealthHandler     *handlers.HealthHandler
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	CampaignHandler   *handlers.CampaignHandler
	InvestmentHandler *handlers.InvestmentHandler
	PaymentHandler    *handlers.PaymentHandler
	StatsHandler      *handlers.StatsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.GET("/campaigns", cfg.CampaignHandler.List)
		api.GET("/campaigns/:id", cfg.CampaignHandler.Get)
		api.GET("/campaigns/:id/stats", cfg.CampaignHandler.Stats)
		api.GET("/stats", cfg.StatsHandler.Global)
		// Gateway callbacks authenticate with X-Callback-Token, not a user
		// session.
		api.POST("/payments/callback", cfg.PaymentHandler.Callback)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/me", cfg.UserHandler.GetMe)
	protected.GET("/me/stats", cfg.UserHandler.GetMyStats)
	// Campaigns
	protected.POST("/campaigns", cfg.CampaignHandler.Create)
	protected.PATCH("/campaigns/:id/status", cfg.CampaignHandler.UpdateStatus)
	protected.GET("/campaigns/:id/investments", cfg.CampaignHandler.Investments)
	// Investments
	protected.POST("/investments", cfg.InvestmentHandler.Create)
	protected.GET("/investments", cfg.InvestmentHandler.ListMine)
	protected.GET("/investments/:id", cfg.InvestmentHandler.Get)

	return router
}
