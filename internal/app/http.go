package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openraise/fundbridge-backend/internal/http"
	httpH "github.com/openraise/fundbridge-backend/internal/http/handlers"
	httpMW "github.com/openraise/fundbridge-backend/internal/http/middleware"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Campaign   *httpH.CampaignHandler
	Investment *httpH.InvestmentHandler
	Payment    *httpH.PaymentHandler
	Stats      *httpH.StatsHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Auth:       httpH.NewAuthHandler(services.Auth),
		User:       httpH.NewUserHandler(services.User, services.Stats),
		Campaign:   httpH.NewCampaignHandler(services.Campaign, services.Investment, services.Stats),
		Investment: httpH.NewInvestmentHandler(services.Investment),
		Payment:    httpH.NewPaymentHandler(log, services.Funding, cfg.PaymentCallbackToken),
		Stats:      httpH.NewStatsHandler(services.Stats),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		AuthMiddleware:    middleware.Auth,
		UserHandler:       handlers.User,
		CampaignHandler:   handlers.Campaign,
		InvestmentHandler: handlers.Investment,
		PaymentHandler:    handlers.Payment,
		StatsHandler:      handlers.Stats,
	})
}
