package app

import (
	"gorm.io/gorm"

	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
	"github.com/openraise/fundbridge-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Campaign   services.CampaignService
	Investment services.InvestmentService
	Funding    services.FundingService
	Stats      services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(db, log, repos.User)
	campaignService := services.NewCampaignService(db, log, repos.Campaign)
	investmentService := services.NewInvestmentService(db, log, repos.Investment, repos.Campaign)
	fundingService := services.NewFundingService(db, log, repos.Investment, repos.Campaign)
	statsService := services.NewStatsService(db, log)

	return Services{
		Auth:       authService,
		User:       userService,
		Campaign:   campaignService,
		Investment: investmentService,
		Funding:    fundingService,
		Stats:      statsService,
	}
}
