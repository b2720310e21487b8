package app

import (
	"gorm.io/gorm"

	"github.com/openraise/fundbridge-backend/internal/data/repos/auth"
	"github.com/openraise/fundbridge-backend/internal/data/repos/campaign"
	"github.com/openraise/fundbridge-backend/internal/data/repos/investment"
	"github.com/openraise/fundbridge-backend/internal/data/repos/user"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type Repos struct {
	User       user.UserRepo
	UserToken  auth.UserTokenRepo
	Campaign   campaign.CampaignRepo
	Investment investment.InvestmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       user.NewUserRepo(db, log),
		UserToken:  auth.NewUserTokenRepo(db, log),
		Campaign:   campaign.NewCampaignRepo(db, log),
		Investment: investment.NewInvestmentRepo(db, log),
	}
}
