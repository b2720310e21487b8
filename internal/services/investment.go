package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openraise/fundbridge-backend/internal/data/repos/campaign"
	"github.com/openraise/fundbridge-backend/internal/data/repos/investment"
	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/normalization"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type CreateInvestmentInput struct {
	CampaignID    uuid.UUID
	Amount        decimal.Decimal
	PaymentID     string
	PaymentMethod string
}

type InvestmentService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInvestmentInput) (*types.Investment, error)
	GetByID(ctx context.Context, investmentID uuid.UUID) (*types.Investment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Investment, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*types.Investment, error)
}

type investmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	investmentRepo investment.InvestmentRepo
	campaignRepo   campaign.CampaignRepo
}

func NewInvestmentService(db *gorm.DB, log *logger.Logger, investmentRepo investment.InvestmentRepo, campaignRepo campaign.CampaignRepo) InvestmentService {
	serviceLog := log.With("service", "InvestmentService")
	return &investmentService{
		db:             db,
		log:            serviceLog,
		investmentRepo: investmentRepo,
		campaignRepo:   campaignRepo,
	}
}

func (is *investmentService) Create(ctx context.Context, userID uuid.UUID, input CreateInvestmentInput) (*types.Investment, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("investment", "create", "user is required")
	}
	if input.CampaignID == uuid.Nil {
		return nil, apperr.Validation("investment", "create", "campaign is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperr.Validation("investment", "create", "amount must be positive")
	}
	input.PaymentID = normalization.TrimInputString(input.PaymentID)
	if input.PaymentID == "" {
		return nil, apperr.Validation("investment", "create", "payment id is required")
	}
	input.PaymentMethod = normalization.ParseInputString(input.PaymentMethod)
	if input.PaymentMethod == "" {
		return nil, apperr.Validation("investment", "create", "payment method is required")
	}

	var created *types.Investment
	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := is.campaignRepo.GetByID(ctx, tx, input.CampaignID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.E("campaign", "get_by_id", apperr.ErrNotFound)
		}
		if c.Status != types.CampaignActive {
			return apperr.Validation("investment", "create", "campaign is not accepting investments")
		}
		if c.EndDate.Before(time.Now()) {
			return apperr.Validation("investment", "create", "campaign has ended")
		}
		if input.Amount.LessThan(c.MinimumInvestment) {
			return apperr.Validation("investment", "create", "amount is below the campaign minimum")
		}

		existing, err := is.investmentRepo.GetByPaymentID(ctx, tx, input.PaymentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.E("investment", "create", apperr.ErrConflict)
		}

		inv := &types.Investment{
			ID:            uuid.New(),
			UserID:        userID,
			CampaignID:    input.CampaignID,
			Amount:        input.Amount,
			PaymentID:     input.PaymentID,
			PaymentMethod: input.PaymentMethod,
		}
		created, err = is.investmentRepo.Create(ctx, tx, inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	is.log.Info("Investment created",
		"investment_id", created.ID,
		"campaign_id", created.CampaignID,
		"user_id", userID,
		"payment_id", created.PaymentID,
	)
	return created, nil
}

func (is *investmentService) GetByID(ctx context.Context, investmentID uuid.UUID) (*types.Investment, error) {
	inv, err := is.investmentRepo.GetByID(ctx, nil, investmentID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperr.E("investment", "get_by_id", apperr.ErrNotFound)
	}
	return inv, nil
}

func (is *investmentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Investment, error) {
	return is.investmentRepo.ListByUserID(ctx, nil, userID)
}

func (is *investmentService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*types.Investment, error) {
	return is.investmentRepo.ListByCampaignID(ctx, nil, campaignID)
}
