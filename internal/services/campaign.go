package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openraise/fundbridge-backend/internal/data/repos/campaign"
	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/normalization"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type CreateCampaignInput struct {
	Title             string
	Description       string
	TargetAmount      decimal.Decimal
	MinimumInvestment decimal.Decimal
	EndDate           time.Time
	Category          string
	RiskLevel         string
	ExpectedReturn    string
}

type CampaignService interface {
	Create(ctx context.Context, createdBy uuid.UUID, input CreateCampaignInput) (*types.Campaign, error)
	GetByID(ctx context.Context, campaignID uuid.UUID) (*types.Campaign, error)
	ListActive(ctx context.Context, filter campaign.ListFilter) ([]*types.Campaign, error)
	UpdateStatus(ctx context.Context, actor uuid.UUID, campaignID uuid.UUID, status types.CampaignStatus) (*types.Campaign, error)
}

type campaignService struct {
	db           *gorm.DB
	log          *logger.Logger
	campaignRepo campaign.CampaignRepo
}

func NewCampaignService(db *gorm.DB, log *logger.Logger, campaignRepo campaign.CampaignRepo) CampaignService {
	serviceLog := log.With("service", "CampaignService")
	return &campaignService{db: db, log: serviceLog, campaignRepo: campaignRepo}
}

func (cs *campaignService) Create(ctx context.Context, createdBy uuid.UUID, input CreateCampaignInput) (*types.Campaign, error) {
	input.Title = normalization.TrimInputString(input.Title)
	if input.Title == "" {
		return nil, apperr.Validation("campaign", "create", "title is required")
	}
	if createdBy == uuid.Nil {
		return nil, apperr.Validation("campaign", "create", "creator is required")
	}
	if !input.TargetAmount.IsPositive() {
		return nil, apperr.Validation("campaign", "create", "target amount must be positive")
	}
	if !input.MinimumInvestment.IsPositive() {
		return nil, apperr.Validation("campaign", "create", "minimum investment must be positive")
	}
	if input.MinimumInvestment.GreaterThan(input.TargetAmount) {
		return nil, apperr.Validation("campaign", "create", "minimum investment exceeds target amount")
	}
	if input.EndDate.IsZero() || input.EndDate.Before(time.Now()) {
		return nil, apperr.Validation("campaign", "create", "end date must be in the future")
	}

	c := &types.Campaign{
		ID:                uuid.New(),
		Title:             input.Title,
		Description:       input.Description,
		TargetAmount:      input.TargetAmount,
		MinimumInvestment: input.MinimumInvestment,
		EndDate:           input.EndDate,
		Category:          normalization.ParseInputString(input.Category),
		RiskLevel:         normalization.ParseInputString(input.RiskLevel),
		ExpectedReturn:    normalization.TrimInputString(input.ExpectedReturn),
		CreatedBy:         createdBy,
	}
	created, err := cs.campaignRepo.Create(ctx, nil, c)
	if err != nil {
		return nil, err
	}
	cs.log.Info("Campaign created", "campaign_id", created.ID, "user_id", createdBy)
	return created, nil
}

func (cs *campaignService) GetByID(ctx context.Context, campaignID uuid.UUID) (*types.Campaign, error) {
	c, err := cs.campaignRepo.GetByID(ctx, nil, campaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.E("campaign", "get_by_id", apperr.ErrNotFound)
	}
	return c, nil
}

func (cs *campaignService) ListActive(ctx context.Context, filter campaign.ListFilter) ([]*types.Campaign, error) {
	filter.Category = normalization.ParseInputString(filter.Category)
	filter.RiskLevel = normalization.ParseInputString(filter.RiskLevel)
	return cs.campaignRepo.ListActive(ctx, nil, filter)
}

func (cs *campaignService) UpdateStatus(ctx context.Context, actor uuid.UUID, campaignID uuid.UUID, status types.CampaignStatus) (*types.Campaign, error) {
	if !status.Valid() {
		return nil, apperr.Validation("campaign", "update_status", "unknown campaign status")
	}

	var updated *types.Campaign
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := cs.campaignRepo.GetByID(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.E("campaign", "update_status", apperr.ErrNotFound)
		}
		if c.CreatedBy != actor {
			return apperr.E("campaign", "update_status", apperr.ErrForbidden)
		}
		if err := cs.campaignRepo.UpdateStatus(ctx, tx, campaignID, status); err != nil {
			return err
		}
		c.Status = status
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Campaign status updated", "campaign_id", campaignID, "status", status)
	return updated, nil
}
