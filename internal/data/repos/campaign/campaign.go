package campaign

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

// ListFilter narrows the active-campaign listing. Zero values mean "no
// filter"; Limit <= 0 means unbounded.
type ListFilter struct {
	Category  string
	RiskLevel string
	Limit     int
}

type CampaignRepo interface {
	Create(ctx context.Context, tx *gorm.DB, campaign *types.Campaign) (*types.Campaign, error)
	GetByID(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) (*types.Campaign, error)
	ListActive(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Campaign, error)
	AdjustAmount(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID, delta decimal.Decimal) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID, status types.CampaignStatus) error
}

type campaignRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCampaignRepo(db *gorm.DB, baseLog *logger.Logger) CampaignRepo {
	repoLog := baseLog.With("repo", "CampaignRepo")
	return &campaignRepo{db: db, log: repoLog}
}

func (cr *campaignRepo) Create(ctx context.Context, tx *gorm.DB, campaign *types.Campaign) (*types.Campaign, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	// Aggregate and status are repo-owned; caller input never seeds them.
	campaign.CurrentAmount = decimal.Zero
	campaign.Status = types.CampaignActive

	if err := transaction.WithContext(ctx).Create(campaign).Error; err != nil {
		return nil, apperr.Persistence("campaign", "create", err)
	}
	return campaign, nil
}

func (cr *campaignRepo) GetByID(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) (*types.Campaign, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Campaign
	if err := transaction.WithContext(ctx).
		Where("id = ?", campaignID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, apperr.Persistence("campaign", "get_by_id", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cr *campaignRepo) ListActive(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Campaign, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	query := transaction.WithContext(ctx).
		Where("status = ?", types.CampaignActive).
		Order("created_at DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.RiskLevel != "" {
		query = query.Where("risk_level = ?", filter.RiskLevel)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var results []*types.Campaign
	if err := query.Find(&results).Error; err != nil {
		return nil, apperr.Persistence("campaign", "list_active", err)
	}
	return results, nil
}

// AdjustAmount moves current_amount by delta in one conditional update
// expression. The store performs the arithmetic, so concurrent adjustments
// serialize on the row instead of losing updates the way a read-then-write
// round trip would. Negative deltas additionally require the aggregate to
// stay non-negative.
func (cr *campaignRepo) AdjustAmount(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID, delta decimal.Decimal) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Campaign{}).
		Where("id = ?", campaignID)
	if delta.IsNegative() {
		query = query.Where("current_amount >= ?", delta.Neg())
	}

	res := query.UpdateColumn("current_amount", gorm.Expr("current_amount + ?", delta))
	if res.Error != nil {
		return apperr.Persistence("campaign", "adjust_amount", res.Error)
	}
	if res.RowsAffected == 0 {
		existing, err := cr.GetByID(ctx, transaction, campaignID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.E("campaign", "adjust_amount", apperr.ErrNotFound)
		}
		// Row exists but the non-negative guard rejected the decrement.
		return apperr.E("campaign", "adjust_amount", apperr.ErrConflict)
	}
	return nil
}

func (cr *campaignRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID, status types.CampaignStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Campaign{}).
		Where("id = ?", campaignID).
		Update("status", status)
	if res.Error != nil {
		return apperr.Persistence("campaign", "update_status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.E("campaign", "update_status", apperr.ErrNotFound)
	}
	return nil
}
