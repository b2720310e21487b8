package investment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type InvestmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, investment *types.Investment) (*types.Investment, error)
	GetByID(ctx context.Context, tx *gorm.DB, investmentID uuid.UUID) (*types.Investment, error)
	GetByPaymentID(ctx context.Context, tx *gorm.DB, paymentID string) (*types.Investment, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Investment, error)
	ListByCampaignID(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) ([]*types.Investment, error)
	TransitionStatus(ctx context.Context, tx *gorm.DB, investmentID uuid.UUID, from, to types.PaymentStatus, transactionHash *string) (bool, error)
}

type investmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInvestmentRepo(db *gorm.DB, baseLog *logger.Logger) InvestmentRepo {
	repoLog := baseLog.With("repo", "InvestmentRepo")
	return &investmentRepo{db: db, log: repoLog}
}

func (ir *investmentRepo) Create(ctx context.Context, tx *gorm.DB, investment *types.Investment) (*types.Investment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	investment.PaymentStatus = types.PaymentPending

	if err := transaction.WithContext(ctx).Create(investment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.E("investment", "create", apperr.ErrConflict)
		}
		return nil, apperr.Persistence("investment", "create", err)
	}
	return investment, nil
}

func (ir *investmentRepo) GetByID(ctx context.Context, tx *gorm.DB, investmentID uuid.UUID) (*types.Investment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Investment
	if err := transaction.WithContext(ctx).
		Where("id = ?", investmentID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, apperr.Persistence("investment", "get_by_id", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// GetByPaymentID is the idempotency lookup for payment-outcome delivery.
func (ir *investmentRepo) GetByPaymentID(ctx context.Context, tx *gorm.DB, paymentID string) (*types.Investment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Investment
	if err := transaction.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, apperr.Persistence("investment", "get_by_payment_id", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ir *investmentRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Investment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Investment
	if err := transaction.WithContext(ctx).
		Preload("Campaign").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, apperr.Persistence("investment", "list_by_user_id", err)
	}
	return results, nil
}

func (ir *investmentRepo) ListByCampaignID(ctx context.Context, tx *gorm.DB, campaignID uuid.UUID) ([]*types.Investment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Investment
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, apperr.Persistence("investment", "list_by_campaign_id", err)
	}
	return results, nil
}

// TransitionStatus applies a payment-status step as a compare-and-swap: the
// update only lands if the stored status still equals from. Returns false
// with no error when another delivery won the race; the caller re-reads and
// decides.
func (ir *investmentRepo) TransitionStatus(ctx context.Context, tx *gorm.DB, investmentID uuid.UUID, from, to types.PaymentStatus, transactionHash *string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	updates := map[string]any{"payment_status": to}
	if transactionHash != nil {
		updates["transaction_hash"] = *transactionHash
	}

	res := transaction.WithContext(ctx).
		Model(&types.Investment{}).
		Where("id = ? AND payment_status = ?", investmentID, from).
		Updates(updates)
	if res.Error != nil {
		return false, apperr.Persistence("investment", "transition_status", res.Error)
	}
	return res.RowsAffected == 1, nil
}
