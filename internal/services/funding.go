package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openraise/fundbridge-backend/internal/data/repos/campaign"
	"github.com/openraise/fundbridge-backend/internal/data/repos/investment"
	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

// FundingService applies payment outcomes to investments and keeps each
// campaign's current_amount equal to the sum of its completed investment
// amounts. Each outcome moves the aggregate exactly once: replays are
// detected by payment_id and dropped, and the status transition plus the
// amount adjustment commit or roll back together.
type FundingService interface {
	ApplyOutcome(ctx context.Context, paymentID string, outcome types.PaymentStatus, transactionHash string) (*types.Investment, error)
}

type fundingService struct {
	db             *gorm.DB
	log            *logger.Logger
	investmentRepo investment.InvestmentRepo
	campaignRepo   campaign.CampaignRepo
}

func NewFundingService(db *gorm.DB, log *logger.Logger, investmentRepo investment.InvestmentRepo, campaignRepo campaign.CampaignRepo) FundingService {
	serviceLog := log.With("service", "FundingService")
	return &fundingService{
		db:             db,
		log:            serviceLog,
		investmentRepo: investmentRepo,
		campaignRepo:   campaignRepo,
	}
}

func (fs *fundingService) ApplyOutcome(ctx context.Context, paymentID string, outcome types.PaymentStatus, transactionHash string) (*types.Investment, error) {
	if paymentID == "" {
		return nil, apperr.Validation("investment", "apply_outcome", "payment id is required")
	}
	if !outcome.Valid() || outcome == types.PaymentPending {
		return nil, apperr.Validation("investment", "apply_outcome", "outcome must be completed, failed or refunded")
	}

	var applied *types.Investment
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := fs.investmentRepo.GetByPaymentID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperr.E("investment", "apply_outcome", apperr.ErrNotFound)
		}

		// Replay of an already-applied outcome: succeed without touching
		// the aggregate again.
		if inv.PaymentStatus == outcome {
			fs.log.Debug("Outcome already applied, ignoring replay", "payment_id", paymentID, "status", outcome)
			applied = inv
			return nil
		}

		if !inv.PaymentStatus.CanTransitionTo(outcome) {
			return apperr.E("investment", "apply_outcome", apperr.ErrInvalidTransition)
		}

		var hash *string
		if transactionHash != "" {
			hash = &transactionHash
		}
		swapped, err := fs.investmentRepo.TransitionStatus(ctx, tx, inv.ID, inv.PaymentStatus, outcome, hash)
		if err != nil {
			return err
		}
		if !swapped {
			// A concurrent delivery changed the status between our read and
			// the conditional write. Re-read and re-judge: same outcome means
			// the other delivery did our work.
			current, err := fs.investmentRepo.GetByID(ctx, tx, inv.ID)
			if err != nil {
				return err
			}
			if current != nil && current.PaymentStatus == outcome {
				applied = current
				return nil
			}
			return apperr.E("investment", "apply_outcome", apperr.ErrInvalidTransition)
		}

		if delta, ok := aggregateDelta(inv, outcome); ok {
			if err := fs.campaignRepo.AdjustAmount(ctx, tx, inv.CampaignID, delta); err != nil {
				return err
			}
		}

		inv.PaymentStatus = outcome
		inv.TransactionHash = hash
		applied = inv
		fs.log.Info("Payment outcome applied",
			"payment_id", paymentID,
			"investment_id", inv.ID,
			"campaign_id", inv.CampaignID,
			"outcome", outcome,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// aggregateDelta maps a legal transition to its campaign aggregate effect.
// pending->failed moves nothing.
func aggregateDelta(inv *types.Investment, outcome types.PaymentStatus) (delta decimal.Decimal, ok bool) {
	switch outcome {
	case types.PaymentCompleted:
		return inv.Amount, true
	case types.PaymentRefunded:
		return inv.Amount.Neg(), true
	default:
		return decimal.Decimal{}, false
	}
}
