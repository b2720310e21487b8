package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/openraise/fundbridge-backend/internal/domain"
	"github.com/openraise/fundbridge-backend/internal/pkg/apperr"
	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
)

type CampaignStats struct {
	TotalInvestments int64           `json:"total_investments"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`
}

type UserStats struct {
	TotalInvestments     int64           `json:"total_investments"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	PendingAmount        decimal.Decimal `json:"pending_amount"`
	CompletedInvestments int64           `json:"completed_investments"`
	PendingInvestments   int64           `json:"pending_investments"`
}

type GlobalStats struct {
	Count          int64           `json:"count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CompletedCount int64           `json:"completed_count"`
}

// StatsService recomputes rollups from investment rows on every call. No
// caching: results are as fresh as the store's read visibility.
type StatsService interface {
	CampaignStats(ctx context.Context, campaignID uuid.UUID) (*CampaignStats, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	GlobalStats(ctx context.Context) (*GlobalStats, error)
}

type statsService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatsService(db *gorm.DB, log *logger.Logger) StatsService {
	serviceLog := log.With("service", "StatsService")
	return &statsService{db: db, log: serviceLog}
}

func (ss *statsService) CampaignStats(ctx context.Context, campaignID uuid.UUID) (*CampaignStats, error) {
	var row struct {
		TotalInvestments int64
		TotalAmount      decimal.Decimal
		PendingAmount    decimal.Decimal
	}
	err := ss.db.WithContext(ctx).
		Model(&types.Investment{}).
		Select(`COUNT(*) AS total_investments,
			COALESCE(SUM(CASE WHEN payment_status = 'completed' THEN amount END), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN payment_status = 'pending' THEN amount END), 0) AS pending_amount`).
		Where("campaign_id = ?", campaignID).
		Scan(&row).Error
	if err != nil {
		return nil, apperr.Persistence("investment", "campaign_stats", err)
	}
	return &CampaignStats{
		TotalInvestments: row.TotalInvestments,
		TotalAmount:      row.TotalAmount,
		PendingAmount:    row.PendingAmount,
	}, nil
}

func (ss *statsService) UserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	var row struct {
		TotalInvestments     int64
		TotalAmount          decimal.Decimal
		PendingAmount        decimal.Decimal
		CompletedInvestments int64
		PendingInvestments   int64
	}
	err := ss.db.WithContext(ctx).
		Model(&types.Investment{}).
		Select(`COUNT(*) AS total_investments,
			COALESCE(SUM(CASE WHEN payment_status = 'completed' THEN amount END), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN payment_status = 'pending' THEN amount END), 0) AS pending_amount,
			COUNT(*) FILTER (WHERE payment_status = 'completed') AS completed_investments,
			COUNT(*) FILTER (WHERE payment_status = 'pending') AS pending_investments`).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, apperr.Persistence("investment", "user_stats", err)
	}
	return &UserStats{
		TotalInvestments:     row.TotalInvestments,
		TotalAmount:          row.TotalAmount,
		PendingAmount:        row.PendingAmount,
		CompletedInvestments: row.CompletedInvestments,
		PendingInvestments:   row.PendingInvestments,
	}, nil
}

func (ss *statsService) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	var row struct {
		Count          int64
		TotalAmount    decimal.Decimal
		CompletedCount int64
	}
	err := ss.db.WithContext(ctx).
		Model(&types.Investment{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(CASE WHEN payment_status = 'completed' THEN amount END), 0) AS total_amount,
			COUNT(*) FILTER (WHERE payment_status = 'completed') AS completed_count`).
		Scan(&row).Error
	if err != nil {
		return nil, apperr.Persistence("investment", "global_stats", err)
	}
	return &GlobalStats{
		Count:          row.Count,
		TotalAmount:    row.TotalAmount,
		CompletedCount: row.CompletedCount,
	}, nil
}
