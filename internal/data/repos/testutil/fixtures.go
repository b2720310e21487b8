package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/openraise/fundbridge-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		KYCStatus: types.KYCVerified,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCampaign(tb testing.TB, ctx context.Context, tx *gorm.DB, createdBy uuid.UUID, target string) *types.Campaign {
	tb.Helper()
	c := &types.Campaign{
		ID:                uuid.New(),
		Title:             "campaign",
		Description:       "test campaign",
		TargetAmount:      decimal.RequireFromString(target),
		CurrentAmount:     decimal.Zero,
		MinimumInvestment: decimal.RequireFromString("10"),
		EndDate:           time.Now().UTC().Add(30 * 24 * time.Hour),
		Category:          "infrastructure",
		RiskLevel:         "medium",
		ExpectedReturn:    "8%",
		Status:            types.CampaignActive,
		CreatedBy:         createdBy,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed campaign: %v", err)
	}
	return c
}

func SeedInvestment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, campaignID uuid.UUID, amount, paymentID string) *types.Investment {
	tb.Helper()
	inv := &types.Investment{
		ID:            uuid.New(),
		UserID:        userID,
		CampaignID:    campaignID,
		Amount:        decimal.RequireFromString(amount),
		PaymentID:     paymentID,
		PaymentStatus: types.PaymentPending,
		PaymentMethod: "card",
	}
	if err := tx.WithContext(ctx).Create(inv).Error; err != nil {
		tb.Fatalf("seed investment: %v", err)
	}
	return inv
}

// UniqueEmail avoids collisions when tests share a database.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

// UniquePaymentID mirrors gateway-assigned payment identifiers.
func UniquePaymentID() string {
	return "pay_" + uuid.NewString()
}

func PtrString(v string) *string { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
