package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
	CampaignExpired   CampaignStatus = "expired"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignActive, CampaignCompleted, CampaignCancelled, CampaignExpired:
		return true
	}
	return false
}

// Campaign owns current_amount exclusively: it is the denormalized sum of
// completed investment amounts and is only ever moved through
// CampaignRepo.AdjustAmount.
type Campaign struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title             string          `gorm:"not null;column:title" json:"title"`
	Description       string          `gorm:"type:text;column:description" json:"description"`
	TargetAmount      decimal.Decimal `gorm:"type:numeric(20,2);not null;column:target_amount" json:"target_amount"`
	CurrentAmount     decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0;column:current_amount" json:"current_amount"`
	MinimumInvestment decimal.Decimal `gorm:"type:numeric(20,2);not null;column:minimum_investment" json:"minimum_investment"`
	EndDate           time.Time       `gorm:"not null;column:end_date" json:"end_date"`
	Category          string          `gorm:"index;column:category" json:"category"`
	RiskLevel         string          `gorm:"index;column:risk_level" json:"risk_level"`
	ExpectedReturn    string          `gorm:"column:expected_return" json:"expected_return"`
	Status            CampaignStatus  `gorm:"not null;default:'active';index;column:status" json:"status"`
	CreatedBy         uuid.UUID       `gorm:"type:uuid;not null;index;column:created_by" json:"created_by"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Campaign) TableName() string { return "campaign" }
