package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investment is created once in pending state and only ever mutated through
// payment-status transitions. PaymentID is the idempotency key for outcome
// delivery from the payment gateway.
type Investment struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	CampaignID      uuid.UUID       `gorm:"type:uuid;not null;index;column:campaign_id" json:"campaign_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,2);not null;column:amount" json:"amount"`
	PaymentID       string          `gorm:"not null;uniqueIndex;column:payment_id" json:"payment_id"`
	PaymentStatus   PaymentStatus   `gorm:"not null;default:'pending';index;column:payment_status" json:"payment_status"`
	PaymentMethod   string          `gorm:"not null;column:payment_method" json:"payment_method"`
	TransactionHash *string         `gorm:"column:transaction_hash" json:"transaction_hash,omitempty"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Investment) TableName() string { return "investment" }
