package models

import (
	"time"

	"openlove/pkg/plan"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentProvider string

const (
	ProviderStripe PaymentProvider = "stripe"
	ProviderPix    PaymentProvider = "pix"
)

type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type Subscription struct {
	ID               string             `gorm:"type:uuid;primary_key" json:"id"`
	UserID           string             `gorm:"type:uuid;not null;index" json:"user_id"`
	Tier             plan.Tier          `gorm:"type:varchar(20);not null" json:"tier"`
	Status           SubscriptionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Provider         PaymentProvider    `gorm:"type:varchar(10);not null" json:"provider"`
	ProviderRef      string             `gorm:"index" json:"provider_ref"`
	PriceCents       int64              `json:"price_cents"`
	CurrentPeriodEnd *time.Time         `json:"current_period_end,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`
}

// PaymentAudit rows are written best-effort after a charge succeeds; a
// failed insert never rolls the activation back.
type PaymentAudit struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Provider    PaymentProvider `gorm:"type:varchar(10);not null" json:"provider"`
	ProviderRef string          `json:"provider_ref"`
	AmountCents int64           `json:"amount_cents"`
	Currency    string          `gorm:"type:varchar(3);default:'BRL'" json:"currency"`
	Status      string          `gorm:"type:varchar(20)" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (a *PaymentAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
