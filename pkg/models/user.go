package models

import (
	"time"

	"openlove/pkg/plan"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID               string         `gorm:"type:uuid;primary_key" json:"id"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Username         string         `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName      string         `json:"display_name"`
	Password         string         `gorm:"not null" json:"-"`
	AvatarURL        string         `json:"avatar_url"`
	Bio              string         `json:"bio"`
	Role             UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	IsVerified       bool           `gorm:"default:false" json:"is_verified"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	PlanTier         plan.Tier      `gorm:"type:varchar(20);default:'free'" json:"plan_tier"`
	PremiumExpiresAt *time.Time     `json:"premium_expires_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
