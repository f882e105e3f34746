package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Community struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name         string         `gorm:"uniqueIndex;not null" json:"name"`
	Description  string         `json:"description"`
	IsPrivate    bool           `gorm:"default:false" json:"is_private"`
	MembersCount int            `gorm:"default:0" json:"members_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type CommunityMember struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	CommunityID string         `gorm:"type:uuid;not null;uniqueIndex:idx_community_members_pair" json:"community_id"`
	UserID      string         `gorm:"type:uuid;not null;uniqueIndex:idx_community_members_pair" json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Community) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (m *CommunityMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
