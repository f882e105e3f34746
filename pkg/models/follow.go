package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is unique per (follower, followed) pair. The free-tier feed
// query is restricted to follow relationships, so the pair index is on
// the read path too.
type Follow struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID string         `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"follower_id"`
	FollowedID string         `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"followed_id"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
