package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	PostID     string         `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID   string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Content    string         `gorm:"not null" json:"content"`
	ParentID   *string        `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	LikesCount int            `gorm:"default:0" json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
