package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message. PostID is set when a post is forwarded
// as a share.
type Message struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	SenderID    string         `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID string         `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Content     string         `json:"content"`
	PostID      *string        `gorm:"type:uuid" json:"post_id,omitempty"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
