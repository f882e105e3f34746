package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostVisibility string

const (
	VisibilityPublic  PostVisibility = "public"
	VisibilityFriends PostVisibility = "friends"
	VisibilityPrivate PostVisibility = "private"
)

type Post struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID      string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Content       string         `json:"content"`
	Visibility    PostVisibility `gorm:"type:varchar(10);default:'public';index" json:"visibility"`
	IsPremium     bool           `gorm:"default:false" json:"is_premium"`
	RepostOfID    *string        `gorm:"type:uuid" json:"repost_of_id,omitempty"`
	LikesCount    int            `gorm:"default:0" json:"likes_count"`
	CommentsCount int            `gorm:"default:0" json:"comments_count"`
	SharesCount   int            `gorm:"default:0" json:"shares_count"`
	ViewsCount    int            `gorm:"default:0" json:"views_count"`
	Media         []PostMedia    `gorm:"foreignKey:PostID" json:"media"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type PostMedia struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	PostID       string         `gorm:"type:uuid;not null;index" json:"post_id"`
	MediaURL     string         `gorm:"not null" json:"media_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Position     int            `gorm:"default:0" json:"position"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (m *PostMedia) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
