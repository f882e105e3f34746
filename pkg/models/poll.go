package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Poll struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID  string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Question  string         `gorm:"not null" json:"question"`
	Options   []PollOption   `gorm:"foreignKey:PollID" json:"options"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type PollOption struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	PollID     string    `gorm:"type:uuid;not null;index" json:"poll_id"`
	Position   int       `gorm:"not null" json:"position"`
	Text       string    `gorm:"not null" json:"text"`
	VotesCount int       `gorm:"default:0" json:"votes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// PollVote is unique per (poll, user); changing a vote updates
// OptionIndex in place, so a voter never holds two rows.
type PollVote struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	PollID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_poll_votes_user" json:"poll_id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_poll_votes_user" json:"user_id"`
	OptionIndex int       `gorm:"not null" json:"option_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Poll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (o *PollOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (v *PollVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
