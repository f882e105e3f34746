package persistent

import (
	"time"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.Message) error
	ListConversation(userID, otherID string, limit, offset int) ([]models.Message, error)
	ListRecentSenders(userID string, limit int) ([]string, error)
	MarkRead(userID, otherID string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) ListConversation(userID, otherID string, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userID, otherID, otherID, userID,
	).Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) ListRecentSenders(userID string, limit int) ([]string, error) {
	var senderIDs []string
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ?", userID).
		Order("MAX(created_at) DESC").
		Group("sender_id").
		Limit(limit).
		Pluck("sender_id", &senderIDs).Error
	if err != nil {
		return nil, err
	}
	return senderIDs, nil
}

func (r *messageRepository) MarkRead(userID, otherID string) error {
	return r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", userID, otherID).
		Update("read_at", time.Now()).Error
}
