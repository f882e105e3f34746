package usecase

import (
	"fmt"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"
	"openlove/pkg/queue"
)

type MessageUseCase interface {
	SendMessage(senderID, recipientID, content string) (*models.Message, error)
	GetConversation(userID, otherID string, limit, offset int) ([]models.Message, error)
}

type messageUseCase struct {
	messageRepo persistent.MessageRepository
	userRepo    persistent.UserRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewMessageUseCase(
	messageRepo persistent.MessageRepository,
	userRepo persistent.UserRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) MessageUseCase {
	return &messageUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *messageUseCase) SendMessage(senderID, recipientID, content string) (*models.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("message content is required")
	}
	if senderID == recipientID {
		return nil, fmt.Errorf("cannot message yourself")
	}

	_, tier, err := resolveViewer(uc.userRepo, senderID)
	if err != nil {
		return nil, err
	}
	if !plan.ForTier(tier).CanMessage {
		return nil, ErrPlanRequired
	}

	recipient, err := uc.userRepo.GetByID(recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if recipient == nil || !recipient.IsActive {
		return nil, fmt.Errorf("recipient not found")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := uc.messageRepo.Create(message); err != nil {
		uc.logger.Error("Failed to send message: %v", err)
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":     "message",
				"user_id":  recipientID,
				"actor_id": senderID,
				"priority": 5,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("Failed to publish message notification: %v", err)
			}
		}()
	}

	return message, nil
}

func (uc *messageUseCase) GetConversation(userID, otherID string, limit, offset int) ([]models.Message, error) {
	messages, err := uc.messageRepo.ListConversation(userID, otherID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	// Opening a conversation marks the other side's messages read;
	// a failure here does not block the read.
	if err := uc.messageRepo.MarkRead(userID, otherID); err != nil {
		uc.logger.Warn("Failed to mark conversation read: %v", err)
	}

	return messages, nil
}
