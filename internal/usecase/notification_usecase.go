package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"openlove/internal/entity"
	"openlove/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	notificationTTL  = 30 * 24 * time.Hour
	maxNotifications = 200
)

type NotificationUseCase interface {
	GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, error)
	ClearNotifications(userID string) error
	HandleTask(task map[string]interface{}) error
}

type notificationUseCase struct {
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNotificationUseCase(redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, error) {
	ctx := context.Background()
	key := fmt.Sprintf("notifications:%s", userID)

	entries, err := uc.redisClient.LRange(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	notifications := make([]entity.Notification, 0, len(entries))
	for _, entry := range entries {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(entry), &notification); err == nil {
			notifications = append(notifications, notification)
		}
	}

	total, _ := uc.redisClient.LLen(ctx, key).Result()
	return notifications, total, nil
}

func (uc *notificationUseCase) ClearNotifications(userID string) error {
	key := fmt.Sprintf("notifications:%s", userID)
	return uc.redisClient.Del(context.Background(), key).Err()
}

// HandleTask renders a queued task into a stored notification. It is
// the RabbitMQ consumer callback; any error nacks the delivery back
// onto the queue.
func (uc *notificationUseCase) HandleTask(task map[string]interface{}) error {
	taskType, _ := task["type"].(string)
	userID, _ := task["user_id"].(string)
	if userID == "" {
		uc.logger.Warn("Notification task missing user_id: %+v", task)
		return nil
	}

	var title, message string
	switch taskType {
	case "like":
		title = "New reaction"
		message = "Someone reacted to your post"
	case "comment":
		title = "New comment"
		message = "Someone commented on your post"
	case "follow":
		title = "New follower"
		message = "Someone started following you"
	case "message":
		title = "New message"
		message = "You have a new message"
	case "payment":
		title = "Subscription updated"
		message = "Your subscription is now active"
	default:
		uc.logger.Warn("Unknown notification task type: %s", taskType)
		return nil
	}

	data := map[string]interface{}{}
	for _, field := range []string{"actor_id", "post_id", "comment_id"} {
		if value, ok := task[field]; ok {
			data[field] = value
		}
	}

	return uc.store(&entity.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      taskType,
		Data:      data,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (uc *notificationUseCase) store(notification *entity.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx := context.Background()
	key := fmt.Sprintf("notifications:%s", notification.UserID)

	if err := uc.redisClient.LPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	uc.redisClient.LTrim(ctx, key, 0, maxNotifications-1)
	uc.redisClient.Expire(ctx, key, notificationTTL)

	return nil
}
