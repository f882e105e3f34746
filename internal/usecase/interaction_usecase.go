package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/queue"

	"github.com/redis/go-redis/v9"
)

// LikeResult is what a toggle returns to the client.
type LikeResult struct {
	IsLiked    bool   `json:"isLiked"`
	LikesCount int64  `json:"likesCount"`
	Reaction   string `json:"reaction,omitempty"`
}

type InteractionUseCase interface {
	ToggleLike(userID, postID string, reaction models.Reaction) (*LikeResult, error)
	ToggleCommentLike(userID, commentID string) (bool, int64, error)
	GetLikeCount(postID string) (int64, error)
	IncrementView(userID, postID string) (bool, error)
	GetViewCount(postID string) (int64, error)
}

type interactionUseCase struct {
	interactionRepo persistent.InteractionRepository
	postRepo        persistent.PostRepository
	commentRepo     persistent.CommentRepository
	redisClient     *redis.Client
	queueClient     *queue.Client
	logger          *logger.Logger
}

func NewInteractionUseCase(
	interactionRepo persistent.InteractionRepository,
	postRepo persistent.PostRepository,
	commentRepo persistent.CommentRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) InteractionUseCase {
	return &interactionUseCase{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		redisClient:     redisClient,
		queueClient:     queueClient,
		logger:          logger,
	}
}

// ToggleLike toggles the viewer's reaction on a post. Repeating the
// same reaction removes the like; a different reaction updates the
// existing row in place. Counters move through atomic increments so
// concurrent toggles cannot lose updates.
func (uc *interactionUseCase) ToggleLike(userID, postID string, reaction models.Reaction) (*LikeResult, error) {
	if !models.ValidReaction(reaction) {
		return nil, fmt.Errorf("invalid reaction")
	}

	exists, err := uc.postRepo.PostExists(postID)
	if err != nil || !exists {
		return nil, fmt.Errorf("post not found")
	}

	existing, err := uc.interactionRepo.GetLike(userID, postID, models.TargetPost)
	if err != nil {
		uc.logger.Error("Failed to check like status: %v", err)
		return nil, fmt.Errorf("failed to check like status: %w", err)
	}

	ctx := context.Background()
	countKey := fmt.Sprintf("post:likes:%s", postID)

	switch {
	case existing != nil && existing.Reaction == reaction:
		// Same reaction again: toggle off.
		if err := uc.interactionRepo.DeleteLike(userID, postID, models.TargetPost); err != nil {
			uc.logger.Error("Failed to delete like: %v", err)
			return nil, fmt.Errorf("failed to unlike post: %w", err)
		}
		if err := uc.postRepo.AddLikes(postID, -1); err != nil {
			uc.logger.Error("Failed to decrement like counter: %v", err)
		}
		uc.redisClient.Decr(ctx, countKey)

		count, err := uc.likeCount(postID)
		if err != nil {
			return nil, err
		}
		return &LikeResult{IsLiked: false, LikesCount: count}, nil

	case existing != nil:
		// Different reaction: update in place, count unchanged.
		if err := uc.interactionRepo.UpdateReaction(existing.ID, reaction); err != nil {
			uc.logger.Error("Failed to update reaction: %v", err)
			return nil, fmt.Errorf("failed to update reaction: %w", err)
		}
		count, err := uc.likeCount(postID)
		if err != nil {
			return nil, err
		}
		return &LikeResult{IsLiked: true, LikesCount: count, Reaction: string(reaction)}, nil

	default:
		if err := uc.interactionRepo.CreateLike(userID, postID, models.TargetPost, reaction); err != nil {
			uc.logger.Error("Failed to create like: %v", err)
			return nil, fmt.Errorf("failed to like post: %w", err)
		}
		if err := uc.postRepo.AddLikes(postID, 1); err != nil {
			uc.logger.Error("Failed to increment like counter: %v", err)
		}
		uc.redisClient.Incr(ctx, countKey)

		uc.notifyLike(userID, postID)

		count, err := uc.likeCount(postID)
		if err != nil {
			return nil, err
		}
		return &LikeResult{IsLiked: true, LikesCount: count, Reaction: string(reaction)}, nil
	}
}

func (uc *interactionUseCase) ToggleCommentLike(userID, commentID string) (bool, int64, error) {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil {
		return false, 0, fmt.Errorf("comment not found")
	}

	existing, err := uc.interactionRepo.GetLike(userID, commentID, models.TargetComment)
	if err != nil {
		return false, 0, fmt.Errorf("failed to check like status: %w", err)
	}

	if existing != nil {
		if err := uc.interactionRepo.DeleteLike(userID, commentID, models.TargetComment); err != nil {
			return false, 0, fmt.Errorf("failed to unlike comment: %w", err)
		}
		if err := uc.commentRepo.AddLikes(commentID, -1); err != nil {
			uc.logger.Error("Failed to decrement comment like counter: %v", err)
		}
		count, _ := uc.interactionRepo.CountLikes(commentID, models.TargetComment)
		return false, count, nil
	}

	if err := uc.interactionRepo.CreateLike(userID, commentID, models.TargetComment, models.ReactionLike); err != nil {
		return false, 0, fmt.Errorf("failed to like comment: %w", err)
	}
	if err := uc.commentRepo.AddLikes(commentID, 1); err != nil {
		uc.logger.Error("Failed to increment comment like counter: %v", err)
	}
	count, _ := uc.interactionRepo.CountLikes(commentID, models.TargetComment)
	return true, count, nil
}

// GetLikeCount serves the hot Redis counter first and falls back to the
// store, repopulating the mirror on a miss.
func (uc *interactionUseCase) GetLikeCount(postID string) (int64, error) {
	ctx := context.Background()
	countKey := fmt.Sprintf("post:likes:%s", postID)

	if countStr, err := uc.redisClient.Get(ctx, countKey).Result(); err == nil {
		count, _ := strconv.ParseInt(countStr, 10, 64)
		return count, nil
	}

	count, err := uc.interactionRepo.CountLikes(postID, models.TargetPost)
	if err != nil {
		return 0, fmt.Errorf("post not found")
	}

	uc.redisClient.Set(ctx, countKey, count, 0)
	return count, nil
}

// IncrementView counts a view once per (post, viewer). The dedup key
// lives in Redis; the durable counter is an atomic column increment.
// Returns whether this call was the first view.
func (uc *interactionUseCase) IncrementView(userID, postID string) (bool, error) {
	exists, err := uc.postRepo.PostExists(postID)
	if err != nil || !exists {
		return false, fmt.Errorf("post not found")
	}

	ctx := context.Background()
	viewKey := fmt.Sprintf("post_viewed:%s:%s", postID, userID)
	viewCountKey := fmt.Sprintf("post:views:%s", postID)

	set, err := uc.redisClient.SetNX(ctx, viewKey, "1", 365*24*time.Hour).Result()
	if err != nil {
		uc.logger.Error("Failed to set view key in Redis: %v", err)
		return false, fmt.Errorf("failed to track view: %w", err)
	}

	if set {
		if err := uc.interactionRepo.IncrementViews(postID); err != nil {
			uc.logger.Error("Failed to increment views: %v", err)
			return false, fmt.Errorf("failed to increment views: %w", err)
		}
		uc.redisClient.Incr(ctx, viewCountKey)
	}

	return set, nil
}

// GetViewCount serves the Redis mirror first and repopulates it from
// the store on a miss.
func (uc *interactionUseCase) GetViewCount(postID string) (int64, error) {
	ctx := context.Background()
	viewCountKey := fmt.Sprintf("post:views:%s", postID)

	if countStr, err := uc.redisClient.Get(ctx, viewCountKey).Result(); err == nil {
		count, _ := strconv.ParseInt(countStr, 10, 64)
		return count, nil
	}

	count, err := uc.interactionRepo.GetViewCount(postID)
	if err != nil {
		return 0, fmt.Errorf("post not found")
	}

	uc.redisClient.Set(ctx, viewCountKey, count, 0)
	return count, nil
}

func (uc *interactionUseCase) likeCount(postID string) (int64, error) {
	count, err := uc.interactionRepo.CountLikes(postID, models.TargetPost)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	uc.redisClient.Set(context.Background(), fmt.Sprintf("post:likes:%s", postID), count, 0)
	return count, nil
}

// notifyLike queues a notification for the post author. Best-effort:
// a queue failure is logged and never surfaced to the liker.
func (uc *interactionUseCase) notifyLike(likerID, postID string) {
	if uc.queueClient == nil {
		return
	}

	authorID, err := uc.postRepo.GetAuthorID(postID)
	if err != nil || authorID == "" || authorID == likerID {
		return
	}

	go func() {
		task := map[string]interface{}{
			"type":     "like",
			"user_id":  authorID,
			"actor_id": likerID,
			"post_id":  postID,
			"priority": 3,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish like notification: %v", err)
		}
	}()
}
