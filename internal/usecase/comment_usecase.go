package usecase

import (
	"fmt"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/queue"
)

var (
	ErrVerificationRequired = fmt.Errorf("verification required")
	ErrNotCommentOwner      = fmt.Errorf("not comment owner")
)

type CommentUseCase interface {
	CreateComment(userID, postID, content string, parentID *string) (*models.Comment, error)
	ListComments(postID string, limit, offset int) ([]models.Comment, error)
	DeleteComment(userID, commentID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
	userRepo    persistent.UserRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

// CreateComment writes a comment after the entitlement check passes.
// The check happens before any row is written: a restricted account
// never leaves a partial comment behind.
func (uc *commentUseCase) CreateComment(userID, postID, content string, parentID *string) (*models.Comment, error) {
	author, _, err := resolveViewer(uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !author.IsVerified || !author.IsActive {
		return nil, ErrVerificationRequired
	}

	exists, err := uc.postRepo.PostExists(postID)
	if err != nil || !exists {
		return nil, fmt.Errorf("post not found")
	}

	if parentID != nil {
		parent, err := uc.commentRepo.GetByID(*parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent == nil || parent.PostID != postID {
			return nil, fmt.Errorf("parent comment not found")
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
		ParentID: parentID,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if err := uc.postRepo.AddComments(postID, 1); err != nil {
		uc.logger.Error("Failed to increment comment counter: %v", err)
	}

	uc.notifyComment(userID, postID, comment.ID)

	return comment, nil
}

func (uc *commentUseCase) ListComments(postID string, limit, offset int) ([]models.Comment, error) {
	exists, err := uc.postRepo.PostExists(postID)
	if err != nil || !exists {
		return nil, fmt.Errorf("post not found")
	}
	return uc.commentRepo.ListByPost(postID, limit, offset)
}

// DeleteComment removes the caller's own comment. Ownership fails the
// request before anything is touched, so the comment and the post's
// counter stay unchanged.
func (uc *commentUseCase) DeleteComment(userID, commentID string) error {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil {
		return fmt.Errorf("comment not found")
	}
	if comment.AuthorID != userID {
		return ErrNotCommentOwner
	}

	if err := uc.commentRepo.Delete(commentID); err != nil {
		uc.logger.Error("Failed to delete comment: %v", err)
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if err := uc.postRepo.AddComments(comment.PostID, -1); err != nil {
		uc.logger.Error("Failed to decrement comment counter: %v", err)
	}

	return nil
}

func (uc *commentUseCase) notifyComment(commenterID, postID, commentID string) {
	if uc.queueClient == nil {
		return
	}

	authorID, err := uc.postRepo.GetAuthorID(postID)
	if err != nil || authorID == "" || authorID == commenterID {
		return
	}

	go func() {
		task := map[string]interface{}{
			"type":       "comment",
			"user_id":    authorID,
			"actor_id":   commenterID,
			"post_id":    postID,
			"comment_id": commentID,
			"priority":   3,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish comment notification: %v", err)
		}
	}()
}
