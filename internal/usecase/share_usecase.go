package usecase

import (
	"fmt"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"
)

type ShareType string

const (
	ShareRepost   ShareType = "repost"
	ShareMessage  ShareType = "message"
	ShareExternal ShareType = "external"
)

// ShareResult covers all three share behaviors; only the fields for the
// requested type are populated.
type ShareResult struct {
	ShareType   ShareType `json:"share_type"`
	RepostID    string    `json:"repost_id,omitempty"`
	SentTo      int       `json:"sent_to,omitempty"`
	ShareURL    string    `json:"share_url,omitempty"`
	SharesCount int64     `json:"shares_count"`
}

type ShareUseCase interface {
	SharePost(userID, postID string, shareType ShareType, content string, recipientIDs []string) (*ShareResult, error)
}

type shareUseCase struct {
	postRepo    persistent.PostRepository
	messageRepo persistent.MessageRepository
	userRepo    persistent.UserRepository
	logger      *logger.Logger
	domainURL   string
}

func NewShareUseCase(
	postRepo persistent.PostRepository,
	messageRepo persistent.MessageRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
	domainURL string,
) ShareUseCase {
	return &shareUseCase{
		postRepo:    postRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger,
		domainURL:   domainURL,
	}
}

func (uc *shareUseCase) SharePost(userID, postID string, shareType ShareType, content string, recipientIDs []string) (*ShareResult, error) {
	original, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if original == nil {
		return nil, fmt.Errorf("post not found")
	}
	if original.Visibility == models.VisibilityPrivate && original.AuthorID != userID {
		return nil, fmt.Errorf("post not found")
	}

	result := &ShareResult{ShareType: shareType}

	switch shareType {
	case ShareRepost:
		// Reposts of reposts point at the original.
		originalID := original.ID
		if original.RepostOfID != nil {
			originalID = *original.RepostOfID
		}
		repost := &models.Post{
			AuthorID:   userID,
			Content:    content,
			Visibility: models.VisibilityPublic,
			RepostOfID: &originalID,
		}
		if err := uc.postRepo.Create(repost); err != nil {
			uc.logger.Error("Failed to create repost: %v", err)
			return nil, fmt.Errorf("failed to repost: %w", err)
		}
		result.RepostID = repost.ID

	case ShareMessage:
		_, tier, err := resolveViewer(uc.userRepo, userID)
		if err != nil {
			return nil, err
		}
		if !plan.ForTier(tier).CanMessage {
			return nil, ErrPlanRequired
		}
		if len(recipientIDs) == 0 {
			return nil, fmt.Errorf("recipients are required")
		}

		sent := 0
		for _, recipientID := range recipientIDs {
			if recipientID == userID {
				continue
			}
			message := &models.Message{
				SenderID:    userID,
				RecipientID: recipientID,
				Content:     content,
				PostID:      &original.ID,
			}
			if err := uc.messageRepo.Create(message); err != nil {
				uc.logger.Error("Failed to forward post to %s: %v", recipientID, err)
				continue
			}
			sent++
		}
		if sent == 0 {
			return nil, fmt.Errorf("failed to forward post")
		}
		result.SentTo = sent

	case ShareExternal:
		result.ShareURL = fmt.Sprintf("%s/posts/%s", uc.domainURL, original.ID)

	default:
		return nil, fmt.Errorf("invalid share type")
	}

	if err := uc.postRepo.AddShares(original.ID, 1); err != nil {
		uc.logger.Error("Failed to increment share counter: %v", err)
	}
	result.SharesCount = int64(original.SharesCount + 1)

	return result, nil
}
