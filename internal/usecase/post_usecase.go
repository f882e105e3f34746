package usecase

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"
	"openlove/pkg/s3"

	"github.com/google/uuid"
)

var ErrNotPostOwner = fmt.Errorf("not post owner")

type PostUseCase interface {
	CreatePost(userID, content string, visibility models.PostVisibility, isPremium bool, mediaFiles []*multipart.FileHeader) (*models.Post, error)
	GetPost(postID, viewerID string) (*models.Post, error)
	DeletePost(postID, userID string) error
}

type postUseCase struct {
	postRepo   persistent.PostRepository
	userRepo   persistent.UserRepository
	followRepo persistent.FollowRepository
	s3Client   *s3.Client
	logger     *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	followRepo persistent.FollowRepository,
	s3Client *s3.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		s3Client:   s3Client,
		logger:     logger,
	}
}

func (uc *postUseCase) CreatePost(userID, content string, visibility models.PostVisibility, isPremium bool, mediaFiles []*multipart.FileHeader) (*models.Post, error) {
	author, tier, err := resolveViewer(uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !author.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	if content == "" && len(mediaFiles) == 0 {
		return nil, fmt.Errorf("post needs content or media")
	}
	if isPremium && !plan.IsPremium(tier) {
		return nil, ErrPlanRequired
	}

	caps := plan.ForTier(tier)
	maxBytes := int64(caps.MaxUploadSizeMB) * 1024 * 1024
	for _, file := range mediaFiles {
		if file.Size > maxBytes {
			return nil, fmt.Errorf("file %s exceeds the %dMB upload limit", file.Filename, caps.MaxUploadSizeMB)
		}
	}

	switch visibility {
	case models.VisibilityPublic, models.VisibilityFriends, models.VisibilityPrivate:
	case "":
		visibility = models.VisibilityPublic
	default:
		return nil, fmt.Errorf("invalid visibility")
	}

	post := &models.Post{
		AuthorID:   userID,
		Content:    content,
		Visibility: visibility,
		IsPremium:  isPremium,
	}

	for i, fileHeader := range mediaFiles {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}

		key := fmt.Sprintf("posts/%s/%s%s", userID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
		url, err := uc.s3Client.UploadFile(key, file, fileHeader.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			uc.logger.Error("Failed to upload media: %v", err)
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}

		post.Media = append(post.Media, models.PostMedia{
			MediaURL: url,
			Position: i,
		})
	}

	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetPost enforces visibility: friends-only posts require a follow
// relationship, private posts are owner-only.
func (uc *postUseCase) GetPost(postID, viewerID string) (*models.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("post not found")
	}

	if post.AuthorID == viewerID {
		return post, nil
	}

	switch post.Visibility {
	case models.VisibilityPrivate:
		return nil, fmt.Errorf("post not found")
	case models.VisibilityFriends:
		following, err := uc.followRepo.IsFollowing(viewerID, post.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("failed to check relationship: %w", err)
		}
		if !following {
			return nil, fmt.Errorf("post not found")
		}
	}

	if post.IsPremium && viewerID != "" {
		_, tier, err := resolveViewer(uc.userRepo, viewerID)
		if err != nil {
			return nil, err
		}
		if !plan.ForTier(tier).CanSeePremiumContent {
			return nil, ErrPlanRequired
		}
	} else if post.IsPremium {
		return nil, ErrPlanRequired
	}

	return post, nil
}

func (uc *postUseCase) DeletePost(postID, userID string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return fmt.Errorf("post not found")
	}
	if post.AuthorID != userID {
		return ErrNotPostOwner
	}

	return uc.postRepo.Delete(postID)
}
