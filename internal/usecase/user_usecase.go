package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"
	"openlove/pkg/queue"
	"openlove/pkg/s3"

	"github.com/google/uuid"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

// Profile is the public view of a user.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	IsVerified  bool      `json:"is_verified"`
	IsPremium   bool      `json:"isPremium"`
	Followers   int64     `json:"followers"`
	Following   int64     `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	IsFollowing bool      `json:"is_following,omitempty"`
}

type UserUseCase interface {
	GetProfile(viewerID, username string) (*Profile, error)
	UpdateProfile(userID string, updates map[string]interface{}) error
	UploadAvatar(userID string, fileHeader *multipart.FileHeader) (string, error)
	Follow(followerID, username string) error
	Unfollow(followerID, username string) error
	ListFollowers(username string, limit, offset int) ([]Profile, error)
	ListFollowing(username string, limit, offset int) ([]Profile, error)
}

type userUseCase struct {
	userRepo    persistent.UserRepository
	followRepo  persistent.FollowRepository
	s3Client    *s3.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	followRepo persistent.FollowRepository,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:    userRepo,
		followRepo:  followRepo,
		s3Client:    s3Client,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *userUseCase) GetProfile(viewerID, username string) (*Profile, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, errUserNotFound
	}

	followerIDs, err := uc.followRepo.GetFollowerIDs(user.ID)
	if err != nil {
		uc.logger.Error("Failed to count followers for %s: %v", user.ID, err)
	}
	following, err := uc.followRepo.CountFollowed(user.ID)
	if err != nil {
		uc.logger.Error("Failed to count following for %s: %v", user.ID, err)
	}

	tier := plan.Resolve(user.PlanTier, user.PremiumExpiresAt, time.Now().UTC())

	profile := &Profile{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		IsVerified:  user.IsVerified,
		IsPremium:   plan.IsPremium(tier),
		Followers:   int64(len(followerIDs)),
		Following:   following,
		CreatedAt:   user.CreatedAt,
	}

	if viewerID != "" && viewerID != user.ID {
		isFollowing, err := uc.followRepo.IsFollowing(viewerID, user.ID)
		if err == nil {
			profile.IsFollowing = isFollowing
		}
	}

	return profile, nil
}

func (uc *userUseCase) UpdateProfile(userID string, updates map[string]interface{}) error {
	allowed := map[string]bool{"display_name": true, "bio": true, "avatar_url": true}
	filtered := make(map[string]interface{})
	for key, value := range updates {
		if allowed[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return fmt.Errorf("no updatable fields provided")
	}
	return uc.userRepo.UpdateProfile(userID, filtered)
}

// UploadAvatar stores the image and points the profile at it.
func (uc *userUseCase) UploadAvatar(userID string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := uc.s3Client.UploadFile(key, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := uc.userRepo.UpdateProfile(userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}
	return url, nil
}

func (uc *userUseCase) Follow(followerID, username string) error {
	target, err := uc.resolveTarget(username)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return ErrSelfFollow
	}

	if err := uc.followRepo.Follow(followerID, target.ID); err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}

	uc.notifyFollow(followerID, target.ID)
	return nil
}

func (uc *userUseCase) Unfollow(followerID, username string) error {
	target, err := uc.resolveTarget(username)
	if err != nil {
		return err
	}
	return uc.followRepo.Unfollow(followerID, target.ID)
}

func (uc *userUseCase) ListFollowers(username string, limit, offset int) ([]Profile, error) {
	target, err := uc.resolveTarget(username)
	if err != nil {
		return nil, err
	}

	users, err := uc.followRepo.ListFollowers(target.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return toProfileSummaries(users), nil
}

func (uc *userUseCase) ListFollowing(username string, limit, offset int) ([]Profile, error) {
	target, err := uc.resolveTarget(username)
	if err != nil {
		return nil, err
	}

	users, err := uc.followRepo.ListFollowing(target.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return toProfileSummaries(users), nil
}

// toProfileSummaries maps user rows into profiles without the
// per-profile follower counts; lists stay one query each.
func toProfileSummaries(users []models.User) []Profile {
	now := time.Now().UTC()
	profiles := make([]Profile, 0, len(users))
	for _, user := range users {
		tier := plan.Resolve(user.PlanTier, user.PremiumExpiresAt, now)
		profiles = append(profiles, Profile{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Bio:         user.Bio,
			AvatarURL:   user.AvatarURL,
			IsVerified:  user.IsVerified,
			IsPremium:   plan.IsPremium(tier),
			CreatedAt:   user.CreatedAt,
		})
	}
	return profiles
}

func (uc *userUseCase) resolveTarget(username string) (*models.User, error) {
	target, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if target == nil || !target.IsActive {
		return nil, errUserNotFound
	}
	return target, nil
}

func (uc *userUseCase) notifyFollow(followerID, followedID string) {
	if uc.queueClient == nil {
		return
	}

	go func() {
		task := map[string]interface{}{
			"type":     "follow",
			"user_id":  followedID,
			"actor_id": followerID,
			"priority": 2,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish follow notification: %v", err)
		}
	}()
}
