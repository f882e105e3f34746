package usecase

import (
	"testing"
	"time"

	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/pagination"
	"openlove/pkg/plan"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFeedRepository is a mock implementation of FeedRepository
type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) GetTimelinePage(authorIDs []string, includePremium bool, limit, offset int) ([]models.Post, error) {
	args := m.Called(authorIDs, includePremium, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockFeedRepository) GetPublicPage(viewerID string, includePremium bool, limit, offset int) ([]models.Post, error) {
	args := m.Called(viewerID, includePremium, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockFeedRepository) GetAuthorsByIDs(authorIDs []string) ([]models.User, error) {
	args := m.Called(authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFeedRepository) GetViewerReactions(viewerID string, postIDs []string) ([]models.Like, error) {
	args := m.Called(viewerID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Like), args.Error(1)
}

func (m *MockFeedRepository) GetRecentCommentsByPostIDs(postIDs []string, limit int) ([]models.Comment, error) {
	args := m.Called(postIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(userID string, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) ActivatePremium(userID string, tier plan.Tier, expiresAt time.Time) error {
	args := m.Called(userID, tier, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) DowngradeToFree(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockFollowRepository is a mock implementation of FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(followerID, followedID string) error {
	args := m.Called(followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) Unfollow(followerID, followedID string) error {
	args := m.Called(followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(followerID, followedID string) (bool, error) {
	args := m.Called(followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) GetFollowedIDs(followerID string) ([]string, error) {
	args := m.Called(followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFollowRepository) GetFollowerIDs(followedID string) ([]string, error) {
	args := m.Called(followedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFollowRepository) CountFollowed(followerID string) (int64, error) {
	args := m.Called(followerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(followedID string, limit, offset int) ([]models.User, error) {
	args := m.Called(followedID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(followerID string, limit, offset int) ([]models.User, error) {
	args := m.Called(followerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// testRedisClient points at a closed port so every cache call behaves
// like a miss; the usecase treats cache failures as best-effort.
func testRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func newTestFeedUseCase(feedRepo *MockFeedRepository, userRepo *MockUserRepository, followRepo *MockFollowRepository) FeedUseCase {
	return NewFeedUseCase(feedRepo, userRepo, followRepo, testRedisClient(), logger.New(), false)
}

func TestGetTimeline_FreeUserWithNoFollows(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	userRepo.On("GetByID", "user-new").Return(&models.User{
		ID:       "user-new",
		Username: "newbie",
		PlanTier: plan.TierFree,
		IsActive: true,
	}, nil)
	followRepo.On("GetFollowedIDs", "user-new").Return([]string{}, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetTimeline("user-new", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.Empty(t, response.Data)
	assert.False(t, response.HasMore)
	assert.False(t, response.IsPremium)
	assert.Equal(t, "Follow people to see their posts in your timeline", response.Message)

	feedRepo.AssertNotCalled(t, "GetTimelinePage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	userRepo.AssertExpectations(t)
	followRepo.AssertExpectations(t)
}

func TestGetTimeline_FreeUserSeesFollowedAndSelf(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	userRepo.On("GetByID", "viewer").Return(&models.User{
		ID:       "viewer",
		Username: "viewer",
		PlanTier: plan.TierFree,
		IsActive: true,
	}, nil)
	followRepo.On("GetFollowedIDs", "viewer").Return([]string{"a1", "a2"}, nil)

	posts := []models.Post{
		{ID: "p1", AuthorID: "a1", Content: "hello"},
	}
	feedRepo.On("GetTimelinePage", []string{"a1", "a2", "viewer"}, false, 20, 0).Return(posts, nil)
	feedRepo.On("GetRecentCommentsByPostIDs", []string{"p1"}, 3).Return([]models.Comment{}, nil)
	feedRepo.On("GetAuthorsByIDs", []string{"a1"}).Return([]models.User{{ID: "a1", Username: "alice"}}, nil)
	feedRepo.On("GetViewerReactions", "viewer", []string{"p1"}).Return([]models.Like{}, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetTimeline("viewer", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "alice", response.Data[0].Author.Username)
	assert.False(t, response.HasMore)

	feedRepo.AssertExpectations(t)
}

func TestGetTimeline_PremiumUserGetsPublicPage(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	future := time.Now().Add(24 * time.Hour)
	userRepo.On("GetByID", "viewer-gold").Return(&models.User{
		ID:               "viewer-gold",
		Username:         "gold",
		PlanTier:         plan.TierGold,
		PremiumExpiresAt: &future,
		IsActive:         true,
	}, nil)

	posts := []models.Post{
		{ID: "p1", AuthorID: "stranger", Content: "public post"},
	}
	feedRepo.On("GetPublicPage", "viewer-gold", true, 20, 0).Return(posts, nil)
	feedRepo.On("GetRecentCommentsByPostIDs", []string{"p1"}, 3).Return([]models.Comment{}, nil)
	feedRepo.On("GetAuthorsByIDs", []string{"stranger"}).Return([]models.User{}, nil)
	feedRepo.On("GetViewerReactions", "viewer-gold", []string{"p1"}).Return([]models.Like{}, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetTimeline("viewer-gold", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.True(t, response.IsPremium)
	assert.Len(t, response.Data, 1)
	// Missing author row renders as the placeholder, not a dropped post.
	assert.Equal(t, "unknown", response.Data[0].Author.Username)

	followRepo.AssertNotCalled(t, "GetFollowedIDs", mock.Anything)
	feedRepo.AssertExpectations(t)
}

func TestGetTimeline_ExpiredPremiumFallsBackToFree(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	past := time.Now().Add(-24 * time.Hour)
	userRepo.On("GetByID", "viewer-expired").Return(&models.User{
		ID:               "viewer-expired",
		Username:         "lapsed",
		PlanTier:         plan.TierDiamond,
		PremiumExpiresAt: &past,
		IsActive:         true,
	}, nil)
	followRepo.On("GetFollowedIDs", "viewer-expired").Return([]string{}, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetTimeline("viewer-expired", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.False(t, response.IsPremium)
	assert.Equal(t, "Follow people to see their posts in your timeline", response.Message)

	feedRepo.AssertNotCalled(t, "GetPublicPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetTimeline_HasMoreWhenPageIsFull(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	userRepo.On("GetByID", "viewer").Return(&models.User{
		ID:       "viewer",
		PlanTier: plan.TierFree,
		IsActive: true,
	}, nil)
	followRepo.On("GetFollowedIDs", "viewer").Return([]string{"a1"}, nil)

	posts := make([]models.Post, 20)
	for i := range posts {
		posts[i] = models.Post{ID: string(rune('a' + i)), AuthorID: "a1"}
	}
	feedRepo.On("GetTimelinePage", mock.Anything, false, 20, 0).Return(posts, nil)
	feedRepo.On("GetRecentCommentsByPostIDs", mock.Anything, mock.Anything).Return([]models.Comment{}, nil)
	feedRepo.On("GetAuthorsByIDs", mock.Anything).Return([]models.User{{ID: "a1"}}, nil)
	feedRepo.On("GetViewerReactions", "viewer", mock.Anything).Return([]models.Like{}, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetTimeline("viewer", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.True(t, response.HasMore)
}

func TestGetTimeline_ViewerMissing(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	userRepo.On("GetByID", "ghost").Return(nil, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	_, err := uc.GetTimeline("ghost", pagination.Params{Page: 1, Limit: 20}, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "viewer not found")
}

func TestGetTimeline_ReactionFetchFailureStillRenders(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	userRepo.On("GetByID", "viewer").Return(&models.User{
		ID:       "viewer",
		PlanTier: plan.TierFree,
		IsActive: true,
	}, nil)
	followRepo.On("GetFollowedIDs", "viewer").Return([]string{"a1"}, nil)

	posts := []models.Post{{ID: "p1", AuthorID: "a1"}}
	feedRepo.On("GetTimelinePage", mock.Anything, false, 20, 0).Return(posts, nil)
	feedRepo.On("GetRecentCommentsByPostIDs", []string{"p1"}, 3).Return([]models.Comment{}, nil)
	feedRepo.On("GetAuthorsByIDs", []string{"a1"}).Return([]models.User{{ID: "a1", Username: "alice"}}, nil)
	feedRepo.On("GetViewerReactions", "viewer", []string{"p1"}).Return(nil, assert.AnError)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetTimeline("viewer", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.Len(t, response.Data, 1)
	assert.False(t, response.Data[0].ViewerLiked)
}

func TestGetFollowingFeed_UsesFollowedAuthorsOnlyForPremium(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	future := time.Now().Add(24 * time.Hour)
	userRepo.On("GetByID", "viewer-gold").Return(&models.User{
		ID:               "viewer-gold",
		PlanTier:         plan.TierGold,
		PremiumExpiresAt: &future,
		IsActive:         true,
	}, nil)
	followRepo.On("GetFollowedIDs", "viewer-gold").Return([]string{"a1"}, nil)

	posts := []models.Post{{ID: "p1", AuthorID: "a1"}}
	feedRepo.On("GetTimelinePage", []string{"a1"}, true, 20, 0).Return(posts, nil)
	feedRepo.On("GetRecentCommentsByPostIDs", []string{"p1"}, 3).Return([]models.Comment{}, nil)
	feedRepo.On("GetAuthorsByIDs", []string{"a1"}).Return([]models.User{{ID: "a1", Username: "alice"}}, nil)
	feedRepo.On("GetViewerReactions", "viewer-gold", []string{"p1"}).Return([]models.Like{}, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetFollowingFeed("viewer-gold", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.Len(t, response.Data, 1)

	// The following feed never widens to the public set, premium or not.
	feedRepo.AssertNotCalled(t, "GetPublicPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	feedRepo.AssertExpectations(t)
}

func TestGetTimeline_CommentsStayWithTheirPosts(t *testing.T) {
	feedRepo := new(MockFeedRepository)
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	userRepo.On("GetByID", "viewer").Return(&models.User{
		ID:       "viewer",
		PlanTier: plan.TierFree,
		IsActive: true,
	}, nil)
	followRepo.On("GetFollowedIDs", "viewer").Return([]string{"a1"}, nil)

	posts := []models.Post{
		{ID: "p-busy", AuthorID: "a1"},
		{ID: "p-quiet", AuthorID: "a1"},
	}
	// Newest first per post, as the repository returns them: the busy
	// thread is already capped at three and cannot crowd out the quiet
	// one's single comment.
	comments := []models.Comment{
		{ID: "c4", PostID: "p-busy", AuthorID: "a1", CreatedAt: time.Unix(400, 0)},
		{ID: "c3", PostID: "p-busy", AuthorID: "a1", CreatedAt: time.Unix(300, 0)},
		{ID: "c2", PostID: "p-busy", AuthorID: "a1", CreatedAt: time.Unix(200, 0)},
		{ID: "c1", PostID: "p-quiet", AuthorID: "a1", CreatedAt: time.Unix(100, 0)},
	}
	feedRepo.On("GetTimelinePage", []string{"a1", "viewer"}, false, 20, 0).Return(posts, nil)
	feedRepo.On("GetRecentCommentsByPostIDs", []string{"p-busy", "p-quiet"}, 3).Return(comments, nil)
	feedRepo.On("GetAuthorsByIDs", []string{"a1"}).Return([]models.User{{ID: "a1", Username: "alice"}}, nil)
	feedRepo.On("GetViewerReactions", "viewer", []string{"p-busy", "p-quiet"}).Return([]models.Like{}, nil)

	uc := newTestFeedUseCase(feedRepo, userRepo, followRepo)
	response, err := uc.GetTimeline("viewer", pagination.Params{Page: 1, Limit: 20}, false)

	assert.NoError(t, err)
	assert.Len(t, response.Data, 2)
	assert.Len(t, response.Data[0].Comments, 3)
	assert.Len(t, response.Data[1].Comments, 1)
	assert.Equal(t, "c4", response.Data[0].Comments[0].ID)
	assert.Equal(t, "c1", response.Data[1].Comments[0].ID)
}
