package usecase

import (
	"testing"

	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListConversation(userID, otherID string, limit, offset int) ([]models.Message, error) {
	args := m.Called(userID, otherID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListRecentSenders(userID string, limit int) ([]string, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(userID, otherID string) error {
	args := m.Called(userID, otherID)
	return args.Error(0)
}

func newTestShareUseCase(postRepo *MockPostRepository, messageRepo *MockMessageRepository, userRepo *MockUserRepository) ShareUseCase {
	return NewShareUseCase(postRepo, messageRepo, userRepo, logger.New(), "https://openlove.test")
}

func TestSharePost_RepostPointsAtOriginal(t *testing.T) {
	postRepo := new(MockPostRepository)
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	originalID := "p-original"
	postRepo.On("GetByID", "p-repost").Return(&models.Post{
		ID:         "p-repost",
		AuthorID:   "a1",
		Visibility: models.VisibilityPublic,
		RepostOfID: &originalID,
	}, nil)
	postRepo.On("Create", mock.MatchedBy(func(post *models.Post) bool {
		return post.RepostOfID != nil && *post.RepostOfID == "p-original" && post.AuthorID == "u1"
	})).Return(nil)
	postRepo.On("AddShares", "p-repost", 1).Return(nil)

	uc := newTestShareUseCase(postRepo, messageRepo, userRepo)
	result, err := uc.SharePost("u1", "p-repost", ShareRepost, "look at this", nil)

	assert.NoError(t, err)
	assert.Equal(t, ShareRepost, result.ShareType)
	postRepo.AssertExpectations(t)
}

func TestSharePost_MessageRequiresPlan(t *testing.T) {
	postRepo := new(MockPostRepository)
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("GetByID", "p1").Return(&models.Post{
		ID:         "p1",
		AuthorID:   "a1",
		Visibility: models.VisibilityPublic,
	}, nil)
	userRepo.On("GetByID", "u-free").Return(&models.User{
		ID:       "u-free",
		PlanTier: plan.TierFree,
		IsActive: true,
	}, nil)

	uc := newTestShareUseCase(postRepo, messageRepo, userRepo)
	_, err := uc.SharePost("u-free", "p1", ShareMessage, "fyi", []string{"u2"})

	assert.ErrorIs(t, err, ErrPlanRequired)
	messageRepo.AssertNotCalled(t, "Create", mock.Anything)
	postRepo.AssertNotCalled(t, "AddShares", mock.Anything, mock.Anything)
}

func TestSharePost_MessageSkipsSelfRecipient(t *testing.T) {
	postRepo := new(MockPostRepository)
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("GetByID", "p1").Return(&models.Post{
		ID:         "p1",
		AuthorID:   "a1",
		Visibility: models.VisibilityPublic,
	}, nil)
	userRepo.On("GetByID", "u-gold").Return(goldUser("u-gold"), nil)
	messageRepo.On("Create", mock.MatchedBy(func(message *models.Message) bool {
		return message.RecipientID == "u2" && message.PostID != nil && *message.PostID == "p1"
	})).Return(nil)
	postRepo.On("AddShares", "p1", 1).Return(nil)

	uc := newTestShareUseCase(postRepo, messageRepo, userRepo)
	result, err := uc.SharePost("u-gold", "p1", ShareMessage, "fyi", []string{"u-gold", "u2"})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.SentTo)
	messageRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestSharePost_ExternalBuildsLink(t *testing.T) {
	postRepo := new(MockPostRepository)
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("GetByID", "p1").Return(&models.Post{
		ID:          "p1",
		AuthorID:    "a1",
		Visibility:  models.VisibilityPublic,
		SharesCount: 4,
	}, nil)
	postRepo.On("AddShares", "p1", 1).Return(nil)

	uc := newTestShareUseCase(postRepo, messageRepo, userRepo)
	result, err := uc.SharePost("u1", "p1", ShareExternal, "", nil)

	assert.NoError(t, err)
	assert.Equal(t, "https://openlove.test/posts/p1", result.ShareURL)
	assert.Equal(t, int64(5), result.SharesCount)
}

func TestSharePost_PrivatePostHiddenFromOthers(t *testing.T) {
	postRepo := new(MockPostRepository)
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("GetByID", "p-private").Return(&models.Post{
		ID:         "p-private",
		AuthorID:   "a1",
		Visibility: models.VisibilityPrivate,
	}, nil)

	uc := newTestShareUseCase(postRepo, messageRepo, userRepo)
	_, err := uc.SharePost("u-other", "p-private", ShareExternal, "", nil)

	assert.EqualError(t, err, "post not found")
	postRepo.AssertNotCalled(t, "AddShares", mock.Anything, mock.Anything)
}

func TestSharePost_InvalidType(t *testing.T) {
	postRepo := new(MockPostRepository)
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("GetByID", "p1").Return(&models.Post{
		ID:         "p1",
		AuthorID:   "a1",
		Visibility: models.VisibilityPublic,
	}, nil)

	uc := newTestShareUseCase(postRepo, messageRepo, userRepo)
	_, err := uc.SharePost("u1", "p1", ShareType("carrier-pigeon"), "", nil)

	assert.EqualError(t, err, "invalid share type")
}
