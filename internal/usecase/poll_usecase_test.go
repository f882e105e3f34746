package usecase

import (
	"testing"
	"time"

	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPollRepository is a mock implementation of PollRepository
type MockPollRepository struct {
	mock.Mock
}

func (m *MockPollRepository) Create(poll *models.Poll) error {
	args := m.Called(poll)
	return args.Error(0)
}

func (m *MockPollRepository) GetByID(pollID string) (*models.Poll, error) {
	args := m.Called(pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Poll), args.Error(1)
}

func (m *MockPollRepository) GetVote(pollID, userID string) (*models.PollVote, error) {
	args := m.Called(pollID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PollVote), args.Error(1)
}

func (m *MockPollRepository) CastVote(pollID, userID string, optionIndex int) error {
	args := m.Called(pollID, userID, optionIndex)
	return args.Error(0)
}

func goldUser(id string) *models.User {
	future := time.Now().Add(24 * time.Hour)
	return &models.User{
		ID:               id,
		Username:         id,
		PlanTier:         plan.TierGold,
		PremiumExpiresAt: &future,
		IsActive:         true,
	}
}

func TestCreatePoll_FreeTierRejected(t *testing.T) {
	pollRepo := new(MockPollRepository)
	userRepo := new(MockUserRepository)

	userRepo.On("GetByID", "u-free").Return(&models.User{
		ID:       "u-free",
		PlanTier: plan.TierFree,
		IsActive: true,
	}, nil)

	uc := NewPollUseCase(pollRepo, userRepo, logger.New())
	_, err := uc.CreatePoll("u-free", "Favorite color?", []string{"red", "blue"}, nil)

	assert.ErrorIs(t, err, ErrPlanRequired)
	pollRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreatePoll_OptionBounds(t *testing.T) {
	pollRepo := new(MockPollRepository)
	userRepo := new(MockUserRepository)

	userRepo.On("GetByID", "u-gold").Return(goldUser("u-gold"), nil)

	uc := NewPollUseCase(pollRepo, userRepo, logger.New())

	_, err := uc.CreatePoll("u-gold", "One option?", []string{"only"}, nil)
	assert.Error(t, err)

	_, err = uc.CreatePoll("u-gold", "Too many?", []string{"a", "b", "c", "d", "e"}, nil)
	assert.Error(t, err)

	pollRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreatePoll_Success(t *testing.T) {
	pollRepo := new(MockPollRepository)
	userRepo := new(MockUserRepository)

	userRepo.On("GetByID", "u-gold").Return(goldUser("u-gold"), nil)
	pollRepo.On("Create", mock.AnythingOfType("*models.Poll")).Return(nil)

	uc := NewPollUseCase(pollRepo, userRepo, logger.New())
	poll, err := uc.CreatePoll("u-gold", "Favorite color?", []string{"red", "blue", "green"}, nil)

	assert.NoError(t, err)
	assert.Len(t, poll.Options, 3)
	assert.Equal(t, 0, poll.Options[0].Position)
	assert.Equal(t, 2, poll.Options[2].Position)

	pollRepo.AssertExpectations(t)
}

func TestVote_MovesSingleVote(t *testing.T) {
	pollRepo := new(MockPollRepository)
	userRepo := new(MockUserRepository)

	poll := &models.Poll{
		ID: "poll-1",
		Options: []models.PollOption{
			{Position: 0, Text: "red"},
			{Position: 1, Text: "blue"},
		},
	}
	pollRepo.On("GetByID", "poll-1").Return(poll, nil)
	pollRepo.On("CastVote", "poll-1", "u1", 0).Return(nil).Once()
	pollRepo.On("CastVote", "poll-1", "u1", 1).Return(nil).Once()

	uc := NewPollUseCase(pollRepo, userRepo, logger.New())

	_, err := uc.Vote("u1", "poll-1", 0)
	assert.NoError(t, err)

	_, err = uc.Vote("u1", "poll-1", 1)
	assert.NoError(t, err)

	pollRepo.AssertExpectations(t)
}

func TestVote_InvalidOption(t *testing.T) {
	pollRepo := new(MockPollRepository)
	userRepo := new(MockUserRepository)

	poll := &models.Poll{
		ID: "poll-1",
		Options: []models.PollOption{
			{Position: 0, Text: "red"},
			{Position: 1, Text: "blue"},
		},
	}
	pollRepo.On("GetByID", "poll-1").Return(poll, nil)

	uc := NewPollUseCase(pollRepo, userRepo, logger.New())

	_, err := uc.Vote("u1", "poll-1", 2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid option")

	_, err = uc.Vote("u1", "poll-1", -1)
	assert.Error(t, err)

	pollRepo.AssertNotCalled(t, "CastVote", mock.Anything, mock.Anything, mock.Anything)
}

func TestVote_ExpiredPoll(t *testing.T) {
	pollRepo := new(MockPollRepository)
	userRepo := new(MockUserRepository)

	past := time.Now().Add(-time.Hour)
	poll := &models.Poll{
		ID:        "poll-old",
		ExpiresAt: &past,
		Options: []models.PollOption{
			{Position: 0, Text: "red"},
			{Position: 1, Text: "blue"},
		},
	}
	pollRepo.On("GetByID", "poll-old").Return(poll, nil)

	uc := NewPollUseCase(pollRepo, userRepo, logger.New())
	_, err := uc.Vote("u1", "poll-old", 0)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
	pollRepo.AssertNotCalled(t, "CastVote", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPoll_IncludesViewerVote(t *testing.T) {
	pollRepo := new(MockPollRepository)
	userRepo := new(MockUserRepository)

	poll := &models.Poll{
		ID: "poll-1",
		Options: []models.PollOption{
			{Position: 0, Text: "red", VotesCount: 3},
			{Position: 1, Text: "blue", VotesCount: 1},
		},
	}
	pollRepo.On("GetByID", "poll-1").Return(poll, nil)
	pollRepo.On("GetVote", "poll-1", "u1").Return(&models.PollVote{
		PollID:      "poll-1",
		UserID:      "u1",
		OptionIndex: 1,
	}, nil)

	uc := NewPollUseCase(pollRepo, userRepo, logger.New())
	got, viewerVote, err := uc.GetPoll("poll-1", "u1")

	assert.NoError(t, err)
	assert.Equal(t, poll, got)
	assert.NotNil(t, viewerVote)
	assert.Equal(t, 1, *viewerVote)
}
