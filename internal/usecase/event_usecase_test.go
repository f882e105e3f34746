package usecase

import (
	"testing"
	"time"

	"openlove/pkg/logger"
	"openlove/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(event *models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(eventID string) (*models.Event, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(eventID string) error {
	args := m.Called(eventID)
	return args.Error(0)
}

func (m *MockEventRepository) List(limit, offset int) ([]models.Event, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventRepository) CountCreatedInMonth(organizerID string, month time.Time) (int64, error) {
	args := m.Called(organizerID, month)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateEvent_PastStartRejected(t *testing.T) {
	eventRepo := new(MockEventRepository)
	userRepo := new(MockUserRepository)

	userRepo.On("GetByID", "u-gold").Return(goldUser("u-gold"), nil)

	uc := NewEventUseCase(eventRepo, userRepo, logger.New())
	_, err := uc.CreateEvent("u-gold", "Meetup", "", "Rio", time.Now().Add(-time.Hour))

	assert.ErrorIs(t, err, ErrEventInPast)
	eventRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateEvent_MonthlyLimit(t *testing.T) {
	eventRepo := new(MockEventRepository)
	userRepo := new(MockUserRepository)

	userRepo.On("GetByID", "u-gold").Return(goldUser("u-gold"), nil)
	eventRepo.On("CountCreatedInMonth", "u-gold", mock.Anything).Return(int64(100), nil)

	uc := NewEventUseCase(eventRepo, userRepo, logger.New())
	_, err := uc.CreateEvent("u-gold", "Meetup", "", "Rio", time.Now().Add(24*time.Hour))

	assert.ErrorIs(t, err, ErrEventLimit)
	eventRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCancelEvent_OrganizerOnly(t *testing.T) {
	eventRepo := new(MockEventRepository)
	userRepo := new(MockUserRepository)

	eventRepo.On("GetByID", "e1").Return(&models.Event{
		ID:          "e1",
		OrganizerID: "u-organizer",
		Title:       "Meetup",
	}, nil)

	uc := NewEventUseCase(eventRepo, userRepo, logger.New())
	err := uc.CancelEvent("u-other", "e1")

	assert.ErrorIs(t, err, ErrNotOrganizer)
	eventRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCancelEvent_Missing(t *testing.T) {
	eventRepo := new(MockEventRepository)
	userRepo := new(MockUserRepository)

	eventRepo.On("GetByID", "e-missing").Return(nil, nil)

	uc := NewEventUseCase(eventRepo, userRepo, logger.New())
	err := uc.CancelEvent("u-organizer", "e-missing")

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCancelEvent_OrganizerSucceeds(t *testing.T) {
	eventRepo := new(MockEventRepository)
	userRepo := new(MockUserRepository)

	eventRepo.On("GetByID", "e1").Return(&models.Event{
		ID:          "e1",
		OrganizerID: "u-organizer",
	}, nil)
	eventRepo.On("Delete", "e1").Return(nil)

	uc := NewEventUseCase(eventRepo, userRepo, logger.New())
	err := uc.CancelEvent("u-organizer", "e1")

	assert.NoError(t, err)
	eventRepo.AssertExpectations(t)
}
