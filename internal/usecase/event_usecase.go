package usecase

import (
	"errors"
	"fmt"
	"time"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/pagination"
	"openlove/pkg/plan"
)

var (
	ErrEventLimit      = errors.New("monthly event limit reached for current plan")
	ErrEventInPast     = errors.New("event start time must be in the future")
	ErrEventTitleEmpty = errors.New("event title is required")
	ErrEventNotFound   = errors.New("event not found")
	ErrNotOrganizer    = errors.New("not the event organizer")
)

type EventUseCase interface {
	CreateEvent(userID, title, description, location string, startsAt time.Time) (*models.Event, error)
	CancelEvent(userID, eventID string) error
	ListEvents(params pagination.Params) ([]models.Event, bool, error)
}

type eventUseCase struct {
	eventRepo persistent.EventRepository
	userRepo  persistent.UserRepository
	logger    *logger.Logger
}

func NewEventUseCase(
	eventRepo persistent.EventRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) EventUseCase {
	return &eventUseCase{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (uc *eventUseCase) CreateEvent(userID, title, description, location string, startsAt time.Time) (*models.Event, error) {
	user, tier, err := resolveViewer(uc.userRepo, userID)
	if err != nil {
		return nil, err
	}

	caps := plan.ForTier(tier)
	if !caps.CanCreateEvent {
		return nil, ErrPlanRequired
	}

	if title == "" {
		return nil, ErrEventTitleEmpty
	}
	now := time.Now().UTC()
	if !startsAt.After(now) {
		return nil, ErrEventInPast
	}

	if caps.MaxMonthlyEvents >= 0 {
		created, err := uc.eventRepo.CountCreatedInMonth(userID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to count events: %w", err)
		}
		if created >= int64(caps.MaxMonthlyEvents) {
			return nil, ErrEventLimit
		}
	}

	event := &models.Event{
		OrganizerID: user.ID,
		Title:       title,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
	}
	if err := uc.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (uc *eventUseCase) CancelEvent(userID, eventID string) error {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}
	if event.OrganizerID != userID {
		return ErrNotOrganizer
	}
	return uc.eventRepo.Delete(eventID)
}

func (uc *eventUseCase) ListEvents(params pagination.Params) ([]models.Event, bool, error) {
	events, err := uc.eventRepo.List(params.Limit, params.Offset())
	if err != nil {
		return nil, false, fmt.Errorf("failed to list events: %w", err)
	}
	return events, params.HasMore(len(events)), nil
}
