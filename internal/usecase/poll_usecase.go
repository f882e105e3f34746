package usecase

import (
	"fmt"
	"time"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"
)

var ErrPlanRequired = fmt.Errorf("plan upgrade required")

const (
	minPollOptions = 2
	maxPollOptions = 4
)

type PollUseCase interface {
	CreatePoll(userID, question string, options []string, expiresAt *time.Time) (*models.Poll, error)
	GetPoll(pollID, userID string) (*models.Poll, *int, error)
	Vote(userID, pollID string, optionIndex int) (*models.Poll, error)
}

type pollUseCase struct {
	pollRepo persistent.PollRepository
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewPollUseCase(pollRepo persistent.PollRepository, userRepo persistent.UserRepository, logger *logger.Logger) PollUseCase {
	return &pollUseCase{
		pollRepo: pollRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *pollUseCase) CreatePoll(userID, question string, options []string, expiresAt *time.Time) (*models.Poll, error) {
	_, tier, err := resolveViewer(uc.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !plan.ForTier(tier).CanCreatePoll {
		return nil, ErrPlanRequired
	}

	if question == "" {
		return nil, fmt.Errorf("question is required")
	}
	if len(options) < minPollOptions || len(options) > maxPollOptions {
		return nil, fmt.Errorf("polls need between %d and %d options", minPollOptions, maxPollOptions)
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	poll := &models.Poll{
		AuthorID:  userID,
		Question:  question,
		ExpiresAt: expiresAt,
	}
	for i, text := range options {
		if text == "" {
			return nil, fmt.Errorf("option %d is empty", i)
		}
		poll.Options = append(poll.Options, models.PollOption{
			Position: i,
			Text:     text,
		})
	}

	if err := uc.pollRepo.Create(poll); err != nil {
		uc.logger.Error("Failed to create poll: %v", err)
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	return poll, nil
}

// GetPoll returns the poll with per-option counts and, when the viewer
// has voted, the index they picked.
func (uc *pollUseCase) GetPoll(pollID, userID string) (*models.Poll, *int, error) {
	poll, err := uc.pollRepo.GetByID(pollID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load poll: %w", err)
	}
	if poll == nil {
		return nil, nil, fmt.Errorf("poll not found")
	}

	var viewerVote *int
	if userID != "" {
		vote, err := uc.pollRepo.GetVote(pollID, userID)
		if err != nil {
			uc.logger.Warn("Failed to load viewer vote: %v", err)
		} else if vote != nil {
			viewerVote = &vote.OptionIndex
		}
	}

	return poll, viewerVote, nil
}

// Vote records or moves the user's single vote. Voting twice for
// different options leaves exactly one row, attributed to the latest
// option.
func (uc *pollUseCase) Vote(userID, pollID string, optionIndex int) (*models.Poll, error) {
	poll, err := uc.pollRepo.GetByID(pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load poll: %w", err)
	}
	if poll == nil {
		return nil, fmt.Errorf("poll not found")
	}
	if poll.ExpiresAt != nil && poll.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("poll has expired")
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return nil, fmt.Errorf("invalid option")
	}

	if err := uc.pollRepo.CastVote(pollID, userID, optionIndex); err != nil {
		uc.logger.Error("Failed to cast vote: %v", err)
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	return uc.pollRepo.GetByID(pollID)
}
