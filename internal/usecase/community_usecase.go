package usecase

import (
	"errors"
	"fmt"

	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/pagination"
	"openlove/pkg/plan"
)

var (
	ErrCommunityNotFound = errors.New("community not found")
	ErrCommunityLimit    = errors.New("community limit reached for current plan")
	ErrAlreadyMember     = errors.New("already a member of this community")
	ErrNotMember         = errors.New("not a member of this community")
	ErrNotCommunityOwner = errors.New("not the community owner")
	ErrOwnerCannotLeave  = errors.New("owner cannot leave their own community")
)

type CommunityUseCase interface {
	CreateCommunity(userID, name, description string, isPrivate bool) (*models.Community, error)
	GetCommunity(communityID string) (*models.Community, error)
	UpdateCommunity(userID, communityID string, updates map[string]interface{}) error
	DeleteCommunity(userID, communityID string) error
	ListCommunities(params pagination.Params) ([]models.Community, bool, error)
	JoinCommunity(userID, communityID string) error
	LeaveCommunity(userID, communityID string) error
}

type communityUseCase struct {
	communityRepo persistent.CommunityRepository
	userRepo      persistent.UserRepository
	logger        *logger.Logger
}

func NewCommunityUseCase(
	communityRepo persistent.CommunityRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) CommunityUseCase {
	return &communityUseCase{
		communityRepo: communityRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

func (uc *communityUseCase) CreateCommunity(userID, name, description string, isPrivate bool) (*models.Community, error) {
	user, tier, err := resolveViewer(uc.userRepo, userID)
	if err != nil {
		return nil, err
	}

	caps := plan.ForTier(tier)
	if !caps.CanCreateCommunity {
		return nil, ErrPlanRequired
	}

	owned, err := uc.communityRepo.CountOwned(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count communities: %w", err)
	}
	if caps.MaxCommunities >= 0 && owned >= int64(caps.MaxCommunities) {
		return nil, ErrCommunityLimit
	}

	community := &models.Community{
		OwnerID:     user.ID,
		Name:        name,
		Description: description,
		IsPrivate:   isPrivate,
	}
	if err := uc.communityRepo.Create(community); err != nil {
		return nil, fmt.Errorf("failed to create community: %w", err)
	}

	// The owner is always the first member.
	if err := uc.communityRepo.Join(community.ID, userID); err != nil {
		uc.logger.Warn("Failed to add owner %s to community %s: %v", userID, community.ID, err)
	}

	return community, nil
}

func (uc *communityUseCase) GetCommunity(communityID string) (*models.Community, error) {
	community, err := uc.communityRepo.GetByID(communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get community: %w", err)
	}
	if community == nil {
		return nil, ErrCommunityNotFound
	}
	return community, nil
}

func (uc *communityUseCase) UpdateCommunity(userID, communityID string, updates map[string]interface{}) error {
	if err := uc.requireOwner(userID, communityID); err != nil {
		return err
	}

	allowed := map[string]bool{"name": true, "description": true, "is_private": true}
	filtered := make(map[string]interface{})
	for key, value := range updates {
		if allowed[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return fmt.Errorf("no updatable fields provided")
	}
	return uc.communityRepo.Update(communityID, filtered)
}

func (uc *communityUseCase) DeleteCommunity(userID, communityID string) error {
	if err := uc.requireOwner(userID, communityID); err != nil {
		return err
	}
	return uc.communityRepo.Delete(communityID)
}

func (uc *communityUseCase) requireOwner(userID, communityID string) error {
	community, err := uc.communityRepo.GetByID(communityID)
	if err != nil {
		return fmt.Errorf("failed to get community: %w", err)
	}
	if community == nil {
		return ErrCommunityNotFound
	}
	if community.OwnerID != userID {
		return ErrNotCommunityOwner
	}
	return nil
}

func (uc *communityUseCase) ListCommunities(params pagination.Params) ([]models.Community, bool, error) {
	communities, err := uc.communityRepo.List(params.Limit, params.Offset())
	if err != nil {
		return nil, false, fmt.Errorf("failed to list communities: %w", err)
	}
	return communities, params.HasMore(len(communities)), nil
}

func (uc *communityUseCase) JoinCommunity(userID, communityID string) error {
	community, err := uc.communityRepo.GetByID(communityID)
	if err != nil {
		return fmt.Errorf("failed to get community: %w", err)
	}
	if community == nil {
		return ErrCommunityNotFound
	}

	isMember, err := uc.communityRepo.IsMember(communityID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		return ErrAlreadyMember
	}

	return uc.communityRepo.Join(communityID, userID)
}

func (uc *communityUseCase) LeaveCommunity(userID, communityID string) error {
	community, err := uc.communityRepo.GetByID(communityID)
	if err != nil {
		return fmt.Errorf("failed to get community: %w", err)
	}
	if community == nil {
		return ErrCommunityNotFound
	}
	// The owner can delete the community but not walk out of it.
	if community.OwnerID == userID {
		return ErrOwnerCannotLeave
	}

	isMember, err := uc.communityRepo.IsMember(communityID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return ErrNotMember
	}

	return uc.communityRepo.Leave(communityID, userID)
}
