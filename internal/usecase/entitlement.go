package usecase

import (
	"fmt"
	"time"

	"openlove/internal/repo/persistent"
	"openlove/pkg/models"
	"openlove/pkg/plan"
)

var errUserNotFound = fmt.Errorf("user not found")

// resolveViewer loads a user and computes their effective tier, with
// the premium expiry checked against the clock at call time.
func resolveViewer(userRepo persistent.UserRepository, userID string) (*models.User, plan.Tier, error) {
	user, err := userRepo.GetByID(userID)
	if err != nil {
		return nil, plan.TierFree, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user == nil {
		return nil, plan.TierFree, errUserNotFound
	}
	tier := plan.Resolve(user.PlanTier, user.PremiumExpiresAt, time.Now())
	return user, tier, nil
}
