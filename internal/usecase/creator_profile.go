package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
)

// resolveCreator maps a session user onto the creator profile that owns
// step data. Step rows are always addressed by the profile id.
func resolveCreator(ctx context.Context, repo onboarding.Repository, userID string) (onboarding.CreatorProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return onboarding.CreatorProfile{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	profile, exists, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return onboarding.CreatorProfile{}, fmt.Errorf("get creator profile: %w", err)
	}
	if !exists {
		return onboarding.CreatorProfile{}, fmt.Errorf("%w: creator profile not found, start onboarding first", ErrNotFound)
	}
	return profile, nil
}
