package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

// DirectoryService is the influencer-facing read of completed creators.
type DirectoryService struct {
	loader snapshotLoader
	logger *logging.Logger
}

func NewDirectoryService(repos SnapshotRepositories, logger *logging.Logger) *DirectoryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DirectoryService{
		loader: snapshotLoader{repos: repos},
		logger: logger,
	}
}

// GetCreator returns a completed creator's public snapshot. Incomplete
// creators are reported as not found and banking is never included.
func (s *DirectoryService) GetCreator(ctx context.Context, creatorID string) (CreatorSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DirectoryService.GetCreator")
	defer span.End()

	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return CreatorSnapshot{}, fmt.Errorf("%w: creator id is required", ErrInvalidInput)
	}

	profile, exists, err := s.loader.repos.Profiles.GetByID(ctx, creatorID)
	if err != nil {
		return CreatorSnapshot{}, fmt.Errorf("get creator profile: %w", err)
	}
	if !exists || !profile.OnboardingCompleted {
		return CreatorSnapshot{}, fmt.Errorf("%w: creator %s", ErrNotFound, creatorID)
	}

	snapshot, err := s.loader.load(ctx, profile, false)
	if err != nil {
		return CreatorSnapshot{}, fmt.Errorf("load creator snapshot: %w", err)
	}
	return snapshot, nil
}
