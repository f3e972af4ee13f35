package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

type AvailabilityInput struct {
	DayOfWeek int
	Available bool
	StartTime string
	EndTime   string
}

type AvailabilityService struct {
	profileRepo onboarding.Repository
	repo        availability.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewAvailabilityService(profileRepo onboarding.Repository, repo availability.Repository, logger *logging.Logger) *AvailabilityService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityService{
		profileRepo: profileRepo,
		repo:        repo,
		logger:      logger,
		now:         time.Now,
	}
}

// Week always returns seven slots, Sunday first.
func (s *AvailabilityService) Week(ctx context.Context, userID string) ([]availability.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.Week", userAttr(userID))
	defer span.End()

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.week(ctx, profile.ID)
}

// Upsert writes the given days. Every day is validated before anything is
// written; applying the same day twice leaves one row.
func (s *AvailabilityService) Upsert(ctx context.Context, userID string, days []AvailabilityInput) ([]availability.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.Upsert", userAttr(userID))
	defer span.End()

	if len(days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	seen := make(map[time.Weekday]struct{}, len(days))
	slots := make([]availability.Slot, 0, len(days))
	for _, day := range days {
		slot, err := availability.Slot{
			CreatorID: profile.ID,
			DayOfWeek: time.Weekday(day.DayOfWeek),
			Available: day.Available,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
			UpdatedAt: now,
		}.Normalize()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if _, dup := seen[slot.DayOfWeek]; dup {
			return nil, fmt.Errorf("%w: day %d listed twice", ErrInvalidInput, day.DayOfWeek)
		}
		seen[slot.DayOfWeek] = struct{}{}
		slots = append(slots, slot)
	}

	for _, slot := range slots {
		if err := s.repo.Upsert(ctx, slot); err != nil {
			s.logger.WarnContext(ctx, "availability upsert failed",
				"creator_id", profile.ID,
				"day_of_week", int(slot.DayOfWeek),
				"error", err,
			)
			return nil, fmt.Errorf("upsert availability: %w", err)
		}
	}
	return s.week(ctx, profile.ID)
}

func (s *AvailabilityService) week(ctx context.Context, creatorID string) ([]availability.Slot, error) {
	saved, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return availability.Week(creatorID, saved), nil
}
