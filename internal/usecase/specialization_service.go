package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

const advisorySpecialization = "select at least one specialization"

type SpecializationSet struct {
	Items      []specialization.Specialization
	Advisories []string
}

type ToggleSpecializationInput struct {
	UserID     string
	Category   string
	SkillLevel string
}

type SpecializationService struct {
	profileRepo onboarding.Repository
	repo        specialization.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewSpecializationService(profileRepo onboarding.Repository, repo specialization.Repository, logger *logging.Logger) *SpecializationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SpecializationService{
		profileRepo: profileRepo,
		repo:        repo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *SpecializationService) List(ctx context.Context, userID string) (SpecializationSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SpecializationService.List", userAttr(userID))
	defer span.End()

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return SpecializationSet{}, err
	}
	return s.load(ctx, profile.ID)
}

// Toggle inserts the category when absent and removes it when present.
// Toggling the same category twice restores the original set.
func (s *SpecializationService) Toggle(ctx context.Context, input ToggleSpecializationInput) (SpecializationSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SpecializationService.Toggle")
	defer span.End()

	category, err := specialization.ParseCategory(input.Category)
	if err != nil {
		return SpecializationSet{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	level, err := specialization.ParseSkillLevel(input.SkillLevel)
	if err != nil {
		return SpecializationSet{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	profile, err := resolveCreator(ctx, s.profileRepo, input.UserID)
	if err != nil {
		return SpecializationSet{}, err
	}

	removed, err := s.repo.Delete(ctx, profile.ID, category)
	if err != nil {
		return SpecializationSet{}, fmt.Errorf("delete specialization: %w", err)
	}
	if !removed {
		now := s.now().UTC()
		if err := s.repo.Insert(ctx, specialization.Specialization{
			CreatorID:  profile.ID,
			Category:   category,
			SkillLevel: level,
			CreatedAt:  now,
			UpdatedAt:  now,
		}); err != nil {
			return SpecializationSet{}, fmt.Errorf("insert specialization: %w", err)
		}
	}

	s.logger.DebugContext(ctx, "specialization toggled",
		"creator_id", profile.ID,
		"category", string(category),
		"selected", !removed,
	)
	return s.load(ctx, profile.ID)
}

func (s *SpecializationService) SetSkillLevel(ctx context.Context, userID, rawCategory, rawLevel string) (SpecializationSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SpecializationService.SetSkillLevel")
	defer span.End()

	category, err := specialization.ParseCategory(rawCategory)
	if err != nil {
		return SpecializationSet{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if rawLevel == "" {
		return SpecializationSet{}, fmt.Errorf("%w: skill_level is required", ErrInvalidInput)
	}
	level, err := specialization.ParseSkillLevel(rawLevel)
	if err != nil {
		return SpecializationSet{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return SpecializationSet{}, err
	}

	updated, err := s.repo.UpdateSkillLevel(ctx, profile.ID, category, level)
	if err != nil {
		return SpecializationSet{}, fmt.Errorf("update skill level: %w", err)
	}
	if !updated {
		return SpecializationSet{}, fmt.Errorf("%w: category %s is not selected", ErrNotFound, category)
	}
	return s.load(ctx, profile.ID)
}

func (s *SpecializationService) load(ctx context.Context, creatorID string) (SpecializationSet, error) {
	items, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return SpecializationSet{}, fmt.Errorf("list specializations: %w", err)
	}
	set := SpecializationSet{Items: items, Advisories: []string{}}
	if len(items) == 0 {
		set.Advisories = append(set.Advisories, advisorySpecialization)
	}
	return set, nil
}
