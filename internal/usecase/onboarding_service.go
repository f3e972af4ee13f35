package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	idgen "github.com/riskibarqy/creator-booking/internal/platform/id"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

const (
	ViewOnboarding = "onboarding"
	ViewDashboard  = "dashboard"

	maxBioLength      = 2000
	maxFieldLength    = 120
	maxLanguagesCount = 10
)

// OnboardingState is what the client renders: the wizard positioned on a
// step, or the dashboard once onboarding is complete.
type OnboardingState struct {
	Profile   onboarding.CreatorProfile
	Sequencer onboarding.Sequencer
	View      string
}

type SaveProfileDetailsInput struct {
	UserID    string
	State     string
	City      string
	Location  string
	Bio       string
	Languages []string
	Revision  int64
}

type OnboardingService struct {
	profileRepo onboarding.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewOnboardingService(profileRepo onboarding.Repository, idGen idgen.Generator, logger *logging.Logger) *OnboardingService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}

	return &OnboardingService{
		profileRepo: profileRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// Start loads the creator's onboarding state, creating the profile on the
// first visit.
func (s *OnboardingService) Start(ctx context.Context, userID string) (OnboardingState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Start", userAttr(userID))
	defer span.End()

	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return OnboardingState{}, err
	}
	return stateFor(profile, onboarding.Resume(profile)), nil
}

// Advance moves from the given step to the next one. The new pointer is
// persisted before the state is returned, so a failed write leaves the
// caller on from.
func (s *OnboardingService) Advance(ctx context.Context, userID string, from int) (OnboardingState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Advance", userAttr(userID))
	defer span.End()

	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return OnboardingState{}, err
	}

	seq, err := onboarding.Resume(profile).At(onboarding.Step(from))
	if err != nil {
		return OnboardingState{}, sequencerError(err)
	}
	next, err := seq.Advance()
	if err != nil {
		return OnboardingState{}, sequencerError(err)
	}

	raised, err := s.profileRepo.RaiseStep(ctx, profile.ID, next.Current)
	if err != nil {
		return OnboardingState{}, fmt.Errorf("persist onboarding step: %w", err)
	}
	if !raised {
		return OnboardingState{}, fmt.Errorf("%w: %w", ErrConflict, onboarding.ErrCompleted)
	}

	if next.Furthest > profile.OnboardingStep {
		profile.OnboardingStep = next.Furthest
	}
	profile.UpdatedAt = s.now().UTC()

	s.logger.DebugContext(ctx, "creator onboarding advanced",
		"creator_id", profile.ID,
		"from", int(seq.Current),
		"to", int(next.Current),
	)
	return stateFor(profile, next), nil
}

// Retreat moves one step back without touching the persisted pointer, which
// tracks the furthest step reached.
func (s *OnboardingService) Retreat(ctx context.Context, userID string, from int) (OnboardingState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Retreat", userAttr(userID))
	defer span.End()

	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return OnboardingState{}, err
	}

	seq, err := onboarding.Resume(profile).At(onboarding.Step(from))
	if err != nil {
		return OnboardingState{}, sequencerError(err)
	}
	prev, err := seq.Retreat()
	if err != nil {
		return OnboardingState{}, sequencerError(err)
	}
	return stateFor(profile, prev), nil
}

// Complete finishes onboarding from the final step. It succeeds once; later
// calls report a conflict.
func (s *OnboardingService) Complete(ctx context.Context, userID string, from int) (OnboardingState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Complete", userAttr(userID))
	defer span.End()

	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return OnboardingState{}, err
	}

	seq, err := onboarding.Resume(profile).At(onboarding.Step(from))
	if err != nil {
		return OnboardingState{}, sequencerError(err)
	}
	done, err := seq.Complete()
	if err != nil {
		return OnboardingState{}, sequencerError(err)
	}

	marked, err := s.profileRepo.MarkCompleted(ctx, profile.ID)
	if err != nil {
		return OnboardingState{}, fmt.Errorf("persist onboarding completion: %w", err)
	}
	if !marked {
		return OnboardingState{}, fmt.Errorf("%w: %w", ErrConflict, onboarding.ErrCompleted)
	}

	profile.OnboardingCompleted = true
	profile.UpdatedAt = s.now().UTC()
	s.logger.InfoContext(ctx, "creator onboarding completed", "creator_id", profile.ID, "user_id", profile.UserID)

	return stateFor(profile, done), nil
}

// SaveProfileDetails is the step 1 autosave. Writes carrying a revision that
// is not newer than the stored one are dropped, so out of order autosaves
// cannot overwrite fresher input. The bool reports whether the write applied.
func (s *OnboardingService) SaveProfileDetails(ctx context.Context, input SaveProfileDetailsInput) (onboarding.CreatorProfile, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.SaveProfileDetails")
	defer span.End()

	details, err := normalizeDetails(input)
	if err != nil {
		return onboarding.CreatorProfile{}, false, err
	}

	profile, err := s.ensureProfile(ctx, input.UserID)
	if err != nil {
		return onboarding.CreatorProfile{}, false, err
	}

	applied, err := s.profileRepo.UpdateDetails(ctx, profile.ID, details)
	if err != nil {
		return onboarding.CreatorProfile{}, false, fmt.Errorf("update creator profile details: %w", err)
	}
	if !applied {
		s.logger.DebugContext(ctx, "stale profile autosave ignored",
			"creator_id", profile.ID,
			"revision", details.Revision,
			"stored_revision", profile.DetailsRevision,
		)
	}

	latest, exists, err := s.profileRepo.GetByID(ctx, profile.ID)
	if err != nil {
		return onboarding.CreatorProfile{}, false, fmt.Errorf("re-fetch creator profile: %w", err)
	}
	if !exists {
		return onboarding.CreatorProfile{}, false, fmt.Errorf("%w: creator profile disappeared", ErrNotFound)
	}
	return latest, applied, nil
}

func (s *OnboardingService) ensureProfile(ctx context.Context, userID string) (onboarding.CreatorProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return onboarding.CreatorProfile{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	existing, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return onboarding.CreatorProfile{}, fmt.Errorf("get creator profile: %w", err)
	}
	if exists {
		return existing, nil
	}

	profileID, err := s.idGen.NewID()
	if err != nil {
		return onboarding.CreatorProfile{}, fmt.Errorf("generate creator profile id: %w", err)
	}
	now := s.now().UTC()
	if err := s.profileRepo.CreateIfAbsent(ctx, onboarding.CreatorProfile{
		ID:             profileID,
		UserID:         userID,
		OnboardingStep: onboarding.FirstStep,
		CreatedAt:      now,
		UpdatedAt:      now,
	}); err != nil {
		return onboarding.CreatorProfile{}, fmt.Errorf("create creator profile: %w", err)
	}

	// A concurrent first visit may have won the insert; read back the row
	// that actually exists.
	latest, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return onboarding.CreatorProfile{}, fmt.Errorf("re-fetch creator profile: %w", err)
	}
	if !exists {
		return onboarding.CreatorProfile{}, fmt.Errorf("%w: creator profile was not created", ErrDependencyUnavailable)
	}

	s.logger.InfoContext(ctx, "creator profile created", "creator_id", latest.ID, "user_id", userID)
	return latest, nil
}

func stateFor(profile onboarding.CreatorProfile, seq onboarding.Sequencer) OnboardingState {
	view := ViewOnboarding
	if profile.OnboardingCompleted || seq.Completed {
		view = ViewDashboard
	}
	return OnboardingState{
		Profile:   profile,
		Sequencer: seq,
		View:      view,
	}
}

func sequencerError(err error) error {
	if errors.Is(err, onboarding.ErrCompleted) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func normalizeDetails(input SaveProfileDetailsInput) (onboarding.Details, error) {
	if input.Revision <= 0 {
		return onboarding.Details{}, fmt.Errorf("%w: revision must be > 0", ErrInvalidInput)
	}

	details := onboarding.Details{
		State:    strings.TrimSpace(input.State),
		City:     strings.TrimSpace(input.City),
		Location: strings.TrimSpace(input.Location),
		Bio:      strings.TrimSpace(input.Bio),
		Revision: input.Revision,
	}
	for name, value := range map[string]string{"state": details.State, "city": details.City, "location": details.Location} {
		if len([]rune(value)) > maxFieldLength {
			return onboarding.Details{}, fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, name, maxFieldLength)
		}
	}
	if len([]rune(details.Bio)) > maxBioLength {
		return onboarding.Details{}, fmt.Errorf("%w: bio must be at most %d characters", ErrInvalidInput, maxBioLength)
	}

	seen := make(map[string]struct{}, len(input.Languages))
	for _, lang := range input.Languages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		key := strings.ToLower(lang)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		details.Languages = append(details.Languages, lang)
	}
	if len(details.Languages) > maxLanguagesCount {
		return onboarding.Details{}, fmt.Errorf("%w: at most %d languages", ErrInvalidInput, maxLanguagesCount)
	}
	return details, nil
}
