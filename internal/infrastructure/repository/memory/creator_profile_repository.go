package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
)

type CreatorProfileRepository struct {
	mu     sync.RWMutex
	items  map[string]onboarding.CreatorProfile
	byUser map[string]string
	now    func() time.Time
}

func NewCreatorProfileRepository() *CreatorProfileRepository {
	return &CreatorProfileRepository{
		items:  make(map[string]onboarding.CreatorProfile),
		byUser: make(map[string]string),
		now:    time.Now,
	}
}

func (r *CreatorProfileRepository) GetByUserID(_ context.Context, userID string) (onboarding.CreatorProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return onboarding.CreatorProfile{}, false, nil
	}
	return cloneProfile(r.items[id]), true, nil
}

func (r *CreatorProfileRepository) GetByID(_ context.Context, id string) (onboarding.CreatorProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.items[id]
	if !ok {
		return onboarding.CreatorProfile{}, false, nil
	}
	return cloneProfile(profile), true, nil
}

func (r *CreatorProfileRepository) CreateIfAbsent(_ context.Context, profile onboarding.CreatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUser[profile.UserID]; exists {
		return nil
	}
	if profile.OnboardingStep < onboarding.FirstStep {
		profile.OnboardingStep = onboarding.FirstStep
	}
	r.items[profile.ID] = cloneProfile(profile)
	r.byUser[profile.UserID] = profile.ID
	return nil
}

func (r *CreatorProfileRepository) RaiseStep(_ context.Context, id string, step onboarding.Step) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.items[id]
	if !ok || profile.OnboardingCompleted {
		return false, nil
	}
	if step > profile.OnboardingStep {
		profile.OnboardingStep = step
	}
	profile.UpdatedAt = r.now().UTC()
	r.items[id] = profile
	return true, nil
}

func (r *CreatorProfileRepository) MarkCompleted(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.items[id]
	if !ok || profile.OnboardingCompleted || profile.OnboardingStep < onboarding.LastStep {
		return false, nil
	}
	profile.OnboardingCompleted = true
	profile.UpdatedAt = r.now().UTC()
	r.items[id] = profile
	return true, nil
}

func (r *CreatorProfileRepository) UpdateDetails(_ context.Context, id string, details onboarding.Details) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.items[id]
	if !ok || details.Revision <= profile.DetailsRevision {
		return false, nil
	}
	profile.State = details.State
	profile.City = details.City
	profile.Location = details.Location
	profile.Bio = details.Bio
	profile.Languages = append([]string(nil), details.Languages...)
	profile.DetailsRevision = details.Revision
	profile.UpdatedAt = r.now().UTC()
	r.items[id] = profile
	return true, nil
}

func (r *CreatorProfileRepository) List(_ context.Context, filter onboarding.ListFilter) ([]onboarding.CreatorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]onboarding.CreatorProfile, 0, len(r.items))
	for _, profile := range r.items {
		if filter.Completed != nil && profile.OnboardingCompleted != *filter.Completed {
			continue
		}
		out = append(out, cloneProfile(profile))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return paginate(out, filter.Limit, filter.Offset), nil
}

func cloneProfile(p onboarding.CreatorProfile) onboarding.CreatorProfile {
	copied := p
	copied.Languages = append([]string(nil), p.Languages...)
	return copied
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
