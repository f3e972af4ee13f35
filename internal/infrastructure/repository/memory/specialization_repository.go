package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
)

type SpecializationRepository struct {
	mu    sync.RWMutex
	items map[string]specialization.Specialization
	now   func() time.Time
}

func NewSpecializationRepository() *SpecializationRepository {
	return &SpecializationRepository{
		items: make(map[string]specialization.Specialization),
		now:   time.Now,
	}
}

func (r *SpecializationRepository) ListByCreator(_ context.Context, creatorID string) ([]specialization.Specialization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]specialization.Specialization, 0)
	for _, item := range r.items {
		if item.CreatorID == creatorID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// Insert keeps an existing selection untouched.
func (r *SpecializationRepository) Insert(_ context.Context, item specialization.Specialization) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := specializationKey(item.CreatorID, item.Category)
	if _, exists := r.items[key]; exists {
		return nil
	}
	r.items[key] = item
	return nil
}

func (r *SpecializationRepository) Delete(_ context.Context, creatorID string, category specialization.Category) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := specializationKey(creatorID, category)
	if _, exists := r.items[key]; !exists {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

func (r *SpecializationRepository) UpdateSkillLevel(_ context.Context, creatorID string, category specialization.Category, level specialization.SkillLevel) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := specializationKey(creatorID, category)
	item, exists := r.items[key]
	if !exists {
		return false, nil
	}
	item.SkillLevel = level
	item.UpdatedAt = r.now().UTC()
	r.items[key] = item
	return true, nil
}

func specializationKey(creatorID string, category specialization.Category) string {
	return creatorID + "::" + string(category)
}
