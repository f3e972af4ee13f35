package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/creator-booking/internal/domain/availability"
)

type AvailabilityRepository struct {
	mu    sync.RWMutex
	items map[string]map[int]availability.Slot
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{items: make(map[string]map[int]availability.Slot)}
}

func (r *AvailabilityRepository) ListByCreator(_ context.Context, creatorID string) ([]availability.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	days := r.items[creatorID]
	out := make([]availability.Slot, 0, len(days))
	for _, slot := range days {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (r *AvailabilityRepository) Upsert(_ context.Context, slot availability.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	days, ok := r.items[slot.CreatorID]
	if !ok {
		days = make(map[int]availability.Slot, 7)
		r.items[slot.CreatorID] = days
	}
	days[int(slot.DayOfWeek)] = slot
	return nil
}
