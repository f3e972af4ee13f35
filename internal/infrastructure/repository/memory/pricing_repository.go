package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
)

type PricingRepository struct {
	mu    sync.RWMutex
	items map[string]pricing.Package
}

func NewPricingRepository() *PricingRepository {
	return &PricingRepository{items: make(map[string]pricing.Package)}
}

func (r *PricingRepository) ListByCreator(_ context.Context, creatorID string) ([]pricing.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pricing.Package, 0)
	for _, item := range r.items {
		if item.CreatorID == creatorID {
			out = append(out, clonePackage(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PricingRepository) Insert(_ context.Context, item pricing.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = clonePackage(item)
	return nil
}

func (r *PricingRepository) Update(_ context.Context, item pricing.Package) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok || existing.CreatorID != item.CreatorID {
		return false, nil
	}
	item.CreatedAt = existing.CreatedAt
	r.items[item.ID] = clonePackage(item)
	return true, nil
}

func (r *PricingRepository) Delete(_ context.Context, creatorID, packageID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[packageID]
	if !ok || existing.CreatorID != creatorID {
		return false, nil
	}
	delete(r.items, packageID)
	return true, nil
}

func clonePackage(p pricing.Package) pricing.Package {
	copied := p
	copied.Includes = append([]string(nil), p.Includes...)
	return copied
}
