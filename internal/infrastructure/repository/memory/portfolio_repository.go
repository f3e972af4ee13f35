package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
)

type PortfolioRepository struct {
	mu    sync.RWMutex
	items map[string]portfolio.Item
}

func NewPortfolioRepository() *PortfolioRepository {
	return &PortfolioRepository{items: make(map[string]portfolio.Item)}
}

func (r *PortfolioRepository) ListByCreator(_ context.Context, creatorID string) ([]portfolio.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]portfolio.Item, 0)
	for _, item := range r.items {
		if item.CreatorID == creatorID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].ID < out[j].ID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *PortfolioRepository) GetByID(_ context.Context, creatorID, itemID string) (portfolio.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok || item.CreatorID != creatorID {
		return portfolio.Item{}, false, nil
	}
	return item, true, nil
}

func (r *PortfolioRepository) Insert(_ context.Context, item portfolio.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *PortfolioRepository) Delete(_ context.Context, creatorID, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok || item.CreatorID != creatorID {
		return false, nil
	}
	delete(r.items, itemID)
	return true, nil
}
