package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/creator-booking/internal/domain/banking"
)

// BankingRepository stores whatever it is given; sealing happens in the
// service before details reach a repository.
type BankingRepository struct {
	mu    sync.RWMutex
	items map[string]banking.Details
}

func NewBankingRepository() *BankingRepository {
	return &BankingRepository{items: make(map[string]banking.Details)}
}

func (r *BankingRepository) GetByCreator(_ context.Context, creatorID string) (banking.Details, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[creatorID]
	return item, ok, nil
}

func (r *BankingRepository) Upsert(_ context.Context, details banking.Details) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[details.CreatorID] = details
	return nil
}
