package availability

import "context"

type Repository interface {
	ListByCreator(ctx context.Context, creatorID string) ([]Slot, error)
	// Upsert writes the row keyed by (creator, day of week).
	Upsert(ctx context.Context, slot Slot) error
}
