package banking

import "context"

type Repository interface {
	GetByCreator(ctx context.Context, creatorID string) (Details, bool, error)
	Upsert(ctx context.Context, details Details) error
}
