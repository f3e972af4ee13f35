package pricing

import "context"

type Repository interface {
	ListByCreator(ctx context.Context, creatorID string) ([]Package, error)
	Insert(ctx context.Context, item Package) error
	Update(ctx context.Context, item Package) (bool, error)
	Delete(ctx context.Context, creatorID, packageID string) (bool, error)
}
