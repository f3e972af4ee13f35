package portfolio

import (
	"context"
	"io"
)

type Repository interface {
	ListByCreator(ctx context.Context, creatorID string) ([]Item, error)
	GetByID(ctx context.Context, creatorID, itemID string) (Item, bool, error)
	Insert(ctx context.Context, item Item) error
	Delete(ctx context.Context, creatorID, itemID string) (bool, error)
}

// Storage is the hosted object store. Paths are namespaced under the
// uploading user's id.
type Storage interface {
	Upload(ctx context.Context, path, contentType string, size int64, body io.Reader) error
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
	Exists(ctx context.Context, path string) (bool, error)
}
