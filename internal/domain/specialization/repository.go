package specialization

import "context"

type Repository interface {
	ListByCreator(ctx context.Context, creatorID string) ([]Specialization, error)
	Insert(ctx context.Context, item Specialization) error
	Delete(ctx context.Context, creatorID string, category Category) (bool, error)
	UpdateSkillLevel(ctx context.Context, creatorID string, category Category, level SkillLevel) (bool, error)
}
