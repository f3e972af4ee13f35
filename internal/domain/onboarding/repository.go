package onboarding

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (CreatorProfile, bool, error)
	GetByID(ctx context.Context, id string) (CreatorProfile, bool, error)
	// CreateIfAbsent inserts the profile unless one already exists for its user.
	CreateIfAbsent(ctx context.Context, profile CreatorProfile) error
	// RaiseStep sets the step pointer to max(current, step) for an incomplete
	// profile. It reports false when no incomplete profile matched.
	RaiseStep(ctx context.Context, id string, step Step) (bool, error)
	// MarkCompleted flips onboarding_completed for a profile sitting on the
	// final step. It reports false when the flag was already set.
	MarkCompleted(ctx context.Context, id string) (bool, error)
	// UpdateDetails writes step 1 fields when details.Revision is newer than
	// the stored revision. It reports false for stale writes.
	UpdateDetails(ctx context.Context, id string, details Details) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]CreatorProfile, error)
}
