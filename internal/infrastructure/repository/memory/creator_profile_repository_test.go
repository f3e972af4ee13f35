package memory

import (
	"testing"

	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatorProfileRepository_MarkCompletedRequiresFinalStep(t *testing.T) {
	repo := NewCreatorProfileRepository()
	ctx := t.Context()

	require.NoError(t, repo.CreateIfAbsent(ctx, onboarding.CreatorProfile{ID: "c1", UserID: "u1"}))

	marked, err := repo.MarkCompleted(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, marked)

	profile, ok, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, onboarding.FirstStep, profile.OnboardingStep)
	assert.False(t, profile.OnboardingCompleted)

	raised, err := repo.RaiseStep(ctx, "c1", onboarding.LastStep)
	require.NoError(t, err)
	require.True(t, raised)

	marked, err = repo.MarkCompleted(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = repo.MarkCompleted(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, marked)

	profile, _, err = repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, onboarding.LastStep, profile.OnboardingStep)
	assert.True(t, profile.OnboardingCompleted)
}

func TestCreatorProfileRepository_MarkCompletedUnknownProfile(t *testing.T) {
	marked, err := NewCreatorProfileRepository().MarkCompleted(t.Context(), "missing")
	require.NoError(t, err)
	assert.False(t, marked)
}
