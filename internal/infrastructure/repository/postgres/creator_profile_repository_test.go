package postgres

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = mockDB.Close()
	})
	return sqlx.NewDb(mockDB, "postgres"), mock
}

const selectProfileByUser = "SELECT id, user_id, state, city, location, bio, languages, onboarding_step, onboarding_completed, details_revision, created_at, updated_at FROM creator_profiles WHERE user_id = $1 LIMIT 1"

func TestCreatorProfileRepository_GetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(creatorProfileColumns).
		AddRow("c1", "u1", "West Java", "Bandung", "Dago", "bio", "{English,Indonesian}", 3, false, int64(4), now, now)
	mock.ExpectQuery(regexp.QuoteMeta(selectProfileByUser)).
		WithArgs("u1").
		WillReturnRows(rows)

	profile, ok, err := repo.GetByUserID(t.Context(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c1", profile.ID)
	assert.Equal(t, onboarding.StepPortfolio, profile.OnboardingStep)
	assert.Equal(t, []string{"English", "Indonesian"}, profile.Languages)
	assert.Equal(t, int64(4), profile.DetailsRevision)
}

func TestCreatorProfileRepository_GetByUserIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectProfileByUser)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := repo.GetByUserID(t.Context(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreatorProfileRepository_CreateIfAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO creator_profiles (id, user_id, onboarding_step) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO NOTHING")).
		WithArgs("c1", "u1", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CreateIfAbsent(t.Context(), onboarding.CreatorProfile{ID: "c1", UserID: "u1"})
	require.NoError(t, err)
}

func TestCreatorProfileRepository_RaiseStepUsesGreatest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)
	query := regexp.QuoteMeta("UPDATE creator_profiles SET onboarding_step = GREATEST(onboarding_step, $1), updated_at = NOW() WHERE id = $2 AND onboarding_completed = $3")

	mock.ExpectExec(query).
		WithArgs(4, "c1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).
		WithArgs(5, "c1", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.RaiseStep(t.Context(), "c1", onboarding.StepPricing)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.RaiseStep(t.Context(), "c1", onboarding.StepAvailability)
	require.NoError(t, err)
	assert.False(t, ok, "completed profiles match no row")
}

func TestCreatorProfileRepository_MarkCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE creator_profiles SET onboarding_completed = $1, updated_at = NOW() WHERE id = $2 AND onboarding_completed = $3 AND onboarding_step >= $4")).
		WithArgs(true, "c1", false, 6).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkCompleted(t.Context(), "c1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreatorProfileRepository_UpdateDetailsGuardsRevision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE creator_profiles SET state = $1, city = $2, location = $3, bio = $4, languages = $5, details_revision = $6, updated_at = NOW() WHERE id = $7 AND details_revision < $8")).
		WithArgs("", "Bandung", "", "", sqlmock.AnyArg(), int64(2), "c1", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateDetails(t.Context(), "c1", onboarding.Details{City: "Bandung", Revision: 2})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreatorProfileRepository_ListFiltersCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	completed := true

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, state, city, location, bio, languages, onboarding_step, onboarding_completed, details_revision, created_at, updated_at FROM creator_profiles WHERE onboarding_completed = $1 ORDER BY created_at DESC, id LIMIT 10 OFFSET 20")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(creatorProfileColumns).
			AddRow("c9", "u9", "", "", "", "", "{}", 6, true, int64(0), now, now))

	items, err := repo.List(t.Context(), onboarding.ListFilter{Completed: &completed, Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].OnboardingCompleted)
	assert.Empty(t, items[0].Languages)
}
