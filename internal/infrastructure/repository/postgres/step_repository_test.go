package postgres

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	"github.com/riskibarqy/creator-booking/internal/domain/banking"
	"github.com/riskibarqy/creator-booking/internal/domain/pricing"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecializationRepository_InsertIgnoresDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSpecializationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO creator_specializations (creator_id, category, skill_level) VALUES ($1, $2, $3)")).
		WithArgs("c1", "photography", "expert").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Insert(t.Context(), specialization.Specialization{
		CreatorID:  "c1",
		Category:   specialization.CategoryPhotography,
		SkillLevel: specialization.SkillExpert,
	})
	require.NoError(t, err)
}

func TestSpecializationRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSpecializationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM creator_specializations WHERE creator_id = $1 AND category = $2")).
		WithArgs("c1", "music").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(t.Context(), "c1", specialization.CategoryMusic)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAvailabilityRepository_ListFormatsTimes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT creator_id, day_of_week, available, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time, updated_at FROM creator_availability WHERE creator_id = $1 ORDER BY day_of_week")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"creator_id", "day_of_week", "available", "start_time", "end_time", "updated_at"}).
			AddRow("c1", 1, true, "10:00", "18:00", now))

	slots, err := repo.ListByCreator(t.Context(), "c1")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Monday, slots[0].DayOfWeek)
	assert.Equal(t, "10:00", slots[0].StartTime)
}

func TestAvailabilityRepository_UpsertOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityRepository(db)

	mock.ExpectExec(`INSERT INTO creator_availability \(creator_id, day_of_week, available, start_time, end_time\) VALUES \(\$1, \$2, \$3, \$4, \$5\) ON CONFLICT \(creator_id, day_of_week\)`).
		WithArgs("c1", 2, true, "09:00", "17:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(t.Context(), availability.Slot{
		CreatorID: "c1",
		DayOfWeek: time.Tuesday,
		Available: true,
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)
}

func TestBankingRepository_GetByCreatorMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBankingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM creator_banking_details WHERE creator_id = $1 LIMIT 1")).
		WithArgs("c1").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := repo.GetByCreator(t.Context(), "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPricingRepository_UpdateScopedToCreator(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPricingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("updated_at = NOW() WHERE creator_id = $6 AND id = $7")).
		WithArgs("Reel", "1 day", int64(5000), "", sqlmock.AnyArg(), "c2", "p1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Update(t.Context(), pricing.Package{
		ID:            "p1",
		CreatorID:     "c2",
		Name:          "Reel",
		DurationLabel: "1 day",
		Price:         5000,
	})
	require.NoError(t, err)
	assert.False(t, ok, "another creator's package is never matched")
}

func TestBankingRepository_UpsertOverwritesSealedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBankingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (creator_id) DO UPDATE SET account_holder = EXCLUDED.account_holder, "+
		"bank_name = EXCLUDED.bank_name, account_number_sealed = EXCLUDED.account_number_sealed, "+
		"routing_code_sealed = EXCLUDED.routing_code_sealed, payment_handle = EXCLUDED.payment_handle, updated_at = NOW()")).
		WithArgs("c1", "Dewi", "BNI", "sealed-acct", "sealed-routing", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(t.Context(), banking.Details{
		CreatorID:     "c1",
		AccountHolder: "Dewi",
		BankName:      "BNI",
		AccountNumber: "sealed-acct",
		RoutingCode:   "sealed-routing",
	})
	require.NoError(t, err)
}

func TestPortfolioRepository_MalformedItemIDIsMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPortfolioRepository(db)
	invalidUUID := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`}

	mock.ExpectQuery(regexp.QuoteMeta("FROM creator_portfolio_items WHERE creator_id = $1 AND id = $2 LIMIT 1")).
		WithArgs("c1", "not-a-uuid").
		WillReturnError(invalidUUID)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM creator_portfolio_items WHERE creator_id = $1 AND id = $2")).
		WithArgs("c1", "not-a-uuid").
		WillReturnError(invalidUUID)

	_, found, err := repo.GetByID(t.Context(), "c1", "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err := repo.Delete(t.Context(), "c1", "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreatorProfileRepository_MalformedIDIsMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCreatorProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM creator_profiles WHERE id = $1 LIMIT 1")).
		WithArgs("c-1").
		WillReturnError(&pq.Error{Code: "22P02"})

	_, found, err := repo.GetByID(t.Context(), "c-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPricingRepository_UpdateMalformedIDMatchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPricingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE creator_pricing_packages SET")).
		WillReturnError(&pq.Error{Code: "22P02"})

	updated, err := repo.Update(t.Context(), pricing.Package{ID: "pkg-x", CreatorID: "c1", Name: "Half day", Price: 1000})
	require.NoError(t, err)
	assert.False(t, updated)
}
