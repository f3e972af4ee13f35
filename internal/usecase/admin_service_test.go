package usecase

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/creator-booking/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/creator-booking/internal/platform/id"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type staticAdminIssuer struct {
	subject string
}

func (i *staticAdminIssuer) IssueAdmin(subject string) (string, time.Time, error) {
	i.subject = subject
	return "admin-token", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

type creatorFixture struct {
	repos        SnapshotRepositories
	onboarding   *OnboardingService
	specialities *SpecializationService
	pricing      *PricingService
	availability *AvailabilityService
	banking      *BankingService
}

func newCreatorFixture(t *testing.T) creatorFixture {
	t.Helper()

	repos := SnapshotRepositories{
		Profiles:        memory.NewCreatorProfileRepository(),
		Specializations: memory.NewSpecializationRepository(),
		Portfolio:       memory.NewPortfolioRepository(),
		Pricing:         memory.NewPricingRepository(),
		Availability:    memory.NewAvailabilityRepository(),
	}
	return creatorFixture{
		repos:        repos,
		onboarding:   NewOnboardingService(repos.Profiles, idgen.NewSequence("creator"), nil),
		specialities: NewSpecializationService(repos.Profiles, repos.Specializations, nil),
		pricing:      NewPricingService(repos.Profiles, repos.Pricing, idgen.NewSequence("pkg"), nil),
		availability: NewAvailabilityService(repos.Profiles, repos.Availability, nil),
		banking:      NewBankingService(repos.Profiles, memory.NewBankingRepository(), newTestCipher(t), nil),
	}
}

func TestAdminService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	fixture := newCreatorFixture(t)
	issuer := &staticAdminIssuer{}
	service := NewAdminService(AdminCredentials{Username: "ops", PasswordHash: string(hash)}, issuer, fixture.repos, fixture.banking, nil)

	session, err := service.Login(t.Context(), "ops", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin-token", session.Token)
	assert.Equal(t, "ops", issuer.subject)

	_, err = service.Login(t.Context(), "ops", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = service.Login(t.Context(), "other", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = service.Login(t.Context(), "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminService_RejectedLoginDoesNotLogUsername(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	var buf bytes.Buffer
	fixture := newCreatorFixture(t)
	service := NewAdminService(AdminCredentials{Username: "ops", PasswordHash: string(hash)}, &staticAdminIssuer{}, fixture.repos, fixture.banking, logging.NewWriter(&buf, logging.LevelInfo))

	_, err = service.Login(t.Context(), "s3cret-typed-as-username", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	line := buf.String()
	assert.Contains(t, line, "admin login rejected")
	assert.Contains(t, line, `"username_matched":false`)
	assert.NotContains(t, line, "s3cret-typed-as-username")
}

func TestAdminService_LoginNotConfigured(t *testing.T) {
	fixture := newCreatorFixture(t)
	service := NewAdminService(AdminCredentials{}, &staticAdminIssuer{}, fixture.repos, fixture.banking, nil)

	_, err := service.Login(t.Context(), "ops", "pw")
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestAdminService_ListAndSnapshot(t *testing.T) {
	fixture := newCreatorFixture(t)
	ctx := t.Context()

	_, err := fixture.onboarding.Start(ctx, "user-1")
	require.NoError(t, err)
	_, err = fixture.onboarding.Start(ctx, "user-2")
	require.NoError(t, err)
	_, err = fixture.banking.Save(ctx, SaveBankingInput{UserID: "user-1", PaymentHandle: "@one", AccountNumber: "99887766"})
	require.NoError(t, err)

	service := NewAdminService(AdminCredentials{}, &staticAdminIssuer{}, fixture.repos, fixture.banking, nil)

	incomplete := false
	page, err := service.ListCreators(ctx, ListCreatorsInput{Completed: &incomplete})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 50, page.Limit)

	_, err = service.ListCreators(ctx, ListCreatorsInput{Offset: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	snapshot, err := service.CreatorSnapshot(ctx, "creator-1")
	require.NoError(t, err)
	require.NotNil(t, snapshot.Banking)
	assert.Equal(t, "****7766", snapshot.Banking.AccountNumber)
	assert.Len(t, snapshot.Availability, 7)

	other, err := service.CreatorSnapshot(ctx, "creator-2")
	require.NoError(t, err)
	assert.Nil(t, other.Banking)

	_, err = service.CreatorSnapshot(ctx, "creator-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirectoryService_OnlyCompletedCreatorsWithoutBanking(t *testing.T) {
	fixture := newCreatorFixture(t)
	ctx := t.Context()
	directory := NewDirectoryService(fixture.repos, nil)

	_, err := fixture.onboarding.Start(ctx, "user-1")
	require.NoError(t, err)

	_, err = directory.GetCreator(ctx, "creator-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected incomplete creator to be hidden, got %v", err)
	}

	for from := 1; from < 6; from++ {
		_, err := fixture.onboarding.Advance(ctx, "user-1", from)
		require.NoError(t, err)
	}
	_, err = fixture.banking.Save(ctx, SaveBankingInput{UserID: "user-1", PaymentHandle: "@one"})
	require.NoError(t, err)
	_, err = fixture.onboarding.Complete(ctx, "user-1", 6)
	require.NoError(t, err)

	snapshot, err := directory.GetCreator(ctx, "creator-1")
	require.NoError(t, err)
	assert.Nil(t, snapshot.Banking)
	assert.True(t, snapshot.Profile.OnboardingCompleted)
}
