package usecase

import (
	"strings"
	"testing"

	"github.com/riskibarqy/creator-booking/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/creator-booking/internal/platform/fieldcrypt"
	idgen "github.com/riskibarqy/creator-booking/internal/platform/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *fieldcrypt.Cipher {
	t.Helper()

	cipher, err := fieldcrypt.New([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)
	return cipher
}

func TestBankingService_SaveSealsAndMasks(t *testing.T) {
	profiles := memory.NewCreatorProfileRepository()
	_, err := NewOnboardingService(profiles, idgen.NewSequence("creator"), nil).Start(t.Context(), "user-1")
	require.NoError(t, err)

	repo := memory.NewBankingRepository()
	service := NewBankingService(profiles, repo, newTestCipher(t), nil)
	ctx := t.Context()

	empty, err := service.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, empty.Saved)

	saved, err := service.Save(ctx, SaveBankingInput{
		UserID:        "user-1",
		AccountHolder: "Dewi Lestari",
		BankName:      "BCA",
		AccountNumber: "1234 5678 9012",
		RoutingCode:   "014",
	})
	require.NoError(t, err)
	assert.Equal(t, "********9012", saved.Details.AccountNumber)
	assert.Equal(t, "***", saved.Details.RoutingCode)

	stored, ok, err := repo.GetByCreator(ctx, "creator-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(stored.AccountNumber, "v1:"), "account number must be sealed at rest")

	got, err := service.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, got.Saved)
	assert.Equal(t, "********9012", got.Details.AccountNumber)
	assert.Equal(t, "BCA", got.Details.BankName)
}

func TestBankingService_SaveRequiresAccountOrHandle(t *testing.T) {
	profiles := memory.NewCreatorProfileRepository()
	_, err := NewOnboardingService(profiles, idgen.NewSequence("creator"), nil).Start(t.Context(), "user-1")
	require.NoError(t, err)

	service := NewBankingService(profiles, memory.NewBankingRepository(), newTestCipher(t), nil)

	_, err = service.Save(t.Context(), SaveBankingInput{UserID: "user-1", BankName: "BCA"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	view, err := service.Save(t.Context(), SaveBankingInput{UserID: "user-1", PaymentHandle: "@dewi"})
	require.NoError(t, err)
	assert.Equal(t, "@dewi", view.Details.PaymentHandle)
}
