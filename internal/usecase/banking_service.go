package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/banking"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

// FieldCipher seals sensitive columns before they reach a repository.
type FieldCipher interface {
	Seal(value string) (string, error)
	Open(value string) (string, error)
}

type SaveBankingInput struct {
	UserID        string
	AccountHolder string
	BankName      string
	AccountNumber string
	RoutingCode   string
	PaymentHandle string
}

type BankingView struct {
	Details banking.Details
	Saved   bool
}

type BankingService struct {
	profileRepo onboarding.Repository
	repo        banking.Repository
	cipher      FieldCipher
	logger      *logging.Logger
	now         func() time.Time
}

func NewBankingService(profileRepo onboarding.Repository, repo banking.Repository, cipher FieldCipher, logger *logging.Logger) *BankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BankingService{
		profileRepo: profileRepo,
		repo:        repo,
		cipher:      cipher,
		logger:      logger,
		now:         time.Now,
	}
}

// Get returns the creator's banking details with account numbers masked.
func (s *BankingService) Get(ctx context.Context, userID string) (BankingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BankingService.Get", userAttr(userID))
	defer span.End()

	profile, err := resolveCreator(ctx, s.profileRepo, userID)
	if err != nil {
		return BankingView{}, err
	}
	details, saved, err := s.maskedForCreator(ctx, profile.ID)
	if err != nil {
		return BankingView{}, err
	}
	return BankingView{Details: details, Saved: saved}, nil
}

// Save stores banking details. Either a full bank account (holder, bank
// and account number) or a payment handle must be given.
func (s *BankingService) Save(ctx context.Context, input SaveBankingInput) (BankingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BankingService.Save")
	defer span.End()

	details := banking.Details{
		AccountHolder: strings.TrimSpace(input.AccountHolder),
		BankName:      strings.TrimSpace(input.BankName),
		AccountNumber: strings.ReplaceAll(strings.TrimSpace(input.AccountNumber), " ", ""),
		RoutingCode:   strings.ReplaceAll(strings.TrimSpace(input.RoutingCode), " ", ""),
		PaymentHandle: strings.TrimSpace(input.PaymentHandle),
	}
	hasAccount := details.AccountHolder != "" && details.BankName != "" && details.AccountNumber != ""
	if !hasAccount && details.PaymentHandle == "" {
		return BankingView{}, fmt.Errorf("%w: provide account holder, bank name and account number, or a payment handle", ErrInvalidInput)
	}

	profile, err := resolveCreator(ctx, s.profileRepo, input.UserID)
	if err != nil {
		return BankingView{}, err
	}
	details.CreatorID = profile.ID
	details.UpdatedAt = s.now().UTC()

	sealed := details
	if sealed.AccountNumber, err = s.cipher.Seal(details.AccountNumber); err != nil {
		return BankingView{}, fmt.Errorf("seal account number: %w", err)
	}
	if sealed.RoutingCode, err = s.cipher.Seal(details.RoutingCode); err != nil {
		return BankingView{}, fmt.Errorf("seal routing code: %w", err)
	}

	if err := s.repo.Upsert(ctx, sealed); err != nil {
		s.logger.WarnContext(ctx, "banking details save failed", "creator_id", profile.ID, "error", err)
		return BankingView{}, fmt.Errorf("upsert banking details: %w", err)
	}

	s.logger.InfoContext(ctx, "banking details saved", "creator_id", profile.ID)
	return BankingView{Details: details.Masked(), Saved: true}, nil
}

func (s *BankingService) maskedForCreator(ctx context.Context, creatorID string) (banking.Details, bool, error) {
	stored, exists, err := s.repo.GetByCreator(ctx, creatorID)
	if err != nil {
		return banking.Details{}, false, fmt.Errorf("get banking details: %w", err)
	}
	if !exists {
		return banking.Details{CreatorID: creatorID}, false, nil
	}

	if stored.AccountNumber, err = s.cipher.Open(stored.AccountNumber); err != nil {
		return banking.Details{}, false, fmt.Errorf("open account number: %w", err)
	}
	if stored.RoutingCode, err = s.cipher.Open(stored.RoutingCode); err != nil {
		return banking.Details{}, false, fmt.Errorf("open routing code: %w", err)
	}
	return stored.Masked(), true, nil
}
