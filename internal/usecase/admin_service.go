package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminListLimit = 50
	maxAdminListLimit     = 200
)

// AdminTokenIssuer mints session tokens carrying the admin role.
type AdminTokenIssuer interface {
	IssueAdmin(subject string) (token string, expiresAt time.Time, err error)
}

type AdminCredentials struct {
	Username     string
	PasswordHash string
}

type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

type ListCreatorsInput struct {
	Completed *bool
	Limit     int
	Offset    int
}

// CreatorPage is one page of creator profiles with the limit that was
// actually applied.
type CreatorPage struct {
	Items  []onboarding.CreatorProfile
	Limit  int
	Offset int
}

type AdminService struct {
	creds  AdminCredentials
	issuer AdminTokenIssuer
	loader snapshotLoader
	logger *logging.Logger
}

func NewAdminService(creds AdminCredentials, issuer AdminTokenIssuer, repos SnapshotRepositories, bankingService *BankingService, logger *logging.Logger) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{
		creds:  creds,
		issuer: issuer,
		loader: snapshotLoader{repos: repos, banking: bankingService},
		logger: logger,
	}
}

// Login checks the configured admin credentials and issues a session token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AdminService) Login(ctx context.Context, username, password string) (AdminSession, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Login")
	defer span.End()

	if strings.TrimSpace(s.creds.Username) == "" || strings.TrimSpace(s.creds.PasswordHash) == "" {
		return AdminSession{}, fmt.Errorf("%w: admin login is not configured", ErrDependencyUnavailable)
	}
	if username == "" || password == "" {
		return AdminSession{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.creds.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		s.logger.WarnContext(ctx, "admin login rejected", "username_matched", userOK)
		return AdminSession{}, fmt.Errorf("%w: invalid admin credentials", ErrUnauthorized)
	}

	token, expiresAt, err := s.issuer.IssueAdmin(s.creds.Username)
	if err != nil {
		return AdminSession{}, fmt.Errorf("issue admin token: %w", err)
	}
	s.logger.InfoContext(ctx, "admin logged in", "username", s.creds.Username)
	return AdminSession{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AdminService) ListCreators(ctx context.Context, input ListCreatorsInput) (CreatorPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ListCreators")
	defer span.End()

	if input.Offset < 0 {
		return CreatorPage{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	limit := input.Limit
	switch {
	case limit <= 0:
		limit = defaultAdminListLimit
	case limit > maxAdminListLimit:
		limit = maxAdminListLimit
	}

	items, err := s.loader.repos.Profiles.List(ctx, onboarding.ListFilter{
		Completed: input.Completed,
		Limit:     limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return CreatorPage{}, fmt.Errorf("list creator profiles: %w", err)
	}
	return CreatorPage{Items: items, Limit: limit, Offset: input.Offset}, nil
}

// CreatorSnapshot returns any creator's full snapshot with banking masked.
func (s *AdminService) CreatorSnapshot(ctx context.Context, creatorID string) (CreatorSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.CreatorSnapshot")
	defer span.End()

	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return CreatorSnapshot{}, fmt.Errorf("%w: creator id is required", ErrInvalidInput)
	}

	profile, exists, err := s.loader.repos.Profiles.GetByID(ctx, creatorID)
	if err != nil {
		return CreatorSnapshot{}, fmt.Errorf("get creator profile: %w", err)
	}
	if !exists {
		return CreatorSnapshot{}, fmt.Errorf("%w: creator %s", ErrNotFound, creatorID)
	}

	snapshot, err := s.loader.load(ctx, profile, true)
	if err != nil {
		return CreatorSnapshot{}, fmt.Errorf("load creator snapshot: %w", err)
	}
	return snapshot, nil
}
