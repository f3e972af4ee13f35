package hostedauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

const (
	adminTokenIssuer = "creator-booking"
	defaultLeeway    = 30 * time.Second
)

// JWTVerifier validates HS256 session tokens locally with the shared project
// secret. Admin tokens minted by Issuer verify here as well.
type JWTVerifier struct {
	secret []byte
	logger *logging.Logger
	now    func() time.Time
}

func NewJWTVerifier(secret string, logger *logging.Logger) *JWTVerifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &JWTVerifier{
		secret: []byte(secret),
		logger: logger,
		now:    time.Now,
	}
}

func (v *JWTVerifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	principal, _, err := v.verify(ctx, token)
	return principal, err
}

func (v *JWTVerifier) verify(ctx context.Context, token string) (user.Principal, time.Time, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if len(v.secret) == 0 {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: jwt secret is not configured", usecase.ErrDependencyUnavailable)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(defaultLeeway),
		jwt.WithTimeFunc(v.now),
	)
	claims := &sessionClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		v.logger.DebugContext(ctx, "session token rejected", "error", err)
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: invalid session token: %v", usecase.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: session token is not valid", usecase.ErrUnauthorized)
	}

	principal, err := principalFromClaims(claims)
	if err != nil {
		return user.Principal{}, time.Time{}, err
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return principal, expiresAt, nil
}

func principalFromClaims(claims *sessionClaims) (user.Principal, error) {
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return user.Principal{}, fmt.Errorf("%w: session token has no subject", usecase.ErrUnauthorized)
	}
	role, err := resolveRole(claims.AppMetadata, claims.UserMetadata, claims.Role)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrUnauthorized, err)
	}
	return user.Principal{
		UserID: subject,
		Email:  strings.TrimSpace(claims.Email),
		Role:   role,
	}, nil
}

// Issuer mints short-lived admin session tokens after a credential login.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *Issuer) IssueAdmin(subject string) (string, time.Time, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("admin subject is required")
	}
	if len(i.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: jwt secret is not configured", usecase.ErrDependencyUnavailable)
	}

	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)
	claims := sessionClaims{
		Role:        string(user.RoleAdmin),
		AppMetadata: map[string]any{"role": string(user.RoleAdmin)},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    adminTokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, expiresAt, nil
}
