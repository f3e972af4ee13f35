package hostedauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

type tokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

// Verifier checks HS256 tokens locally and hands every other algorithm to
// the remote client. Either side may be nil.
type Verifier struct {
	local  *JWTVerifier
	remote tokenVerifier
}

func NewVerifier(local *JWTVerifier, remote *Client) *Verifier {
	v := &Verifier{local: local}
	if remote != nil {
		v.remote = remote
	}
	return v
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if v.local != nil && len(v.local.secret) > 0 && signedWithHMAC(token) {
		return v.local.VerifyAccessToken(ctx, token)
	}
	if v.remote != nil {
		return v.remote.VerifyAccessToken(ctx, token)
	}
	return user.Principal{}, fmt.Errorf("%w: no verifier accepts this token", usecase.ErrUnauthorized)
}

func signedWithHMAC(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	alg, _ := parsed.Header["alg"].(string)
	return alg == jwt.SigningMethodHS256.Name
}
