package hostedauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

func TestVerifier_RoutesByAlgorithm(t *testing.T) {
	t.Parallel()

	var remoteCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		remoteCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"id":           "user-remote",
			"app_metadata": map[string]any{"role": "influencer"},
		})
	}))
	defer srv.Close()

	verifier := NewVerifier(
		NewJWTVerifier(testSecret, nil),
		NewClient(ClientConfig{HTTPClient: srv.Client(), BaseURL: srv.URL}),
	)

	claims := hostedClaims("user-local", time.Now())
	claims.AppMetadata = map[string]any{"role": "creator"}
	local, err := verifier.VerifyAccessToken(context.Background(), signSession(t, jwt.SigningMethodHS256, testSecret, claims))
	if err != nil {
		t.Fatalf("verify hmac token: %v", err)
	}
	if local.UserID != "user-local" || local.Role != user.RoleCreator {
		t.Fatalf("unexpected local principal: %+v", local)
	}
	if remoteCalls.Load() != 0 {
		t.Fatalf("hmac token must not reach the remote verifier")
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SigningString()
	if err != nil {
		t.Fatalf("build es256 token: %v", err)
	}
	remote, err := verifier.VerifyAccessToken(context.Background(), unsigned+".c2ln")
	if err != nil {
		t.Fatalf("verify asymmetric token: %v", err)
	}
	if remote.UserID != "user-remote" || remote.Role != user.RoleInfluencer {
		t.Fatalf("unexpected remote principal: %+v", remote)
	}
}

func TestVerifier_NothingConfigured(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(nil, nil)
	_, err := verifier.VerifyAccessToken(context.Background(), "a.b.c")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
