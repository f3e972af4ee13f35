package hostedauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/platform/resilience"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

func TestClientVerifyAccessToken_SendsKeysAndParsesUser(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("unexpected apikey: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("unexpected authorization: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"id":            "user-123",
			"email":         "maker@example.com",
			"role":          "authenticated",
			"app_metadata":  map[string]any{"provider": "email"},
			"user_metadata": map[string]any{"role": "creator"},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		APIKey:         "anon-key",
		CacheTTL:       time.Minute,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	for i := 0; i < 3; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.UserID != "user-123" || principal.Email != "maker@example.com" || principal.Role != user.RoleCreator {
			t.Fatalf("unexpected principal: %+v", principal)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected cached verification after the first call, got %d upstream calls", got)
	}
}

func TestClientVerifyAccessToken_RejectedSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{HTTPClient: srv.Client(), BaseURL: srv.URL})

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_UserWithoutAppRole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{"id": "user-1", "role": "authenticated"})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{HTTPClient: srv.Client(), BaseURL: srv.URL})

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrUnauthorized) || !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("expected unauthorized invalid role, got %v", err)
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnUpstreamFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected open circuit to skip upstream, got %d calls", got)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})
	if _, err := client.VerifyAccessToken(context.Background(), " "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
