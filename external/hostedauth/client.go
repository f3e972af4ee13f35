package hostedauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/riskibarqy/creator-booking/internal/platform/resilience"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

const (
	userPath               = "/auth/v1/user"
	defaultTimeout         = 5 * time.Second
	defaultCacheMaxEntries = 10000
	maxUserResponseBytes   = 1 << 20
)

var errAuthTransient = crerr.New("hosted auth transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
	CircuitBreaker  resilience.CircuitBreakerConfig
	Logger          *logging.Logger
}

// Client resolves a session by asking the hosted auth service who owns the
// token. It is the fallback for tokens the local verifier cannot check.
type Client struct {
	httpClient *http.Client
	userURL    string
	apiKey     string
	logger     *logging.Logger
	cache      *principalCache
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxEntries := cfg.CacheMaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultCacheMaxEntries
	}

	return &Client{
		httpClient: httpClient,
		userURL:    buildURL(cfg.BaseURL, userPath),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		cache:      newPrincipalCache(cfg.CacheTTL, maxEntries),
		breaker: resilience.NewCircuitBreaker("hosted_auth", cfg.CircuitBreaker,
			resilience.WithFailureClassifier(isCircuitFailure),
			resilience.WithStateChange(logStateChange(logger)),
		),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if principal, ok := c.cache.Get(key); ok {
		return principal, nil
	}

	value, err, _ := c.flight.DoContext(ctx, key, func() (any, error) {
		principal, err := c.fetchUser(ctx, token)
		if err != nil {
			return user.Principal{}, err
		}
		c.cache.Set(key, principal, time.Time{})
		return principal, nil
	})
	if err != nil {
		return user.Principal{}, err
	}
	return value.(user.Principal), nil
}

func (c *Client) fetchUser(ctx context.Context, token string) (user.Principal, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "hosted auth circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: hosted auth is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create hosted auth request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: %w: request hosted auth user: %v", usecase.ErrDependencyUnavailable, errAuthTransient, err)
		c.breaker.Record(callErr)
		return user.Principal{}, callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserResponseBytes))
	if err != nil {
		callErr := fmt.Errorf("%w: %w: read hosted auth response: %v", usecase.ErrDependencyUnavailable, errAuthTransient, err)
		c.breaker.Record(callErr)
		return user.Principal{}, callErr
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.breaker.Record(nil)
		return user.Principal{}, fmt.Errorf("%w: session rejected by hosted auth", usecase.ErrUnauthorized)
	case isRetryableStatus(resp.StatusCode):
		callErr := fmt.Errorf("%w: %w: hosted auth status=%d", usecase.ErrDependencyUnavailable, errAuthTransient, resp.StatusCode)
		c.breaker.Record(callErr)
		c.logger.WarnContext(ctx, "hosted auth unavailable", "status_code", resp.StatusCode)
		return user.Principal{}, callErr
	case resp.StatusCode != http.StatusOK:
		c.breaker.Record(nil)
		return user.Principal{}, crerr.Newf("hosted auth user lookup failed with status %d", resp.StatusCode)
	}
	c.breaker.Record(nil)

	var decoded userResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode hosted auth user")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, crerr.New("invalid hosted auth response: id is empty")
	}

	role, err := resolveRole(decoded.AppMetadata, decoded.UserMetadata, decoded.Role)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrUnauthorized, err)
	}
	return user.Principal{
		UserID: decoded.ID,
		Email:  strings.TrimSpace(decoded.Email),
		Role:   role,
	}, nil
}

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}
