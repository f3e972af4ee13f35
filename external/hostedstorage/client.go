package hostedstorage

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/riskibarqy/creator-booking/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	objectPrefix       = "/storage/v1/object/"
	defaultTimeout     = 60 * time.Second
	defaultCacheMaxAge = 3600
	maxErrorBodyBytes  = 4096
)

var errStorageTransient = crerr.New("hosted storage transient failure")

type Config struct {
	HTTPClient     *http.Client
	BaseURL        string
	Bucket         string
	ServiceKey     string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client talks to the hosted object storage REST API. Objects live in a
// single public bucket.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	serviceKey string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid STORAGE_BASE_URL")
	}
	bucket := strings.Trim(strings.TrimSpace(cfg.Bucket), "/")
	if bucket == "" {
		return nil, crerr.New("storage bucket is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		bucket:     bucket,
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		logger:     logger,
		breaker: resilience.NewCircuitBreaker("hosted_storage", cfg.CircuitBreaker,
			resilience.WithFailureClassifier(IsTransient),
			resilience.WithStateChange(func(name string, from, to resilience.CircuitState) {
				logger.Warn("circuit breaker state changed", "dependency", name, "from", string(from), "to", string(to))
			}),
		),
	}, nil
}

func (c *Client) Upload(ctx context.Context, path, contentType string, size int64, body io.Reader) error {
	objectPath, err := cleanObjectPath(path)
	if err != nil {
		return err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	n, err := buf.ReadFrom(body)
	if err != nil {
		return crerr.Wrap(err, "read upload body")
	}
	if size >= 0 && n != size {
		return crerr.Newf("upload size mismatch: declared %d, read %d", size, n)
	}

	c.annotate(ctx, http.MethodPost, objectPath, n)
	resp, err := c.do(ctx, http.MethodPost, c.objectURL(objectPath), bytes.NewReader(buf.B), func(req *http.Request) {
		req.ContentLength = n
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Cache-Control", "max-age="+strconv.Itoa(defaultCacheMaxAge))
		req.Header.Set("x-upsert", "false")
	})
	if err != nil {
		return fmt.Errorf("upload object path=%s: %w", objectPath, err)
	}
	defer closeBody(resp)

	if resp.StatusCode/100 != 2 {
		return c.statusError(resp, "upload object", objectPath)
	}
	c.breaker.Record(nil)

	c.logger.DebugContext(ctx, "storage object uploaded", "path", objectPath, "bytes", n, "content_type", contentType)
	return nil
}

func (c *Client) Delete(ctx context.Context, path string) error {
	objectPath, err := cleanObjectPath(path)
	if err != nil {
		return err
	}

	c.annotate(ctx, http.MethodDelete, objectPath, 0)
	resp, err := c.do(ctx, http.MethodDelete, c.objectURL(objectPath), nil, nil)
	if err != nil {
		return fmt.Errorf("delete object path=%s: %w", objectPath, err)
	}
	defer closeBody(resp)

	if resp.StatusCode/100 != 2 {
		return c.statusError(resp, "delete object", objectPath)
	}
	c.breaker.Record(nil)
	return nil
}

func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	objectPath, err := cleanObjectPath(path)
	if err != nil {
		return false, err
	}

	c.annotate(ctx, http.MethodHead, objectPath, 0)
	resp, err := c.do(ctx, http.MethodHead, c.baseURL+objectPrefix+"authenticated/"+c.bucket+"/"+escapePath(objectPath), nil, nil)
	if err != nil {
		return false, fmt.Errorf("stat object path=%s: %w", objectPath, err)
	}
	defer closeBody(resp)

	if resp.StatusCode/100 == 2 {
		c.breaker.Record(nil)
		return true, nil
	}
	statusErr := c.statusError(resp, "stat object", objectPath)
	if stderrors.Is(statusErr, portfolio.ErrObjectNotFound) {
		return false, nil
	}
	return false, statusErr
}

func (c *Client) PublicURL(path string) string {
	objectPath := strings.Trim(strings.TrimSpace(path), "/")
	return c.baseURL + objectPrefix + "public/" + c.bucket + "/" + escapePath(objectPath)
}

func (c *Client) objectURL(objectPath string) string {
	return c.baseURL + objectPrefix + c.bucket + "/" + escapePath(objectPath)
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, decorate func(*http.Request)) (*http.Response, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "storage circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("hosted storage is temporarily unavailable: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, crerr.Wrap(err, "create storage request")
	}
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
		req.Header.Set("apikey", c.serviceKey)
	}
	if decorate != nil {
		decorate(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: %s %s: %v", errStorageTransient, method, target, err)
		c.breaker.Record(callErr)
		return nil, callErr
	}
	return resp, nil
}

// statusError turns a non-2xx response into an error and records it with
// the breaker. The storage API reports a missing object either as 404 or as
// 400 with a not_found error code.
func (c *Client) statusError(resp *http.Response, op, objectPath string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	if resp.StatusCode == http.StatusNotFound || isNotFoundBody(resp.StatusCode, raw) {
		c.breaker.Record(nil)
		return fmt.Errorf("%s: %w: %s", op, portfolio.ErrObjectNotFound, objectPath)
	}
	if isRetryableStatus(resp.StatusCode) {
		callErr := fmt.Errorf("%w: %s path=%s status=%d body=%s", errStorageTransient, op, objectPath, resp.StatusCode, strings.TrimSpace(string(raw)))
		c.breaker.Record(callErr)
		return callErr
	}

	callErr := crerr.Newf("%s path=%s status=%d body=%s", op, objectPath, resp.StatusCode, strings.TrimSpace(string(raw)))
	c.breaker.Record(callErr)
	return callErr
}

func (c *Client) annotate(ctx context.Context, method, objectPath string, size int64) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("storage.method", method),
		attribute.String("storage.bucket", c.bucket),
		attribute.String("storage.path", objectPath),
		attribute.Int64("storage.bytes", size),
	)
}

// IsTransient reports whether err came from a failure worth retrying later.
func IsTransient(err error) bool {
	return stderrors.Is(err, errStorageTransient) || stderrors.Is(err, resilience.ErrCircuitOpen)
}

type storageErrorBody struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
}

func isNotFoundBody(status int, raw []byte) bool {
	if status != http.StatusBadRequest || len(raw) == 0 {
		return false
	}
	var body storageErrorBody
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return false
	}
	return body.StatusCode == "404" || strings.EqualFold(body.Error, "not_found")
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func cleanObjectPath(path string) (string, error) {
	cleaned := strings.Trim(strings.TrimSpace(path), "/")
	if cleaned == "" {
		return "", crerr.New("object path is required")
	}
	for _, segment := range strings.Split(cleaned, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", crerr.Newf("invalid object path %q", path)
		}
	}
	return cleaned, nil
}

func escapePath(objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
	_ = resp.Body.Close()
}
