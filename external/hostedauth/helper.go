package hostedauth

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/riskibarqy/creator-booking/internal/platform/resilience"
)

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errAuthTransient)
}

func logStateChange(logger *logging.Logger) func(string, resilience.CircuitState, resilience.CircuitState) {
	return func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "dependency", name, "from", string(from), "to", string(to))
	}
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
