package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/creator-booking/internal/domain/availability"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/domain/specialization"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/platform/resilience"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "creator-booking"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// sentinelErrors maps use-case and session sentinels to HTTP. The first match
// wins.
var sentinelErrors = []struct {
	target error
	mapped mappedError
}{
	{user.ErrNoSession, mappedError{http.StatusUnauthorized, "noSession", "UNAUTHENTICATED"}},
	{user.ErrRoleMismatch, mappedError{http.StatusForbidden, "roleMismatch", "PERMISSION_DENIED"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrConflict, mappedError{http.StatusConflict, "conflict", "ABORTED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{resilience.ErrCircuitOpen, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError renders err in the error envelope. Messages of unmapped errors
// are replaced so internals do not leak to clients.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	msg := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, mapped.HTTPStatus, errorEnvelope(mapped, msg))
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorEnvelope(internalError, "internal server error"))
}

func errorEnvelope(m mappedError, msg string) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    m.HTTPStatus,
			Message: msg,
			Status:  m.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: m.Reason, Message: msg}},
		},
	}
}

// mapError picks the HTTP status from the sentinel chain and narrows the
// reason to the domain rule that failed, when there is one.
func mapError(_ context.Context, err error) mappedError {
	mapped := internalError
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		mapped = mappedError{http.StatusRequestEntityTooLarge, "payloadTooLarge", "OUT_OF_RANGE"}
	} else {
		for _, s := range sentinelErrors {
			if errors.Is(err, s.target) {
				mapped = s.mapped
				break
			}
		}
	}

	for _, d := range domainReasons {
		if errors.Is(err, d.target) {
			mapped.Reason = d.reason
			break
		}
	}
	return mapped
}

var domainReasons = []struct {
	target error
	reason string
}{
	{onboarding.ErrStepNotReached, "stepNotReached"},
	{onboarding.ErrFirstStep, "firstStep"},
	{onboarding.ErrFinalStep, "finalStep"},
	{onboarding.ErrNotFinalStep, "notFinalStep"},
	{onboarding.ErrCompleted, "onboardingCompleted"},
	{onboarding.ErrInvalidStep, "invalidStep"},
	{specialization.ErrUnknownCategory, "unknownCategory"},
	{specialization.ErrUnknownSkillLevel, "unknownSkillLevel"},
	{portfolio.ErrTooManyItems, "portfolioLimitExceeded"},
	{portfolio.ErrUnsupportedContent, "unsupportedContentType"},
	{availability.ErrInvalidDay, "invalidDay"},
	{availability.ErrInvalidClock, "invalidClock"},
	{availability.ErrInvalidRange, "invalidTimeRange"},
}

func multipartError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err)
}
