package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/creator-booking/internal/domain/onboarding"
	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/riskibarqy/creator-booking/internal/domain/user"
	"github.com/riskibarqy/creator-booking/internal/platform/resilience"
	"github.com/riskibarqy/creator-booking/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
		wantCode   string
	}{
		{"conflict", fmt.Errorf("%w: %w", usecase.ErrConflict, onboarding.ErrCompleted), http.StatusConflict, "onboardingCompleted", "ABORTED"},
		{"no session", user.ErrNoSession, http.StatusUnauthorized, "noSession", "UNAUTHENTICATED"},
		{"role mismatch", fmt.Errorf("%w: have creator, want admin", user.ErrRoleMismatch), http.StatusForbidden, "roleMismatch", "PERMISSION_DENIED"},
		{"step not reached", fmt.Errorf("%w: %w", usecase.ErrInvalidInput, onboarding.ErrStepNotReached), http.StatusBadRequest, "stepNotReached", "INVALID_ARGUMENT"},
		{"portfolio cap", fmt.Errorf("%w: %w", usecase.ErrInvalidInput, portfolio.ErrTooManyItems), http.StatusBadRequest, "portfolioLimitExceeded", "INVALID_ARGUMENT"},
		{"circuit open", fmt.Errorf("upload: %w", resilience.ErrCircuitOpen), http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
		{"payload too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "payloadTooLarge", "OUT_OF_RANGE"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError", "INTERNAL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(context.Background(), tc.err)
			if got.HTTPStatus != tc.wantStatus || got.Reason != tc.wantReason || got.Status != tc.wantCode {
				t.Fatalf("expected %d/%s/%s, got %d/%s/%s", tc.wantStatus, tc.wantReason, tc.wantCode, got.HTTPStatus, got.Reason, got.Status)
			}
		})
	}
}

func TestMultipartError_KeepsMaxBytes(t *testing.T) {
	err := multipartError(&http.MaxBytesError{Limit: 1})
	if got := mapError(context.Background(), err).HTTPStatus; got != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", got)
	}

	err = multipartError(fmt.Errorf("no multipart boundary param in Content-Type"))
	if got := mapError(context.Background(), err).HTTPStatus; got != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("pq: relation \"creator_profiles\" does not exist"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "creator_profiles") || !strings.Contains(body, "internal server error") {
		t.Fatalf("unexpected body: %s", body)
	}
}
