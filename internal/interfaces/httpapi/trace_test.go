package httpapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	assert.True(t, shouldCreateHTTPAPISpan("httpapi.Handler.GetOnboarding"))
	assert.False(t, shouldCreateHTTPAPISpan("httpapi.RequireRole"))
	assert.False(t, shouldCreateHTTPAPISpan("httpapi.writeError"))
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /HEALTHZ "} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/creator/onboarding", "/v1/creators/c-1", "/", "/docs"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx, span := startSpan(context.Background(), "httpapi.Handler.Healthz")
	defer span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.Equal(t, context.Background(), ctx)
}

func TestStartSpan_HelperReusesParent(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	assert.Equal(t, ctx, got)
	assert.Equal(t, parent.SpanID(), trace.SpanContextFromContext(got).SpanID())
}
