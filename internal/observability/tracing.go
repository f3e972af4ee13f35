package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/creator-booking/internal/config"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// startTracing installs the Uptrace OpenTelemetry providers globally. It
// returns nil when tracing is off.
func startTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("tracing disabled", "reason", "no UPTRACE_DSN")
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("tracing enabled", "backend", "uptrace", "service_version", cfg.ServiceVersion, "logs", cfg.UptraceLogsEnabled)
	return uptrace.Shutdown
}
