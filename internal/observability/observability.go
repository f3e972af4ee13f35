// Package observability starts the process-wide tracing and profiling
// backends and stops them in reverse order.
package observability

import (
	"context"
	"errors"

	"github.com/riskibarqy/creator-booking/internal/config"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
)

// Stack holds whatever Start enabled. The zero value is an empty stack.
type Stack struct {
	stops  []namedStop
	pprof  *pprofServer
	logger *logging.Logger
}

type namedStop struct {
	name string
	stop func(context.Context) error
}

// Start enables each backend that cfg turns on. On failure the backends that
// already started are stopped before returning.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger.Named("observability")}

	if stop := startTracing(cfg, s.logger); stop != nil {
		s.push("uptrace", stop)
	}

	stopProfiler, err := startProfiler(cfg, s.logger)
	if err != nil {
		_ = s.Shutdown(ctx)
		return nil, err
	}
	if stopProfiler != nil {
		s.push("pyroscope", func(context.Context) error { return stopProfiler() })
	}

	if cfg.PprofEnabled {
		srv, err := startPprof(cfg.PprofAddr, s.logger)
		if err != nil {
			_ = s.Shutdown(ctx)
			return nil, err
		}
		s.pprof = srv
		s.push("pprof", srv.shutdown)
	}
	return s, nil
}

func (s *Stack) push(name string, stop func(context.Context) error) {
	s.stops = append(s.stops, namedStop{name: name, stop: stop})
}

// PprofAddr is the bound debug listener address, or "" when pprof is off.
func (s *Stack) PprofAddr() string {
	if s == nil || s.pprof == nil {
		return ""
	}
	return s.pprof.addr()
}

// Shutdown stops backends last-started first and joins their errors.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.stops) - 1; i >= 0; i-- {
		st := s.stops[i]
		if err := st.stop(ctx); err != nil {
			s.logger.ErrorContext(ctx, "stop backend", "backend", st.name, "error", err)
			errs = append(errs, err)
		}
	}
	s.stops = nil
	return errors.Join(errs...)
}
