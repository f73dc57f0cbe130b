package fileops

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"jetpack/internal/logging"
)

const (
	// defaultMaxInFlight bounds concurrently running async operations.
	defaultMaxInFlight = 4
	// rateLimitBurst is the dispatch burst when throttling is enabled.
	rateLimitBurst = 1
)

// SchedulerConfig holds async execution limits.
type SchedulerConfig struct {
	// MaxInFlight is the number of operations that may run at once.
	// Zero or less means the default of 4.
	MaxInFlight int
	// OpsPerSecond throttles how fast operations start. Zero or less
	// disables throttling.
	OpsPerSecond float64
}

// Scheduler runs async operations with bounded concurrency.
type Scheduler struct {
	slots   chan struct{}
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewScheduler creates a scheduler. A nil logger discards output.
func NewScheduler(cfg SchedulerConfig, logger *slog.Logger) *Scheduler {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = defaultMaxInFlight
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	s := &Scheduler{
		slots:  make(chan struct{}, cfg.MaxInFlight),
		logger: logger,
	}
	if cfg.OpsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.OpsPerSecond), rateLimitBurst)
	}
	return s
}

// acquire takes a slot. It fails without taking one if ctx is done first.
func (s *Scheduler) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) release() {
	<-s.slots
}

// submit runs fn on its own goroutine once a slot is free. After it starts,
// fn runs to completion even if ctx is cancelled.
func submit[T any](ctx context.Context, s *Scheduler, op, path string, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	logger := logging.ForOperation(s.logger, op, path).With(logging.KeyOpID, uuid.NewString())

	go func() {
		if err := s.acquire(ctx); err != nil {
			logger.DebugContext(ctx, "Async operation not started", "error", err)
			var zero T
			f.resolve(zero, err)
			return
		}
		defer s.release()

		runCtx := context.WithoutCancel(ctx)
		start := time.Now()
		logger.DebugContext(runCtx, "Async operation started")

		value, err := fn(runCtx)
		if err != nil {
			logger.DebugContext(runCtx, "Async operation failed", "duration", time.Since(start), "error", err)
		} else {
			logger.DebugContext(runCtx, "Async operation completed", "duration", time.Since(start))
		}
		f.resolve(value, err)
	}()

	return f
}
