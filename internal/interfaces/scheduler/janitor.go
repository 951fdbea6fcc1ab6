package scheduler

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	janitorTracer      = otel.Tracer("pokedex/scheduler")
	janitorMeter       = otel.Meter("pokedex/scheduler")
	sweepDuration, _   = janitorMeter.Float64Histogram("scheduler.sweep.duration", metric.WithDescription("Session sweep duration in seconds"), metric.WithUnit("s"))
	sessionsExpired, _ = janitorMeter.Int64Counter("scheduler.sessions.expired", metric.WithDescription("Sessions dropped after their idle TTL"))
)

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// Janitor runs a Sweeper on a fixed interval until shut down.
type Janitor struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *zap.Logger

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewJanitor creates a janitor that sweeps every interval.
func NewJanitor(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Janitor{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the sweep loop in its own goroutine.
func (j *Janitor) Start() {
	j.logger.Info("starting session janitor", zap.Duration("interval", j.interval))

	j.wg.Add(1)
	go j.run()
}

func (j *Janitor) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			return
		case <-ticker.C:
			j.SweepOnce()
		}
	}
}

// SweepOnce runs a single sweep with tracing and metrics.
func (j *Janitor) SweepOnce() int {
	ctx, span := janitorTracer.Start(j.ctx, "janitor.sweep", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	start := time.Now()
	removed := j.sweeper.Sweep()

	span.SetAttributes(attribute.Int("sessions.removed", removed))
	sweepDuration.Record(ctx, time.Since(start).Seconds())
	sessionsExpired.Add(ctx, int64(removed))

	if removed > 0 {
		j.logger.Debug("expired sessions removed", zap.Int("removed", removed))
	}
	return removed
}

// Shutdown stops the loop and waits for a running sweep to finish, or for
// timeout, whichever comes first.
func (j *Janitor) Shutdown(timeout time.Duration) {
	j.cancel()

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		j.logger.Info("session janitor stopped")
	case <-time.After(timeout):
		j.logger.Warn("session janitor shutdown timed out")
	}
}
