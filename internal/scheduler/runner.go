// Package scheduler provides the background cycle runner shared by the
// forecasting and entity-tracking pipelines: run a cycle, sleep an interval,
// repeat, with a longer backoff after a failed cycle.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
)

// stopTimeout bounds how long Stop waits for an in-flight cycle to finish.
const stopTimeout = 30 * time.Second

// CycleFunc is one unit of periodic work.  A returned error triggers the
// error backoff instead of the normal interval; it never stops the runner.
type CycleFunc func(ctx context.Context) error

// Runner executes a CycleFunc on a fixed interval.  Start and Stop are
// idempotent: redundant calls log a warning and return.  Kick requests an
// immediate cycle without waiting out the current sleep.
type Runner struct {
	name         string
	interval     time.Duration
	errorBackoff time.Duration
	cycle        CycleFunc
	logger       logging.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	kick    chan struct{}
}

// NewRunner constructs a runner for the named cycle.  errorBackoff is the
// sleep applied after a failed cycle; pass the interval itself to disable
// differentiated backoff.
func NewRunner(name string, interval, errorBackoff time.Duration, cycle CycleFunc, logger logging.Logger) *Runner {
	return &Runner{
		name:         name,
		interval:     interval,
		errorBackoff: errorBackoff,
		cycle:        cycle,
		logger:       logger.Named(name),
	}
}

// Start launches the cycle loop.  The first cycle runs immediately.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		r.logger.Warn("already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.running = true
	r.cancel = cancel
	r.done = make(chan struct{})
	r.kick = make(chan struct{}, 1)

	r.logger.Info("starting", logging.Duration("interval", r.interval))
	go r.loop(ctx, r.done, r.kick)
}

// Stop cancels the loop and waits up to 30 seconds for the in-flight cycle
// to finish.  A cycle still running at the deadline is abandoned; its
// context is already cancelled so blocking operations unwind on their own.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		r.logger.Warn("not running")
		return
	}
	r.running = false
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	r.logger.Info("stopping")
	cancel()

	select {
	case <-done:
		r.logger.Info("stopped")
	case <-time.After(stopTimeout):
		r.logger.Warn("stop timed out, abandoning in-flight cycle")
	}
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Kick requests an immediate cycle.  If a kick is already pending or the
// runner is stopped, the request is dropped.
func (r *Runner) Kick() {
	r.mu.Lock()
	kick := r.kick
	running := r.running
	r.mu.Unlock()

	if !running || kick == nil {
		return
	}
	select {
	case kick <- struct{}{}:
	default:
	}
}

func (r *Runner) loop(ctx context.Context, done chan struct{}, kick chan struct{}) {
	defer close(done)
	r.logger.Info("cycle loop started")

	for {
		sleep := r.interval
		start := time.Now()
		if err := r.cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Error("cycle failed", logging.Err(err))
			sleep = r.errorBackoff
		} else {
			r.logger.Debug("cycle complete",
				logging.Duration("elapsed", time.Since(start)))
		}

		select {
		case <-ctx.Done():
			return
		case <-kick:
			r.logger.Info("early cycle requested")
		case <-time.After(sleep):
		}
	}
}
