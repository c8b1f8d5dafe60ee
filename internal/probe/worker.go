package probe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"netpulse/internal/models"
)

// Worker probes one target on a fixed interval and emits every outcome,
// success or failure alike, on its results channel. One worker owns one
// target; the consumer side never blocks the probe loop.
type Worker struct {
	prober   models.Prober
	target   string
	interval time.Duration
	timeout  time.Duration
	results  chan models.Sample
	log      *zap.Logger
}

// NewWorker creates a worker for target. The results buffer absorbs
// short consumer stalls; a full buffer drops the newest sample.
func NewWorker(prober models.Prober, target string, interval, timeout time.Duration, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		prober:   prober,
		target:   target,
		interval: interval,
		timeout:  timeout,
		results:  make(chan models.Sample, 16),
		log:      log,
	}
}

// Results returns the sample stream. The channel is closed when Run
// returns, so consumers can range over it.
func (w *Worker) Results() <-chan models.Sample {
	return w.results
}

// Target returns the probed address.
func (w *Worker) Target() string {
	return w.target
}

// Run blocks until ctx is cancelled. The first probe fires immediately,
// the rest on the interval ticker. Cancellation is observed at the top
// of every iteration, so shutdown latency is bounded by one in-flight
// probe plus the interval wait.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.results)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Immediate first probe
	w.probeOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.probeOnce(ctx)
		}
	}
}

func (w *Worker) probeOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s := w.prober.Probe(ctx, w.target, w.timeout)

	select {
	case w.results <- s:
	default:
		w.log.Debug("results buffer full, dropping sample",
			zap.String("target", w.target))
	}
}
