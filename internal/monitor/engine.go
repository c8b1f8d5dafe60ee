// Package monitor runs the probe workers for the daemon, keeps a live
// window of recent samples per target and records everything to the
// sample store.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"netpulse/internal/config"
	"netpulse/internal/latency"
	"netpulse/internal/models"
	"netpulse/internal/probe"
)

// HistoryPoint is a sample with its latency band attached, ready for
// display.
type HistoryPoint struct {
	models.Sample
	Band string `json:"band"`
}

// TargetState is the live view of one target.
type TargetState struct {
	Target  string         `json:"target"`
	Current *HistoryPoint  `json:"current,omitempty"`
	History []HistoryPoint `json:"history"`
}

// Engine coordinates probe workers and fans their samples out to the
// live window, the store and the metrics.
type Engine struct {
	cfg    config.Config
	store  models.Store
	prober models.Prober
	log    *zap.Logger
	bands  latency.Thresholds
	m      *metrics

	mu   sync.Mutex
	live map[string]*latency.History

	workers []*probe.Worker
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates an Engine. A nil store disables recording; the live view
// and metrics still work.
func New(cfg config.Config, store models.Store, prober models.Prober, log *zap.Logger) *Engine {
	return newWithRegisterer(cfg, store, prober, log, prometheus.DefaultRegisterer)
}

func newWithRegisterer(cfg config.Config, store models.Store, prober models.Prober, log *zap.Logger, reg prometheus.Registerer) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	live := make(map[string]*latency.History, len(cfg.Targets))
	for _, target := range cfg.Targets {
		live[target] = latency.NewHistory(cfg.History.Capacity)
	}

	return &Engine{
		cfg:    cfg,
		store:  store,
		prober: prober,
		log:    log,
		bands: latency.Thresholds{
			GoodBelow: cfg.Thresholds.GoodMs,
			WarnBelow: cfg.Thresholds.WarnMs,
		},
		m:      newMetrics(reg),
		live:   live,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches one probe worker per target plus the retention pruner.
func (e *Engine) Start() error {
	e.log.Info("starting engine",
		zap.Strings("targets", e.cfg.Targets),
		zap.Duration("interval", e.cfg.Probe.Interval),
		zap.String("mode", e.cfg.Probe.Mode))

	for _, target := range e.cfg.Targets {
		w := probe.NewWorker(e.prober, target, e.cfg.Probe.Interval, e.cfg.Probe.Timeout, e.log)
		e.workers = append(e.workers, w)

		e.wg.Add(2)
		go func(w *probe.Worker) {
			defer e.wg.Done()
			w.Run(e.ctx)
		}(w)
		go e.drainWorker(w)
	}

	e.wg.Add(1)
	go e.pruneWorker()

	return nil
}

// Stop cancels the workers; they close their channels and the drain
// loops run dry.
func (e *Engine) Stop() {
	e.log.Info("stopping engine")
	e.cancel()
}

// Wait blocks until all goroutines finish
func (e *Engine) Wait() {
	e.wg.Wait()
	e.log.Info("engine stopped")
}

// Snapshot returns the live state of every target in configuration
// order.
func (e *Engine) Snapshot() []TargetState {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]TargetState, 0, len(e.cfg.Targets))
	for _, target := range e.cfg.Targets {
		h, ok := e.live[target]
		if !ok {
			continue
		}

		st := TargetState{Target: target, History: []HistoryPoint{}}
		for _, s := range h.Samples() {
			st.History = append(st.History, e.point(s))
		}
		if s, ok := h.Latest(); ok {
			p := e.point(s)
			st.Current = &p
		}
		out = append(out, st)
	}
	return out
}

func (e *Engine) point(s models.Sample) HistoryPoint {
	return HistoryPoint{Sample: s, Band: e.bands.Classify(s).String()}
}

func (e *Engine) drainWorker(w *probe.Worker) {
	defer e.wg.Done()

	for s := range w.Results() {
		e.record(s)
	}
}

func (e *Engine) record(s models.Sample) {
	e.mu.Lock()
	h, ok := e.live[s.Target]
	if !ok {
		h = latency.NewHistory(e.cfg.History.Capacity)
		e.live[s.Target] = h
	}
	h.Push(s)
	e.mu.Unlock()

	e.m.observe(s)

	if e.store == nil {
		return
	}
	if err := e.store.SaveSample(s); err != nil {
		e.log.Warn("failed to save sample",
			zap.String("target", s.Target),
			zap.Error(err))
	}
}

// pruneWorker enforces the retention window on the store once an hour.
func (e *Engine) pruneWorker() {
	defer e.wg.Done()

	if e.store == nil {
		return
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	// Run immediately on start
	e.prune()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.prune()
		}
	}
}

func (e *Engine) prune() {
	deleted, err := e.store.Prune(e.cfg.Database.Retention)
	if err != nil {
		e.log.Warn("prune failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		e.log.Info("pruned old samples",
			zap.Int64("deleted", deleted),
			zap.Duration("retention", e.cfg.Database.Retention))
	}
}
