package models

import (
	"context"
	"time"
)

// Store interface defines operations for sample persistence
type Store interface {
	SaveSample(s Sample) error
	RecentSamples(hours int) ([]Sample, error)
	StatsByTarget(hours int) ([]Stats, error)
	Prune(retention time.Duration) (int64, error)
	Close() error
}

// Prober interface defines a single probe attempt against a target.
// Implementations report failures inside the returned Sample rather
// than through a separate error value, so a failed probe is ordinary
// data for the consumer.
type Prober interface {
	Probe(ctx context.Context, target string, timeout time.Duration) Sample
}

// Runner interface defines the background engine lifecycle
type Runner interface {
	Start() error
	Stop()
	Wait()
}
