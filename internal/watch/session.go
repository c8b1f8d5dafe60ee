// Package watch drives the interactive terminal view: one probe worker
// feeding a colored status line that repaints in place.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"netpulse/internal/latency"
	"netpulse/internal/models"
)

const (
	// frameInterval is how often the pending-sample buffer is polled.
	frameInterval = 100 * time.Millisecond
	// idleRedraw keeps the line ticking between samples.
	idleRedraw = time.Second
)

// Session consumes worker samples and repaints a single status line.
// New samples repaint immediately; an idle line refreshes about once a
// second.
type Session struct {
	target     string
	thresholds latency.Thresholds
	history    *latency.History
	out        io.Writer
	log        *zap.Logger

	frameEvery time.Duration
	idleEvery  time.Duration

	current *models.Sample
}

// NewSession creates a session keeping the last capacity samples on screen.
func NewSession(target string, capacity int, thresholds latency.Thresholds, out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		target:     target,
		thresholds: thresholds,
		history:    latency.NewHistory(capacity),
		out:        out,
		log:        log,
		frameEvery: frameInterval,
		idleEvery:  idleRedraw,
	}
}

// Run paints until ctx is cancelled or samples is closed.
func (s *Session) Run(ctx context.Context, samples <-chan models.Sample) error {
	frame := time.NewTicker(s.frameEvery)
	defer frame.Stop()

	s.draw()
	lastDraw := time.Now()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case <-frame.C:
		}

		dirty := false
	drain:
		for {
			select {
			case sample, ok := <-samples:
				if !ok {
					s.draw()
					fmt.Fprintln(s.out)
					return nil
				}
				s.observe(sample)
				dirty = true
			default:
				break drain
			}
		}

		if dirty || time.Since(lastDraw) >= s.idleEvery {
			s.draw()
			lastDraw = time.Now()
		}
	}
}

func (s *Session) observe(sample models.Sample) {
	s.current = &sample
	s.history.Push(sample)
	if !sample.Success {
		s.log.Debug("probe failed",
			zap.String("target", sample.Target), zap.String("error", sample.Error))
	}
}

func (s *Session) draw() {
	line := renderLine(s.target, s.current, s.history.Samples(), s.thresholds)
	fmt.Fprintf(s.out, "\r\x1b[2K%s", line)
}
