package watch

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gookit/color"

	"netpulse/internal/latency"
	"netpulse/internal/models"
)

func init() {
	// Plain-text assertions regardless of the terminal running the tests.
	color.Disable()
}

// syncBuffer guards a bytes.Buffer shared between the session goroutine
// and test assertions.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func ok(rtt float64) models.Sample {
	return models.Sample{Timestamp: time.Now(), Target: "8.8.8.8", Success: true, RTT: rtt}
}

func failed(msg string) models.Sample {
	return models.Sample{Timestamp: time.Now(), Target: "8.8.8.8", Error: msg}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestRenderLine(t *testing.T) {
	th := latency.DefaultThresholds

	tests := []struct {
		name     string
		current  *models.Sample
		window   []models.Sample
		contains []string
	}{
		{
			name:     "no samples yet",
			contains: []string{"8.8.8.8", "----"},
		},
		{
			name:     "good current",
			current:  &models.Sample{Success: true, RTT: 23.4},
			window:   []models.Sample{ok(23.4)},
			contains: []string{"23.4 ms", "23"},
		},
		{
			name:     "failed current",
			current:  &models.Sample{Error: "timeout"},
			window:   []models.Sample{ok(25), failed("timeout")},
			contains: []string{"down", "25", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := renderLine("8.8.8.8", tt.current, tt.window, th)
			for _, want := range tt.contains {
				if !strings.Contains(line, want) {
					t.Errorf("renderLine() = %q, missing %q", line, want)
				}
			}
		})
	}
}

func TestRenderLineWindowNewestFirst(t *testing.T) {
	// Pushed 31 then 52: the newer 52 renders closest to the current cell.
	window := []models.Sample{ok(31), ok(52)}
	line := renderLine("8.8.8.8", nil, window, latency.DefaultThresholds)

	if i, j := strings.Index(line, "52"), strings.Index(line, "31"); i < 0 || j < 0 || i > j {
		t.Errorf("renderLine() = %q, want 52 before 31", line)
	}
}

func TestSessionPaintsNewSamples(t *testing.T) {
	out := &syncBuffer{}
	s := NewSession("8.8.8.8", 5, latency.DefaultThresholds, out, nil)
	s.frameEvery = 5 * time.Millisecond
	s.idleEvery = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan models.Sample, 4)
	done := make(chan struct{})
	go func() {
		s.Run(ctx, ch)
		close(done)
	}()

	ch <- ok(42)
	waitFor(t, func() bool { return strings.Contains(out.String(), "42.0 ms") })

	ch <- failed("no reply within timeout")
	waitFor(t, func() bool { return strings.Contains(out.String(), "down") })

	close(ch)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end after channel close")
	}
}

func TestSessionIdleRedraw(t *testing.T) {
	out := &syncBuffer{}
	s := NewSession("1.1.1.1", 5, latency.DefaultThresholds, out, nil)
	s.frameEvery = 5 * time.Millisecond
	s.idleEvery = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan models.Sample)
	done := make(chan struct{})
	go func() {
		s.Run(ctx, ch)
		close(done)
	}()

	// No samples arrive, yet the line keeps repainting.
	waitFor(t, func() bool { return strings.Count(out.String(), "1.1.1.1") >= 3 })

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop on cancel")
	}
}

func TestSessionHistoryBounded(t *testing.T) {
	s := NewSession("8.8.8.8", 3, latency.DefaultThresholds, &bytes.Buffer{}, nil)

	for i := 0; i < 6; i++ {
		s.observe(ok(float64(10 + i)))
	}

	if got := s.history.Len(); got != 3 {
		t.Errorf("history length = %d, want 3", got)
	}
	if s.current == nil || s.current.RTT != 15 {
		t.Errorf("current = %+v, want RTT 15", s.current)
	}
	if first := s.history.Samples()[0]; first.RTT != 13 {
		t.Errorf("oldest RTT = %.0f, want 13", first.RTT)
	}
}
