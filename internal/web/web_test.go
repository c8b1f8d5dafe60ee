package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"netpulse/internal/models"
	"netpulse/internal/monitor"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type fakeStore struct {
	samples []models.Sample
	stats   []models.Stats
	err     error
}

func (f *fakeStore) SaveSample(models.Sample) error { return nil }

func (f *fakeStore) RecentSamples(int) ([]models.Sample, error) {
	return f.samples, f.err
}

func (f *fakeStore) StatsByTarget(int) ([]models.Stats, error) {
	return f.stats, f.err
}

func (f *fakeStore) Prune(time.Duration) (int64, error) { return 0, nil }
func (f *fakeStore) Close() error                       { return nil }

type fakeLive struct {
	states []monitor.TargetState
}

func (f *fakeLive) Snapshot() []monitor.TargetState { return f.states }

var testStatic = fstest.MapFS{
	"static/index.html": &fstest.MapFile{
		Data: []byte("<!doctype html><title>netpulse</title>"),
	},
}

func newTestServer(t *testing.T, store *fakeStore, live *fakeLive) *httptest.Server {
	t.Helper()
	s := New(store, live, nil, 0, testStatic)
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

// testSamples builds n successful samples one minute apart.
func testSamples(target string, n int) []models.Sample {
	start := time.Now().Add(-time.Hour)
	out := make([]models.Sample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Sample{
			Timestamp: start.Add(time.Duration(i) * time.Minute),
			Target:    target,
			Success:   true,
			RTT:       18 + float64(i%4),
		})
	}
	return out
}

func TestLiveEndpoint(t *testing.T) {
	live := &fakeLive{states: []monitor.TargetState{
		{
			Target: "8.8.8.8",
			Current: &monitor.HistoryPoint{
				Sample: models.Sample{Target: "8.8.8.8", Success: true, RTT: 18},
				Band:   "good",
			},
			History: []monitor.HistoryPoint{
				{Sample: models.Sample{Target: "8.8.8.8", Success: true, RTT: 18}, Band: "good"},
			},
		},
	}}
	ts := newTestServer(t, &fakeStore{}, live)

	resp, body := get(t, ts.URL+"/api/live")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var states []monitor.TargetState
	if err := json.Unmarshal(body, &states); err != nil {
		t.Fatalf("decode live state: %v", err)
	}
	if len(states) != 1 || states[0].Target != "8.8.8.8" {
		t.Fatalf("unexpected live state: %+v", states)
	}
	if states[0].Current == nil || states[0].Current.Band != "good" {
		t.Errorf("current band not preserved: %+v", states[0].Current)
	}
}

func TestRecentEndpoint(t *testing.T) {
	store := &fakeStore{samples: testSamples("8.8.8.8", 5)}
	ts := newTestServer(t, store, &fakeLive{})

	resp, body := get(t, ts.URL+"/api/recent?hours=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var samples []models.Sample
	if err := json.Unmarshal(body, &samples); err != nil {
		t.Fatalf("decode samples: %v", err)
	}
	if len(samples) != 5 {
		t.Errorf("got %d samples, want 5", len(samples))
	}
}

func TestRecentEndpointStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("database is locked")}
	ts := newTestServer(t, store, &fakeLive{})

	resp, _ := get(t, ts.URL+"/api/recent")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
}

func TestStatsEndpoint(t *testing.T) {
	store := &fakeStore{stats: []models.Stats{
		{Target: "8.8.8.8", TotalProbes: 10, Successful: 9, AvgRTT: 21.5, LossPercent: 10},
	}}
	ts := newTestServer(t, store, &fakeLive{})

	resp, body := get(t, ts.URL+"/api/stats?hours=6")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var stats []models.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if len(stats) != 1 || stats[0].LossPercent != 10 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestChartEndpoint(t *testing.T) {
	store := &fakeStore{samples: testSamples("8.8.8.8", 15)}
	ts := newTestServer(t, store, &fakeLive{})

	resp, body := get(t, ts.URL+"/chart.png?target=8.8.8.8")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(body, pngMagic) {
		t.Errorf("response is not a PNG")
	}
}

func TestChartEndpointErrors(t *testing.T) {
	store := &fakeStore{samples: testSamples("8.8.8.8", 15)}
	ts := newTestServer(t, store, &fakeLive{})

	resp, _ := get(t, ts.URL+"/chart.png")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing target: status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp, _ = get(t, ts.URL+"/chart.png?target=192.0.2.1")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown target: status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, &fakeStore{}, &fakeLive{})

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := strings.TrimSpace(string(body)); got != "ok" {
		t.Errorf("body = %q, want ok", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeStore{}, &fakeLive{})

	resp, body := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Errorf("metrics output missing runtime collectors")
	}
}

func TestStaticRoot(t *testing.T) {
	ts := newTestServer(t, &fakeStore{}, &fakeLive{})

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(string(body), "netpulse") {
		t.Errorf("index page not served")
	}
}
