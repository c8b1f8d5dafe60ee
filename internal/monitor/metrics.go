package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"netpulse/internal/models"
)

type metrics struct {
	probes   *prometheus.CounterVec
	failures *prometheus.CounterVec
	rtt      *prometheus.HistogramVec
	lastRTT  *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		probes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "netpulse_probes_total", Help: "Probes attempted",
		}, []string{"target"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "netpulse_probe_failures_total", Help: "Probes that failed",
		}, []string{"target"}),
		rtt: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "netpulse_probe_rtt_ms", Help: "Round-trip time of successful probes",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 150, 200, 300, 500, 1000},
		}, []string{"target"}),
		lastRTT: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "netpulse_last_rtt_ms", Help: "Round-trip time of the latest successful probe",
		}, []string{"target"}),
	}
}

func (m *metrics) observe(s models.Sample) {
	m.probes.WithLabelValues(s.Target).Inc()
	if !s.Success {
		m.failures.WithLabelValues(s.Target).Inc()
		return
	}
	m.rtt.WithLabelValues(s.Target).Observe(s.RTT)
	m.lastRTT.WithLabelValues(s.Target).Set(s.RTT)
}
