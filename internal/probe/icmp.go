package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"netpulse/internal/models"
)

// ICMPProber sends ICMP echo requests directly instead of shelling out.
// Privileged mode uses raw sockets and usually needs CAP_NET_RAW or
// root; unprivileged mode uses UDP ping where the platform allows it.
type ICMPProber struct {
	privileged bool
}

// NewICMP creates an ICMPProber
func NewICMP(privileged bool) *ICMPProber {
	return &ICMPProber{privileged: privileged}
}

// Probe sends a single echo request and returns the outcome as a
// sample. A lost packet is a failed sample, not an error.
func (p *ICMPProber) Probe(ctx context.Context, target string, timeout time.Duration) models.Sample {
	s := models.Sample{
		Timestamp: time.Now(),
		Target:    target,
	}

	pinger, err := probing.NewPinger(target)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	pinger.SetPrivileged(p.privileged)
	pinger.Count = 1
	pinger.Timeout = timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		s.Error = err.Error()
		return s
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		s.Error = "no reply within timeout"
		return s
	}

	s.Success = true
	s.RTT = float64(stats.AvgRtt) / float64(time.Millisecond)
	return s
}
