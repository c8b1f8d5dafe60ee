package dnscfg

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
)

// ServerProbe is the measured query latency of one resolver.
type ServerProbe struct {
	Server string  `json:"server"`
	RTT    float64 `json:"rtt_ms"`
	Err    string  `json:"error,omitempty"`
}

// ProbeServers measures each server's query round-trip by resolving
// domain against it directly, bypassing the system resolver. Any
// answer, including NXDOMAIN, counts: the question is whether the
// server responds, not what it says.
func ProbeServers(ctx context.Context, servers []string, domain string, timeout time.Duration) []ServerProbe {
	out := make([]ServerProbe, 0, len(servers))
	for _, server := range servers {
		out = append(out, probeServer(ctx, server, domain, timeout))
	}
	return out
}

func probeServer(ctx context.Context, server, domain string, timeout time.Duration) ServerProbe {
	res := ServerProbe{Server: server}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)

	c := &dns.Client{Net: "udp", Timeout: timeout}

	addr := server
	if _, _, err := net.SplitHostPort(server); err != nil {
		addr = net.JoinHostPort(server, "53")
	}

	_, rtt, err := c.ExchangeContext(ctx, m, addr)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	res.RTT = rtt.Seconds() * 1000
	return res
}
