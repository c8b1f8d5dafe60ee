// Package probe issues single latency probes against a target, either
// through the system ping binary or a raw ICMP socket, and runs the
// interval worker that turns probes into a stream of samples.
package probe

import (
	"fmt"

	"netpulse/internal/models"
)

// Probe modes selectable from configuration.
const (
	ModeSystem = "system"
	ModeICMP   = "icmp"
)

// New returns a Prober for the given mode. The privileged flag only
// applies to ICMP mode, where it selects raw sockets over UDP ping.
func New(mode string, privileged bool) (models.Prober, error) {
	switch mode {
	case ModeSystem:
		return NewSystem(), nil
	case ModeICMP:
		return NewICMP(privileged), nil
	default:
		return nil, fmt.Errorf("unknown probe mode %q", mode)
	}
}
