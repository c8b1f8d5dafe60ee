package latency

import "netpulse/internal/models"

// Band buckets a sample by round-trip time for display
type Band int

const (
	// BandUnknown marks failed probes, which carry no usable RTT.
	BandUnknown Band = iota
	BandGood
	BandWarn
	BandBad
)

func (b Band) String() string {
	switch b {
	case BandGood:
		return "good"
	case BandWarn:
		return "warn"
	case BandBad:
		return "bad"
	default:
		return "unknown"
	}
}

// Thresholds holds the band boundaries in milliseconds. A successful
// sample is good below GoodBelow, warn below WarnBelow and bad at or
// above WarnBelow.
type Thresholds struct {
	GoodBelow float64
	WarnBelow float64
}

// DefaultThresholds is used wherever configuration does not override
// the boundaries.
var DefaultThresholds = Thresholds{GoodBelow: 100, WarnBelow: 200}

// Classify buckets a sample. Failed probes always map to BandUnknown,
// never to a numeric band.
func (t Thresholds) Classify(s models.Sample) Band {
	if !s.Success {
		return BandUnknown
	}
	return t.ClassifyRTT(s.RTT)
}

// ClassifyRTT buckets a successful round-trip time in milliseconds.
func (t Thresholds) ClassifyRTT(ms float64) Band {
	switch {
	case ms < t.GoodBelow:
		return BandGood
	case ms < t.WarnBelow:
		return BandWarn
	default:
		return BandBad
	}
}
