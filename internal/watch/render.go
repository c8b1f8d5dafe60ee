package watch

import (
	"strings"

	"github.com/gookit/color"

	"netpulse/internal/latency"
	"netpulse/internal/models"
)

// Color functions used when painting latency bands
var (
	paintGood    = color.Green.Sprintf
	paintWarn    = color.Yellow.Sprintf
	paintBad     = color.Red.Sprintf
	paintUnknown = color.Gray.Sprintf
)

func paintFor(band latency.Band) func(string, ...interface{}) string {
	switch band {
	case latency.BandGood:
		return paintGood
	case latency.BandWarn:
		return paintWarn
	case latency.BandBad:
		return paintBad
	default:
		return paintUnknown
	}
}

// renderLine builds the status line: target, current reading, then the
// recent window newest first, trailing into the past. Failed probes
// show as an x in the window.
func renderLine(target string, current *models.Sample, window []models.Sample, th latency.Thresholds) string {
	var b strings.Builder

	b.WriteString(target)
	b.WriteString("  ")

	switch {
	case current == nil:
		b.WriteString(paintUnknown("----"))
	case current.Success:
		b.WriteString(paintFor(th.Classify(*current))("%.1f ms", current.RTT))
	default:
		b.WriteString(paintUnknown("down"))
	}

	b.WriteString("  |")
	for i := len(window) - 1; i >= 0; i-- {
		s := window[i]
		b.WriteString(" ")
		if s.Success {
			b.WriteString(paintFor(th.Classify(s))("%.0f", s.RTT))
		} else {
			b.WriteString(paintUnknown("x"))
		}
	}

	return b.String()
}
