package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"netpulse/internal/models"
)

// writeSummary prints per-target statistics in a plain text layout.
func writeSummary(w io.Writer, stats []models.Stats, hours int, now time.Time) {
	fmt.Fprintf(w, "Network Connectivity Report\n")
	fmt.Fprintf(w, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Period: Last %d hours\n\n", hours)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, "\nOVERALL STATISTICS")

	if len(stats) == 0 {
		fmt.Fprintln(w, "No samples recorded in this period.")
	}

	for _, st := range stats {
		uptime := 100 - st.LossPercent

		fmt.Fprintf(w, "Target: %s\n", st.Target)
		fmt.Fprintf(w, "  Total Probes: %d\n", st.TotalProbes)
		fmt.Fprintf(w, "  Successful: %d (%.2f%%)\n", st.Successful, uptime)
		fmt.Fprintf(w, "  Packet Loss: %.2f%%\n", st.LossPercent)

		if st.Successful > 0 {
			fmt.Fprintf(w, "  Average RTT: %.2f ms\n", st.AvgRTT)
			fmt.Fprintf(w, "  Min RTT: %.2f ms\n", st.MinRTT)
			fmt.Fprintf(w, "  Max RTT: %.2f ms\n", st.MaxRTT)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "\nCharts for each target are in the accompanying PNG files.")
}
