package probe

import (
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"netpulse/internal/models"
)

// SystemProber shells out to the platform ping binary
type SystemProber struct{}

// NewSystem creates a SystemProber
func NewSystem() *SystemProber {
	return &SystemProber{}
}

// Probe executes a single ping and returns the outcome as a sample.
// Command failure and unparseable output both come back as failed
// samples carrying a reason, never as a zero RTT.
func (p *SystemProber) Probe(ctx context.Context, target string, timeout time.Duration) models.Sample {
	s := models.Sample{
		Timestamp: time.Now(),
		Target:    target,
	}

	// Platform-specific ping command
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "ping", "-n", "1", "-w", strconv.Itoa(int(timeout.Milliseconds())), target)
	} else {
		cmd = exec.CommandContext(ctx, "ping", "-c", "1", "-W", strconv.Itoa(int(timeout.Seconds())), target)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		s.Error = commandError(err, output)
		return s
	}

	rtt, ok := parseRTT(string(output))
	if !ok {
		s.Error = "no rtt in ping output"
		return s
	}

	s.Success = true
	s.RTT = rtt
	return s
}

var rttPatterns = []*regexp.Regexp{
	// Linux/Mac: "time=XX.X ms", Windows: "time=XXms" or "time<1ms"
	regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
	// Summary lines: "round-trip min/avg/max = a/b/c" (BSD/Mac),
	// "rtt min/avg/max/mdev = a/b/c/d" (Linux)
	regexp.MustCompile(`(?:round-trip|rtt) min/avg/max[^=]*= [0-9.]+/([0-9.]+)/`),
}

// parseRTT extracts the round-trip time in milliseconds from ping
// output. The second return is false when no RTT is present.
func parseRTT(output string) (float64, bool) {
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return rtt, true
			}
		}
	}
	return 0, false
}

// commandError builds a failure reason from a ping invocation: the
// last non-empty output line usually names the cause ("unknown host",
// "100% packet loss"), the exec error is the fallback.
func commandError(err error, output []byte) string {
	lines := strings.Split(string(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return err.Error()
}
