// Package report renders latency charts and a plain-text summary from
// recorded samples, suitable for attaching to an ISP support ticket.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"netpulse/internal/models"
)

// Generator writes static report files for a window of recorded samples.
type Generator struct {
	store models.Store
	log   *zap.Logger
}

// NewGenerator creates a report generator backed by store.
func NewGenerator(store models.Store, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{store: store, log: log}
}

// Generate writes charts and a summary covering the last hours of samples
// into a timestamped directory under outputDir and returns that directory.
// A chart that cannot be rendered is logged and skipped so a mostly-failed
// window still produces a report.
func (g *Generator) Generate(outputDir string, hours int) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	stamp := time.Now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("netpulse_report_%s", stamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	samples, err := g.store.RecentSamples(hours)
	if err != nil {
		return "", fmt.Errorf("load samples: %w", err)
	}
	stats, err := g.store.StatsByTarget(hours)
	if err != nil {
		return "", fmt.Errorf("load stats: %w", err)
	}

	for _, target := range targetsOf(samples) {
		png, err := RenderLatencyPNG(target, samples)
		if err != nil {
			g.log.Warn("skipping latency chart",
				zap.String("target", target), zap.Error(err))
			continue
		}
		name := fmt.Sprintf("latency_%s.png", sanitizeFilename(target))
		if err := os.WriteFile(filepath.Join(reportDir, name), png, 0o644); err != nil {
			return "", fmt.Errorf("write latency chart: %w", err)
		}
	}

	if png, err := RenderAvailabilityPNG(samples); err != nil {
		g.log.Warn("skipping availability chart", zap.Error(err))
	} else if err := os.WriteFile(filepath.Join(reportDir, "availability.png"), png, 0o644); err != nil {
		return "", fmt.Errorf("write availability chart: %w", err)
	}

	summary, err := os.Create(filepath.Join(reportDir, "summary.txt"))
	if err != nil {
		return "", fmt.Errorf("create summary: %w", err)
	}
	defer summary.Close()
	writeSummary(summary, stats, hours, time.Now())

	return reportDir, nil
}

// targetsOf returns the distinct targets present in samples, sorted.
func targetsOf(samples []models.Sample) []string {
	seen := make(map[string]bool)
	var targets []string
	for _, s := range samples {
		if !seen[s.Target] {
			seen[s.Target] = true
			targets = append(targets, s.Target)
		}
	}
	sort.Strings(targets)
	return targets
}

// sanitizeFilename replaces dots and special characters for safe filenames.
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}
