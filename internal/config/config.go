package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for netpulse
type Config struct {
	Targets    []string   `mapstructure:"targets"`
	Probe      Probe      `mapstructure:"probe"`
	History    History    `mapstructure:"history"`
	Thresholds Thresholds `mapstructure:"thresholds"`
	Database   Database   `mapstructure:"database"`
	Server     Server     `mapstructure:"server"`
	DNS        DNS        `mapstructure:"dns"`
	Log        Log        `mapstructure:"log"`
}

// Probe selects how and how often targets are probed.
type Probe struct {
	Mode       string        `mapstructure:"mode"` // system | icmp
	Interval   time.Duration `mapstructure:"interval"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Privileged bool          `mapstructure:"privileged"`
}

// History bounds the live sample window kept per target.
type History struct {
	Capacity int `mapstructure:"capacity"`
}

// Thresholds are the latency band boundaries in milliseconds.
type Thresholds struct {
	GoodMs float64 `mapstructure:"good_ms"`
	WarnMs float64 `mapstructure:"warn_ms"`
}

// Database configures the sample log used by serve and report.
type Database struct {
	Path      string        `mapstructure:"path"`
	Retention time.Duration `mapstructure:"retention"`
}

// Server configures the dashboard listener.
type Server struct {
	Port int `mapstructure:"port"`
}

// DNS configures adapter override and the resolver latency probe.
type DNS struct {
	Adapter     string        `mapstructure:"adapter"`
	ProbeDomain string        `mapstructure:"probe_domain"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one target must be specified")
	}
	if c.Probe.Mode != "system" && c.Probe.Mode != "icmp" {
		return fmt.Errorf("probe mode must be system or icmp, got %q", c.Probe.Mode)
	}
	if c.Probe.Interval <= 0 {
		return fmt.Errorf("probe interval must be positive")
	}
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history capacity must be at least 1")
	}
	if c.Thresholds.GoodMs <= 0 {
		return fmt.Errorf("good threshold must be positive")
	}
	if c.Thresholds.WarnMs <= c.Thresholds.GoodMs {
		return fmt.Errorf("warn threshold must be above the good threshold")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Database.Retention <= 0 {
		return fmt.Errorf("database retention must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.DNS.Timeout <= 0 {
		return fmt.Errorf("dns probe timeout must be positive")
	}
	return nil
}
