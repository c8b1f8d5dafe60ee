// netpulse watches ping latency against a set of targets and switches
// the system DNS configuration between public resolvers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netpulse/internal/config"
	"netpulse/internal/latency"
	"netpulse/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "netpulse",
	Short: "Ping latency monitor and DNS switcher",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
}

// setup loads configuration and builds the logger shared by every command.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func thresholdsFrom(cfg config.Config) latency.Thresholds {
	return latency.Thresholds{
		GoodBelow: cfg.Thresholds.GoodMs,
		WarnBelow: cfg.Thresholds.WarnMs,
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
