package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"netpulse/internal/probe"
)

var pingCmd = &cobra.Command{
	Use:   "ping [target]",
	Short: "Probe a target once and print the result",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPing(args); err != nil {
			fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	target := cfg.Targets[0]
	if len(args) == 1 {
		target = args[0]
	}

	prober, err := probe.New(cfg.Probe.Mode, cfg.Probe.Privileged)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := prober.Probe(ctx, target, cfg.Probe.Timeout)
	if !s.Success {
		return fmt.Errorf("%s is unreachable: %s", target, s.Error)
	}

	fmt.Printf("%s  %.1f ms  [%s]\n", target, s.RTT, thresholdsFrom(cfg).Classify(s))
	return nil
}
