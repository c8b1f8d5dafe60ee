package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"netpulse/internal/probe"
	"netpulse/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [target]",
	Short: "Watch one target with a live latency strip",
	Long: `Watch probes a single target once a second and paints a colored
status line: the current round-trip time plus a rolling window of recent
results. Without an argument the first configured target is watched.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWatch(args); err != nil {
			fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(args []string) error {
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

	worker := probe.NewWorker(prober, target, cfg.Probe.Interval, cfg.Probe.Timeout, log)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	session := watch.NewSession(target, cfg.History.Capacity, thresholdsFrom(cfg), os.Stdout, log)
	err = session.Run(ctx, worker.Results())
	wg.Wait()
	return err
}
