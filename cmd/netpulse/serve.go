package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netpulse/internal/database"
	"netpulse/internal/monitor"
	"netpulse/internal/probe"
	"netpulse/internal/web"
)

//go:embed static/*
var staticFiles embed.FS

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the monitoring daemon with the web dashboard",
	Long: `Serve probes every configured target on the probe interval, records
results to SQLite and serves the dashboard, the JSON API and Prometheus
metrics on the configured port.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.InitSchema(); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	prober, err := probe.New(cfg.Probe.Mode, cfg.Probe.Privileged)
	if err != nil {
		return err
	}

	engine := monitor.New(cfg, db, prober, log)
	server := web.New(db, engine, log, cfg.Server.Port, staticFiles)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Start(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	log.Info("netpulse serving",
		zap.Strings("targets", cfg.Targets),
		zap.Int("port", cfg.Server.Port))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			engine.Stop()
			engine.Wait()
			return fmt.Errorf("web server: %w", err)
		}
	}

	log.Info("shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shCtx); err != nil {
		log.Warn("web shutdown", zap.Error(err))
	}
	engine.Stop()
	engine.Wait()
	return nil
}
