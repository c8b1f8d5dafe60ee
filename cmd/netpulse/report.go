package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netpulse/internal/database"
	"netpulse/internal/report"
)

var (
	reportHours  int
	reportOutDir string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render charts and a text summary from recorded samples",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReport(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportHours, "hours", 24, "window of samples to include")
	reportCmd.Flags().StringVar(&reportOutDir, "out", "reports", "directory for generated reports")
	rootCmd.AddCommand(reportCmd)
}

func runReport() error {
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

	dir, err := report.NewGenerator(db, log).Generate(reportOutDir, reportHours)
	if err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", dir)
	return nil
}
