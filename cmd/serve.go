package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/theirongolddev/roombudget/internal/config"
	"github.com/theirongolddev/roombudget/internal/server"
	"github.com/theirongolddev/roombudget/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	flagServeAddr         string
	flagServeLogFile      string
	flagServeEventsBuffer int
	flagServeNoHistory    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the estimator over HTTP",
	Long: `Serve the estimator over HTTP.

Endpoints:
  GET  /healthz       liveness
  GET  /v1/status     counters and uptime
  GET  /v1/catalog    brands, rooms, items and ranges
  POST /v1/estimate   room estimate
  POST /v1/scope      whole-home projection
  GET  /v1/events     recent estimate events
  GET  /v1/stream     server-sent events
  GET  /metrics       Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeLogFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	serveCmd.Flags().BoolVar(&flagServeNoHistory, "no-history", false, "Disable saving quotes from requests")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	addr := firstNonEmpty(flagServeAddr, cfg.Server.Addr)
	logFile := firstNonEmpty(flagServeLogFile, cfg.Server.LogFile)

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o750); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		defer func() { _ = rotator.Close() }()
		log.SetOutput(rotator)
	}

	var hist *store.History
	if cfg.History.Enabled && !flagServeNoHistory {
		hist, err = store.Open(config.HistoryPath())
		if err != nil {
			return err
		}
		defer func() { _ = hist.Close() }()
	}

	svc := server.New(server.Config{
		Addr:          addr,
		Catalog:       cat,
		DefaultAddOns: cfg.AddOns.ToModel(),
		History:       hist,
		EventsBuffer:  flagServeEventsBuffer,
	})

	fmt.Printf("  roombudget listening on http://%s\n", addr)
	if logFile != "" {
		fmt.Printf("  Log: %s\n", logFile)
	}
	if hist != nil {
		fmt.Printf("  History: %s\n", config.HistoryPath())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
