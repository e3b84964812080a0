package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mkersting/aftermath/internal/api"
	"github.com/mkersting/aftermath/internal/logger"
	"github.com/mkersting/aftermath/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePrices string
	serveEvents string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis and serve results over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePrices, "prices", "", "price series CSV (overrides config)")
	serveCmd.Flags().StringVar(&serveEvents, "events", "", "event list CSV (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if servePrices != "" {
		cfg.Inputs.Prices = servePrices
	}
	if serveEvents != "" {
		cfg.Inputs.Events = serveEvents
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Inputs.Prices == "" || cfg.Inputs.Events == "" {
		return fmt.Errorf("both a price series and an event list are required (--prices/--events or config)")
	}

	started := time.Now()
	table, horizons, err := runAnalysis(cfg, log)
	if err != nil {
		return err
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		reg.RecordTable(table)
		reg.RecordAnalysis(time.Since(started).Seconds())
	}

	runID := uuid.New().String()
	log.Info("starting server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("run_id", runID),
	)

	server := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		MetricsPath: cfg.Metrics.Path,
	}, table, horizons, runID, reg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
