package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mkersting/aftermath/internal/calendar"
	"github.com/mkersting/aftermath/internal/config"
	"github.com/mkersting/aftermath/internal/core"
	"github.com/mkersting/aftermath/internal/horizon"
	"github.com/mkersting/aftermath/internal/ingest"
	"github.com/mkersting/aftermath/internal/llm/factory"
	"github.com/mkersting/aftermath/internal/logger"
	"github.com/mkersting/aftermath/internal/pricing"
	"github.com/mkersting/aftermath/internal/render"
	"github.com/mkersting/aftermath/internal/report"
	"github.com/mkersting/aftermath/internal/storage/archive"
	"github.com/mkersting/aftermath/internal/summary"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzePrices    string
	analyzeEvents    string
	analyzeOut       string
	analyzeReport    string
	analyzeSummarize bool
	analyzeArchive   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute post-event CAGR over a price series",
	Long: `Load a daily price series and an event list, compute the CAGR at each
configured horizon after every event, and write the result table.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePrices, "prices", "", "price series CSV (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeEvents, "events", "", "event list CSV (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "results CSV path (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeReport, "report", "", "PDF report path (overrides config)")
	analyzeCmd.Flags().BoolVar(&analyzeSummarize, "summarize", false, "generate LLM commentary on the results")
	analyzeCmd.Flags().BoolVar(&analyzeArchive, "archive", false, "archive run artifacts to configured storage")

	rootCmd.AddCommand(analyzeCmd)
}

func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
		return config.Defaults(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var log *zap.Logger
	var err error
	if debug {
		log = logger.Must(true)
	} else {
		// Keep stdout clean for the rendered table.
		log, err = logger.Quiet()
		if err != nil {
			return err
		}
	}
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if analyzePrices != "" {
		cfg.Inputs.Prices = analyzePrices
	}
	if analyzeEvents != "" {
		cfg.Inputs.Events = analyzeEvents
	}
	if analyzeOut != "" {
		cfg.Output.Results = analyzeOut
	}
	if analyzeReport != "" {
		cfg.Output.Report = analyzeReport
	}
	if analyzeArchive {
		cfg.Archive.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Inputs.Prices == "" || cfg.Inputs.Events == "" {
		return fmt.Errorf("both a price series and an event list are required (--prices/--events or config)")
	}

	table, horizons, err := runAnalysis(cfg, log)
	if err != nil {
		return err
	}

	report.WriteText(os.Stdout, table, horizons)

	if cfg.Output.Results != "" {
		f, err := os.Create(cfg.Output.Results)
		if err != nil {
			return fmt.Errorf("creating results file: %w", err)
		}
		if err := report.WriteCSV(f, table, horizons); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("\nResults saved to %s\n", cfg.Output.Results)
	}

	var pdfData []byte
	if cfg.Output.Report != "" || cfg.Archive.Enabled {
		pdfData, err = render.Report(table, horizons)
		if err != nil {
			return err
		}
	}
	if cfg.Output.Report != "" {
		if err := os.WriteFile(cfg.Output.Report, pdfData, 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report saved to %s\n", cfg.Output.Report)
	}

	if cfg.Archive.Enabled {
		if err := archiveRun(cmd.Context(), cfg, table, horizons, pdfData, log); err != nil {
			return err
		}
	}

	if analyzeSummarize {
		if err := printSummary(cmd.Context(), cfg, table, horizons); err != nil {
			return err
		}
	}

	return nil
}

// runAnalysis builds the calendar and price index and evaluates every
// event. Shared by analyze and serve.
func runAnalysis(cfg *config.Config, log *zap.Logger) (*core.Table, []int, error) {
	obs, err := ingest.LoadPricesFile(cfg.Inputs.Prices)
	if err != nil {
		return nil, nil, err
	}
	events, err := ingest.LoadEventsFile(cfg.Inputs.Events)
	if err != nil {
		return nil, nil, err
	}

	cal, err := calendar.New(obs)
	if err != nil {
		return nil, nil, err
	}
	idx, err := pricing.New(obs)
	if err != nil {
		return nil, nil, err
	}

	log.Info("loaded inputs",
		zap.Int("trading_days", cal.Len()),
		zap.Time("first", cal.First()),
		zap.Time("last", cal.Last()),
		zap.Int("events", len(events)),
	)

	eval := horizon.NewWithConvention(cal, idx, cfg.Analysis.EntryLagDays, cfg.Analysis.TradingDaysPerYear)
	agg := report.NewAggregator(eval, cfg.Analysis.HorizonYears, log)

	table, err := agg.Run(events)
	if err != nil {
		return nil, nil, err
	}
	return table, agg.Horizons(), nil
}

func archiveRun(ctx context.Context, cfg *config.Config, table *core.Table, horizons []int, pdfData []byte, log *zap.Logger) error {
	store, err := newArchiveStore(cfg)
	if err != nil {
		return err
	}

	run := archive.NewRun()

	var csvBuf bytes.Buffer
	if err := report.WriteCSV(&csvBuf, table, horizons); err != nil {
		return err
	}
	if err := store.Write(ctx, run.ArtifactPath("results.csv"), csvBuf.Bytes()); err != nil {
		return fmt.Errorf("archiving results: %w", err)
	}
	if len(pdfData) > 0 {
		if err := store.Write(ctx, run.ArtifactPath("report.pdf"), pdfData); err != nil {
			return fmt.Errorf("archiving report: %w", err)
		}
	}

	log.Info("archived run artifacts", zap.String("run_id", run.ID))
	fmt.Printf("Archived run %s\n", run.ID)
	return nil
}

func newArchiveStore(cfg *config.Config) (archive.Store, error) {
	switch cfg.Archive.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
	default:
		return archive.NewLocalFS(cfg.Archive.Path)
	}
}

func printSummary(ctx context.Context, cfg *config.Config, table *core.Table, horizons []int) error {
	provider, err := factory.New(cfg.LLM)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	text, err := summary.Summarize(ctx, provider, table, horizons)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Summary (%s) ===\n%s\n", provider.Name(), text)
	return nil
}
