package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"airbnb-analysis/charts"
	"airbnb-analysis/config"
	"airbnb-analysis/models"
	"airbnb-analysis/report"
	"airbnb-analysis/services"
	"airbnb-analysis/storage"
	"airbnb-analysis/utils"
)

const version = "0.1.0"

// runOptions are the per-invocation switches that are not part of Config.
type runOptions struct {
	inspect    bool
	sequential bool
}

func main() {
	cfg := config.Load()

	input := flag.String("input", cfg.CSVInputPath, "Path to the listings CSV file")
	source := flag.String("source", cfg.InputSource, "Input source: csv or postgres")
	out := flag.String("out", cfg.OutputDir, "Directory for charts and the report")
	chartsFile := flag.String("charts", cfg.ChartsConfig, "Optional YAML chart layout (order, labels, disabled charts)")
	pdf := flag.Bool("pdf", cfg.RenderPDF, "Also print the report to PDF with headless Chrome")
	sequential := flag.Bool("sequential", false, "Run the aggregation queries one at a time")
	inspect := flag.Bool("inspect", false, "Load and clean only: print schema, preview and row counts")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `NYC Airbnb listings analysis

Usage:
  airbnb-analysis -input AB_NYC_2019.csv
  airbnb-analysis -input AB_NYC_2019.csv -charts charts.yaml -pdf
  airbnb-analysis -source postgres -inspect

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("airbnb-analysis %s\n", version)
		return
	}

	cfg.CSVInputPath = *input
	cfg.InputSource = strings.ToLower(*source)
	cfg.OutputDir = *out
	cfg.ChartsConfig = *chartsFile
	cfg.RenderPDF = *pdf

	logger := utils.NewLogger(cfg.LogMode)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, runOptions{inspect: *inspect, sequential: *sequential}, logger, os.Stdout); err != nil {
		logger.Error("%v", err)
		var lerr *models.LoadError
		if errors.As(err, &lerr) {
			logger.Error("Could not load the dataset — check CSV_INPUT_PATH / -input or the POSTGRES_* settings")
		}
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts runOptions, logger *utils.Logger, stdout io.Writer) error {
	logger.Info("=== NYC Airbnb Analysis starting ===")
	logger.Info("Config — source: %s | input: %s | concurrency: %d | output: %s",
		cfg.InputSource, sourceName(cfg), cfg.MaxConcurrency, cfg.OutputDir)

	layout, err := config.LoadCharts(cfg.ChartsConfig)
	if err != nil {
		return err
	}
	queries, err := services.ArrangeQueries(services.DefaultQueries(), layout)
	if err != nil {
		return err
	}

	reader, err := storage.NewReader(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer reader.Close()

	raw, err := reader.Read(ctx)
	if err != nil {
		return err
	}

	services.PrintSchema(stdout, raw)
	services.PrintHead(stdout, raw, 5)

	cleaned, stats := services.NewCleaner(logger).Clean(raw)
	logger.Info("Total Number of Rows in Dataset: %d", stats.Total)
	logger.Info("Number of Rows Without Missing Values: %d", stats.Complete)
	logger.Info("Number of Rows After Numeric Coercion: %d", stats.Clean)
	if cleaned.Len() == 0 {
		logger.Warn("All listings were dropped during cleaning — every chart will be empty")
	}
	services.PrintHead(stdout, cleaned, 5)

	if opts.inspect {
		return nil
	}

	concurrency := cfg.MaxConcurrency
	if opts.sequential {
		concurrency = 1
	}
	results, aggErr := services.NewAggregator(logger, queries, concurrency).Run(ctx, cleaned)
	var failed []string
	if aggErr != nil {
		failed = strings.Split(aggErr.Error(), "\n")
		for _, f := range failed {
			logger.Warn("Chart skipped: %s", f)
		}
	}

	runID := uuid.New().String()
	runDir := filepath.Join(cfg.OutputDir, "run-"+runID)
	pngs, err := charts.NewPNGRenderer(runDir, logger)
	if err != nil {
		return err
	}
	renderers := []charts.Renderer{services.NewConsoleRenderer(stdout, 10), pngs}

	for _, res := range results {
		for _, r := range renderers {
			if err := r.Render(ctx, res); err != nil {
				logger.Error("Render %s failed: %v", res.Query, err)
			}
		}
	}

	builder := report.NewBuilder(runDir, logger)
	htmlPath, err := builder.WriteHTML(report.Summary{
		RunID:       runID,
		Source:      sourceName(cfg),
		Total:       stats.Total,
		Complete:    stats.Complete,
		Clean:       stats.Clean,
		Failed:      failed,
		GeneratedAt: time.Now(),
	}, pngs.Artifacts())
	if err != nil {
		logger.Error("Report write failed: %v", err)
	} else if cfg.RenderPDF {
		if err := builder.PrintPDF(ctx, htmlPath, filepath.Join(runDir, "report.pdf"), cfg.ChromeBin); err != nil {
			logger.Error("PDF export failed: %v", err)
		}
	}

	fmt.Fprintf(stdout, "  Done. %d charts → %s\n\n", len(pngs.Artifacts()), runDir)
	return nil
}

func sourceName(cfg *config.Config) string {
	if cfg.InputSource == config.SourcePostgres {
		return "postgres:" + cfg.PostgresTable
	}
	return cfg.CSVInputPath
}
