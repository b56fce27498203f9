// Command report generates comparison reports from the command line,
// without running the HTTP server. It reads the same snapshot hand-off the
// server does and writes CSV or XLSX files into the reports directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ratepulse/internal/config"
	"ratepulse/internal/dates"
	"ratepulse/internal/exporter"
	"ratepulse/internal/infrastructure"
	"ratepulse/internal/services"
)

func main() {
	date := flag.String("date", "", "target day (default: today in the business timezone)")
	stars := flag.String("stars", "", "star filter, e.g. \"4\" or \"4 Stars\"")
	roomType := flag.String("room", "", "room type filter, e.g. \"Suite\"")
	city := flag.String("city", "", "city filter (default: configured market city)")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	withInsights := flag.Bool("insights", false, "also write the trend insight report")
	withRevenue := flag.Bool("revenue", false, "also write the revenue ranking report")
	flag.Parse()

	if *format != "csv" && *format != "xlsx" {
		fmt.Fprintf(os.Stderr, "unsupported format %q: use csv or xlsx\n", *format)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("failed to ensure directories", "error", err)
		os.Exit(1)
	}

	resolver, err := dates.NewResolver(cfg.Market.BusinessTimezone, time.Now)
	if err != nil {
		logger.Error("failed to create date resolver", "error", err)
		os.Exit(1)
	}

	store := services.NewSnapshotStore(cfg.Paths.SnapshotsDir, cfg.Paths.UserRatesFile, logger)
	comparisonSvc := services.NewComparisonService(cfg, store, resolver, nil, logger)
	exp := exporter.NewComparisonExporter(&cfg.Paths)

	ctx := context.Background()
	opts := services.ComparisonOptions{
		Date:     *date,
		Stars:    *stars,
		RoomType: *roomType,
		City:     *city,
	}

	result, err := comparisonSvc.BuildComparison(ctx, opts)
	if err != nil {
		logger.Error("comparison failed", "error", err)
		os.Exit(1)
	}

	var path string
	if *format == "xlsx" {
		path, err = exp.ExportComparisonXLSX(result.Date, result.Rows)
	} else {
		path, err = exp.ExportComparisonCSV(result.Date, result.Rows)
	}
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("comparison report written to %s\n", path)

	if *withRevenue {
		standing, err := comparisonSvc.RevenueRanking(ctx, opts)
		if err != nil {
			logger.Error("revenue ranking failed", "error", err)
			os.Exit(1)
		}
		path, err := exp.ExportRevenueCSV(result.Date, *standing)
		if err != nil {
			logger.Error("revenue export failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("revenue report written to %s\n", path)
	}

	if *withInsights {
		insightSvc := services.NewInsightService(cfg, store, logger)
		insightResult, err := insightSvc.Trends(ctx, *city)
		if err != nil {
			logger.Error("insight derivation failed", "error", err)
			os.Exit(1)
		}
		path, err := exp.ExportInsightsCSV(result.Date, insightResult.Trends)
		if err != nil {
			logger.Error("insight export failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("insight report written to %s\n", path)
	}
}
