package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"sma-crossover-lab/internal/config"
	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/marketdata"
	"sma-crossover-lab/internal/storage"
	chstore "sma-crossover-lab/internal/storage/clickhouse"
	"sma-crossover-lab/internal/storage/migrations"
	"sma-crossover-lab/internal/synthetic"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	symbol := flag.String("symbol", "", "Instrument symbol (overrides config)")
	years := flag.Int("years", 0, "Years of history to fetch (overrides config)")
	timeframe := flag.String("timeframe", "", "Single timeframe to fetch (4h, 1d, 1wk, 1mo); all when empty")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (overrides config)")
	useSynthetic := flag.Bool("use-synthetic", false, "Use deterministic synthetic data instead of the live source")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *symbol != "" {
		cfg.Analysis.Symbol = *symbol
	}
	if *years != 0 {
		cfg.Analysis.YearsOfHistory = *years
	}
	if *clickhouseDSN != "" {
		cfg.Database.ClickhouseDSN = *clickhouseDSN
	}
	if *useSynthetic {
		cfg.DataSource.UseSynthetic = true
	}

	if cfg.Database.ClickhouseDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --clickhouse-dsn (or database.clickhouse_dsn in config) is required")
		os.Exit(1)
	}

	timeframes := domain.AllTimeframes
	if *timeframe != "" {
		tf := domain.Timeframe(*timeframe)
		if !validTimeframe(tf) {
			fmt.Fprintf(os.Stderr, "Error: unknown timeframe %q\n", *timeframe)
			os.Exit(1)
		}
		timeframes = []domain.Timeframe{tf}
	}

	conn, err := migrations.RunClickhouseMigrations(ctx, cfg.Database.ClickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing clickhouse: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()
	priceStore := chstore.NewPriceSeriesStore(conn)

	var fetcher marketdata.Fetcher
	if cfg.DataSource.UseSynthetic {
		fetcher = marketdata.NewSyntheticFetcher(synthetic.DefaultSeed)
	} else {
		yahoo := marketdata.NewYahooFetcher()
		if cfg.DataSource.BaseURL != "" {
			yahoo.BaseURL = cfg.DataSource.BaseURL
		}
		fetcher = yahoo
	}

	for _, tf := range timeframes {
		series, err := fetcher.Fetch(ctx, cfg.Analysis.Symbol, tf, cfg.Analysis.YearsOfHistory)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", tf, err)
			os.Exit(1)
		}

		err = priceStore.InsertBulk(ctx, cfg.Analysis.Symbol, tf, series)
		if errors.Is(err, storage.ErrDuplicateKey) {
			fmt.Printf("%s: %d bars fetched, already stored\n", tf, len(series))
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error storing %s bars: %v\n", tf, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d bars stored\n", tf, len(series))
	}
}

func validTimeframe(tf domain.Timeframe) bool {
	for _, known := range domain.AllTimeframes {
		if tf == known {
			return true
		}
	}
	return false
}
