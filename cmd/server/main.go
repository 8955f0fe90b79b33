// Package main provides a long-running service that:
// - refreshes the crossover analysis on a cron schedule
// - serves stored summaries and reports over HTTP
// - exposes Prometheus metrics
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"sma-crossover-lab/internal/config"
	"sma-crossover-lab/internal/marketdata"
	"sma-crossover-lab/internal/observability"
	"sma-crossover-lab/internal/orchestrator"
	"sma-crossover-lab/internal/reporting"
	"sma-crossover-lab/internal/scheduler"
	"sma-crossover-lab/internal/storage"
	chstore "sma-crossover-lab/internal/storage/clickhouse"
	"sma-crossover-lab/internal/storage/memory"
	"sma-crossover-lab/internal/storage/migrations"
	pgstore "sma-crossover-lab/internal/storage/postgres"
	"sma-crossover-lab/internal/synthetic"
)

// Server holds the long-running service state.
type Server struct {
	cfg          *config.Config
	summaryStore storage.SummaryStore
	priceStore   storage.PriceSeriesStore
	fetcher      marketdata.Fetcher
	fallback     marketdata.Fetcher
	logger       *log.Logger

	// State
	mu         sync.Mutex
	started    time.Time
	lastRun    time.Time
	runs       int
	refreshing bool
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	listenAddr := flag.String("listen-addr", "", "HTTP listen address (overrides config)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides config)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (overrides config)")
	useSynthetic := flag.Bool("use-synthetic", false, "Use deterministic synthetic data instead of the live source")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *postgresDSN != "" {
		cfg.Database.PostgresDSN = *postgresDSN
	}
	if *clickhouseDSN != "" {
		cfg.Database.ClickhouseDSN = *clickhouseDSN
	}
	if *useSynthetic {
		cfg.DataSource.UseSynthetic = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, closeStores, err := newServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup: %v", err)
	}
	defer closeStores()

	// Refresh once at startup so the endpoints have data.
	srv.refresh(ctx)

	sched := scheduler.New()
	if err := sched.Register(cfg.Server.RefreshCron, "refresh", func() { srv.refresh(ctx) }); err != nil {
		logger.Fatalf("schedule refresh: %v", err)
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: srv.routes(),
	}
	go func() {
		logger.Printf("HTTP server listening on %s", cfg.Server.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("HTTP server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP shutdown error: %v", err)
	}
}

// newServer wires stores and fetchers from the config.
func newServer(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Server, func(), error) {
	var summaryStore storage.SummaryStore
	var priceStore storage.PriceSeriesStore
	var closers []func()

	if cfg.Database.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.Database.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		summaryStore = pgstore.NewSummaryStore(pool)
		closers = append(closers, pool.Close)
	} else {
		summaryStore = memory.NewSummaryStore()
	}

	if cfg.Database.ClickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, cfg.Database.ClickhouseDSN)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
		priceStore = chstore.NewPriceSeriesStore(conn)
		closers = append(closers, func() { _ = conn.Close() })
	} else {
		priceStore = memory.NewPriceSeriesStore()
	}

	var fetcher, fallback marketdata.Fetcher
	if cfg.DataSource.UseSynthetic {
		fetcher = marketdata.NewSyntheticFetcher(synthetic.DefaultSeed)
	} else {
		yahoo := marketdata.NewYahooFetcher()
		if cfg.DataSource.BaseURL != "" {
			yahoo.BaseURL = cfg.DataSource.BaseURL
		}
		fetcher = yahoo
		fallback = marketdata.NewSyntheticFetcher(synthetic.DefaultSeed)
	}

	srv := &Server{
		cfg:          cfg,
		summaryStore: summaryStore,
		priceStore:   priceStore,
		fetcher:      fetcher,
		fallback:     fallback,
		logger:       logger,
		started:      time.Now(),
	}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	return srv, closeAll, nil
}

// refresh runs the analysis pipeline once. Concurrent refreshes are skipped.
func (s *Server) refresh(ctx context.Context) {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		s.logger.Println("Refresh already running, skipping...")
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.lastRun = time.Now()
		s.runs++
		s.mu.Unlock()
	}()

	s.logger.Println("Running analysis refresh...")
	start := time.Now()

	orch := orchestrator.New(orchestrator.Options{
		Fetcher:         s.fetcher,
		FallbackFetcher: s.fallback,
		PriceStore:      s.priceStore,
		SummaryStore:    s.summaryStore,
		Config:          s.cfg.AnalysisConfig(),
		Verbose:         true,
	})

	result, err := orch.Run(ctx)
	if err != nil {
		s.logger.Printf("Refresh error: %v", err)
		return
	}
	for _, e := range result.Errors {
		s.logger.Printf("Refresh warning: %s", e)
	}

	s.logger.Printf("Refresh completed in %v: %d timeframes, %d crossovers, %d summaries stored",
		time.Since(start), result.TimeframesAnalyzed, result.CrossoversDetected, result.SummariesStored)
}

// routes builds the HTTP handler.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/summaries", s.handleSummaries)
	mux.HandleFunc("/report", s.handleReport)

	return mux
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status     string    `json:"status"`
	Uptime     string    `json:"uptime"`
	LastRun    time.Time `json:"last_run,omitempty"`
	Runs       int       `json:"runs"`
	Refreshing bool      `json:"refreshing"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatusResponse{
		Status:     "running",
		Uptime:     time.Since(s.started).String(),
		LastRun:    s.lastRun,
		Runs:       s.runs,
		Refreshing: s.refreshing,
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleSummaries returns the stored summaries for the configured symbol.
func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.summaryStore.GetBySymbol(r.Context(), s.cfg.Analysis.Symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// handleReport renders the Markdown report for the configured symbol.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := reporting.NewGenerator(s.summaryStore).Generate(r.Context(), s.cfg.Analysis.Symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(reporting.RenderMarkdown(report)))
}
