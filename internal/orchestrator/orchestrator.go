// Package orchestrator provides E2E analysis orchestration.
// It coordinates: fetch → store bars → crossover analysis → store summaries
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sma-crossover-lab/internal/analysis"
	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/marketdata"
	"sma-crossover-lab/internal/observability"
	"sma-crossover-lab/internal/storage"
)

// Orchestrator coordinates the analysis pipeline execution.
// Flow: fetch bars → persist bars → run crossover analysis → persist summaries
type Orchestrator struct {
	fetcher      marketdata.Fetcher
	fallback     marketdata.Fetcher
	priceStore   storage.PriceSeriesStore
	summaryStore storage.SummaryStore

	config     domain.AnalysisConfig
	timeframes []domain.Timeframe
	verbose    bool
}

// Options for creating Orchestrator.
type Options struct {
	// Fetcher supplies price bars per timeframe. Required.
	Fetcher marketdata.Fetcher

	// FallbackFetcher is used when Fetcher fails for a timeframe.
	// Typically a synthetic generator. Optional.
	FallbackFetcher marketdata.Fetcher

	// PriceStore persists fetched bars. Optional; bars are not
	// persisted when nil.
	PriceStore storage.PriceSeriesStore

	// SummaryStore persists computed summaries. Required.
	SummaryStore storage.SummaryStore

	// Config holds the analysis parameters. Validated on Run.
	Config domain.AnalysisConfig

	// Timeframes to analyze. Defaults to domain.AllTimeframes.
	Timeframes []domain.Timeframe

	Verbose bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	timeframes := opts.Timeframes
	if len(timeframes) == 0 {
		timeframes = domain.AllTimeframes
	}
	return &Orchestrator{
		fetcher:      opts.Fetcher,
		fallback:     opts.FallbackFetcher,
		priceStore:   opts.PriceStore,
		summaryStore: opts.SummaryStore,
		config:       opts.Config,
		timeframes:   timeframes,
		verbose:      opts.Verbose,
	}
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	TimeframesAnalyzed int
	CrossoversDetected int
	SummariesStored    int
	Errors             []string
}

// Run executes the full analysis pipeline.
// Phases per timeframe:
//  1. Fetch bars (falling back to the fallback fetcher on error)
//  2. Persist bars (when a price store is configured)
//  3. Run crossover analysis
//  4. Persist the summary
//
// A failing timeframe is recorded in Errors and does not stop the run.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if o.fetcher == nil {
		return nil, fmt.Errorf("orchestrator requires a fetcher")
	}
	if o.summaryStore == nil {
		return nil, fmt.Errorf("orchestrator requires a summary store")
	}

	result := &RunResult{}
	runStart := time.Now()

	for _, tf := range o.timeframes {
		tfStart := time.Now()

		series, err := o.fetchSeries(ctx, tf)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fetch %s: %v", tf, err))
			observability.RecordFetchError(string(tf))
			observability.RecordTimeframeAnalyzed(string(tf), "error", 0, time.Since(tfStart).Seconds())
			continue
		}
		o.log("Fetched %d bars for %s", len(series), tf)
		observability.RecordFetch(string(tf), len(series), time.Since(tfStart).Seconds())

		if err := o.storeBars(ctx, tf, series); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("store bars %s: %v", tf, err))
		}

		summary, err := analysis.RunFullAnalysis(series, o.config.SMAPeriod, o.config.LookaheadBars)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("analyze %s: %v", tf, err))
			observability.RecordTimeframeAnalyzed(string(tf), "error", 0, time.Since(tfStart).Seconds())
			continue
		}
		summary.Symbol = o.config.Symbol
		summary.Timeframe = tf

		result.TimeframesAnalyzed++
		result.CrossoversDetected += summary.TotalCrossovers
		observability.RecordTimeframeAnalyzed(string(tf), "success",
			summary.TotalCrossovers, time.Since(tfStart).Seconds())
		o.log("Analyzed %s: %d crossovers, %d valid outcomes",
			tf, summary.TotalCrossovers, summary.ValidOutcomes)

		if err := o.summaryStore.Insert(ctx, summary); err != nil {
			// Already stored by an earlier run with the same key.
			if errors.Is(err, storage.ErrDuplicateKey) {
				o.log("Summary for %s already stored, skipping", tf)
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("store summary %s: %v", tf, err))
			continue
		}
		result.SummariesStored++
		observability.DefaultMetrics.SummariesStored.Inc()
	}

	status := "success"
	if len(result.Errors) > 0 {
		status = "partial"
	}
	observability.RecordRun(status, time.Since(runStart).Seconds())
	if status == "success" {
		observability.DefaultMetrics.LastSuccessfulRun.SetToCurrentTime()
	}

	o.log("Run completed: %d timeframes, %d crossovers, %d summaries stored (%d errors)",
		result.TimeframesAnalyzed, result.CrossoversDetected,
		result.SummariesStored, len(result.Errors))

	return result, nil
}

// fetchSeries fetches bars for one timeframe, using the fallback fetcher
// when the primary fails.
func (o *Orchestrator) fetchSeries(ctx context.Context, tf domain.Timeframe) (domain.Series, error) {
	series, err := o.fetcher.Fetch(ctx, o.config.Symbol, tf, o.config.YearsOfHistory)
	if err == nil {
		return series, nil
	}
	if o.fallback == nil {
		return nil, err
	}

	o.log("Fetch via %s failed for %s (%v), using %s", o.fetcher.Name(), tf, err, o.fallback.Name())
	series, fbErr := o.fallback.Fetch(ctx, o.config.Symbol, tf, o.config.YearsOfHistory)
	if fbErr != nil {
		return nil, fmt.Errorf("primary: %v, fallback: %w", err, fbErr)
	}
	return series, nil
}

// storeBars persists fetched bars when a price store is configured.
// Duplicate batches (bars already stored by an earlier run) are skipped.
func (o *Orchestrator) storeBars(ctx context.Context, tf domain.Timeframe, series domain.Series) error {
	if o.priceStore == nil {
		return nil
	}

	err := o.priceStore.InsertBulk(ctx, o.config.Symbol, tf, series)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			o.log("Bars for %s already stored, skipping", tf)
			return nil
		}
		return err
	}
	return nil
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		log.Printf("[orchestrator] "+format, args...)
	}
}
