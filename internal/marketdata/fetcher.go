// Package marketdata retrieves historical price series per timeframe.
// The analysis core never fetches anything itself; an implementation of
// Fetcher hands it already-resampled, ordered series.
package marketdata

import (
	"context"
	"time"

	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/synthetic"
)

// Fetcher retrieves one ordered price series per timeframe.
type Fetcher interface {
	// Fetch returns the series for a symbol and timeframe covering up to
	// the given years of history. Intraday timeframes may cover less,
	// limited by the upstream source.
	Fetch(ctx context.Context, symbol string, tf domain.Timeframe, years int) (domain.Series, error)

	// Name returns the fetcher identifier for logging.
	Name() string
}

// SyntheticFetcher serves deterministic generated data. Used as the demo
// data source and as the fallback when the real source is unreachable.
type SyntheticFetcher struct {
	generator *synthetic.Generator
	now       func() time.Time
}

// NewSyntheticFetcher creates a synthetic fetcher with the given seed.
func NewSyntheticFetcher(seed int64) *SyntheticFetcher {
	return &SyntheticFetcher{
		generator: synthetic.NewGenerator(seed),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock for deterministic output.
func (f *SyntheticFetcher) WithClock(now func() time.Time) *SyntheticFetcher {
	f.now = now
	return f
}

func (f *SyntheticFetcher) Name() string { return "synthetic" }

// Fetch generates the series; it never fails.
func (f *SyntheticFetcher) Fetch(_ context.Context, _ string, tf domain.Timeframe, years int) (domain.Series, error) {
	return f.generator.Generate(tf, years, f.now()), nil
}

var _ Fetcher = (*SyntheticFetcher)(nil)
