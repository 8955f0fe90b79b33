package storage

import (
	"context"

	"sma-crossover-lab/internal/domain"
)

// PriceSeriesStore provides access to resampled price bar storage.
type PriceSeriesStore interface {
	// InsertBulk adds multiple bars for one (symbol, timeframe). Fails the
	// entire batch with ErrDuplicateKey on a duplicate timestamp.
	InsertBulk(ctx context.Context, symbol string, tf domain.Timeframe, points []domain.PricePoint) error

	// GetBySymbolTimeframe retrieves all bars for a symbol and timeframe,
	// ordered by timestamp ASC.
	GetBySymbolTimeframe(ctx context.Context, symbol string, tf domain.Timeframe) (domain.Series, error)

	// GetByTimeRange retrieves bars within [start, end] (inclusive),
	// ordered by timestamp ASC.
	GetByTimeRange(ctx context.Context, symbol string, tf domain.Timeframe, start, end int64) (domain.Series, error)
}

// SummaryStore provides access to timeframe_summaries storage.
type SummaryStore interface {
	// Insert adds a new summary. Returns ErrDuplicateKey if a summary for
	// (symbol, timeframe, sma_period, lookahead_bars) already exists.
	Insert(ctx context.Context, s *domain.TimeframeSummary) error

	// GetByKey retrieves the summary for one exact
	// (symbol, timeframe, sma_period, lookahead_bars) key.
	// Returns ErrNotFound if it does not exist.
	GetByKey(ctx context.Context, symbol string, tf domain.Timeframe, smaPeriod, lookaheadBars int) (*domain.TimeframeSummary, error)

	// GetBySymbol retrieves all summaries for a symbol, ordered by
	// timeframe in report order.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.TimeframeSummary, error)

	// GetAll retrieves every stored summary, ordered by symbol then
	// timeframe in report order.
	GetAll(ctx context.Context) ([]*domain.TimeframeSummary, error)
}
