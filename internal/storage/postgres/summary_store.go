package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/storage"
)

// SummaryStore implements storage.SummaryStore using PostgreSQL.
type SummaryStore struct {
	pool *Pool
}

// NewSummaryStore creates a new SummaryStore.
func NewSummaryStore(pool *Pool) *SummaryStore {
	return &SummaryStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SummaryStore = (*SummaryStore)(nil)

const summaryColumns = `
	symbol, timeframe, sma_period, lookahead_bars,
	data_points, period_start_ms, period_end_ms,
	total_crossovers, valid_outcomes,
	winning_trades, losing_trades, winning_rate,
	avg_points_captured, max_points_captured, min_points_captured, avg_max_gain_points,
	touched_sma_again, bounced_count, avg_bounce_points,
	avg_suggested_stoploss_pct, avg_max_drawdown_pct, avg_max_drawdown_points,
	avg_bars_to_recovery,
	went_down_then_up, went_up_continuously, went_down_continuously
`

// timeframeOrder sorts timeframes in report order inside SQL.
const timeframeOrder = `
	CASE timeframe
		WHEN '4h' THEN 0
		WHEN '1d' THEN 1
		WHEN '1wk' THEN 2
		WHEN '1mo' THEN 3
		ELSE 4
	END
`

// Insert adds a new summary. Returns ErrDuplicateKey if the
// (symbol, timeframe, sma_period, lookahead_bars) key exists.
func (s *SummaryStore) Insert(ctx context.Context, sum *domain.TimeframeSummary) error {
	if sum == nil || sum.Symbol == "" || sum.Timeframe == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO timeframe_summaries (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err := s.pool.Exec(ctx, query,
		sum.Symbol, string(sum.Timeframe), sum.SMAPeriod, sum.LookaheadBars,
		sum.DataPoints, sum.PeriodStartMs, sum.PeriodEndMs,
		sum.TotalCrossovers, sum.ValidOutcomes,
		sum.WinningTrades, sum.LosingTrades, sum.WinningRate,
		sum.AvgPointsCaptured, sum.MaxPointsCaptured, sum.MinPointsCaptured, sum.AvgMaxGainPoints,
		sum.TouchedSMAAgain, sum.BouncedCount, sum.AvgBouncePoints,
		sum.AvgSuggestedStopLossPct, sum.AvgMaxDrawdownPct, sum.AvgMaxDrawdownPoints,
		sum.AvgBarsToRecovery,
		sum.WentDownThenUp, sum.WentUpContinuously, sum.WentDownContinuously,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// GetByKey retrieves one summary by its exact key. Returns ErrNotFound if absent.
func (s *SummaryStore) GetByKey(ctx context.Context, symbol string, tf domain.Timeframe, smaPeriod, lookaheadBars int) (*domain.TimeframeSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM timeframe_summaries
		WHERE symbol = $1 AND timeframe = $2 AND sma_period = $3 AND lookahead_bars = $4
	`

	row := s.pool.QueryRow(ctx, query, symbol, string(tf), smaPeriod, lookaheadBars)
	sum, err := scanSummary(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get summary by key: %w", err)
	}
	return sum, nil
}

// GetBySymbol retrieves all summaries for a symbol in report order.
func (s *SummaryStore) GetBySymbol(ctx context.Context, symbol string) ([]*domain.TimeframeSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM timeframe_summaries
		WHERE symbol = $1
		ORDER BY ` + timeframeOrder + `, sma_period ASC, lookahead_bars ASC
	`

	rows, err := s.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("get summaries by symbol: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// GetAll retrieves every stored summary in report order.
func (s *SummaryStore) GetAll(ctx context.Context) ([]*domain.TimeframeSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM timeframe_summaries
		ORDER BY symbol ASC, ` + timeframeOrder + `, sma_period ASC, lookahead_bars ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all summaries: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// scanSummary scans a single row into a TimeframeSummary.
func scanSummary(row pgx.Row) (*domain.TimeframeSummary, error) {
	var sum domain.TimeframeSummary
	var tf string

	err := row.Scan(
		&sum.Symbol, &tf, &sum.SMAPeriod, &sum.LookaheadBars,
		&sum.DataPoints, &sum.PeriodStartMs, &sum.PeriodEndMs,
		&sum.TotalCrossovers, &sum.ValidOutcomes,
		&sum.WinningTrades, &sum.LosingTrades, &sum.WinningRate,
		&sum.AvgPointsCaptured, &sum.MaxPointsCaptured, &sum.MinPointsCaptured, &sum.AvgMaxGainPoints,
		&sum.TouchedSMAAgain, &sum.BouncedCount, &sum.AvgBouncePoints,
		&sum.AvgSuggestedStopLossPct, &sum.AvgMaxDrawdownPct, &sum.AvgMaxDrawdownPoints,
		&sum.AvgBarsToRecovery,
		&sum.WentDownThenUp, &sum.WentUpContinuously, &sum.WentDownContinuously,
	)
	if err != nil {
		return nil, err
	}

	sum.Timeframe = domain.Timeframe(tf)
	return &sum, nil
}

// scanSummaries scans multiple rows.
func scanSummaries(rows pgx.Rows) ([]*domain.TimeframeSummary, error) {
	var result []*domain.TimeframeSummary

	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		result = append(result, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary rows: %w", err)
	}
	return result, nil
}
