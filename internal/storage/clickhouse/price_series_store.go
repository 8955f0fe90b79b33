package clickhouse

import (
	"context"
	"fmt"

	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/storage"
)

// PriceSeriesStore implements storage.PriceSeriesStore using ClickHouse.
type PriceSeriesStore struct {
	conn *Conn
}

// NewPriceSeriesStore creates a new PriceSeriesStore.
func NewPriceSeriesStore(conn *Conn) *PriceSeriesStore {
	return &PriceSeriesStore{conn: conn}
}

// Compile-time interface check.
var _ storage.PriceSeriesStore = (*PriceSeriesStore)(nil)

// InsertBulk adds multiple bars. Fails entire batch on duplicate
// (symbol, timeframe, timestamp_ms).
func (s *PriceSeriesStore) InsertBulk(ctx context.Context, symbol string, tf domain.Timeframe, points []domain.PricePoint) error {
	if symbol == "" || tf == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[int64]struct{}, len(points))
	for _, p := range points {
		if _, exists := seen[p.TimestampMs]; exists {
			return storage.ErrDuplicateKey
		}
		seen[p.TimestampMs] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, p := range points {
		exists, err := s.exists(ctx, symbol, tf, p.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_series (symbol, timeframe, timestamp_ms, price)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(symbol, string(tf), uint64(p.TimestampMs), p.Price); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetBySymbolTimeframe retrieves all bars for a symbol and timeframe,
// ordered by timestamp ASC.
func (s *PriceSeriesStore) GetBySymbolTimeframe(ctx context.Context, symbol string, tf domain.Timeframe) (domain.Series, error) {
	query := `
		SELECT timestamp_ms, price
		FROM price_series
		WHERE symbol = ? AND timeframe = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, symbol, string(tf))
	if err != nil {
		return nil, fmt.Errorf("query by symbol timeframe: %w", err)
	}
	defer rows.Close()

	return scanPriceSeries(rows)
}

// GetByTimeRange retrieves bars within [start, end] (inclusive).
func (s *PriceSeriesStore) GetByTimeRange(ctx context.Context, symbol string, tf domain.Timeframe, start, end int64) (domain.Series, error) {
	query := `
		SELECT timestamp_ms, price
		FROM price_series
		WHERE symbol = ? AND timeframe = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, symbol, string(tf), uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanPriceSeries(rows)
}

// exists checks if a bar with the given key exists.
func (s *PriceSeriesStore) exists(ctx context.Context, symbol string, tf domain.Timeframe, timestampMs int64) (bool, error) {
	query := `
		SELECT count(*) FROM price_series
		WHERE symbol = ? AND timeframe = ? AND timestamp_ms = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, symbol, string(tf), uint64(timestampMs)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanPriceSeries scans multiple rows.
func scanPriceSeries(rows chRows) (domain.Series, error) {
	var series domain.Series

	for rows.Next() {
		var p domain.PricePoint
		var timestampMs uint64

		if err := rows.Scan(&timestampMs, &p.Price); err != nil {
			return nil, fmt.Errorf("scan price series row: %w", err)
		}

		p.TimestampMs = int64(timestampMs)
		series = append(series, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price series rows: %w", err)
	}

	return series, nil
}
