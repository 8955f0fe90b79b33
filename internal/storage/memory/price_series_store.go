package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/storage"
)

// PriceSeriesStore is an in-memory implementation of storage.PriceSeriesStore.
type PriceSeriesStore struct {
	mu   sync.RWMutex
	data map[string]domain.PricePoint // keyed by (symbol, timeframe, timestamp_ms)
}

// NewPriceSeriesStore creates a new in-memory price series store.
func NewPriceSeriesStore() *PriceSeriesStore {
	return &PriceSeriesStore{
		data: make(map[string]domain.PricePoint),
	}
}

// barKey generates a unique key for a bar.
func barKey(symbol string, tf domain.Timeframe, timestampMs int64) string {
	return fmt.Sprintf("%s|%s|%d", symbol, tf, timestampMs)
}

// InsertBulk adds multiple bars. Fails entire batch on duplicate.
func (s *PriceSeriesStore) InsertBulk(_ context.Context, symbol string, tf domain.Timeframe, points []domain.PricePoint) error {
	if symbol == "" || tf == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: detect existing and intra-batch duplicates.
	batchKeys := make(map[string]struct{}, len(points))
	for _, p := range points {
		key := barKey(symbol, tf, p.TimestampMs)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, p := range points {
		s.data[barKey(symbol, tf, p.TimestampMs)] = p
	}
	return nil
}

// GetBySymbolTimeframe retrieves all bars, ordered by timestamp ASC.
func (s *PriceSeriesStore) GetBySymbolTimeframe(ctx context.Context, symbol string, tf domain.Timeframe) (domain.Series, error) {
	return s.GetByTimeRange(ctx, symbol, tf, 0, 1<<62)
}

// GetByTimeRange retrieves bars within [start, end] (inclusive), ordered by timestamp ASC.
func (s *PriceSeriesStore) GetByTimeRange(_ context.Context, symbol string, tf domain.Timeframe, start, end int64) (domain.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := symbol + "|" + string(tf) + "|"
	var result domain.Series
	for key, p := range s.data {
		if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		if p.TimestampMs >= start && p.TimestampMs <= end {
			result = append(result, p)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})
	return result, nil
}

var _ storage.PriceSeriesStore = (*PriceSeriesStore)(nil)
