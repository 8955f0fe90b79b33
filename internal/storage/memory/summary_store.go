package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/storage"
)

// SummaryStore is an in-memory implementation of storage.SummaryStore.
type SummaryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TimeframeSummary
}

// NewSummaryStore creates a new in-memory summary store.
func NewSummaryStore() *SummaryStore {
	return &SummaryStore{
		data: make(map[string]*domain.TimeframeSummary),
	}
}

// summaryKey generates the unique key of a summary.
func summaryKey(s *domain.TimeframeSummary) string {
	return fmt.Sprintf("%s|%s|%d|%d", s.Symbol, s.Timeframe, s.SMAPeriod, s.LookaheadBars)
}

// Insert adds a new summary. Returns ErrDuplicateKey if it already exists.
func (st *SummaryStore) Insert(_ context.Context, s *domain.TimeframeSummary) error {
	if s == nil || s.Symbol == "" || s.Timeframe == "" {
		return storage.ErrInvalidInput
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	key := summaryKey(s)
	if _, exists := st.data[key]; exists {
		return storage.ErrDuplicateKey
	}
	cp := *s
	st.data[key] = &cp
	return nil
}

// GetByKey retrieves one summary by its exact key. Returns ErrNotFound if absent.
func (st *SummaryStore) GetByKey(_ context.Context, symbol string, tf domain.Timeframe, smaPeriod, lookaheadBars int) (*domain.TimeframeSummary, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	key := summaryKey(&domain.TimeframeSummary{
		Symbol: symbol, Timeframe: tf, SMAPeriod: smaPeriod, LookaheadBars: lookaheadBars,
	})
	s, ok := st.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// GetBySymbol retrieves all summaries for a symbol in report order.
func (st *SummaryStore) GetBySymbol(_ context.Context, symbol string) ([]*domain.TimeframeSummary, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	var result []*domain.TimeframeSummary
	for _, s := range st.data {
		if s.Symbol == symbol {
			cp := *s
			result = append(result, &cp)
		}
	}
	sortSummaries(result)
	return result, nil
}

// GetAll retrieves every stored summary in report order.
func (st *SummaryStore) GetAll(_ context.Context) ([]*domain.TimeframeSummary, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	result := make([]*domain.TimeframeSummary, 0, len(st.data))
	for _, s := range st.data {
		cp := *s
		result = append(result, &cp)
	}
	sortSummaries(result)
	return result, nil
}

// sortSummaries orders by symbol, then by timeframe in report order.
func sortSummaries(summaries []*domain.TimeframeSummary) {
	rank := make(map[domain.Timeframe]int, len(domain.AllTimeframes))
	for i, tf := range domain.AllTimeframes {
		rank[tf] = i
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Symbol != summaries[j].Symbol {
			return summaries[i].Symbol < summaries[j].Symbol
		}
		return rank[summaries[i].Timeframe] < rank[summaries[j].Timeframe]
	})
}

var _ storage.SummaryStore = (*SummaryStore)(nil)
