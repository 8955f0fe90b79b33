package reporting

import (
	"context"
	"fmt"
	"time"

	"sma-crossover-lab/internal/storage"
)

// Generator produces reports from stored summaries.
type Generator struct {
	summaryStore storage.SummaryStore
	now          func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(summaryStore storage.SummaryStore) *Generator {
	return &Generator{
		summaryStore: summaryStore,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete report for one symbol.
func (g *Generator) Generate(ctx context.Context, symbol string) (*Report, error) {
	summaries, err := g.summaryStore.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}

	report := &Report{
		GeneratedAt: g.now(),
		Symbol:      symbol,
		Summaries:   summaries,
	}
	if len(summaries) > 0 {
		report.SMAPeriod = summaries[0].SMAPeriod
		report.LookaheadBars = summaries[0].LookaheadBars
	}

	return report, nil
}
