package reporting

import (
	"fmt"
	"time"

	"sma-crossover-lab/internal/domain"
)

// Report represents the crossover statistics report structure.
type Report struct {
	// Metadata
	GeneratedAt   time.Time
	Symbol        string
	SMAPeriod     int
	LookaheadBars int

	// One summary per analyzed timeframe, in report order.
	Summaries []*domain.TimeframeSummary
}

// fmtFloat renders an optional float with the given precision,
// or "n/a" when the value is absent.
func fmtFloat(v *float64, prec int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}
