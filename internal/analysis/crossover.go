package analysis

import "sma-crossover-lab/internal/domain"

// CrossoverEvent marks an index where price moved from at-or-below the SMA
// to strictly above it.
type CrossoverEvent struct {
	Index       int
	TimestampMs int64
	EntryPrice  float64
	EntrySMA    float64
}

// DetectCrossovers scans an aligned (price, SMA) pair and returns every
// bullish crossover in ascending index order.
//
// A crossover at index i requires both sma[i-1] and sma[i] to be defined,
// price[i-1] - sma[i-1] <= 0 and price[i] - sma[i] > 0. Equality counts as
// at-or-below, so a move from exactly-on-SMA to above is a crossover. The
// earliest possible event index is period (the first index with two
// consecutive defined SMA values), and a continuous stay-above run yields
// exactly one event at its start.
func DetectCrossovers(series domain.Series, sma SMASeries) []CrossoverEvent {
	var events []CrossoverEvent

	for i := 1; i < len(series) && i < len(sma); i++ {
		if sma[i-1] == nil || sma[i] == nil {
			continue
		}
		prevDiff := series[i-1].Price - *sma[i-1]
		curDiff := series[i].Price - *sma[i]

		if prevDiff <= 0 && curDiff > 0 {
			events = append(events, CrossoverEvent{
				Index:       i,
				TimestampMs: series[i].TimestampMs,
				EntryPrice:  series[i].Price,
				EntrySMA:    *sma[i],
			})
		}
	}

	return events
}
