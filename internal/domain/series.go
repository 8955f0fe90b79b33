package domain

// PricePoint is one ordered sample of a price series.
type PricePoint struct {
	TimestampMs int64   // Unix timestamp in milliseconds
	Price       float64 // closing price at this point
}

// Series is an ordered price series: strictly increasing timestamps,
// no duplicates. Treated as immutable once handed to the analysis core.
type Series []PricePoint

// Prices returns the price column of the series.
func (s Series) Prices() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Price
	}
	return out
}

// Timeframe identifies one resampled bar interval.
type Timeframe string

// Supported timeframes, in analysis order.
const (
	Timeframe4Hour   Timeframe = "4h"
	TimeframeDaily   Timeframe = "1d"
	TimeframeWeekly  Timeframe = "1wk"
	TimeframeMonthly Timeframe = "1mo"
)

// AllTimeframes lists the timeframes analyzed per run, in report order.
var AllTimeframes = []Timeframe{
	Timeframe4Hour,
	TimeframeDaily,
	TimeframeWeekly,
	TimeframeMonthly,
}

// DisplayName returns the human-readable timeframe name used in reports.
func (t Timeframe) DisplayName() string {
	switch t {
	case Timeframe4Hour:
		return "4-Hour"
	case TimeframeDaily:
		return "Daily"
	case TimeframeWeekly:
		return "Weekly"
	case TimeframeMonthly:
		return "Monthly"
	default:
		return string(t)
	}
}
