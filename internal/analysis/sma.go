package analysis

import (
	"fmt"

	"sma-crossover-lab/internal/domain"
)

// SMASeries holds one simple-moving-average value per input index, aligned
// 1:1 with the series it was computed from. Entries before index period-1
// are nil: there is no measurement yet, which must never be conflated with
// a measured zero.
type SMASeries []*float64

// ComputeSMA calculates the simple moving average of the series over the
// given window length. The value at index i (for i >= period-1) is the
// arithmetic mean of prices[i-period+1 .. i].
//
// Returns ErrInvalidPeriod when period <= 0 or period > len(series);
// callers treating the latter as "zero crossovers" must check the
// precondition themselves (see RunFullAnalysis).
func ComputeSMA(series domain.Series, period int) (SMASeries, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period %d must be positive", ErrInvalidPeriod, period)
	}
	if period > len(series) {
		return nil, fmt.Errorf("%w: period %d exceeds series length %d",
			ErrInvalidPeriod, period, len(series))
	}

	sma := make(SMASeries, len(series))

	// Rolling window sum, O(n).
	sum := 0.0
	for i, p := range series {
		sum += p.Price
		if i >= period {
			sum -= series[i-period].Price
		}
		if i >= period-1 {
			v := sum / float64(period)
			sma[i] = &v
		}
	}

	return sma, nil
}
