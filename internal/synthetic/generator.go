// Package synthetic generates deterministic demo price series with S&P
// 500-like characteristics, used when the market data source is unavailable
// and as test fixtures.
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"sma-crossover-lab/internal/domain"
)

// Path parameters of the synthetic random walk.
const (
	initialPrice   = 3000.0
	trendPerBar    = 0.0003
	volatility     = 0.015
	cycleAmplitude = 200.0
	cycleTurns     = 4 * math.Pi
)

// DefaultSeed keeps independently generated fixtures reproducible.
const DefaultSeed = 42

// Generator produces synthetic price series. The same seed, timeframe,
// years and end time always produce the same series.
type Generator struct {
	seed int64
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

// Generate builds one synthetic series for a timeframe, ending at end.
// Bar counts follow the data volume the real source would return:
// intraday history is capped at ~730 days, everything else scales with
// the requested years of history.
func (g *Generator) Generate(tf domain.Timeframe, years int, end time.Time) domain.Series {
	count, step := barsFor(tf, years)
	r := rand.New(rand.NewSource(g.seed))

	series := make(domain.Series, count)
	logPrice := math.Log(initialPrice)
	start := end.Add(-time.Duration(count-1) * step)

	for i := 0; i < count; i++ {
		logPrice += trendPerBar + volatility*r.NormFloat64()
		cycle := cycleAmplitude * math.Sin(cycleTurns*float64(i)/float64(count-1))
		price := math.Exp(logPrice) + cycle
		if price < 1 {
			price = 1
		}
		series[i] = domain.PricePoint{
			TimestampMs: start.Add(time.Duration(i) * step).UnixMilli(),
			Price:       price,
		}
	}

	return series
}

// barsFor returns bar count and bar spacing per timeframe.
func barsFor(tf domain.Timeframe, years int) (int, time.Duration) {
	switch tf {
	case domain.Timeframe4Hour:
		return 730 * 6, 4 * time.Hour
	case domain.TimeframeDaily:
		return 365 * years, 24 * time.Hour
	case domain.TimeframeWeekly:
		return 52 * years, 7 * 24 * time.Hour
	case domain.TimeframeMonthly:
		return 12 * years, 30 * 24 * time.Hour
	default:
		return 365 * years, 24 * time.Hour
	}
}
