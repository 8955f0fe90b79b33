package analysis

import (
	"errors"
	"testing"

	"sma-crossover-lab/internal/domain"
)

// knownCrossoverSeries builds a 100-bar series with exactly one crossover at
// bar 55: flat at 100 through bar 54, then a jump to 110 and a steady climb
// to 130 by bar 75, flat afterwards.
func knownCrossoverSeries() domain.Series {
	prices := make([]float64, 100)
	for i := 0; i < 55; i++ {
		prices[i] = 100
	}
	for i := 55; i <= 75; i++ {
		prices[i] = 110 + float64(i-55)
	}
	for i := 76; i < 100; i++ {
		prices[i] = 130
	}
	return makeSeries(prices...)
}

func TestRunFullAnalysis_KnownSingleCrossover(t *testing.T) {
	series := knownCrossoverSeries()

	summary, err := RunFullAnalysis(series, 50, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalCrossovers != 1 {
		t.Fatalf("expected 1 crossover, got %d", summary.TotalCrossovers)
	}
	if summary.ValidOutcomes != 1 {
		t.Fatalf("expected 1 valid outcome, got %d", summary.ValidOutcomes)
	}
	if summary.WinningTrades != 1 || summary.LosingTrades != 0 {
		t.Errorf("expected 1 win / 0 losses, got %d / %d",
			summary.WinningTrades, summary.LosingTrades)
	}
	requireFloat(t, "WinningRate", summary.WinningRate, 100)

	// Entry at bar 55 (price 110), window ends at bar 75 (price 130).
	requireFloat(t, "AvgPointsCaptured", summary.AvgPointsCaptured, 20)
	requireFloat(t, "MaxPointsCaptured", summary.MaxPointsCaptured, 20)
	requireFloat(t, "MinPointsCaptured", summary.MinPointsCaptured, 20)
	requireFloat(t, "AvgMaxGainPoints", summary.AvgMaxGainPoints, 20)
	requireFloat(t, "AvgSuggestedStopLossPct", summary.AvgSuggestedStopLossPct, 0)
	requireFloat(t, "AvgMaxDrawdownPct", summary.AvgMaxDrawdownPct, 0)
	requireFloat(t, "AvgMaxDrawdownPoints", summary.AvgMaxDrawdownPoints, 0)

	if summary.TouchedSMAAgain != 0 || summary.BouncedCount != 0 {
		t.Errorf("expected no touches or bounces, got %d / %d",
			summary.TouchedSMAAgain, summary.BouncedCount)
	}
	if summary.AvgBouncePoints != nil {
		t.Errorf("expected nil avg bounce points, got %f", *summary.AvgBouncePoints)
	}
	if summary.AvgBarsToRecovery != nil {
		t.Errorf("expected nil avg bars to recovery, got %f", *summary.AvgBarsToRecovery)
	}
	if summary.WentUpContinuously != 1 || summary.WentDownThenUp != 0 || summary.WentDownContinuously != 0 {
		t.Errorf("expected direction tally 1/0/0, got %d/%d/%d",
			summary.WentUpContinuously, summary.WentDownThenUp, summary.WentDownContinuously)
	}

	if summary.DataPoints != 100 {
		t.Errorf("expected 100 data points, got %d", summary.DataPoints)
	}
	if summary.PeriodStartMs != series[0].TimestampMs || summary.PeriodEndMs != series[99].TimestampMs {
		t.Error("period bounds must match first and last series timestamps")
	}
}

func TestRunFullAnalysis_ZeroCrossoversYieldsNilAggregates(t *testing.T) {
	// A flat series equals its own SMA: no crossovers, and every rate or
	// average must be the no-value marker rather than a misleading 0.
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100
	}
	summary, err := RunFullAnalysis(makeSeries(prices...), 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalCrossovers != 0 {
		t.Fatalf("expected 0 crossovers, got %d", summary.TotalCrossovers)
	}
	if summary.WinningRate != nil {
		t.Errorf("expected nil winning rate, got %f", *summary.WinningRate)
	}
	if summary.AvgPointsCaptured != nil || summary.AvgSuggestedStopLossPct != nil ||
		summary.AvgMaxDrawdownPct != nil || summary.AvgBouncePoints != nil ||
		summary.AvgBarsToRecovery != nil {
		t.Error("expected all per-event averages nil with zero crossovers")
	}
}

func TestRunFullAnalysis_InsufficientWindowCountedInTotals(t *testing.T) {
	// Crossover on the very last bar: counted, but carries no stats.
	prices := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 110}
	summary, err := RunFullAnalysis(makeSeries(prices...), 5, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalCrossovers != 1 {
		t.Fatalf("expected 1 crossover, got %d", summary.TotalCrossovers)
	}
	if summary.ValidOutcomes != 0 {
		t.Fatalf("expected 0 valid outcomes, got %d", summary.ValidOutcomes)
	}
	if summary.WinningRate != nil {
		t.Errorf("expected nil winning rate, got %f", *summary.WinningRate)
	}
}

func TestRunFullAnalysis_EmptySeries(t *testing.T) {
	_, err := RunFullAnalysis(nil, 50, 20)
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestRunFullAnalysis_NonPositivePeriod(t *testing.T) {
	_, err := RunFullAnalysis(makeSeries(1, 2, 3), 0, 20)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestRunFullAnalysis_PeriodLongerThanSeries(t *testing.T) {
	// Not enough history for a single SMA value: zero crossovers, not an error.
	summary, err := RunFullAnalysis(makeSeries(1, 2, 3, 4, 5), 50, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalCrossovers != 0 {
		t.Errorf("expected 0 crossovers, got %d", summary.TotalCrossovers)
	}
	if summary.WinningRate != nil {
		t.Error("expected nil winning rate")
	}
	if summary.DataPoints != 5 {
		t.Errorf("expected 5 data points, got %d", summary.DataPoints)
	}
}
