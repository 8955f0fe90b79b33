package analysis

import (
	"fmt"

	"sma-crossover-lab/internal/domain"
)

// RunFullAnalysis runs the full pipeline for one timeframe's series:
// SMA computation, crossover detection, per-event outcome analysis, and the
// fold into a single TimeframeSummary. It is a pure function of its inputs;
// the caller stamps Symbol and Timeframe on the returned summary.
//
// Returns ErrEmptySeries for a series with no points and ErrInvalidPeriod
// for a non-positive period: both are caller errors, not measurements.
// A period longer than the series is not an error here: no SMA value can
// exist, so the summary legitimately reports zero crossovers.
func RunFullAnalysis(series domain.Series, period, lookahead int) (*domain.TimeframeSummary, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: period %d must be positive", ErrInvalidPeriod, period)
	}

	summary := &domain.TimeframeSummary{
		SMAPeriod:     period,
		LookaheadBars: lookahead,
		DataPoints:    len(series),
		PeriodStartMs: series[0].TimestampMs,
		PeriodEndMs:   series[len(series)-1].TimestampMs,
	}

	if period > len(series) {
		return summary, nil
	}

	sma, err := ComputeSMA(series, period)
	if err != nil {
		return nil, err
	}

	events := DetectCrossovers(series, sma)

	records := make([]*domain.OutcomeRecord, 0, len(events))
	for _, ev := range events {
		records = append(records, AnalyzeOutcome(ev, series, sma, lookahead))
	}

	foldOutcomes(summary, records)
	return summary, nil
}

// foldOutcomes folds per-crossover records into the summary. Averages cover
// valid records only; conditional averages (bounce points, bars to recovery)
// cover only the records where the underlying event happened. A zero sample
// count leaves the corresponding field nil.
func foldOutcomes(summary *domain.TimeframeSummary, records []*domain.OutcomeRecord) {
	summary.TotalCrossovers = len(records)

	var (
		pointsCaptured []float64
		maxGains       []float64
		stopLosses     []float64
		ddPcts         []float64
		ddPoints       []float64
		bouncePoints   []float64
		recoveryBars   []float64
	)

	for _, r := range records {
		if !r.Valid() {
			continue
		}
		summary.ValidOutcomes++

		if r.Win {
			summary.WinningTrades++
		} else {
			summary.LosingTrades++
		}

		pointsCaptured = append(pointsCaptured, *r.PointsCaptured)
		maxGains = append(maxGains, *r.MaxGainPoints)
		stopLosses = append(stopLosses, *r.SuggestedStopLossPct)
		ddPcts = append(ddPcts, *r.MaxDrawdownPct)
		ddPoints = append(ddPoints, *r.MaxDrawdownPoints)

		if r.TouchedSMAAgain {
			summary.TouchedSMAAgain++
		}
		if r.Bounced {
			summary.BouncedCount++
			bouncePoints = append(bouncePoints, *r.BouncePoints)
		}
		if r.BarsToRecovery != nil {
			recoveryBars = append(recoveryBars, float64(*r.BarsToRecovery))
		}

		switch r.Direction {
		case domain.DirectionDownThenUp:
			summary.WentDownThenUp++
		case domain.DirectionUpContinuously:
			summary.WentUpContinuously++
		case domain.DirectionDownContinuously:
			summary.WentDownContinuously++
		}
	}

	if summary.ValidOutcomes > 0 {
		rate := float64(summary.WinningTrades) / float64(summary.ValidOutcomes) * 100
		summary.WinningRate = &rate
		summary.AvgPointsCaptured = mean(pointsCaptured)
		summary.MaxPointsCaptured = maxOf(pointsCaptured)
		summary.MinPointsCaptured = minOf(pointsCaptured)
		summary.AvgMaxGainPoints = mean(maxGains)
		summary.AvgSuggestedStopLossPct = mean(stopLosses)
		summary.AvgMaxDrawdownPct = mean(ddPcts)
		summary.AvgMaxDrawdownPoints = mean(ddPoints)
	}
	summary.AvgBouncePoints = mean(bouncePoints)
	summary.AvgBarsToRecovery = mean(recoveryBars)
}

// mean returns the arithmetic mean, or nil for an empty sample.
func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	m := sum / float64(len(xs))
	return &m
}

func maxOf(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return &m
}

func minOf(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return &m
}
