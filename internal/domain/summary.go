package domain

// TimeframeSummary aggregates all crossover outcomes of one timeframe run.
// Corresponds to the timeframe_summaries table in PostgreSQL.
//
// Rate and average fields are nil when the underlying sample count is zero.
// A nil winning rate means "nothing measured", which is not the same claim
// as a measured 0%.
type TimeframeSummary struct {
	Symbol        string
	Timeframe     Timeframe
	SMAPeriod     int
	LookaheadBars int

	DataPoints    int
	PeriodStartMs int64
	PeriodEndMs   int64

	// TotalCrossovers counts every detected event, including those flagged
	// InsufficientData. All other counts and averages cover valid records only.
	TotalCrossovers int
	ValidOutcomes   int

	WinningTrades int
	LosingTrades  int
	WinningRate   *float64 // percent, wins / valid * 100

	AvgPointsCaptured *float64
	MaxPointsCaptured *float64
	MinPointsCaptured *float64
	AvgMaxGainPoints  *float64

	TouchedSMAAgain int
	BouncedCount    int
	AvgBouncePoints *float64 // over bounced events only

	AvgSuggestedStopLossPct *float64
	AvgMaxDrawdownPct       *float64
	AvgMaxDrawdownPoints    *float64

	AvgBarsToRecovery *float64 // over events that dropped and recovered

	WentDownThenUp       int
	WentUpContinuously   int
	WentDownContinuously int
}
