package domain

// DirectionClass buckets post-crossover price paths relative to entry.
type DirectionClass string

// Direction class constants. The three buckets are mutually exclusive.
const (
	// DirectionUpContinuously: price never dipped below entry inside the window.
	DirectionUpContinuously DirectionClass = "WENT_UP_CONTINUOUSLY"
	// DirectionDownThenUp: price dipped below entry and still ended above it.
	DirectionDownThenUp DirectionClass = "WENT_DOWN_THEN_UP"
	// DirectionDownContinuously: price dipped below entry and ended at or below it.
	DirectionDownContinuously DirectionClass = "WENT_DOWN_CONTINUOUSLY"
)

// OutcomeRecord holds the per-crossover statistics computed over the forward
// lookahead window. Optional values are nil pointers, never zero sentinels:
// a nil field means "not measurable", which downstream aggregation must skip.
// Immutable once built.
type OutcomeRecord struct {
	EventIndex  int
	EntryTimeMs int64
	EntryPrice  float64
	EntrySMA    float64

	// InsufficientData marks a crossover too close to the series end to have
	// a usable forward window (fewer than 2 bars). Such records still count
	// toward TotalCrossovers but carry no derived statistics.
	InsufficientData bool

	// Window extremes. MaxPriceOffset is in bars from the entry bar.
	MaxPrice       *float64
	MaxPriceOffset *int
	// MinPriceAfterMax is the lowest price after the window max; equals
	// MaxPrice when no bar follows the max (drawdown 0).
	MinPriceAfterMax *float64

	// PointsCaptured is the realized gain at the last window bar
	// (final price minus entry). MaxGainPoints is the best unrealized gain
	// (window max minus entry).
	PointsCaptured *float64
	MaxGainPoints  *float64

	// Drawdown from the window peak, in points and as a fraction of the peak
	// expressed in percent.
	MaxDrawdownPoints *float64
	MaxDrawdownPct    *float64

	// SuggestedStopLossPct is the largest adverse excursion below entry seen
	// before the first bar that closes above entry, in percent of entry.
	// Zero when price never dips below entry.
	SuggestedStopLossPct *float64

	TouchedSMAAgain bool
	Bounced         bool
	BouncePoints    *float64

	Win bool

	// BarsToRecovery is the offset from the first bar below entry to the
	// first later bar at or above entry. Nil when price never dropped below
	// entry, or dropped and never recovered inside the window.
	BarsToRecovery *int

	Direction DirectionClass
}

// Valid reports whether the record carries derived statistics.
func (r *OutcomeRecord) Valid() bool {
	return !r.InsufficientData
}
