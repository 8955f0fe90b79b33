package analysis

import "errors"

// Analysis errors.
var (
	// ErrInvalidPeriod is returned when an SMA period is non-positive or
	// longer than the series, leaving no defined SMA value.
	ErrInvalidPeriod = errors.New("invalid sma period")

	// ErrEmptySeries is returned by RunFullAnalysis for a series with no
	// points. A data outage must surface as an error, not as a summary
	// that silently reports zero crossovers.
	ErrEmptySeries = errors.New("empty price series")
)
