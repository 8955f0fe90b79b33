package domain

import (
	"errors"
	"fmt"
)

// Recognized bounds for AnalysisConfig.
const (
	MinSMAPeriod = 10
	MaxSMAPeriod = 200

	MinYearsOfHistory = 5
	MaxYearsOfHistory = 20
)

// ErrInvalidConfig is returned when an AnalysisConfig fails validation.
var ErrInvalidConfig = errors.New("invalid analysis config")

// AnalysisConfig holds the knobs for one full analysis run.
// YearsOfHistory only affects how much data the fetch layer retrieves.
type AnalysisConfig struct {
	Symbol         string
	SMAPeriod      int
	LookaheadBars  int
	YearsOfHistory int
}

// Validate checks the config against the recognized option ranges.
// An invalid config must be rejected before any analysis runs.
func (c AnalysisConfig) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidConfig)
	}
	if c.SMAPeriod < MinSMAPeriod || c.SMAPeriod > MaxSMAPeriod {
		return fmt.Errorf("%w: sma_period %d outside [%d, %d]",
			ErrInvalidConfig, c.SMAPeriod, MinSMAPeriod, MaxSMAPeriod)
	}
	if c.LookaheadBars <= 0 {
		return fmt.Errorf("%w: lookahead_bars must be positive, got %d",
			ErrInvalidConfig, c.LookaheadBars)
	}
	if c.YearsOfHistory < MinYearsOfHistory || c.YearsOfHistory > MaxYearsOfHistory {
		return fmt.Errorf("%w: years_of_history %d outside [%d, %d]",
			ErrInvalidConfig, c.YearsOfHistory, MinYearsOfHistory, MaxYearsOfHistory)
	}
	return nil
}
