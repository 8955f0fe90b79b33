package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# SMA Crossover Statistics Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Symbol: %s | SMA Period: %d | Lookahead: %d bars\n\n",
		r.Symbol, r.SMAPeriod, r.LookaheadBars))

	// Overview across timeframes
	sb.WriteString("## Timeframe Overview\n\n")
	if len(r.Summaries) > 0 {
		sb.WriteString("| Timeframe | Bars | Crossovers | Valid | WinRate% | AvgPoints | MaxPoints | MinPoints |\n")
		sb.WriteString("|-----------|------|------------|-------|----------|-----------|-----------|----------|\n")
		for _, s := range r.Summaries {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %s | %s | %s | %s |\n",
				s.Timeframe.DisplayName(),
				s.DataPoints,
				s.TotalCrossovers,
				s.ValidOutcomes,
				fmtFloat(s.WinningRate, 2),
				fmtFloat(s.AvgPointsCaptured, 2),
				fmtFloat(s.MaxPointsCaptured, 2),
				fmtFloat(s.MinPointsCaptured, 2)))
		}
	} else {
		sb.WriteString("No timeframe summaries available.\n")
	}
	sb.WriteString("\n")

	// Per-timeframe detail
	for _, s := range r.Summaries {
		sb.WriteString(fmt.Sprintf("## %s\n\n", s.Timeframe.DisplayName()))

		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Data Points | %d |\n", s.DataPoints))
		sb.WriteString(fmt.Sprintf("| Period Start (ms) | %d |\n", s.PeriodStartMs))
		sb.WriteString(fmt.Sprintf("| Period End (ms) | %d |\n", s.PeriodEndMs))
		sb.WriteString(fmt.Sprintf("| Total Crossovers | %d |\n", s.TotalCrossovers))
		sb.WriteString(fmt.Sprintf("| Valid Outcomes | %d |\n", s.ValidOutcomes))
		sb.WriteString(fmt.Sprintf("| Winning Trades | %d |\n", s.WinningTrades))
		sb.WriteString(fmt.Sprintf("| Losing Trades | %d |\n", s.LosingTrades))
		sb.WriteString(fmt.Sprintf("| Winning Rate | %s%% |\n", fmtFloat(s.WinningRate, 2)))
		sb.WriteString(fmt.Sprintf("| Avg Points Captured | %s |\n", fmtFloat(s.AvgPointsCaptured, 2)))
		sb.WriteString(fmt.Sprintf("| Max Points Captured | %s |\n", fmtFloat(s.MaxPointsCaptured, 2)))
		sb.WriteString(fmt.Sprintf("| Min Points Captured | %s |\n", fmtFloat(s.MinPointsCaptured, 2)))
		sb.WriteString(fmt.Sprintf("| Avg Max Gain | %s |\n", fmtFloat(s.AvgMaxGainPoints, 2)))
		sb.WriteString(fmt.Sprintf("| Avg Suggested Stop-Loss | %s%% |\n", fmtFloat(s.AvgSuggestedStopLossPct, 2)))
		sb.WriteString(fmt.Sprintf("| Avg Max Drawdown | %s%% (%s pts) |\n",
			fmtFloat(s.AvgMaxDrawdownPct, 2), fmtFloat(s.AvgMaxDrawdownPoints, 2)))
		sb.WriteString("\n")

		sb.WriteString("### SMA Retest Behavior\n\n")
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Touched SMA Again | %d |\n", s.TouchedSMAAgain))
		sb.WriteString(fmt.Sprintf("| Bounced After Touch | %d |\n", s.BouncedCount))
		sb.WriteString(fmt.Sprintf("| Avg Bounce Points | %s |\n", fmtFloat(s.AvgBouncePoints, 2)))
		sb.WriteString(fmt.Sprintf("| Avg Bars To Recovery | %s |\n", fmtFloat(s.AvgBarsToRecovery, 2)))
		sb.WriteString("\n")

		sb.WriteString("### Direction Distribution\n\n")
		sb.WriteString("| Direction | Count |\n")
		sb.WriteString("|-----------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Went up continuously | %d |\n", s.WentUpContinuously))
		sb.WriteString(fmt.Sprintf("| Went down, then up | %d |\n", s.WentDownThenUp))
		sb.WriteString(fmt.Sprintf("| Went down continuously | %d |\n", s.WentDownContinuously))
		sb.WriteString("\n")
	}

	return sb.String()
}
