package reporting

import (
	"fmt"
	"strings"

	"sma-crossover-lab/internal/domain"
)

// RenderCSV renders timeframe summaries as CSV string.
func RenderCSV(summaries []*domain.TimeframeSummary) string {
	var sb strings.Builder

	// Header
	sb.WriteString("symbol,timeframe,sma_period,lookahead_bars,data_points,")
	sb.WriteString("total_crossovers,valid_outcomes,winning_trades,losing_trades,winning_rate,")
	sb.WriteString("avg_points_captured,max_points_captured,min_points_captured,avg_max_gain_points,")
	sb.WriteString("touched_sma_again,bounced_count,avg_bounce_points,")
	sb.WriteString("avg_suggested_stoploss_pct,avg_max_drawdown_pct,avg_max_drawdown_points,avg_bars_to_recovery,")
	sb.WriteString("went_down_then_up,went_up_continuously,went_down_continuously\n")

	// Rows
	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%d,%d,%d,%d,%d,%s,%s,%s,%s,%s,%d,%d,%s,%s,%s,%s,%s,%d,%d,%d\n",
			s.Symbol,
			s.Timeframe,
			s.SMAPeriod,
			s.LookaheadBars,
			s.DataPoints,
			s.TotalCrossovers,
			s.ValidOutcomes,
			s.WinningTrades,
			s.LosingTrades,
			fmtFloat(s.WinningRate, 6),
			fmtFloat(s.AvgPointsCaptured, 6),
			fmtFloat(s.MaxPointsCaptured, 6),
			fmtFloat(s.MinPointsCaptured, 6),
			fmtFloat(s.AvgMaxGainPoints, 6),
			s.TouchedSMAAgain,
			s.BouncedCount,
			fmtFloat(s.AvgBouncePoints, 6),
			fmtFloat(s.AvgSuggestedStopLossPct, 6),
			fmtFloat(s.AvgMaxDrawdownPct, 6),
			fmtFloat(s.AvgMaxDrawdownPoints, 6),
			fmtFloat(s.AvgBarsToRecovery, 6),
			s.WentDownThenUp,
			s.WentUpContinuously,
			s.WentDownContinuously,
		))
	}

	return sb.String()
}
