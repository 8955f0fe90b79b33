package analysis

import "sma-crossover-lab/internal/domain"

// AnalyzeOutcome walks the forward window after one crossover and computes
// its OutcomeRecord. The window spans series[event.Index .. event.Index+lookahead]
// clamped to the series end, inclusive of the entry bar; every statistic is
// computed over the window excluding the entry bar itself.
//
// A window with fewer than 2 bars yields a record flagged InsufficientData
// instead of an error: the crossover still counts toward totals but carries
// no derived statistics.
func AnalyzeOutcome(event CrossoverEvent, series domain.Series, sma SMASeries, lookahead int) *domain.OutcomeRecord {
	rec := &domain.OutcomeRecord{
		EventIndex:  event.Index,
		EntryTimeMs: event.TimestampMs,
		EntryPrice:  event.EntryPrice,
		EntrySMA:    event.EntrySMA,
	}

	end := event.Index + lookahead
	if end > len(series)-1 {
		end = len(series) - 1
	}
	if lookahead <= 0 || end-event.Index+1 < 2 {
		rec.InsufficientData = true
		return rec
	}

	entry := event.EntryPrice
	n := end - event.Index // number of bars after entry

	// Window extremes. First occurrence of the max wins.
	maxPrice := series[event.Index+1].Price
	maxOffset := 1
	for off := 2; off <= n; off++ {
		if p := series[event.Index+off].Price; p > maxPrice {
			maxPrice = p
			maxOffset = off
		}
	}

	// Lowest price after the max defines drawdown from the peak.
	minAfterMax := maxPrice
	for off := maxOffset + 1; off <= n; off++ {
		if p := series[event.Index+off].Price; p < minAfterMax {
			minAfterMax = p
		}
	}

	final := series[end].Price
	pointsCaptured := final - entry
	maxGainPoints := maxPrice - entry
	ddPoints := maxPrice - minAfterMax
	ddPct := ddPoints / maxPrice * 100

	rec.MaxPrice = &maxPrice
	rec.MaxPriceOffset = &maxOffset
	rec.MinPriceAfterMax = &minAfterMax
	rec.PointsCaptured = &pointsCaptured
	rec.MaxGainPoints = &maxGainPoints
	rec.MaxDrawdownPoints = &ddPoints
	rec.MaxDrawdownPct = &ddPct
	rec.Win = pointsCaptured > 0

	rec.SuggestedStopLossPct = suggestedStopLoss(event, series, n)
	analyzeSMATouch(rec, event, series, sma, n)
	analyzeRecovery(rec, event, series, n)

	return rec
}

// suggestedStopLoss measures the largest adverse excursion below entry seen
// before the first bar that closes above entry, in percent of entry. Zero
// when the window never dips below entry first.
func suggestedStopLoss(event CrossoverEvent, series domain.Series, n int) *float64 {
	entry := event.EntryPrice
	worst := 0.0
	for off := 1; off <= n; off++ {
		p := series[event.Index+off].Price
		if p > entry {
			break
		}
		if entry-p > worst {
			worst = entry - p
		}
	}
	pct := worst / entry * 100
	return &pct
}

// analyzeSMATouch sets TouchedSMAAgain, Bounced and BouncePoints.
// A touch is any post-entry bar with price at or below its SMA; a bounce is
// a later bar closing back above its SMA, measured against the SMA at the
// touch bar.
func analyzeSMATouch(rec *domain.OutcomeRecord, event CrossoverEvent, series domain.Series, sma SMASeries, n int) {
	touchOffset := -1
	var smaAtTouch float64

	for off := 1; off <= n; off++ {
		idx := event.Index + off
		if sma[idx] == nil {
			continue
		}
		if series[idx].Price <= *sma[idx] {
			touchOffset = off
			smaAtTouch = *sma[idx]
			break
		}
	}
	if touchOffset < 0 {
		return
	}
	rec.TouchedSMAAgain = true

	for off := touchOffset + 1; off <= n; off++ {
		idx := event.Index + off
		if sma[idx] == nil {
			continue
		}
		if series[idx].Price > *sma[idx] {
			rec.Bounced = true
			points := series[idx].Price - smaAtTouch
			rec.BouncePoints = &points
			return
		}
	}
}

// analyzeRecovery sets BarsToRecovery and the direction class.
// Recovery is counted from the first bar below entry to the first later bar
// at or above entry.
func analyzeRecovery(rec *domain.OutcomeRecord, event CrossoverEvent, series domain.Series, n int) {
	entry := event.EntryPrice
	dropOffset := -1

	for off := 1; off <= n; off++ {
		if series[event.Index+off].Price < entry {
			dropOffset = off
			break
		}
	}

	if dropOffset < 0 {
		rec.Direction = domain.DirectionUpContinuously
		return
	}

	for off := dropOffset + 1; off <= n; off++ {
		if series[event.Index+off].Price >= entry {
			bars := off - dropOffset
			rec.BarsToRecovery = &bars
			break
		}
	}

	final := series[event.Index+n].Price
	if final > entry {
		rec.Direction = domain.DirectionDownThenUp
	} else {
		rec.Direction = domain.DirectionDownContinuously
	}
}
