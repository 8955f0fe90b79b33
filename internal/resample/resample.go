// Package resample buckets an ordered price series into coarser timeframes.
// Each output bar carries the bucket start timestamp and the last (closing)
// price observed inside the bucket.
package resample

import (
	"time"

	"sma-crossover-lab/internal/domain"
)

// ToTimeframe resamples an ordered series into the given timeframe.
// Input order is preserved; later samples in the same bucket overwrite
// earlier ones, so the close of each bucket wins. Buckets are UTC-aligned.
func ToTimeframe(series domain.Series, tf domain.Timeframe) domain.Series {
	if len(series) == 0 {
		return nil
	}

	var out domain.Series
	curBucket := int64(-1)

	for _, p := range series {
		b := bucketStart(p.TimestampMs, tf)
		if b != curBucket {
			out = append(out, domain.PricePoint{TimestampMs: b, Price: p.Price})
			curBucket = b
			continue
		}
		out[len(out)-1].Price = p.Price
	}

	return out
}

// bucketStart returns the UTC-aligned bucket start for a timestamp.
func bucketStart(tsMs int64, tf domain.Timeframe) int64 {
	switch tf {
	case domain.Timeframe4Hour:
		const fourHoursMs = 4 * 60 * 60 * 1000
		return tsMs - tsMs%fourHoursMs
	case domain.TimeframeDaily:
		t := time.UnixMilli(tsMs).UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
	case domain.TimeframeWeekly:
		t := time.UnixMilli(tsMs).UTC()
		// Week starts Monday.
		offset := (int(t.Weekday()) + 6) % 7
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -offset).UnixMilli()
	case domain.TimeframeMonthly:
		t := time.UnixMilli(tsMs).UTC()
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	default:
		return tsMs
	}
}
