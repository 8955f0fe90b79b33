package resample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sma-crossover-lab/internal/domain"
)

func hourly(start time.Time, prices ...float64) domain.Series {
	s := make(domain.Series, len(prices))
	for i, p := range prices {
		s[i] = domain.PricePoint{
			TimestampMs: start.Add(time.Duration(i) * time.Hour).UnixMilli(),
			Price:       p,
		}
	}
	return s
}

func TestToTimeframe_FourHourClosePerBucket(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Two full 4h buckets plus one partial.
	series := hourly(start, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	out := ToTimeframe(series, domain.Timeframe4Hour)

	require.Len(t, out, 3)
	assert.Equal(t, start.UnixMilli(), out[0].TimestampMs)
	assert.Equal(t, 4.0, out[0].Price) // close of hours 0-3
	assert.Equal(t, start.Add(4*time.Hour).UnixMilli(), out[1].TimestampMs)
	assert.Equal(t, 8.0, out[1].Price) // close of hours 4-7
	assert.Equal(t, 9.0, out[2].Price) // partial bucket keeps its last sample
}

func TestToTimeframe_DailyBoundary(t *testing.T) {
	start := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	series := hourly(start, 10, 11, 12, 13) // 22:00, 23:00, 00:00, 01:00

	out := ToTimeframe(series, domain.TimeframeDaily)

	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), out[0].TimestampMs)
	assert.Equal(t, 11.0, out[0].Price)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli(), out[1].TimestampMs)
	assert.Equal(t, 13.0, out[1].Price)
}

func TestToTimeframe_WeeklyStartsMonday(t *testing.T) {
	// 2024-01-07 is a Sunday; 2024-01-08 is a Monday.
	sunday := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	series := domain.Series{
		{TimestampMs: sunday.UnixMilli(), Price: 1},
		{TimestampMs: sunday.Add(24 * time.Hour).UnixMilli(), Price: 2},
	}

	out := ToTimeframe(series, domain.TimeframeWeekly)

	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), out[0].TimestampMs)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC).UnixMilli(), out[1].TimestampMs)
}

func TestToTimeframe_MonthlyFirstOfMonth(t *testing.T) {
	series := domain.Series{
		{TimestampMs: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC).UnixMilli(), Price: 1},
		{TimestampMs: time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC).UnixMilli(), Price: 2},
		{TimestampMs: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC).UnixMilli(), Price: 3},
	}

	out := ToTimeframe(series, domain.TimeframeMonthly)

	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), out[0].TimestampMs)
	assert.Equal(t, 2.0, out[0].Price)
	assert.Equal(t, 3.0, out[1].Price)
}

func TestToTimeframe_EmptySeries(t *testing.T) {
	assert.Nil(t, ToTimeframe(nil, domain.TimeframeDaily))
}
