package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/storage"
)

func dailyBars(startMs int64, prices ...float64) []domain.PricePoint {
	const dayMs = 24 * 60 * 60 * 1000
	points := make([]domain.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = domain.PricePoint{TimestampMs: startMs + int64(i)*dayMs, Price: p}
	}
	return points
}

func TestPriceSeriesStore_InsertBulkAndGet(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPriceSeriesStore(conn)
	ctx := context.Background()

	bars := dailyBars(1704067200000, 4700.5, 4712.25, 4698.0)
	require.NoError(t, store.InsertBulk(ctx, "SPX500", domain.TimeframeDaily, bars))

	got, err := store.GetBySymbolTimeframe(ctx, "SPX500", domain.TimeframeDaily)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1704067200000), got[0].TimestampMs)
	assert.Equal(t, 4700.5, got[0].Price)
	assert.Equal(t, 4698.0, got[2].Price)
}

func TestPriceSeriesStore_TimeframeIsolation(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPriceSeriesStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, "SPX500", domain.TimeframeDaily,
		dailyBars(1704067200000, 4700.0)))
	require.NoError(t, store.InsertBulk(ctx, "SPX500", domain.TimeframeWeekly,
		dailyBars(1704067200000, 4800.0)))

	daily, err := store.GetBySymbolTimeframe(ctx, "SPX500", domain.TimeframeDaily)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 4700.0, daily[0].Price)

	weekly, err := store.GetBySymbolTimeframe(ctx, "SPX500", domain.TimeframeWeekly)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, 4800.0, weekly[0].Price)
}

func TestPriceSeriesStore_DuplicateRejectsBatch(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPriceSeriesStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, "SPX500", domain.TimeframeDaily,
		dailyBars(1704067200000, 4700.0)))

	// Overlapping timestamp rejects the whole second batch.
	err := store.InsertBulk(ctx, "SPX500", domain.TimeframeDaily,
		dailyBars(1704067200000, 4701.0, 4702.0))
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	got, err := store.GetBySymbolTimeframe(ctx, "SPX500", domain.TimeframeDaily)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPriceSeriesStore_IntraBatchDuplicate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPriceSeriesStore(conn)
	ctx := context.Background()

	points := []domain.PricePoint{
		{TimestampMs: 1704067200000, Price: 4700.0},
		{TimestampMs: 1704067200000, Price: 4701.0},
	}
	err := store.InsertBulk(ctx, "SPX500", domain.TimeframeDaily, points)
	require.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestPriceSeriesStore_GetByTimeRange(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPriceSeriesStore(conn)
	ctx := context.Background()

	const dayMs = int64(24 * 60 * 60 * 1000)
	start := int64(1704067200000)
	require.NoError(t, store.InsertBulk(ctx, "SPX500", domain.TimeframeDaily,
		dailyBars(start, 4700.0, 4710.0, 4720.0, 4730.0)))

	// Range is inclusive on both ends.
	got, err := store.GetByTimeRange(ctx, "SPX500", domain.TimeframeDaily,
		start+dayMs, start+2*dayMs)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4710.0, got[0].Price)
	assert.Equal(t, 4720.0, got[1].Price)
}

func TestPriceSeriesStore_EmptyAndInvalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPriceSeriesStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, "SPX500", domain.TimeframeDaily, nil))

	err := store.InsertBulk(ctx, "", domain.TimeframeDaily, dailyBars(1704067200000, 4700.0))
	require.ErrorIs(t, err, storage.ErrInvalidInput)

	got, err := store.GetBySymbolTimeframe(ctx, "UNKNOWN", domain.TimeframeDaily)
	require.NoError(t, err)
	assert.Empty(t, got)
}
