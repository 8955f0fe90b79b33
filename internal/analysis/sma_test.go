package analysis

import (
	"errors"
	"math"
	"testing"

	"sma-crossover-lab/internal/domain"
)

// makeSeries builds a series with one bar per day starting at a fixed epoch.
func makeSeries(prices ...float64) domain.Series {
	const dayMs = 24 * 60 * 60 * 1000
	s := make(domain.Series, len(prices))
	for i, p := range prices {
		s[i] = domain.PricePoint{TimestampMs: 1704067200000 + int64(i)*dayMs, Price: p}
	}
	return s
}

func TestComputeSMA_LengthAndWarmup(t *testing.T) {
	series := makeSeries(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	sma, err := ComputeSMA(series, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sma) != len(series) {
		t.Fatalf("expected length %d, got %d", len(series), len(sma))
	}

	// First period-1 entries carry no value.
	for i := 0; i < 3; i++ {
		if sma[i] != nil {
			t.Errorf("expected sma[%d] nil during warmup, got %f", i, *sma[i])
		}
	}
	for i := 3; i < len(sma); i++ {
		if sma[i] == nil {
			t.Errorf("expected sma[%d] defined, got nil", i)
		}
	}
}

func TestComputeSMA_HandComputedWindows(t *testing.T) {
	series := makeSeries(10, 12, 14, 16, 18, 20, 22, 24, 26, 28)

	sma, err := ComputeSMA(series, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Trailing mean of an arithmetic sequence is the window midpoint.
	expected := map[int]float64{
		4: 14, // (10+12+14+16+18)/5
		5: 16,
		6: 18,
		9: 24, // (20+22+24+26+28)/5
	}
	for i, want := range expected {
		if sma[i] == nil {
			t.Fatalf("sma[%d] is nil", i)
		}
		if math.Abs(*sma[i]-want) > 1e-9 {
			t.Errorf("sma[%d]: expected %f, got %f", i, want, *sma[i])
		}
	}
}

func TestComputeSMA_PeriodOne(t *testing.T) {
	series := makeSeries(5, 7, 9)

	sma, err := ComputeSMA(series, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range series {
		if sma[i] == nil || *sma[i] != p.Price {
			t.Errorf("sma[%d]: expected %f, got %v", i, p.Price, sma[i])
		}
	}
}

func TestComputeSMA_InvalidPeriod(t *testing.T) {
	series := makeSeries(1, 2, 3)

	cases := []int{0, -1, 4}
	for _, period := range cases {
		_, err := ComputeSMA(series, period)
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("period %d: expected ErrInvalidPeriod, got %v", period, err)
		}
	}
}
