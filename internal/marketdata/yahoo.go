package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"sma-crossover-lab/internal/domain"
	"sma-crossover-lab/internal/resample"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
// The 4-hour timeframe is served by fetching hourly bars (Yahoo caps
// intraday history at ~730 days) and resampling them locally.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher() *YahooFetcher {
	return &YahooFetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: defaultYahooBaseURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// Fetch retrieves the series for one timeframe.
func (f *YahooFetcher) Fetch(ctx context.Context, symbol string, tf domain.Timeframe, years int) (domain.Series, error) {
	interval, rng := intervalAndRange(tf, years)

	series, err := f.fetchChart(ctx, symbol, interval, rng)
	if err != nil {
		return nil, err
	}

	if tf == domain.Timeframe4Hour {
		series = resample.ToTimeframe(series, domain.Timeframe4Hour)
	}
	return series, nil
}

// intervalAndRange maps a timeframe to Yahoo chart API parameters.
func intervalAndRange(tf domain.Timeframe, years int) (interval, rng string) {
	switch tf {
	case domain.Timeframe4Hour:
		return "1h", "730d"
	case domain.TimeframeDaily:
		return "1d", fmt.Sprintf("%dy", years)
	case domain.TimeframeWeekly:
		return "1wk", fmt.Sprintf("%dy", years)
	case domain.TimeframeMonthly:
		return "1mo", fmt.Sprintf("%dy", years)
	default:
		return "1d", fmt.Sprintf("%dy", years)
	}
}

// yahooChart is the response structure of the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (domain.Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data returned")
	}
	quote := result.Indicators.Quote[0]

	series := make(domain.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c := toFloat(quote.Close[i])
		if c == 0 {
			continue // skip null bars (holidays etc.)
		}
		series = append(series, domain.PricePoint{
			TimestampMs: ts * 1000,
			Price:       c,
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("yahoo: all bars empty")
	}

	sort.Slice(series, func(i, j int) bool { return series[i].TimestampMs < series[j].TimestampMs })
	return series, nil
}

var _ Fetcher = (*YahooFetcher)(nil)
