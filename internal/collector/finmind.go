package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"PairSentinel/internal/model"
)

const (
	// DefaultFinMindBase is the public FinMind data API endpoint.
	DefaultFinMindBase = "https://api.finmindtrade.com/api/v4/data"

	// calendarPadDays widens the requested window so weekends and holidays
	// still leave enough trading days after trimming.
	calendarPadDays = 50
)

// FinMindFetcher implements Fetcher using the FinMind TaiwanStockPrice dataset.
type FinMindFetcher struct {
	BaseURL string
	Token   string
	Client  *http.Client

	now func() time.Time
}

// NewFinMindFetcher creates a FinMind fetcher. An empty baseURL uses the
// public endpoint.
func NewFinMindFetcher(baseURL, token, proxyURL string) *FinMindFetcher {
	if baseURL == "" {
		baseURL = DefaultFinMindBase
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FinMindFetcher{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		now: time.Now,
	}
}

func (f *FinMindFetcher) Name() string { return "finmind" }

// FetchDailyPrices fetches daily bars for one stock. Unlike the regulatory
// feeds, price errors propagate so the caller can decide per stock.
func (f *FinMindFetcher) FetchDailyPrices(ctx context.Context, stockID string, days int) ([]model.StockPrice, error) {
	start := f.now().AddDate(0, 0, -(days + calendarPadDays)).Format("2006-01-02")

	q := url.Values{}
	q.Set("dataset", "TaiwanStockPrice")
	q.Set("data_id", stockID)
	q.Set("start_date", start)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("finmind request: %w", err)
	}
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finmind fetch %s: %w", stockID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("finmind read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("finmind: status %d, body: %s", resp.StatusCode, string(body))
	}

	parsed := gjson.ParseBytes(body)
	if status := parsed.Get("status").Int(); status != 200 {
		return nil, fmt.Errorf("finmind api error for %s: status %d, msg: %s",
			stockID, status, parsed.Get("msg").String())
	}

	data := parsed.Get("data")
	if !data.IsArray() {
		return nil, fmt.Errorf("finmind: no data for %s", stockID)
	}

	prices := make([]model.StockPrice, 0, len(data.Array()))
	for _, row := range data.Array() {
		date := row.Get("date").String()
		if date == "" {
			continue
		}
		prices = append(prices, model.StockPrice{
			StockID: stockID,
			Date:    date,
			Open:    row.Get("open").Float(),
			High:    row.Get("max").Float(),
			Low:     row.Get("min").Float(),
			Close:   row.Get("close").Float(),
			Volume:  row.Get("Trading_Volume").Int(),
		})
	}

	sort.Slice(prices, func(i, j int) bool { return prices[i].Date < prices[j].Date })
	if len(prices) > days {
		prices = prices[len(prices)-days:]
	}
	return prices, nil
}
