package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"PairSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Prices map[string][]model.StockPrice
	Base   float64
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyPrices(_ context.Context, stockID string, days int) ([]model.StockPrice, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Prices[stockID]; ok {
		return p, nil
	}
	return generateMockPrices(stockID, m.Base, days), nil
}

func generateMockPrices(stockID string, basePrice float64, count int) []model.StockPrice {
	prices := make([]model.StockPrice, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		prices[i] = model.StockPrice{
			StockID: stockID,
			Date:    time.Now().AddDate(0, 0, -(count - i)).Format("2006-01-02"),
			Open:    p * 0.999,
			High:    p * 1.005,
			Low:     p * 0.995,
			Close:   p,
			Volume:  1000000,
		}
	}
	return prices
}

// Collector gathers daily price history for a set of stocks.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches daily prices for every stock id. A stock whose fetch fails
// is logged and omitted; the error return fires only when every fetch failed.
func (c *Collector) Collect(ctx context.Context, stockIDs []string, days int) (model.PriceData, error) {
	data := make(model.PriceData, len(stockIDs))
	var lastErr error

	for _, id := range stockIDs {
		prices, err := c.Fetcher.FetchDailyPrices(ctx, id, days)
		if err != nil {
			log.Printf("[WARN] fetch prices for %s failed: %v", id, err)
			lastErr = err
			continue
		}
		data[id] = prices
	}

	if len(data) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all price fetches failed: %w", lastErr)
	}
	return data, nil
}
