package collector

import (
	"context"
	"errors"
	"testing"

	"PairSentinel/internal/model"
)

// failingFetcher fails for the stock ids in bad and serves mock data otherwise.
type failingFetcher struct {
	bad map[string]bool
}

func (f *failingFetcher) Name() string { return "failing" }

func (f *failingFetcher) FetchDailyPrices(_ context.Context, stockID string, days int) ([]model.StockPrice, error) {
	if f.bad[stockID] {
		return nil, errors.New("boom")
	}
	return generateMockPrices(stockID, 100, days), nil
}

func TestCollectOmitsFailedStocks(t *testing.T) {
	c := NewCollector(&failingFetcher{bad: map[string]bool{"2603": true}})

	data, err := c.Collect(context.Background(), []string{"2330", "2603", "2454"}, 10)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(data) != 2 {
		t.Fatalf("Collect() returned %d stocks, want 2", len(data))
	}
	if _, ok := data["2603"]; ok {
		t.Error("failed stock 2603 should be omitted")
	}
	if len(data["2330"]) != 10 {
		t.Errorf("2330 has %d bars, want 10", len(data["2330"]))
	}
}

func TestCollectAllFailed(t *testing.T) {
	c := NewCollector(&failingFetcher{bad: map[string]bool{"2330": true, "2603": true}})

	if _, err := c.Collect(context.Background(), []string{"2330", "2603"}, 10); err == nil {
		t.Fatal("Collect() expected error when every fetch fails")
	}
}

func TestMockFetcherFixedData(t *testing.T) {
	fixed := []model.StockPrice{{StockID: "2330", Date: "2026-02-02", Close: 600}}
	m := &MockFetcher{Prices: map[string][]model.StockPrice{"2330": fixed}, Base: 50}

	got, err := m.FetchDailyPrices(context.Background(), "2330", 5)
	if err != nil {
		t.Fatalf("FetchDailyPrices() error = %v", err)
	}
	if len(got) != 1 || got[0].Close != 600 {
		t.Errorf("fixed data not returned: %v", got)
	}

	generated, err := m.FetchDailyPrices(context.Background(), "2454", 5)
	if err != nil {
		t.Fatalf("FetchDailyPrices() error = %v", err)
	}
	if len(generated) != 5 {
		t.Errorf("generated %d bars, want 5", len(generated))
	}
}
