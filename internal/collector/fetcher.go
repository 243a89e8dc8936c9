package collector

import (
	"context"

	"PairSentinel/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyPrices returns up to days of daily bars for a stock,
	// oldest first.
	FetchDailyPrices(ctx context.Context, stockID string, days int) ([]model.StockPrice, error)
	Name() string
}
