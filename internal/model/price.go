package model

// StockPrice represents one trading day of a stock, keyed by (StockID, Date).
// Date is an ISO string (YYYY-MM-DD); zero-padded, so lexicographic order is
// chronological order.
type StockPrice struct {
	StockID string
	Date    string
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  int64
}

// PriceData maps a stock id to its daily price series, ascending by date.
type PriceData map[string][]StockPrice

// PriceRatio is one point of a pair's ratio history (close A / close B).
// It exists only for dates where both stocks traded.
type PriceRatio struct {
	Date        string
	Ratio       float64
	StockAPrice float64
	StockBPrice float64
}
