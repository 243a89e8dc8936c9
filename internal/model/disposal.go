package model

import "time"

// MarketType identifies which exchange lists a stock.
type MarketType string

const (
	MarketTWSE MarketType = "TWSE" // 上市
	MarketTPEx MarketType = "TPEx" // 上櫃
)

// MarketLabels are the zh-TW display labels for the two exchanges.
var MarketLabels = map[MarketType]string{
	MarketTWSE: "上市",
	MarketTPEx: "上櫃",
}

// ThresholdType says which limit produced the disposal threshold price.
type ThresholdType string

const (
	Threshold6Day  ThresholdType = "6d"
	Threshold30Day ThresholdType = "30d"
)

// AttentionStock is a stock flagged by its exchange's attention criteria.
// AttentionCount is capped at 2: a second trigger is the "about to enter
// disposal" ceiling the domain cares about, further triggers still report 2.
type AttentionStock struct {
	StockID        string
	StockName      string
	MarketType     MarketType
	AttentionCount int
	TriggerReason  string
	AttentionDate  string

	// Set only when a threshold has been computed (AttentionCount == 2).
	ThresholdPrice int
	ThresholdType  ThresholdType
}

// DisposalStock is a stock under an active altered-trading restriction.
// DisposalInterval is the matching interval in minutes (5 or 20). Dates are
// ISO strings; EndDate empty means the period could not be parsed.
type DisposalStock struct {
	StockID          string
	StockName        string
	MarketType       MarketType
	DisposalInterval int
	StartDate        string
	EndDate          string
}

// DisposalSnapshot is the merged, sorted view across both exchanges:
// attention stocks descending by count, disposal stocks ascending by end
// date. Valid for a few minutes; see disposal.Service for the cache policy.
type DisposalSnapshot struct {
	AttentionStocks []AttentionStock
	DisposalStocks  []DisposalStock
	LastUpdated     time.Time
}

// ThresholdResult is the outcome of the disposal-threshold computation for
// an attention stock. All prices are rounded up to whole dollars.
type ThresholdResult struct {
	ThresholdPrice int
	ThresholdType  ThresholdType
	Limit6d        int
	Limit30d       int
}
