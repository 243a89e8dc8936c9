package model

// SignalStrength is the discrete tier assigned to a pair's current spread.
type SignalStrength string

const (
	SignalSuperStrong SignalStrength = "super-strong"
	SignalStrong      SignalStrength = "strong"
	SignalMedium      SignalStrength = "medium"
	SignalWeak        SignalStrength = "weak"
	SignalNone        SignalStrength = "none"
)

// SignalLabels are the zh-TW display labels for each tier.
var SignalLabels = map[SignalStrength]string{
	SignalSuperStrong: "超強烈",
	SignalStrong:      "強烈",
	SignalMedium:      "中等",
	SignalWeak:        "弱",
	SignalNone:        "無",
}

// Action is one leg's direction in a pairs trade.
type Action string

const (
	ActionLong  Action = "long"
	ActionShort Action = "short"
)

// ActionLabels are the zh-TW display labels for trade directions.
var ActionLabels = map[Action]string{
	ActionLong:  "買",
	ActionShort: "空",
}

// PairAnalysis holds the full derived statistic set for one directed pair
// (A,B). Both directions of an unordered pair are separate records since the
// arbitrage sign and recommended actions flip with direction. Records are
// rebuilt from scratch on every calculation and never persisted.
type PairAnalysis struct {
	ID         string
	StockA     string
	StockB     string
	StockAName string
	StockBName string

	CurrentRatio     float64
	HistoricalMean   float64
	HistoricalStdDev float64
	HistoricalMax    float64
	HistoricalMin    float64
	ArbitrageSpace   float64
	ZScore           float64
	CoMovementRate   float64
	CorrelationCoef  float64

	SignalStrength SignalStrength
	StockAAction   Action
	StockBAction   Action

	PriceRatioHistory []PriceRatio

	StockACurrentPrice float64
	StockBCurrentPrice float64
	StockAChange       float64
	StockBChange       float64
}

// GroupAnalysis is the result of analyzing one stock group: per-pair records
// plus the ids of stocks excluded for insufficient history.
type GroupAnalysis struct {
	Results          []PairAnalysis
	ExcludedStockIDs []string
}

// PositionResult describes the sizing of both legs of a pairs trade.
// Lot counts are in trading units (1 lot = LotSize shares).
type PositionResult struct {
	StockALots             int
	StockBLots             int
	StockACost             float64
	StockBCost             float64
	TotalCapital           float64
	ValueDifference        float64
	ValueDifferencePercent float64
	StockAAction           Action
	StockBAction           Action
}

// LotSize is the Taiwan market trading unit (1 張 = 1000 股).
const LotSize = 1000

// Analysis period constraints.
const (
	DefaultAnalysisPeriod = 120
	GroupMinStocks        = 2
	GroupMaxStocks        = 5
)

// AnalysisPeriods are the selectable lookback windows in calendar days.
var AnalysisPeriods = []int{60, 120, 180}
