package calculator

import (
	"PairSentinel/internal/model"
	"PairSentinel/internal/signal"
)

// tradingDayFactor approximates the fraction of calendar days that are
// trading days; a stock must have at least floor(periodDays × factor) rows
// to participate in a calculation.
const tradingDayFactor = 0.65

// FilterSufficientData splits stock ids into those with enough history for
// the requested calendar period and those excluded. The check is per stock,
// not per pair.
func FilterSufficientData(stockIDs []string, prices model.PriceData, periodDays int) (valid, excluded []string) {
	minTradingDays := int(float64(periodDays) * tradingDayFactor)
	for _, id := range stockIDs {
		if len(prices[id]) >= minTradingDays {
			valid = append(valid, id)
		} else {
			excluded = append(excluded, id)
		}
	}
	return valid, excluded
}

// ComputeGroupAnalysis evaluates every directed pair of the group's stocks
// and returns fresh PairAnalysis records plus the ids excluded by the
// sufficiency pre-filter. nameOf resolves display names; nil falls back to
// the stock id. A pair is omitted when either leg has no price data or the
// joined ratio history is empty: an insufficient-data outcome, not an
// error.
func ComputeGroupAnalysis(stockIDs []string, prices model.PriceData, periodDays int, nameOf func(string) string) model.GroupAnalysis {
	if nameOf == nil {
		nameOf = func(id string) string { return id }
	}

	valid, excluded := FilterSufficientData(stockIDs, prices, periodDays)

	results := make([]model.PairAnalysis, 0, len(valid)*(len(valid)-1))
	for _, pair := range GeneratePairs(valid) {
		stockA, stockB := pair[0], pair[1]
		pricesA := prices[stockA]
		pricesB := prices[stockB]
		if len(pricesA) == 0 || len(pricesB) == 0 {
			continue
		}

		history := BuildRatioHistory(pricesA, pricesB)
		if len(history) == 0 {
			continue
		}

		ratios := make([]float64, len(history))
		for i, r := range history {
			ratios[i] = r.Ratio
		}

		mean := Mean(ratios)
		stdDev := StdDev(ratios, mean)
		maxRatio, minRatio := ratios[0], ratios[0]
		for _, r := range ratios[1:] {
			if r > maxRatio {
				maxRatio = r
			}
			if r < minRatio {
				minRatio = r
			}
		}

		currentRatio := history[len(history)-1].Ratio
		arbitrage := ArbitrageSpace(currentRatio, mean)
		zScore := ZScore(currentRatio, mean, stdDev)

		coMovement := CoMovementRate(DailyChanges(pricesA), DailyChanges(pricesB))
		correlation := Correlation(closes(pricesA), closes(pricesB))

		actionA, actionB := signal.TradingAction(arbitrage)

		results = append(results, model.PairAnalysis{
			ID:                 stockA + "-" + stockB,
			StockA:             stockA,
			StockB:             stockB,
			StockAName:         nameOf(stockA),
			StockBName:         nameOf(stockB),
			CurrentRatio:       currentRatio,
			HistoricalMean:     mean,
			HistoricalStdDev:   stdDev,
			HistoricalMax:      maxRatio,
			HistoricalMin:      minRatio,
			ArbitrageSpace:     arbitrage,
			ZScore:             zScore,
			CoMovementRate:     coMovement,
			CorrelationCoef:    correlation,
			SignalStrength:     signal.Classify(arbitrage, zScore),
			StockAAction:       actionA,
			StockBAction:       actionB,
			PriceRatioHistory:  history,
			StockACurrentPrice: pricesA[len(pricesA)-1].Close,
			StockBCurrentPrice: pricesB[len(pricesB)-1].Close,
			StockAChange:       lastChange(pricesA),
			StockBChange:       lastChange(pricesB),
		})
	}

	return model.GroupAnalysis{Results: results, ExcludedStockIDs: excluded}
}

func closes(prices []model.StockPrice) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = p.Close
	}
	return out
}

// lastChange is the most recent single-day return, 0 when the series has
// fewer than 2 points or the previous close is zero.
func lastChange(prices []model.StockPrice) float64 {
	if len(prices) < 2 {
		return 0
	}
	prev := prices[len(prices)-2].Close
	if prev == 0 {
		return 0
	}
	return (prices[len(prices)-1].Close - prev) / prev
}
