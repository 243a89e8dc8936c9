package calculator

import "PairSentinel/internal/model"

// BuildRatioHistory inner-joins two price series on exact date and returns
// the ratio sequence closeA/closeB in A's date order. Dates missing from
// either series are dropped (join, not union), as are dates where B closed
// at zero.
func BuildRatioHistory(pricesA, pricesB []model.StockPrice) []model.PriceRatio {
	closeBByDate := make(map[string]float64, len(pricesB))
	for _, p := range pricesB {
		closeBByDate[p.Date] = p.Close
	}

	ratios := make([]model.PriceRatio, 0, len(pricesA))
	for _, pA := range pricesA {
		closeB, ok := closeBByDate[pA.Date]
		if !ok || closeB == 0 {
			continue
		}
		ratios = append(ratios, model.PriceRatio{
			Date:        pA.Date,
			Ratio:       pA.Close / closeB,
			StockAPrice: pA.Close,
			StockBPrice: closeB,
		})
	}
	return ratios
}

// GeneratePairs returns every ordered pair (A,B) with A≠B: N stocks yield
// N×(N−1) directed pairs. Both directions matter because the arbitrage sign
// and recommended actions flip with direction.
func GeneratePairs(stockIDs []string) [][2]string {
	pairs := make([][2]string, 0, len(stockIDs)*(len(stockIDs)-1))
	for _, a := range stockIDs {
		for _, b := range stockIDs {
			if a != b {
				pairs = append(pairs, [2]string{a, b})
			}
		}
	}
	return pairs
}
