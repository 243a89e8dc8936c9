package disposal

import (
	"math"

	"PairSentinel/internal/model"
)

// thresholdRates are the exchange-specific run-up limits: a stock whose
// close exceeds the T-5 close by the 6-day rate, or the T-29 close by the
// 30-day rate, meets a disposal criterion.
var thresholdRates = map[model.MarketType]struct {
	day6  float64
	day30 float64
}{
	model.MarketTWSE: {day6: 1.25, day30: 2.00},
	model.MarketTPEx: {day6: 1.30, day30: 2.00},
}

// CalculateThreshold computes the price that would push an attention stock
// into disposal status. Only meaningful for stocks at attention count 2;
// callers gate on that, the calculation itself does not validate it.
// The threshold is the lower of the two limits, rounded up to a whole
// dollar; ties report the 6-day type.
func CalculateThreshold(market model.MarketType, priceT5, priceT29 float64) model.ThresholdResult {
	rates := thresholdRates[market]
	limit6d := priceT5 * rates.day6
	limit30d := priceT29 * rates.day30

	thresholdType := model.Threshold30Day
	if limit6d <= limit30d {
		thresholdType = model.Threshold6Day
	}

	return model.ThresholdResult{
		ThresholdPrice: int(math.Ceil(math.Min(limit6d, limit30d))),
		ThresholdType:  thresholdType,
		Limit6d:        int(math.Ceil(limit6d)),
		Limit30d:       int(math.Ceil(limit30d)),
	}
}

// PriceMargin returns how far (in percent) the current price sits below the
// threshold price. Negative means the threshold is already exceeded.
// Non-positive current price returns 0.
func PriceMargin(currentPrice float64, thresholdPrice int) float64 {
	if currentPrice <= 0 {
		return 0
	}
	return (float64(thresholdPrice) - currentPrice) / currentPrice * 100
}

// NearThreshold reports whether the current price is within 5% below the
// threshold price.
func NearThreshold(currentPrice float64, thresholdPrice int) bool {
	margin := PriceMargin(currentPrice, thresholdPrice)
	return margin >= 0 && margin <= 5
}
