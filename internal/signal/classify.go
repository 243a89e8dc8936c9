// Package signal maps pair statistics to discrete signal tiers and trade
// directions.
package signal

import (
	"math"
	"sort"

	"PairSentinel/internal/model"
)

// rules is the tier table, evaluated on absolute values, first match wins.
// The 10% arbitrage floor dominates everything: below it no Z-score can
// produce a signal.
var rules = []struct {
	minArbitrage float64
	maxArbitrage float64 // exclusive; 0 means unbounded
	minZScore    float64
	maxZScore    float64 // exclusive; 0 means unbounded
	strength     model.SignalStrength
}{
	{minArbitrage: 0.20, minZScore: 2.0, strength: model.SignalSuperStrong},
	{minArbitrage: 0.15, minZScore: 2.0, strength: model.SignalStrong},
	{minArbitrage: 0.15, minZScore: 1.5, maxZScore: 2.0, strength: model.SignalMedium},
	{minArbitrage: 0.10, maxArbitrage: 0.15, minZScore: 2.0, strength: model.SignalMedium},
}

// Classify assigns the signal tier for a pair's current arbitrage space and
// Z-score.
func Classify(arbitrageSpace, zScore float64) model.SignalStrength {
	absArbitrage := math.Abs(arbitrageSpace)
	absZScore := math.Abs(zScore)

	if absArbitrage < 0.10 {
		return model.SignalNone
	}

	for _, r := range rules {
		if absArbitrage < r.minArbitrage {
			continue
		}
		if r.maxArbitrage > 0 && absArbitrage >= r.maxArbitrage {
			continue
		}
		if absZScore < r.minZScore {
			continue
		}
		if r.maxZScore > 0 && absZScore >= r.maxZScore {
			continue
		}
		return r.strength
	}
	return model.SignalWeak
}

// TradingAction derives the two legs' directions from the arbitrage sign.
// Positive space means A is relatively overpriced: short A, long B. Exactly
// zero falls through to long A, short B.
func TradingAction(arbitrageSpace float64) (actionA, actionB model.Action) {
	if arbitrageSpace > 0 {
		return model.ActionShort, model.ActionLong
	}
	return model.ActionLong, model.ActionShort
}

// IsStrong reports whether a tier qualifies for alerting.
func IsStrong(s model.SignalStrength) bool {
	return s == model.SignalSuperStrong || s == model.SignalStrong
}

var strengthRank = map[model.SignalStrength]int{
	model.SignalSuperStrong: 0,
	model.SignalStrong:      1,
	model.SignalMedium:      2,
	model.SignalWeak:        3,
	model.SignalNone:        4,
}

// SortByStrength returns the results ordered for display: tier first, then
// descending absolute arbitrage space. The input is not modified.
func SortByStrength(results []model.PairAnalysis) []model.PairAnalysis {
	sorted := make([]model.PairAnalysis, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri := strengthRank[sorted[i].SignalStrength]
		rj := strengthRank[sorted[j].SignalStrength]
		if ri != rj {
			return ri < rj
		}
		return math.Abs(sorted[i].ArbitrageSpace) > math.Abs(sorted[j].ArbitrageSpace)
	})
	return sorted
}
