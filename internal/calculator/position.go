package calculator

import (
	"math"

	"PairSentinel/internal/model"
)

// maxSearchLots bounds the minimum-position search. The brute-force scan is
// intentional: a closed-form rational approximation could pick a different,
// equally-valid combination and break reproducibility.
const maxSearchLots = 10

// MinimumPosition finds the smallest lot combination whose two legs carry
// roughly equal notional value. Both lot counts are scanned over 1..10 in
// ascending nested order (A outer, B inner); a candidate replaces the best
// when its value difference is strictly smaller, or when it is within 10%
// of the best difference with fewer total lots. The 10% tolerance and the
// iteration order are a fixed contract, not tunables.
func MinimumPosition(priceA, priceB float64, actionA, actionB model.Action) model.PositionResult {
	valuePerLotA := priceA * model.LotSize
	valuePerLotB := priceB * model.LotSize

	bestLotsA, bestLotsB := 1, 1
	bestDiff := math.Abs(valuePerLotA - valuePerLotB)

	for lotsA := 1; lotsA <= maxSearchLots; lotsA++ {
		for lotsB := 1; lotsB <= maxSearchLots; lotsB++ {
			diff := math.Abs(float64(lotsA)*valuePerLotA - float64(lotsB)*valuePerLotB)
			if diff < bestDiff ||
				(diff <= bestDiff*1.1 && lotsA+lotsB < bestLotsA+bestLotsB) {
				bestDiff = diff
				bestLotsA = lotsA
				bestLotsB = lotsB
			}
		}
	}

	return assemblePosition(bestLotsA, bestLotsB, valuePerLotA, valuePerLotB, actionA, actionB)
}

// CustomCapitalPosition sizes both legs from a fixed capital amount, split
// 50/50. Each leg takes floor(half ÷ per-lot notional) lots, floored at 1
// lot whenever the total capital covers at least one lot of that leg.
func CustomCapitalPosition(priceA, priceB, totalCapital float64, actionA, actionB model.Action) model.PositionResult {
	valuePerLotA := priceA * model.LotSize
	valuePerLotB := priceB * model.LotSize
	capitalPerSide := totalCapital / 2

	lotsA := 0
	if valuePerLotA > 0 {
		lotsA = int(capitalPerSide / valuePerLotA)
		if lotsA < 1 && totalCapital >= valuePerLotA {
			lotsA = 1
		}
	}
	lotsB := 0
	if valuePerLotB > 0 {
		lotsB = int(capitalPerSide / valuePerLotB)
		if lotsB < 1 && totalCapital >= valuePerLotB {
			lotsB = 1
		}
	}

	return assemblePosition(lotsA, lotsB, valuePerLotA, valuePerLotB, actionA, actionB)
}

func assemblePosition(lotsA, lotsB int, valuePerLotA, valuePerLotB float64, actionA, actionB model.Action) model.PositionResult {
	costA := float64(lotsA) * valuePerLotA
	costB := float64(lotsB) * valuePerLotB
	total := costA + costB

	diffPercent := 0.0
	if total > 0 {
		diffPercent = math.Abs(costA-costB) / (total / 2)
	}

	return model.PositionResult{
		StockALots:             lotsA,
		StockBLots:             lotsB,
		StockACost:             costA,
		StockBCost:             costB,
		TotalCapital:           total,
		ValueDifference:        math.Abs(costA - costB),
		ValueDifferencePercent: diffPercent,
		StockAAction:           actionA,
		StockBAction:           actionB,
	}
}
