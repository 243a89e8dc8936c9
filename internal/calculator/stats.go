// Package calculator implements the pairs-statistics engine: ratio history,
// spread statistics, co-movement, correlation, and trade sizing. All
// functions are pure transformations over in-memory series; degenerate
// numeric inputs (zero mean, zero variance, zero denominators) return 0
// instead of NaN or Inf.
package calculator

import (
	"math"

	"PairSentinel/internal/model"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation (divide by n, not n-1)
// around the given mean, or 0 for an empty slice.
func StdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// ArbitrageSpace is the relative deviation of the current ratio from its
// historical mean: currentRatio/mean − 1. Positive means A is relatively
// expensive versus B.
func ArbitrageSpace(currentRatio, historicalMean float64) float64 {
	if historicalMean == 0 {
		return 0
	}
	return currentRatio/historicalMean - 1
}

// ZScore is how many standard deviations the current ratio sits from the
// mean.
func ZScore(currentRatio, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	return (currentRatio - mean) / stdDev
}

// DailyChanges returns the day-over-day percentage returns of a price
// series. The first day has no prior reference; days whose previous close
// is exactly zero are skipped.
func DailyChanges(prices []model.StockPrice) []float64 {
	if len(prices) < 2 {
		return nil
	}
	changes := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1].Close
		if prev == 0 {
			continue
		}
		changes = append(changes, (prices[i].Close-prev)/prev)
	}
	return changes
}

// CoMovementRate is the fraction of index-aligned days on which both change
// series share the same sign. Zero counts as non-negative ("up"). Unequal
// lengths or empty input return 0.
func CoMovementRate(changesA, changesB []float64) float64 {
	if len(changesA) == 0 || len(changesA) != len(changesB) {
		return 0
	}
	same := 0
	for i := range changesA {
		aUp := changesA[i] >= 0
		bUp := changesB[i] >= 0
		if aUp == bUp {
			same++
		}
	}
	return float64(same) / float64(len(changesA))
}

// Correlation is the Pearson correlation coefficient of two equal-length
// sequences. Unequal lengths, empty input, or zero variance on either side
// return 0.
func Correlation(valuesA, valuesB []float64) float64 {
	if len(valuesA) == 0 || len(valuesA) != len(valuesB) {
		return 0
	}
	meanA := Mean(valuesA)
	meanB := Mean(valuesB)

	var numerator, sumSqA, sumSqB float64
	for i := range valuesA {
		dA := valuesA[i] - meanA
		dB := valuesB[i] - meanB
		numerator += dA * dB
		sumSqA += dA * dA
		sumSqB += dB * dB
	}

	denominator := math.Sqrt(sumSqA * sumSqB)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
