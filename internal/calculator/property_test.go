package calculator

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"PairSentinel/internal/model"
)

func TestCorrelation_Symmetry_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Correlation(X,Y) == Correlation(Y,X)", prop.ForAll(
		func(values []float64) bool {
			if len(values) < 2 {
				return true
			}
			mid := len(values) / 2
			x := values[:mid]
			y := values[mid : mid*2]
			return approx(Correlation(x, y), Correlation(y, x), 1e-9)
		},
		gen.SliceOf(gen.Float64Range(-1000, 1000)),
	))

	properties.Property("Correlation is bounded by [-1, 1]", prop.ForAll(
		func(values []float64) bool {
			if len(values) < 2 {
				return true
			}
			mid := len(values) / 2
			c := Correlation(values[:mid], values[mid:mid*2])
			return c >= -1-1e-9 && c <= 1+1e-9
		},
		gen.SliceOf(gen.Float64Range(-1000, 1000)),
	))

	properties.TestingRun(t)
}

func TestGeneratePairs_Count_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("N distinct ids yield N×(N−1) directed pairs", prop.ForAll(
		func(n int) bool {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = "s" + string(rune('a'+i))
			}
			return len(GeneratePairs(ids)) == n*(n-1)
		},
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}

func TestBuildRatioHistory_UnitDenominator_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("with B≡1 the ratio sequence equals A's closes", prop.ForAll(
		func(closes []float64) bool {
			a := make([]model.StockPrice, len(closes))
			b := make([]model.StockPrice, len(closes))
			for i, c := range closes {
				date := isoDay(i)
				a[i] = model.StockPrice{Date: date, Close: c}
				b[i] = model.StockPrice{Date: date, Close: 1}
			}
			history := BuildRatioHistory(a, b)
			if len(history) != len(closes) {
				return false
			}
			for i, r := range history {
				if r.Ratio != closes[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(40, gen.Float64Range(0.01, 5000)),
	))

	properties.TestingRun(t)
}

func TestMinimumPosition_Bounds_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("both legs stay within 1..10 lots for positive prices", prop.ForAll(
		func(priceA, priceB float64) bool {
			got := MinimumPosition(priceA, priceB, model.ActionShort, model.ActionLong)
			return got.StockALots >= 1 && got.StockALots <= maxSearchLots &&
				got.StockBLots >= 1 && got.StockBLots <= maxSearchLots
		},
		gen.Float64Range(0.1, 3000),
		gen.Float64Range(0.1, 3000),
	))

	properties.Property("scanned minimum difference never grows as the range widens", prop.ForAll(
		func(priceA, priceB float64) bool {
			prev := math.Inf(1)
			for limit := 1; limit <= maxSearchLots; limit++ {
				m := minAchievableDiff(priceA, priceB, limit)
				if m > prev+1e-9 {
					return false
				}
				prev = m
			}
			return true
		},
		gen.Float64Range(0.1, 3000),
		gen.Float64Range(0.1, 3000),
	))

	properties.TestingRun(t)
}

// minAchievableDiff is the plain minimum notional difference over a bounded
// lot grid, without the fewer-lots tie-break.
func minAchievableDiff(priceA, priceB float64, maxLots int) float64 {
	best := math.Inf(1)
	for lotsA := 1; lotsA <= maxLots; lotsA++ {
		for lotsB := 1; lotsB <= maxLots; lotsB++ {
			diff := math.Abs(float64(lotsA)*priceA*model.LotSize - float64(lotsB)*priceB*model.LotSize)
			if diff < best {
				best = diff
			}
		}
	}
	return best
}
