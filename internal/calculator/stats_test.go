package calculator

import (
	"math"
	"testing"

	"PairSentinel/internal/model"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func series(closes ...float64) []model.StockPrice {
	prices := make([]model.StockPrice, len(closes))
	for i, c := range closes {
		prices[i] = model.StockPrice{Date: dateFor(i), Close: c}
	}
	return prices
}

// dateFor generates ascending ISO dates for fixtures.
func dateFor(i int) string {
	return "2026-01-" + string(rune('0'+(i+1)/10)) + string(rune('0'+(i+1)%10))
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
}

func TestStdDev_Population(t *testing.T) {
	// Population stddev of {2,4,4,4,5,5,7,9} is exactly 2 (divide by n).
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := StdDev(values, Mean(values)); !approx(got, 2, 1e-12) {
		t.Errorf("StdDev = %v, want 2", got)
	}
	if got := StdDev(nil, 0); got != 0 {
		t.Errorf("StdDev(nil) = %v, want 0", got)
	}
	if got := StdDev([]float64{3, 3, 3}, 3); got != 0 {
		t.Errorf("constant series stddev = %v, want 0", got)
	}
}

func TestArbitrageSpaceAndZScore_DegenerateGuards(t *testing.T) {
	if got := ArbitrageSpace(1.2, 0); got != 0 {
		t.Errorf("zero mean must guard to 0, got %v", got)
	}
	if got := ArbitrageSpace(1.2, 1.0); !approx(got, 0.2, 1e-12) {
		t.Errorf("ArbitrageSpace = %v, want 0.2", got)
	}
	if got := ZScore(1.2, 1.0, 0); got != 0 {
		t.Errorf("zero stddev must guard to 0, got %v", got)
	}
	if got := ZScore(1.2, 1.0, 0.1); !approx(got, 2, 1e-12) {
		t.Errorf("ZScore = %v, want 2", got)
	}
}

func TestDailyChanges(t *testing.T) {
	changes := DailyChanges(series(100, 110, 99))
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if !approx(changes[0], 0.10, 1e-12) || !approx(changes[1], -0.10, 1e-12) {
		t.Errorf("changes = %v, want [0.1, -0.1]", changes)
	}

	// A zero previous close is skipped, not divided by.
	changes = DailyChanges(series(100, 0, 50))
	if len(changes) != 1 {
		t.Fatalf("expected 1 change (zero prev skipped), got %d: %v", len(changes), changes)
	}
	if !approx(changes[0], -1, 1e-12) {
		t.Errorf("change = %v, want -1 (100→0)", changes[0])
	}

	if got := DailyChanges(series(100)); got != nil {
		t.Errorf("single day has no change, got %v", got)
	}
}

func TestCoMovementRate(t *testing.T) {
	a := []float64{0.01, -0.02, 0.0, 0.03}
	b := []float64{0.02, 0.01, -0.01, 0.05}
	// Same sign on days 0 and 3; day 2: a=0 counts as up, b<0 down.
	if got := CoMovementRate(a, b); !approx(got, 0.5, 1e-12) {
		t.Errorf("CoMovementRate = %v, want 0.5", got)
	}
	if got := CoMovementRate(a, b[:3]); got != 0 {
		t.Errorf("unequal lengths must return 0, got %v", got)
	}
	if got := CoMovementRate(nil, nil); got != 0 {
		t.Errorf("empty input must return 0, got %v", got)
	}
}

func TestCorrelation(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}
	if got := Correlation(a, b); !approx(got, 1, 1e-12) {
		t.Errorf("perfect positive correlation = %v, want 1", got)
	}
	c := []float64{10, 8, 6, 4, 2}
	if got := Correlation(a, c); !approx(got, -1, 1e-12) {
		t.Errorf("perfect negative correlation = %v, want -1", got)
	}
	flat := []float64{3, 3, 3, 3, 3}
	if got := Correlation(a, flat); got != 0 {
		t.Errorf("zero variance must return 0, got %v", got)
	}
	if got := Correlation(a, b[:3]); got != 0 {
		t.Errorf("unequal lengths must return 0, got %v", got)
	}
}
