package calculator

import (
	"testing"

	"PairSentinel/internal/model"
)

func pricesOn(dates []string, closes []float64) []model.StockPrice {
	prices := make([]model.StockPrice, len(dates))
	for i := range dates {
		prices[i] = model.StockPrice{Date: dates[i], Close: closes[i]}
	}
	return prices
}

func TestBuildRatioHistory_InnerJoin(t *testing.T) {
	a := pricesOn(
		[]string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08"},
		[]float64{100, 102, 104, 106},
	)
	b := pricesOn(
		[]string{"2026-01-05", "2026-01-07", "2026-01-08", "2026-01-09"},
		[]float64{50, 0, 53, 54},
	)

	history := BuildRatioHistory(a, b)
	// 01-06 missing from B, 01-07 has a zero close, 01-09 missing from A.
	if len(history) != 2 {
		t.Fatalf("expected 2 joined rows, got %d", len(history))
	}
	if history[0].Date != "2026-01-05" || history[0].Ratio != 2 {
		t.Errorf("first row = %+v, want date 2026-01-05 ratio 2", history[0])
	}
	if history[1].Date != "2026-01-08" || !approx(history[1].Ratio, 2.0, 1e-12) {
		t.Errorf("second row = %+v, want date 2026-01-08 ratio 2", history[1])
	}
	if history[0].StockAPrice != 100 || history[0].StockBPrice != 50 {
		t.Errorf("row must carry both close prices, got %+v", history[0])
	}
}

func TestBuildRatioHistory_DenominatorOne(t *testing.T) {
	dates := []string{"2026-01-05", "2026-01-06", "2026-01-07"}
	closesA := []float64{123.5, 130.25, 128}
	a := pricesOn(dates, closesA)
	b := pricesOn(dates, []float64{1, 1, 1})

	history := BuildRatioHistory(a, b)
	if len(history) != len(dates) {
		t.Fatalf("expected full join, got %d rows", len(history))
	}
	for i, r := range history {
		if r.Ratio != closesA[i] {
			t.Errorf("row %d: ratio %v, want A's close %v", i, r.Ratio, closesA[i])
		}
	}
}

func TestGeneratePairs(t *testing.T) {
	pairs := GeneratePairs([]string{"A", "B", "C"})
	if len(pairs) != 6 {
		t.Fatalf("expected 6 directed pairs, got %d", len(pairs))
	}

	seen := make(map[[2]string]bool)
	for _, p := range pairs {
		if p[0] == p[1] {
			t.Errorf("self pair %v must not appear", p)
		}
		if seen[p] {
			t.Errorf("duplicate pair %v", p)
		}
		seen[p] = true
	}
	// Each unordered pair appears in both directions.
	for _, p := range pairs {
		if !seen[[2]string{p[1], p[0]}] {
			t.Errorf("missing reverse direction of %v", p)
		}
	}
}

func TestGeneratePairs_Degenerate(t *testing.T) {
	if got := GeneratePairs([]string{"A"}); len(got) != 0 {
		t.Errorf("single stock yields no pairs, got %v", got)
	}
	if got := GeneratePairs(nil); len(got) != 0 {
		t.Errorf("empty input yields no pairs, got %v", got)
	}
}
