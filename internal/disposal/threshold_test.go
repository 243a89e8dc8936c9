package disposal

import (
	"testing"

	"PairSentinel/internal/model"
)

func TestCalculateThreshold(t *testing.T) {
	tests := []struct {
		name      string
		market    model.MarketType
		priceT5   float64
		priceT29  float64
		wantPrice int
		wantType  model.ThresholdType
		want6d    int
		want30d   int
	}{
		{
			name:   "TWSE 6-day limit wins",
			market: model.MarketTWSE, priceT5: 100, priceT29: 80,
			wantPrice: 125, wantType: model.Threshold6Day, want6d: 125, want30d: 160,
		},
		{
			name:   "TWSE 30-day limit wins",
			market: model.MarketTWSE, priceT5: 100, priceT29: 50,
			wantPrice: 100, wantType: model.Threshold30Day, want6d: 125, want30d: 100,
		},
		{
			name:   "TPEx uses the 1.30 six-day rate",
			market: model.MarketTPEx, priceT5: 100, priceT29: 80,
			wantPrice: 130, wantType: model.Threshold6Day, want6d: 130, want30d: 160,
		},
		{
			name:   "exact tie reports 6-day",
			market: model.MarketTWSE, priceT5: 80, priceT29: 50,
			wantPrice: 100, wantType: model.Threshold6Day, want6d: 100, want30d: 100,
		},
		{
			name:   "fractional limits round up independently",
			market: model.MarketTWSE, priceT5: 33.3, priceT29: 21.7,
			wantPrice: 42, wantType: model.Threshold6Day, want6d: 42, want30d: 44,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateThreshold(tt.market, tt.priceT5, tt.priceT29)
			if got.ThresholdPrice != tt.wantPrice {
				t.Errorf("ThresholdPrice = %d, want %d", got.ThresholdPrice, tt.wantPrice)
			}
			if got.ThresholdType != tt.wantType {
				t.Errorf("ThresholdType = %q, want %q", got.ThresholdType, tt.wantType)
			}
			if got.Limit6d != tt.want6d || got.Limit30d != tt.want30d {
				t.Errorf("limits = (%d, %d), want (%d, %d)",
					got.Limit6d, got.Limit30d, tt.want6d, tt.want30d)
			}
		})
	}
}

func TestPriceMargin(t *testing.T) {
	if got := PriceMargin(100, 110); got != 10 {
		t.Errorf("PriceMargin(100, 110) = %v, want 10", got)
	}
	if got := PriceMargin(120, 110); got >= 0 {
		t.Errorf("expected negative margin when threshold exceeded, got %v", got)
	}
	if got := PriceMargin(0, 110); got != 0 {
		t.Errorf("zero price guards to 0, got %v", got)
	}
}

func TestNearThreshold(t *testing.T) {
	tests := []struct {
		current   float64
		threshold int
		want      bool
	}{
		{106, 110, true},   // ~3.8% below
		{100, 110, false},  // 10% below
		{112, 110, false},  // already exceeded
		{110, 110, true},   // exactly at threshold
	}
	for _, tt := range tests {
		if got := NearThreshold(tt.current, tt.threshold); got != tt.want {
			t.Errorf("NearThreshold(%v, %d) = %v, want %v", tt.current, tt.threshold, got, tt.want)
		}
	}
}
