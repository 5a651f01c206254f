package finasist

import (
	"fmt"
	"math"
	"testing"
)

// stubResolver serves canned prices and fails everything else.
type stubResolver map[string]float64

func (r stubResolver) Resolve(_ AssetClass, symbol string) (Money, error) {
	price, ok := r[symbol]
	if !ok {
		return Money{}, fmt.Errorf("%w: %s", ErrPriceUnavailable, symbol)
	}
	return TRY(price), nil
}

func TestValuePortfolio(t *testing.T) {
	positions := []Position{
		{Symbol: "THYAO.IS", Class: StockCrypto, Quantity: Q(100), AvgCost: TRY(10)},
		{Symbol: "AFA", Class: Fund, Quantity: Q(50), AvgCost: TRY(4)},
	}
	resolver := stubResolver{"THYAO.IS": 12, "AFA": 3}

	v := ValuePortfolio(positions, resolver, nil)

	if len(v.Rows) != 2 {
		t.Fatalf("ValuePortfolio() returned %d rows, want 2", len(v.Rows))
	}
	thy := v.Rows[0]
	if !thy.CurrentValue.Equal(TRY(1200)) || !thy.UnrealizedPL.Equal(TRY(200)) {
		t.Errorf("THYAO.IS row = value %s pl %s, want 1200 and 200", thy.CurrentValue, thy.UnrealizedPL)
	}
	if !thy.UnrealizedPLPct.Equal(Percent(20)) {
		t.Errorf("THYAO.IS pl pct = %s, want 20%%", thy.UnrealizedPLPct)
	}
	if !thy.Live {
		t.Error("THYAO.IS row must be live")
	}

	if !v.TotalValue.Equal(TRY(1350)) {
		t.Errorf("TotalValue = %s, want 1350", v.TotalValue)
	}
	if !v.TotalUnrealizedPL.Equal(TRY(150)) {
		t.Errorf("TotalUnrealizedPL = %s, want 150", v.TotalUnrealizedPL)
	}
	// 150 gain over the 1200 basis
	if !v.TotalUnrealizedPLPct.Equal(Percent(12.5)) {
		t.Errorf("TotalUnrealizedPLPct = %s, want 12.50%%", v.TotalUnrealizedPLPct)
	}
}

func TestValuePortfolioFallback(t *testing.T) {
	positions := []Position{
		{Symbol: "THYAO.IS", Class: StockCrypto, Quantity: Q(100), AvgCost: TRY(10)},
	}
	// nothing resolvable: the position is valued at cost, with zero P&L
	v := ValuePortfolio(positions, stubResolver{}, nil)

	row := v.Rows[0]
	if row.Live {
		t.Error("unresolvable row must not be live")
	}
	if !row.CurrentPrice.Equal(TRY(10)) || !row.CurrentValue.Equal(TRY(1000)) {
		t.Errorf("fallback row = price %s value %s, want 10 and 1000", row.CurrentPrice, row.CurrentValue)
	}
	if !row.UnrealizedPL.IsZero() || !row.UnrealizedPLPct.Equal(0) {
		t.Errorf("fallback row P&L = %s (%s), want zero", row.UnrealizedPL, row.UnrealizedPLPct)
	}
	if !v.TotalUnrealizedPLPct.Equal(0) {
		t.Errorf("TotalUnrealizedPLPct = %s, want zero", v.TotalUnrealizedPLPct)
	}
}

func TestValuePortfolioEmpty(t *testing.T) {
	v := ValuePortfolio(nil, stubResolver{}, nil)
	if len(v.Rows) != 0 || !v.TotalValue.IsZero() || !v.TotalUnrealizedPLPct.Equal(0) {
		t.Errorf("empty portfolio valuation = %+v, want all zero", v)
	}
}

func TestValuePortfolioProgress(t *testing.T) {
	positions := []Position{
		{Symbol: "A", Class: StockCrypto, Quantity: Q(1), AvgCost: TRY(1)},
		{Symbol: "B", Class: StockCrypto, Quantity: Q(1), AvgCost: TRY(1)},
	}

	var calls []string
	ValuePortfolio(positions, stubResolver{}, func(done, total int, symbol string) {
		calls = append(calls, fmt.Sprintf("%d/%d %s", done, total, symbol))
	})

	want := []string{"1/2 A", "2/2 B"}
	if len(calls) != len(want) {
		t.Fatalf("progress called %d times, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("progress[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestNetWorth(t *testing.T) {
	v := ValuePortfolio([]Position{
		{Symbol: "AFA", Class: Fund, Quantity: Q(50), AvgCost: TRY(4)},
	}, stubResolver{"AFA": 5}, nil)

	got := NetWorth(TRY(1000), v)
	if !got.Equal(TRY(1250)) {
		t.Errorf("NetWorth() = %s, want 1250", got)
	}
}

func TestPercentEqual(t *testing.T) {
	if !Percent(12.50001).Equal(Percent(12.50002)) {
		t.Error("Percent.Equal() must tolerate sub-precision noise")
	}
	if Percent(12.5).Equal(Percent(12.6)) {
		t.Error("Percent.Equal() must distinguish distinct values")
	}
	if math.Signbit(float64(Percent(0))) {
		t.Error("zero percent must not be negative")
	}
}
