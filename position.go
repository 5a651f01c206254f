package finasist

import (
	"fmt"
)

// AssetClass selects the quote source used to value a position.
type AssetClass string

const (
	// Fund is a TEFAS mutual fund, priced by fund code.
	Fund AssetClass = "fund"
	// StockCrypto is any ticker the market-quote source understands
	// (e.g. THYAO.IS, BTC-USD).
	StockCrypto AssetClass = "stock-crypto"
	// FXGold covers currency and precious metal pseudo-tickers (e.g. TRY=X, GC=F).
	FXGold AssetClass = "fx-gold"
)

// ParseAssetClass parses a string into an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch s {
	case "fund":
		return Fund, nil
	case "stock-crypto":
		return StockCrypto, nil
	case "fx-gold":
		return FXGold, nil
	default:
		return "", fmt.Errorf("unknown asset class: %q", s)
	}
}

// Position is a currently held asset. Symbol is unique within the ledger.
//
// Invariant: Quantity is strictly positive; a position sold down to zero is
// deleted, never persisted at zero. AvgCost changes only on buys.
type Position struct {
	ID       int64      `json:"id"`
	Class    AssetClass `json:"asset_class"`
	Symbol   string     `json:"symbol"`
	Quantity Quantity   `json:"quantity"`
	AvgCost  Money      `json:"avg_cost"` // per unit
}

// CostBasis returns the total acquisition cost of the position.
func (p Position) CostBasis() Money { return p.AvgCost.Mul(p.Quantity) }

// applyBuy merges a purchase into the position, recomputing the weighted
// average cost: (old_qty*old_avg + qty*price) / (old_qty+qty).
// The divisor is old_qty+qty > 0 since qty > 0 is checked upstream.
func applyBuy(p Position, quantity Quantity, price Money) Position {
	newQty := p.Quantity.Add(quantity)
	oldCost := p.AvgCost.Mul(p.Quantity)
	addedCost := price.Mul(quantity)
	p.AvgCost = oldCost.Add(addedCost).Div(newQty)
	p.Quantity = newQty
	return p
}

// applySell reduces the position by the sold quantity. It reports
// liquidated=true when the sale covers the whole holding, in which case the
// position must be deleted; avg cost is meaningless past that point.
// Selling never changes the average cost.
func applySell(p Position, quantity Quantity) (updated Position, liquidated bool) {
	if !quantity.LessThan(p.Quantity) {
		return p, true
	}
	p.Quantity = p.Quantity.Sub(quantity)
	return p, false
}

// RealizedGain computes the cash gain of selling quantity units at price
// against the position's average cost. It is derived at sale time and not
// stored anywhere.
func (p Position) RealizedGain(quantity Quantity, price Money) Money {
	return price.Sub(p.AvgCost).Mul(quantity)
}

func (p Position) String() string {
	return fmt.Sprintf("%s %s x%s @ %s", p.Class, p.Symbol, p.Quantity, p.AvgCost)
}
