package finasist

import (
	"errors"
	"log"
)

// PositionValue is one row of a portfolio valuation.
type PositionValue struct {
	Position
	CurrentPrice    Money   // live price, or avg cost when Live is false
	CurrentValue    Money   // Quantity × CurrentPrice
	UnrealizedPL    Money   // CurrentValue − cost basis
	UnrealizedPLPct Percent // 0 when the cost basis is 0
	Live            bool    // false when valued at cost basis (price unavailable)
}

// Valuation is the portfolio valued at current prices.
type Valuation struct {
	Rows                 []PositionValue
	TotalValue           Money
	TotalUnrealizedPL    Money
	TotalUnrealizedPLPct Percent
}

// Progress reports per-position advancement of a valuation. Resolving N
// positions means up to N sequential network lookups, the dominant latency
// of the whole tracker, so callers display this.
type Progress func(done, total int, symbol string)

// ValuePortfolio values every position with the resolver, falling back to
// the recorded average cost when a live price is unavailable. Price failures
// degrade the valuation, they never fail it.
//
// progress may be nil.
func ValuePortfolio(positions []Position, resolver PriceResolver, progress Progress) Valuation {
	var v Valuation
	v.TotalValue = M(0, "TRY")
	v.TotalUnrealizedPL = M(0, "TRY")

	for i, p := range positions {
		row := valuePosition(p, resolver)
		v.Rows = append(v.Rows, row)
		v.TotalValue = v.TotalValue.Add(row.CurrentValue)
		v.TotalUnrealizedPL = v.TotalUnrealizedPL.Add(row.UnrealizedPL)
		if progress != nil {
			progress(i+1, len(positions), p.Symbol)
		}
	}

	// The prior cost basis is derived algebraically: value − gain.
	basis := v.TotalValue.Sub(v.TotalUnrealizedPL)
	if !basis.IsZero() {
		pl := v.TotalUnrealizedPL.Decimal().InexactFloat64()
		v.TotalUnrealizedPLPct = Percent(pl / basis.Decimal().InexactFloat64() * 100)
	}
	return v
}

func valuePosition(p Position, resolver PriceResolver) PositionValue {
	row := PositionValue{Position: p, Live: true}

	price, err := resolver.Resolve(p.Class, p.Symbol)
	if err != nil {
		if !errors.Is(err, ErrPriceUnavailable) {
			log.Printf("resolver error for %s (treated as unavailable): %v", p.Symbol, err)
		}
		price = p.AvgCost
		row.Live = false
	}

	row.CurrentPrice = price
	row.CurrentValue = price.Mul(p.Quantity)
	basis := p.CostBasis()
	row.UnrealizedPL = row.CurrentValue.Sub(basis)
	if !basis.IsZero() {
		pl := row.UnrealizedPL.Decimal().InexactFloat64()
		row.UnrealizedPLPct = Percent(pl / basis.Decimal().InexactFloat64() * 100)
	}
	return row
}

// NetWorth is the system-wide worth: cash balance plus total portfolio value.
func NetWorth(cash Money, v Valuation) Money {
	return cash.Add(v.TotalValue)
}
