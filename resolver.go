package finasist

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrPriceUnavailable signals that no live price could be obtained for a
// symbol: network failure, empty result or malformed response. Callers are
// expected to fall back to the position's average cost, not to propagate it.
var ErrPriceUnavailable = errors.New("price unavailable")

// PriceResolver resolves the current unit price of a symbol, in TRY.
// Implementations return an error wrapping ErrPriceUnavailable when no live
// quote can be obtained.
type PriceResolver interface {
	Resolve(class AssetClass, symbol string) (Money, error)
}

// usdTrySymbol is the fixed pseudo-ticker for the USD→TRY rate.
const usdTrySymbol = "TRY=X"

// MarketResolver is the live PriceResolver over the TEFAS fund source and
// the Yahoo-style market-quote source. Zero-value fields pick production
// defaults; tests point the URLs at local servers.
type MarketResolver struct {
	FundURL  string       // TEFAS history endpoint
	QuoteURL string       // chart endpoint, the symbol is appended
	Client   *http.Client // defaults to the daily-cached bounded client
}

// NewMarketResolver returns a resolver against the production quote sources.
func NewMarketResolver() *MarketResolver {
	return &MarketResolver{}
}

func (r *MarketResolver) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return daily()
}

// Resolve returns the current unit price in TRY for the given symbol.
//
// Funds are priced from the TEFAS source (most recent close in a trailing
// window). Everything else is priced from the market-quote source; symbols
// denominated in USD are additionally multiplied by the USD→TRY rate, and
// the whole resolution fails if either leg does.
func (r *MarketResolver) Resolve(class AssetClass, symbol string) (Money, error) {
	if class == Fund {
		price, err := r.fundLatest(symbol)
		if err != nil {
			return Money{}, fmt.Errorf("%w: fund %s: %v", ErrPriceUnavailable, symbol, err)
		}
		return M(price, "TRY"), nil
	}

	price, err := r.quoteLatest(symbol)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %s: %v", ErrPriceUnavailable, symbol, err)
	}
	if strings.Contains(symbol, "USD") {
		rate, err := r.quoteLatest(usdTrySymbol)
		if err != nil {
			return Money{}, fmt.Errorf("%w: USD/TRY rate for %s: %v", ErrPriceUnavailable, symbol, err)
		}
		price *= rate
	}
	return M(price, "TRY"), nil
}
