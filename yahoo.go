package finasist

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// This file contains functions to access the Yahoo Finance chart API,
// the general market-quote source for stocks, crypto, FX and gold.

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

/*
	{
	    "chart": {
	        "result": [
	            {
	                "meta": { "symbol": "BTC-USD", "regularMarketPrice": 67342.1, ... },
	                "indicators": {
	                    "quote": [ { "close": [67120.4, 67342.1], ... } ]
	                }
	            }
	        ],
	        "error": null
	    }
	}
*/

// quoteLatest returns the latest single-day close for a ticker symbol.
func (r *MarketResolver) quoteLatest(symbol string) (float64, error) {
	base := r.QuoteURL
	if base == "" {
		base = yahooChartURL
	}
	addr := base + url.PathEscape(symbol) + "?range=1d&interval=1d"

	var jobj any
	if err := jwget(r.client(), addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", symbol, err)
	}

	// The close series is the latest daily close; when the series is empty
	// (market holiday, brand new listing) the meta price is the next best.
	path := "$.chart.result[0].indicators.quote[0].close[-1:]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil || !hasValue(jval) {
		path = "$.chart.result[0].meta.regularMarketPrice"
		jval, err = jsonpath.Get(path, jobj)
		if err != nil {
			return 0, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
		}
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// sometimes this kind of API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return 0, fmt.Errorf("cannot read value for %q: neither a float nor a string: %v", symbol, jval)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot read value for %q: invalid string %q: %w", symbol, sval, err)
		}
	}
	if val == 0 {
		return 0, fmt.Errorf("empty close for %q", symbol)
	}
	return val, nil
}

// hasValue reports whether a jsonpath result carries an actual value.
func hasValue(jval any) bool {
	if jval == nil {
		return false
	}
	if jlist, ok := jval.([]any); ok {
		return len(jlist) > 0 && jlist[0] != nil
	}
	return true
}
