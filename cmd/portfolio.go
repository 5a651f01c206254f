package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tberk/finasist"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "value all positions at current market prices" }
func (*portfolioCmd) Usage() string {
	return `fa portfolio

  Fetches a live price for every position and prints the valuation table.
  When a price cannot be fetched the position is valued at its average
  cost and flagged, so the totals stay meaningful offline.
`
}
func (*portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (p *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	positions, err := store.Positions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(positions) == 0 {
		fmt.Println("No positions yet. Record one with 'fa buy'.")
		return subcommands.ExitSuccess
	}

	resolver := finasist.NewMarketResolver()
	progress := func(done, total int, symbol string) {
		fmt.Fprintf(os.Stderr, "(%d/%d) %s\n", done, total, symbol)
	}
	v := finasist.ValuePortfolio(positions, resolver, progress)

	printMarkdown(valuationTable(v))
	return subcommands.ExitSuccess
}

// valuationTable renders a full valuation, totals included, as markdown.
func valuationTable(v finasist.Valuation) string {
	rows := make([][]string, 0, len(v.Rows)+1)
	for _, r := range v.Rows {
		price := r.CurrentPrice.String()
		if !r.Live {
			price += " (stale)"
		}
		rows = append(rows, []string{
			r.Position.Symbol,
			r.Position.Quantity.String(),
			r.Position.AvgCost.String(),
			price,
			r.CurrentValue.String(),
			r.UnrealizedPL.SignedString(),
			r.UnrealizedPLPct.SignedString(),
		})
	}
	rows = append(rows, []string{
		"**Total**", "", "", "",
		v.TotalValue.String(),
		v.TotalUnrealizedPL.SignedString(),
		v.TotalUnrealizedPLPct.SignedString(),
	})
	return markdownTable([]string{"Symbol", "Quantity", "Avg Cost", "Price", "Value", "P&L", "P&L%"}, rows)
}

type fetchCmd struct {
	symbol string
	class  string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch the current price of a single symbol" }
func (*fetchCmd) Usage() string {
	return `fa fetch -s <symbol> [-c <class>]

  Looks up the current price in TRY without touching the database.
  Useful to check a symbol before buying it.
`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "s", "", "Symbol to look up (e.g. AFA, BTC-USD, GC=F).")
	f.StringVar(&p.class, "c", "stock-crypto", "Asset class: fund, stock-crypto or fx-gold.")
}

func (p *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.symbol == "" {
		fmt.Fprintln(os.Stderr, "missing -s symbol")
		return subcommands.ExitUsageError
	}
	class, err := finasist.ParseAssetClass(p.class)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	price, err := finasist.NewMarketResolver().Resolve(class, p.symbol)
	if err != nil {
		if errors.Is(err, finasist.ErrPriceUnavailable) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %s\n", p.symbol, price)
	return subcommands.ExitSuccess
}
