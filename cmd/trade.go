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

// tradeFlags are the flags shared by the buy and sell commands.
type tradeFlags struct {
	date     string
	class    string
	symbol   string
	quantity float64
	price    float64
}

func (p *tradeFlags) set(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the trade (defaults to today).")
	f.StringVar(&p.class, "c", "stock-crypto", "Asset class (fund, stock-crypto, fx-gold).")
	f.StringVar(&p.symbol, "s", "", "Symbol (e.g. TCD, BTC-USD, TRY=X).")
	f.Float64Var(&p.quantity, "q", 0, "Quantity of units traded.")
	f.Float64Var(&p.price, "p", 0, "Unit price in TRY.")
}

func (p *tradeFlags) parse() (finasist.Date, finasist.AssetClass, error) {
	day, err := parseDateFlag(p.date)
	if err != nil {
		return finasist.Date{}, "", err
	}
	class, err := finasist.ParseAssetClass(p.class)
	if err != nil {
		return finasist.Date{}, "", err
	}
	return day, class, nil
}

type buyCmd struct {
	tradeFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an asset and post the paired expense" }
func (*buyCmd) Usage() string {
	return `fa buy -s <symbol> -q <quantity> -p <price> [-c <class>] [-d <date>]

  Applies a purchase to the portfolio, recomputing the weighted-average
  cost, and posts the matching expense entry in the ledger. Both happen in
  a single atomic commit.

Usage Examples:
$ fa buy -s BTC-USD -q 0.05 -p 2150000
$ fa buy -c fund -s TCD -q 1000 -p 4.33
`
}

func (p *buyCmd) SetFlags(f *flag.FlagSet) { p.tradeFlags.set(f) }

func (p *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, class, err := p.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	posting, err := store.RecordTrade(day, class, p.symbol, finasist.Q(p.quantity), finasist.M(p.price, "TRY"), finasist.ActionBuy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Bought %v of %s, posted %s\n", finasist.Q(p.quantity), p.symbol, posting.Amount)
	return subcommands.ExitSuccess
}

type sellCmd struct {
	tradeFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell an asset and post the paired income" }
func (*sellCmd) Usage() string {
	return `fa sell -s <symbol> -q <quantity> -p <price> [-c <class>] [-d <date>]

  Applies a sale to the portfolio and posts the matching income entry in
  the ledger, in a single atomic commit. Selling the whole holding removes
  the position. Selling a symbol you do not hold is rejected.
`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) { p.tradeFlags.set(f) }

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, class, err := p.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	// the realized gain is derived from the average cost before the sale.
	quantity := finasist.Q(p.quantity)
	price := finasist.M(p.price, "TRY")
	var realized finasist.Money
	if held, err := store.PositionBySymbol(p.symbol); err == nil {
		realized = held.RealizedGain(quantity, price)
	}

	posting, err := store.RecordTrade(day, class, p.symbol, quantity, price, finasist.ActionSell)
	if err != nil {
		if errors.Is(err, finasist.ErrNoPosition) {
			fmt.Fprintf(os.Stderr, "cannot sell %s: %v\n", p.symbol, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Sold %v of %s for %s, realized P/L %s\n", quantity, p.symbol, posting.Amount, realized.SignedString())
	return subcommands.ExitSuccess
}
