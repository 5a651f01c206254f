package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tberk/finasist"
)

// recentTransactions is how many ledger entries the summary shows.
const recentTransactions = 5

type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "overall financial picture, and record today's snapshot" }
func (*summaryCmd) Usage() string {
	return `fa summary [-offline]

  Prints the cash balance, the portfolio value, the net worth and the
  latest ledger entries. Each run also records a net-worth snapshot for
  today, replacing any earlier snapshot for the same date.

  With -offline no prices are fetched; positions are valued at average
  cost and no snapshot is recorded.
`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.offline, "offline", false, "Skip price lookups and the snapshot.")
}

func (p *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	cash, err := store.CashBalance()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	positions, err := store.Positions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var resolver finasist.PriceResolver
	if !p.offline {
		resolver = finasist.NewMarketResolver()
	} else {
		resolver = unavailableResolver{}
	}
	progress := func(done, total int, symbol string) {
		fmt.Fprintf(os.Stderr, "(%d/%d) %s\n", done, total, symbol)
	}
	v := finasist.ValuePortfolio(positions, resolver, progress)
	netWorth := finasist.NetWorth(cash, v)

	txs, err := store.Transactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	totalIncome := finasist.M(0, "TRY")
	for _, tx := range txs {
		if tx.Kind == finasist.Income {
			totalIncome = totalIncome.Add(tx.Amount)
		}
	}

	md := "# Summary\n\n" + markdownTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Net Worth", netWorth.String()},
			{"Cash Balance", cash.String()},
			{"Portfolio Value", v.TotalValue.String()},
			{"Total Income", totalIncome.String()},
			{"Unrealized P&L", v.TotalUnrealizedPL.SignedString() + " (" + v.TotalUnrealizedPLPct.SignedString() + ")"},
		},
	)

	if len(txs) > recentTransactions {
		txs = txs[:recentTransactions]
	}
	if len(txs) > 0 {
		md += "\n## Recent Transactions\n\n" + transactionsTable(txs)
	}
	printMarkdown(md)

	if !p.offline {
		snap := finasist.Snapshot{
			Date:           finasist.Today(),
			NetWorth:       netWorth,
			CashBalance:    cash,
			PortfolioValue: v.TotalValue,
		}
		if err := store.UpsertSnapshot(snap); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// unavailableResolver answers every lookup with ErrPriceUnavailable, which
// makes ValuePortfolio fall back to average cost for every position.
type unavailableResolver struct{}

func (unavailableResolver) Resolve(finasist.AssetClass, string) (finasist.Money, error) {
	return finasist.Money{}, finasist.ErrPriceUnavailable
}

type historyCmd struct {
	head int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "net-worth snapshots over time" }
func (*historyCmd) Usage() string {
	return `fa history [-head <n>]

  Prints the recorded net-worth snapshots in chronological order, one
  per day. Snapshots are written by 'fa summary'.
`
}

func (p *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Only print the last n snapshots.")
}

func (p *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	snaps, err := store.History()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots yet. Run 'fa summary' to record one.")
		return subcommands.ExitSuccess
	}
	if p.head > 0 && len(snaps) > p.head {
		snaps = snaps[len(snaps)-p.head:]
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			s.Date.String(),
			s.NetWorth.String(),
			s.CashBalance.String(),
			s.PortfolioValue.String(),
		})
	}
	printMarkdown(markdownTable([]string{"Date", "Net Worth", "Cash", "Portfolio"}, rows))
	return subcommands.ExitSuccess
}
