package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tberk/finasist"
)

type interestCmd struct {
	principal float64
	rate      float64
	tax       float64
	post      bool
}

func (*interestCmd) Name() string     { return "interest" }
func (*interestCmd) Synopsis() string { return "compute (and optionally post) the daily interest return" }
func (*interestCmd) Usage() string {
	return `fa interest [-p <principal>] [-rate <annual%>] [-tax <withholding%>] [-post]

  Computes the net daily return of an overnight deposit:
  principal * ((1 + rate/100)^(1/365) - 1) * (1 - tax/100).

  The principal defaults to the current cash balance. With -post the
  return is recorded as an Interest income entry in the ledger.
`
}

func (p *interestCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.principal, "p", 0, "Principal in TRY. Defaults to the cash balance.")
	f.Float64Var(&p.rate, "rate", 50, "Annual interest rate, in percent.")
	f.Float64Var(&p.tax, "tax", 5, "Withholding tax rate, in percent.")
	f.BoolVar(&p.post, "post", false, "Record the return as an income entry.")
}

func (p *interestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	principal := finasist.M(p.principal, "TRY")
	if p.principal == 0 {
		principal, err = store.CashBalance()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	daily := finasist.DailyNetReturn(principal, p.rate, p.tax)
	fmt.Printf("Principal: %s\n", principal)
	fmt.Printf("Daily net return at %.0f%% (tax %.0f%%): %s\n", p.rate, p.tax, daily)

	if p.post {
		tx, err := store.PostInterest(principal, p.rate, p.tax)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Posted entry %d: %s\n", tx.ID, tx.Amount)
	}
	return subcommands.ExitSuccess
}
