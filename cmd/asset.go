package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tberk/finasist"
)

type editAssetCmd struct {
	id       int64
	quantity float64
	avgCost  float64
}

func (*editAssetCmd) Name() string     { return "edit-asset" }
func (*editAssetCmd) Synopsis() string { return "directly correct a position's quantity and avg cost" }
func (*editAssetCmd) Usage() string {
	return `fa edit-asset -id <id> -q <quantity> -avg <avg_cost>

  Overrides a position, bypassing the trade math. Meant for fixing
  data-entry mistakes. Setting the quantity to zero removes the position.
`
}

func (p *editAssetCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.id, "id", 0, "ID of the position to edit.")
	f.Float64Var(&p.quantity, "q", 0, "New quantity.")
	f.Float64Var(&p.avgCost, "avg", 0, "New average cost per unit, in TRY.")
}

func (p *editAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := store.EditPosition(p.id, finasist.Q(p.quantity), finasist.M(p.avgCost, "TRY")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated position %d\n", p.id)
	return subcommands.ExitSuccess
}

type rmAssetCmd struct {
	id    int64
	force bool
}

func (*rmAssetCmd) Name() string     { return "rm-asset" }
func (*rmAssetCmd) Synopsis() string { return "delete a position and its investment postings" }
func (*rmAssetCmd) Usage() string {
	return `fa rm-asset -id <id> -force

  Deletes a position and cascades to the ledger entries its trades
  generated. Irreversible, so -force is required.
`
}

func (p *rmAssetCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.id, "id", 0, "ID of the position to delete.")
	f.BoolVar(&p.force, "force", false, "Confirm the deletion.")
}

func (p *rmAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !p.force {
		fmt.Fprintln(os.Stderr, "deleting a position also deletes the ledger entries it generated; re-run with -force to confirm")
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := store.DeletePosition(p.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted position %d and its postings\n", p.id)
	return subcommands.ExitSuccess
}
