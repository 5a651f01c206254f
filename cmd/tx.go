package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tberk/finasist"
)

type addCmd struct {
	date        string
	kind        string
	category    string
	amount      float64
	currency    string
	description string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an income or expense entry to the ledger" }
func (*addCmd) Usage() string {
	return `fa add -k <income|expense> -c <category> -a <amount> [-d <date>] [-cur <currency>] [-m <description>]

  Records a manual income or expense entry.

Usage Examples:
$ fa add -k expense -c Groceries -a 1250.50 -m "weekly shopping"
$ fa add -k income -c Salary -a 85000
`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the entry (defaults to today).")
	f.StringVar(&p.kind, "k", "expense", "Kind of entry (income, expense).")
	f.StringVar(&p.category, "c", "", "Category (e.g. Groceries, Salary, Rent).")
	f.Float64Var(&p.amount, "a", 0, "Amount, always positive.")
	f.StringVar(&p.currency, "cur", "TRY", "Currency (TRY, USD, EUR).")
	f.StringVar(&p.description, "m", "", "Free text description.")
}

func (p *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := finasist.ParseKind(p.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	day, err := parseDateFlag(p.date)
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

	tx := finasist.NewTransaction(day, kind, p.category, finasist.M(p.amount, p.currency), p.description)
	if err := store.AddTransaction(&tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %v\n", tx)
	return subcommands.ExitSuccess
}

type txCmd struct {
	head int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list all entries in the ledger" }
func (*txCmd) Usage() string {
	return `fa tx [-head <n>]

  Lists ledger entries, newest first.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N entries.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	txs, err := store.Transactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if p.head > 0 && len(txs) > p.head {
		txs = txs[:p.head]
	}

	printMarkdown(transactionsTable(txs))
	return subcommands.ExitSuccess
}

// transactionsTable renders ledger entries as a markdown table, newest first.
func transactionsTable(txs []finasist.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			t.Date.String(),
			string(t.Kind),
			t.Category,
			t.Amount.String(),
			t.Description,
		})
	}
	return markdownTable([]string{"ID", "Date", "Kind", "Category", "Amount", "Description"}, rows)
}

type editTxCmd struct {
	id          int64
	date        string
	kind        string
	category    string
	amount      float64
	currency    string
	description string
}

func (*editTxCmd) Name() string     { return "edit-tx" }
func (*editTxCmd) Synopsis() string { return "overwrite an existing ledger entry" }
func (*editTxCmd) Usage() string {
	return `fa edit-tx -id <id> -k <kind> -c <category> -a <amount> [-d <date>] [-cur <currency>] [-m <description>]

  Replaces every field of the entry identified by -id.
`
}

func (p *editTxCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.id, "id", 0, "ID of the entry to edit.")
	f.StringVar(&p.date, "d", "", "Date of the entry (defaults to today).")
	f.StringVar(&p.kind, "k", "expense", "Kind of entry (income, expense).")
	f.StringVar(&p.category, "c", "", "Category.")
	f.Float64Var(&p.amount, "a", 0, "Amount, always positive.")
	f.StringVar(&p.currency, "cur", "TRY", "Currency (TRY, USD, EUR).")
	f.StringVar(&p.description, "m", "", "Free text description.")
}

func (p *editTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := finasist.ParseKind(p.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	day, err := parseDateFlag(p.date)
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

	tx := finasist.NewTransaction(day, kind, p.category, finasist.M(p.amount, p.currency), p.description)
	tx.ID = p.id
	if err := store.UpdateTransaction(tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated entry %d\n", p.id)
	return subcommands.ExitSuccess
}

type rmTxCmd struct {
	id int64
}

func (*rmTxCmd) Name() string     { return "rm-tx" }
func (*rmTxCmd) Synopsis() string { return "delete a ledger entry" }
func (*rmTxCmd) Usage() string {
	return `fa rm-tx -id <id>

  Deletes the entry identified by -id. Irreversible.
`
}

func (p *rmTxCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.id, "id", 0, "ID of the entry to delete.")
}

func (p *rmTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := store.DeleteTransaction(p.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted entry %d\n", p.id)
	return subcommands.ExitSuccess
}

// parseDateFlag parses an optional date flag, empty meaning today.
func parseDateFlag(s string) (finasist.Date, error) {
	if s == "" {
		return finasist.Today(), nil
	}
	return finasist.ParseDate(s)
}
