// Package cmd implements the CLI application to manage personal finances.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/tberk/finasist"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "overview")
	c.Register(&historyCmd{}, "overview")

	c.Register(&addCmd{}, "ledger")
	c.Register(&txCmd{}, "ledger")
	c.Register(&editTxCmd{}, "ledger")
	c.Register(&rmTxCmd{}, "ledger")

	c.Register(&buyCmd{}, "portfolio")
	c.Register(&sellCmd{}, "portfolio")
	c.Register(&portfolioCmd{}, "portfolio")
	c.Register(&fetchCmd{}, "portfolio")
	c.Register(&editAssetCmd{}, "portfolio")
	c.Register(&rmAssetCmd{}, "portfolio")

	c.Register(&interestCmd{}, "interest")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&resetCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const dbEnv = "FINASIST_DB"

var dbFlag = flag.String("db", "", "Path to the finance database file.\n If missing it will read the environment variable \""+dbEnv+"\", defaulting to \"finance_data.db\".")

func dbPath() string {
	if *dbFlag != "" {
		return *dbFlag
	}
	if path := os.Getenv(dbEnv); path != "" {
		return path
	}
	return "finance_data.db"
}

// OpenStore is the central function to open the finance database.
func OpenStore() (*finasist.Store, error) {
	return finasist.Open(dbPath())
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// raw markdown is still readable
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// markdownTable builds a markdown table from a header row and data rows.
func markdownTable(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}
