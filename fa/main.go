package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tberk/finasist/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and exits when invoked by
// the shell. Install with: COMP_INSTALL=1 fa
func completion() {
	sub := map[string]*complete.Command{}
	for _, name := range []string{
		"summary", "history",
		"add", "tx", "edit-tx", "rm-tx",
		"buy", "sell", "portfolio", "fetch", "edit-asset", "rm-asset",
		"interest",
		"export", "import", "reset",
		"topic", "help", "flags", "commands",
	} {
		sub[name] = &complete.Command{}
	}
	c := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"db": predict.Files("*.db"),
		},
	}
	c.Complete("fa")
}
