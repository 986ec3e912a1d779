package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/renderer"
	"github.com/google/subcommands"
)

type holdingsCmd struct {
	ledger string
	start  string
	end    string
	last   bool
	csv    bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display cash and positions per business day" }
func (*holdingsCmd) Usage() string {
	return `strack holdings -l <ledger.jsonl> [-start <date>] [-end <date>] [-last] [-csv]

  Replays the ledger onto every business day of the range. The range
  defaults to the first transaction up to today.

`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "transactions.jsonl", "Ledger file (JSONL)")
	f.StringVar(&c.start, "start", "", "First day (defaults to the first transaction)")
	f.StringVar(&c.end, "end", "", "Last day (defaults to today)")
	f.BoolVar(&c.last, "last", false, "Only show the positions of the last day")
	f.BoolVar(&c.csv, "csv", false, "Write CSV to stdout")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := readLedger(c.ledger)
	if err != nil {
		return fail(err)
	}
	r, err := parseRange(c.start, c.end, ledgerRange(j))
	if err != nil {
		return fail(err)
	}
	h := sharetrack.NewDailyHoldings(j.Transactions(), r)
	switch {
	case c.csv:
		if err := sharetrack.WriteHoldingsCSV(os.Stdout, h); err != nil {
			return fail(err)
		}
	case c.last:
		printMarkdown(renderer.PositionsMarkdown(h))
	default:
		printMarkdown(renderer.HoldingsMarkdown(h))
	}
	return subcommands.ExitSuccess
}
