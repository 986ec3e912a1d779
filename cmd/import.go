package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/sharetrack"
	"github.com/google/subcommands"
)

type importCmd struct {
	sources
	output string
	csv    bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert broker exports into a normalized ledger" }
func (*importCmd) Usage() string {
	return `strack import [-cmc-cash <csv>] [-cmc-conf <csv>] [-betashares <csv>] [-coinspot-orders <csv>] [-o <file>] [-csv]

  Reads the exports, renames symbols through the configured symbol map,
  sorts and deduplicates the transactions and writes them as JSONL, or CSV
  with -csv, to stdout or to the -o file.

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	c.sources.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
	f.BoolVar(&c.csv, "csv", false, "Write CSV instead of JSONL")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := setup()
	if err != nil {
		return fail(err)
	}
	j, err := e.ingestJournal(&c.sources)
	if err != nil {
		return fail(err)
	}
	encode := func(f *os.File) error {
		if c.csv {
			return sharetrack.WriteTransactionsCSV(f, j.Transactions())
		}
		return sharetrack.EncodeTransactions(f, j.Transactions())
	}
	if c.output == "" {
		err = encode(os.Stdout)
	} else {
		err = writeFile(c.output, encode)
	}
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
