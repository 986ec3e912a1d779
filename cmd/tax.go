package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/renderer"
	"github.com/google/subcommands"
)

type taxCmd struct {
	ledger string
	fy     int
	strict bool
	csv    bool
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "report realized capital gains per fiscal year" }
func (*taxCmd) Usage() string {
	return `strack tax -l <ledger.jsonl> [-fy <year>] [-strict] [-csv]

  Matches disposals against the oldest lots first and groups the realized
  gains by fiscal year. See 'strack topic tax'.

`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "transactions.jsonl", "Ledger file (JSONL)")
	f.IntVar(&c.fy, "fy", 0, "Only report this fiscal year, named after the year it ends in")
	f.BoolVar(&c.strict, "strict", false, "Fail on a disposal larger than the holdings")
	f.BoolVar(&c.csv, "csv", false, "Write CSV to stdout")
}

func (c *taxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := setup()
	if err != nil {
		return fail(err)
	}
	j, err := readLedger(c.ledger)
	if err != nil {
		return fail(err)
	}
	opts := e.cfg.MatchOptions()
	opts.Strict = opts.Strict || c.strict
	opts.Logger = &e.log
	m, err := sharetrack.MatchFIFO(j.Transactions(), opts)
	if err != nil {
		return fail(err)
	}
	rep := sharetrack.NewTaxReport(m.Disposals, e.cfg.FiscalRule())
	if c.fy != 0 {
		rep = rep.Year(c.fy)
	}
	if c.csv {
		if err := sharetrack.WriteTaxReportCSV(os.Stdout, rep); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TaxReportMarkdown(rep) + "\n" + renderer.RejectionsMarkdown(m.Rejections))
	return subcommands.ExitSuccess
}
