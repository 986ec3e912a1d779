package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/sharetrack/date"
	"github.com/google/subcommands"
)

type runCmd struct {
	sources
	start   string
	end     string
	strict  bool
	offline bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "ingest exports and write holdings, performance and tax reports" }
func (*runCmd) Usage() string {
	return `strack run [-start <date>] [-end <date>] [-cmc-cash <csv>] [-cmc-conf <csv>] [-betashares <csv>] [-coinspot-orders <csv>] [-strict] [-offline]

  Runs the whole pipeline: ingestion, daily holdings, prices, performance
  against the benchmark, FIFO capital gains, charts and an HTML report.
  See 'strack topic pipeline'.

`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	c.sources.SetFlags(f)
	f.StringVar(&c.start, "start", "2024-07-01", "First day of the holdings ledger")
	f.StringVar(&c.end, "end", "", "Last day of the holdings ledger (defaults to today)")
	f.BoolVar(&c.strict, "strict", false, "Fail on a disposal larger than the holdings")
	f.BoolVar(&c.offline, "offline", false, "Only use cached prices")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := setup()
	if err != nil {
		return fail(err)
	}
	if c.strict {
		e.cfg.Tax.Strict = true
	}
	today := date.Today()
	r, err := parseRange(c.start, c.end, date.NewRange(today, today))
	if err != nil {
		return fail(err)
	}
	j, err := e.ingestJournal(&c.sources)
	if err != nil {
		return fail(err)
	}
	out, err := e.pipeline(ctx, j, r, c.offline)
	if err != nil {
		return fail(err)
	}
	for _, path := range out.written {
		fmt.Println("Wrote:", path)
	}
	return subcommands.ExitSuccess
}
