package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/analytics"
	"github.com/etnz/sharetrack/date"
	"github.com/etnz/sharetrack/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct {
	ledger string
	start  string
	end    string
	fetch  bool
	csv    bool
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "compare the portfolio performance with the benchmark" }
func (*statsCmd) Usage() string {
	return `strack stats -l <ledger.jsonl> [-start <date>] [-end <date>] [-fetch] [-csv]

  Values the holdings with the cached prices and prints return, volatility,
  Sharpe ratio, drawdown, beta and alpha. Missing prices are only
  downloaded with -fetch.

`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "transactions.jsonl", "Ledger file (JSONL)")
	f.StringVar(&c.start, "start", "", "First day (defaults to the first transaction)")
	f.StringVar(&c.end, "end", "", "Last day (defaults to today)")
	f.BoolVar(&c.fetch, "fetch", false, "Download prices missing from the cache")
	f.BoolVar(&c.csv, "csv", false, "Write CSV to stdout")
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := setup()
	if err != nil {
		return fail(err)
	}
	j, err := readLedger(c.ledger)
	if err != nil {
		return fail(err)
	}
	r, err := parseRange(c.start, c.end, ledgerRange(j))
	if err != nil {
		return fail(err)
	}
	cv, err := e.stats(ctx, j, r, !c.fetch)
	if err != nil {
		return fail(err)
	}
	if c.csv {
		if err := analytics.WritePerformanceCSV(os.Stdout, cv.perf); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PerformanceMarkdown(cv.perf, cv.benchmark.Name))
	return subcommands.ExitSuccess
}

// stats values the daily holdings of j over r. Lots are not matched, a
// short sale never fails it.
func (e *env) stats(ctx context.Context, j *sharetrack.Journal, r date.Range, offline bool) (*curves, error) {
	return e.performance(ctx, sharetrack.NewDailyHoldings(j.Transactions(), r), r, offline)
}
