package renderer

import (
	"fmt"

	"github.com/etnz/sharetrack/analytics"
	md "github.com/nao1215/markdown"
)

// PerformanceMarkdown renders the portfolio statistics next to the
// benchmark ones.
func PerformanceMarkdown(p analytics.Performance, benchmark string) string {
	doc := newDoc()
	doc.H1("Performance")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", "Portfolio", benchmark},
		Rows: [][]string{
			{"Annualized Return", percent(p.Portfolio.AnnReturn), percent(p.Benchmark.AnnReturn)},
			{"Annualized Volatility", percent(p.Portfolio.AnnVol), percent(p.Benchmark.AnnVol)},
			{"Sharpe Ratio", ratio(p.Portfolio.Sharpe), ratio(p.Benchmark.Sharpe)},
			{"Max Drawdown", percent(p.Portfolio.MaxDrawdown), percent(p.Benchmark.MaxDrawdown)},
		},
	})
	doc.PlainText(fmt.Sprintf("Beta %s, daily alpha %s against %s.", ratio(p.Beta), percent(p.AlphaDaily), benchmark))
	return doc.String()
}

func percent(v float64) string { return fmt.Sprintf("%+.2f%%", v*100) }
func ratio(v float64) string   { return fmt.Sprintf("%.2f", v) }
