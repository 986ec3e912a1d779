package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/analytics"
	"github.com/etnz/sharetrack/date"
	"github.com/etnz/sharetrack/ingest"
	"github.com/etnz/sharetrack/pricing"
	"github.com/etnz/sharetrack/renderer"
	"golang.org/x/sync/errgroup"
)

// fetchLimit bounds the concurrent price downloads.
const fetchLimit = 4

// sources holds the export flags shared by run and import.
type sources struct {
	cmcCash    string
	cmcConf    string
	betashares string
	coinspot   string
}

func (s *sources) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.cmcCash, "cmc-cash", "", "CMC cash transaction summary CSV")
	f.StringVar(&s.cmcConf, "cmc-conf", "", "CMC trade confirmation CSV")
	f.StringVar(&s.betashares, "betashares", "", "Betashares transactions CSV")
	f.StringVar(&s.coinspot, "coinspot-orders", "", "CoinSpot order history CSV")
}

// load reads every given export, in flag order.
func (s *sources) load(im *ingest.Importer) ([]sharetrack.Transaction, error) {
	var txs []sharetrack.Transaction
	for _, in := range []struct {
		src  ingest.Source
		path string
	}{
		{ingest.CMCCash, s.cmcCash},
		{ingest.CMCConfirmation, s.cmcConf},
		{ingest.Betashares, s.betashares},
		{ingest.CoinSpot, s.coinspot},
	} {
		if in.path == "" {
			continue
		}
		loaded, err := im.LoadFile(in.src, in.path)
		if err != nil {
			return nil, err
		}
		txs = append(txs, loaded...)
	}
	return txs, nil
}

// ingestJournal loads the exports, renames symbols and normalizes them.
func (e *env) ingestJournal(s *sources) (*sharetrack.Journal, error) {
	im := ingest.New(e.log, e.cfg.BaseCurrency, e.cfg.Location())
	txs, err := s.load(im)
	if err != nil {
		return nil, err
	}
	j, err := sharetrack.NewJournal(sharetrack.ApplySymbolMap(txs, e.cfg.SymbolMap)...)
	if err != nil {
		return nil, err
	}
	e.log.Info().Int("loaded", len(txs)).Int("kept", j.Len()).Int("duplicates", j.Dropped()).Msg("transactions normalized")
	return j, nil
}

// analyze runs the ledger and the matching engine side by side on the
// same journal.
func (e *env) analyze(j *sharetrack.Journal, r date.Range, opts sharetrack.MatchOptions) (*sharetrack.DailyHoldings, *sharetrack.MatchResult, error) {
	txs := j.Transactions()
	if opts.Logger == nil {
		opts.Logger = &e.log
	}
	var (
		h *sharetrack.DailyHoldings
		m *sharetrack.MatchResult
	)
	var g errgroup.Group
	g.Go(func() error {
		h = sharetrack.NewDailyHoldings(txs, r)
		return nil
	})
	g.Go(func() (err error) {
		m, err = sharetrack.MatchFIFO(txs, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return h, m, nil
}

// prices loads the closes of tickers within r through the cache. Offline,
// only the cache is read.
func (e *env) prices(ctx context.Context, tickers []string, r date.Range, offline bool) (map[string]*date.History[float64], error) {
	if err := os.MkdirAll(e.cfg.Paths.ProcessedDir, 0o755); err != nil {
		return nil, err
	}
	cache, err := pricing.OpenCache(e.cfg.CachePath(), e.log)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	var p pricing.Provider
	if !offline {
		p = pricing.Router{
			Equity: pricing.NewYahoo(e.log),
			Crypto: pricing.NewCoinSpot(e.cfg.CoinSpotConfig(), e.log),
		}
	}
	return pricing.FetchAll(ctx, cache, p, tickers, r, fetchLimit)
}

// curves is the valued portfolio and its benchmark.
type curves struct {
	equity    analytics.Series
	benchmark analytics.Series
	perf      analytics.Performance
}

var errNoEquity = errors.New("no priced day to value the portfolio")

// performance values h with the cached or fetched prices.
func (e *env) performance(ctx context.Context, h *sharetrack.DailyHoldings, r date.Range, offline bool) (*curves, error) {
	ticker := e.cfg.Benchmark.Ticker
	tickers := h.Symbols()
	if !slices.Contains(tickers, ticker) {
		tickers = append(tickers, ticker)
	}
	histories, err := e.prices(ctx, tickers, r, offline)
	if err != nil {
		return nil, err
	}
	var days []date.Date
	for _, row := range h.Rows() {
		days = append(days, row.Date())
	}
	eq := analytics.EquityCurve(h, pricing.NewFrame(days, histories))
	if eq.Len() == 0 {
		return nil, errNoEquity
	}
	name := e.cfg.Benchmark.Name
	if name == "" {
		name = ticker
	}
	bench := analytics.BenchmarkCurve(name, histories[ticker], eq.Days, eq.Values[0])
	return &curves{
		equity:    eq,
		benchmark: bench,
		perf:      analytics.Compare(eq, bench, e.cfg.RiskFreeRate),
	}, nil
}

// charts returns the equity and drawdown charts.
func (c *curves) charts() (equity, drawdown template.HTML) {
	dd := analytics.Series{Name: "drawdown", Days: c.equity.Days, Values: analytics.Drawdowns(c.equity.Values)}
	return renderer.LineChartSVG("Equity curve vs benchmark", c.equity, c.benchmark),
		renderer.LineChartSVG("Portfolio drawdown", dd)
}

// outputs are the files written by a full run.
type outputs struct {
	written []string
}

func (o *outputs) write(path string, write func(f *os.File) error) error {
	if err := writeFile(path, write); err != nil {
		return err
	}
	o.written = append(o.written, path)
	return nil
}

func (o *outputs) bytes(path string, b []byte) error {
	return o.write(path, func(f *os.File) error {
		_, err := f.Write(b)
		return err
	})
}

// pipeline runs every stage on j and writes the processed data, reports
// and charts.
func (e *env) pipeline(ctx context.Context, j *sharetrack.Journal, r date.Range, offline bool) (*outputs, error) {
	out := &outputs{}
	processed, reports, charts := e.cfg.Paths.ProcessedDir, e.cfg.ReportsDir(), e.cfg.ChartsDir()
	txs := j.Transactions()

	if err := out.write(filepath.Join(processed, "transactions_normalized.csv"), func(f *os.File) error {
		return sharetrack.WriteTransactionsCSV(f, txs)
	}); err != nil {
		return nil, err
	}
	if err := out.write(filepath.Join(processed, "transactions_normalized.jsonl"), func(f *os.File) error {
		return sharetrack.EncodeTransactions(f, txs)
	}); err != nil {
		return nil, err
	}

	h, m, err := e.analyze(j, r, e.cfg.MatchOptions())
	if err != nil {
		return nil, err
	}
	if err := out.write(filepath.Join(processed, "holdings.csv"), func(f *os.File) error {
		return sharetrack.WriteHoldingsCSV(f, h)
	}); err != nil {
		return nil, err
	}

	tax := sharetrack.NewTaxReport(m.Disposals, e.cfg.FiscalRule())
	if err := out.write(filepath.Join(reports, "au_cgt_fifo.csv"), func(f *os.File) error {
		return sharetrack.WriteTaxReportCSV(f, tax)
	}); err != nil {
		return nil, err
	}

	md := renderer.PositionsMarkdown(h)
	var svgs []template.HTML
	c, err := e.performance(ctx, h, r, offline)
	switch {
	case errors.Is(err, errNoEquity):
		e.log.Warn().Msg("performance skipped: " + err.Error())
	case err != nil:
		return nil, err
	default:
		if err := out.write(filepath.Join(reports, "performance_summary.csv"), func(f *os.File) error {
			return analytics.WritePerformanceCSV(f, c.perf)
		}); err != nil {
			return nil, err
		}
		equity, drawdown := c.charts()
		if err := out.bytes(filepath.Join(charts, "equity_curve.svg"), []byte(equity)); err != nil {
			return nil, err
		}
		if err := out.bytes(filepath.Join(charts, "drawdown.svg"), []byte(drawdown)); err != nil {
			return nil, err
		}
		svgs = append(svgs, equity, drawdown)
		md += "\n" + renderer.PerformanceMarkdown(c.perf, c.benchmark.Name)
	}
	md += "\n" + renderer.TaxReportMarkdown(tax) + "\n" + renderer.RejectionsMarkdown(m.Rejections)

	page, err := renderer.HTMLReport(fmt.Sprintf("Portfolio %s", r), md, svgs...)
	if err != nil {
		return nil, err
	}
	if err := out.bytes(filepath.Join(charts, "report.html"), []byte(page)); err != nil {
		return nil, err
	}
	return out, nil
}
