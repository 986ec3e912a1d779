package renderer

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/analytics"
	"github.com/etnz/sharetrack/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) }

func sampleReport(t *testing.T) *sharetrack.TaxReport {
	t.Helper()
	txs := []sharetrack.Transaction{
		sharetrack.NewAcquisition(at(2023, 1, 10), "ABC", sharetrack.Q(10), sharetrack.AUD(10), sharetrack.AUD(0)),
		sharetrack.NewDisposal(at(2024, 3, 1), "ABC", sharetrack.Q(4), sharetrack.AUD(15), sharetrack.AUD(0)),
		sharetrack.NewDisposal(at(2024, 8, 1), "ABC", sharetrack.Q(4), sharetrack.AUD(8), sharetrack.AUD(0)),
	}
	res, err := sharetrack.MatchFIFO(txs, sharetrack.MatchOptions{})
	require.NoError(t, err)
	return sharetrack.NewTaxReport(res.Disposals, sharetrack.AustralianFiscalYear)
}

func TestTaxReportMarkdown(t *testing.T) {
	got := TaxReportMarkdown(sampleReport(t))
	assert.Contains(t, got, "# Capital Gains Report")
	assert.Contains(t, got, "## Fiscal Years")
	assert.Contains(t, got, "2023-24")
	assert.Contains(t, got, "2024-25")
	assert.Contains(t, got, "| ABC")
	assert.Equal(t, 2, strings.Count(got, "| ABC"))
}

func TestTaxReportMarkdownEmpty(t *testing.T) {
	got := TaxReportMarkdown(sharetrack.NewTaxReport(nil, sharetrack.AustralianFiscalYear))
	assert.Contains(t, got, "No realized disposals.")
	assert.NotContains(t, got, "## Disposals")
}

func TestFiscalLabel(t *testing.T) {
	assert.Equal(t, "2024-25", fiscalLabel(2025))
	assert.Equal(t, "1999-00", fiscalLabel(2000))
}

func TestHoldingsMarkdown(t *testing.T) {
	mon := date.New(2024, 7, 1)
	txs := []sharetrack.Transaction{
		sharetrack.NewCashIn(at(2024, 7, 1), sharetrack.AUD(1000)),
		sharetrack.NewAcquisition(at(2024, 7, 2), "XYZ", sharetrack.Q(3), sharetrack.AUD(100), sharetrack.AUD(0)),
	}
	h := sharetrack.NewDailyHoldings(txs, date.NewRange(mon, mon.Add(2)))
	got := HoldingsMarkdown(h)
	assert.Contains(t, got, "XYZ")
	assert.Contains(t, got, "2024-07-03")

	pos := PositionsMarkdown(h)
	assert.Contains(t, pos, "# Positions on 2024-07-03")
	assert.Contains(t, pos, "| XYZ")
}

func TestRejectionsMarkdown(t *testing.T) {
	assert.Empty(t, RejectionsMarkdown(nil))
	tx := sharetrack.NewDisposal(at(2024, 1, 2), "ABC", sharetrack.Q(5), sharetrack.AUD(1), sharetrack.AUD(0))
	got := RejectionsMarkdown([]sharetrack.Rejection{{Transaction: tx, Held: sharetrack.Q(2)}})
	assert.Contains(t, got, "Rejected Disposals")
	assert.Contains(t, got, "ABC")
}

func TestPerformanceMarkdown(t *testing.T) {
	got := PerformanceMarkdown(analytics.Performance{
		Portfolio: analytics.Summary{AnnReturn: 0.1234, MaxDrawdown: -0.2},
		Beta:      1.1,
	}, "IOZ.AX")
	assert.Contains(t, got, "+12.34%")
	assert.Contains(t, got, "-20.00%")
	assert.Contains(t, got, "IOZ.AX")
	assert.Contains(t, got, "Beta 1.10")
}

func TestHTMLReport(t *testing.T) {
	chart := LineChartSVG("equity", analytics.Series{Name: "portfolio", Values: []float64{1, 2, 3}})
	got, err := HTMLReport("Report <1>", "# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n", chart)
	require.NoError(t, err)
	assert.Contains(t, got, "<title>Report &lt;1&gt;</title>")
	assert.Contains(t, got, "<h1>Title</h1>")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<figure><svg")
}

func TestLineChartSVG(t *testing.T) {
	got := string(LineChartSVG("dd <x>",
		analytics.Series{Name: "a", Values: []float64{1, math.NaN(), 2, 3}},
		analytics.Series{Name: "b", Values: []float64{2, 2, 2, 2}},
	))
	assert.True(t, strings.HasPrefix(got, "<svg"))
	assert.True(t, strings.HasSuffix(got, "</svg>"))
	assert.Contains(t, got, "dd &lt;x&gt;")
	// NaN splits series a in two lines, b is one line.
	assert.Equal(t, 3, strings.Count(got, "<polyline"))

	empty := string(LineChartSVG("empty"))
	assert.NotContains(t, empty, "<polyline")
}
