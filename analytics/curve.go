package analytics

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/date"
	"github.com/etnz/sharetrack/pricing"
)

// Series is a daily series of values.
type Series struct {
	Name   string
	Days   []date.Date
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Days) }

// EquityCurve values the holdings at the frame prices: cash plus the sum
// of quantity times price. The frame must share the holdings calendar.
//
// Days where a held position has no price yet are left out.
func EquityCurve(h *sharetrack.DailyHoldings, f *pricing.Frame) Series {
	s := Series{Name: "portfolio"}
	symbols := h.Symbols()
	for i, row := range h.Rows() {
		value := row.Cash().Float64()
		priced := true
		for _, sym := range symbols {
			q := row.Position(sym)
			if q.IsZero() {
				continue
			}
			px, ok := f.Price(sym, i)
			if !ok {
				priced = false
				break
			}
			value += q.Float64() * px
		}
		if !priced {
			continue
		}
		s.Days = append(s.Days, row.Date())
		s.Values = append(s.Values, value)
	}
	return s
}

// BenchmarkCurve rebases the benchmark closes on days to start, the first
// portfolio value. Days before the first close are NaN.
func BenchmarkCurve(name string, closes *date.History[float64], days []date.Date, start float64) Series {
	s := Series{Name: name, Days: days, Values: make([]float64, len(days))}
	base := math.NaN()
	for i, day := range days {
		px, ok := closes.ValueAsOf(day)
		if !ok {
			s.Values[i] = math.NaN()
			continue
		}
		if math.IsNaN(base) {
			base = px
		}
		s.Values[i] = px / base * start
	}
	return s
}

// Performance compares a portfolio with its benchmark.
type Performance struct {
	Portfolio  Summary
	Benchmark  Summary
	Beta       float64
	AlphaDaily float64
}

// Compare summarizes both curves and regresses their returns.
func Compare(portfolio, benchmark Series, rf float64) Performance {
	beta, alpha := BetaAlpha(Returns(portfolio.Values), Returns(benchmark.Values), 0)
	return Performance{
		Portfolio:  Summarize(portfolio.Values, rf),
		Benchmark:  Summarize(benchmark.Values, rf),
		Beta:       beta,
		AlphaDaily: alpha,
	}
}

// WritePerformanceCSV writes p as a single row table.
func WritePerformanceCSV(w io.Writer, p Performance) error {
	cw := csv.NewWriter(w)
	header := []string{}
	row := []string{}
	add := func(name string, v float64) {
		header = append(header, name)
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
	}
	for _, side := range []struct {
		prefix string
		s      Summary
	}{{"portfolio", p.Portfolio}, {"benchmark", p.Benchmark}} {
		add(side.prefix+"_ann_return", side.s.AnnReturn)
		add(side.prefix+"_ann_vol", side.s.AnnVol)
		add(side.prefix+"_sharpe", side.s.Sharpe)
		add(side.prefix+"_max_drawdown", side.s.MaxDrawdown)
	}
	add("beta", p.Beta)
	add("alpha_daily", p.AlphaDaily)
	cw.Write(header)
	cw.Write(row)
	cw.Flush()
	return cw.Error()
}
