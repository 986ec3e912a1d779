package pricing

import (
	"context"
	"math"
	"maps"
	"slices"
	"sync"

	"github.com/etnz/sharetrack/date"
	"golang.org/x/sync/errgroup"
)

// Frame holds prices aligned on a calendar, forward filled. Days before a
// ticker's first price are NaN.
type Frame struct {
	days    []date.Date
	columns map[string][]float64
}

// NewFrame aligns histories on days.
func NewFrame(days []date.Date, histories map[string]*date.History[float64]) *Frame {
	f := &Frame{days: slices.Clone(days), columns: make(map[string][]float64, len(histories))}
	for ticker, h := range histories {
		col := make([]float64, len(days))
		for i, day := range days {
			v, ok := h.ValueAsOf(day)
			if !ok {
				v = math.NaN()
			}
			col[i] = v
		}
		f.columns[ticker] = col
	}
	return f
}

// Days returns the calendar of the frame.
func (f *Frame) Days() []date.Date { return slices.Clone(f.days) }

// Tickers returns the sorted tickers of the frame.
func (f *Frame) Tickers() []string { return slices.Sorted(maps.Keys(f.columns)) }

// Price returns the price of ticker on the i-th day.
func (f *Frame) Price(ticker string, i int) (float64, bool) {
	col, ok := f.columns[ticker]
	if !ok || i < 0 || i >= len(col) || math.IsNaN(col[i]) {
		return 0, false
	}
	return col[i], true
}

// Series returns a copy of the column of ticker, nil if unknown.
func (f *Frame) Series(ticker string) []float64 { return slices.Clone(f.columns[ticker]) }

// FetchAll loads the prices of tickers through the cache, at most limit at
// a time. The first failure cancels the others.
func FetchAll(ctx context.Context, c *Cache, p Provider, tickers []string, r date.Range, limit int) (map[string]*date.History[float64], error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	var mu sync.Mutex
	out := make(map[string]*date.History[float64], len(tickers))
	for _, ticker := range tickers {
		g.Go(func() error {
			h, err := c.LoadOrFetch(ctx, p, ticker, r)
			if err != nil {
				return err
			}
			mu.Lock()
			out[ticker] = h
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
