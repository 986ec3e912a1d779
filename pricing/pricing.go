// Package pricing retrieves daily closing prices and caches them.
package pricing

import (
	"context"
	"strings"

	"github.com/etnz/sharetrack/date"
)

// Provider returns the daily closes of a ticker. Implementations may return
// days outside r, callers restrict the result.
type Provider interface {
	History(ctx context.Context, ticker string, r date.Range) (*date.History[float64], error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, ticker string, r date.Range) (*date.History[float64], error)

func (f ProviderFunc) History(ctx context.Context, ticker string, r date.Range) (*date.History[float64], error) {
	return f(ctx, ticker, r)
}

// Router sends crypto tickers ("BTC-AUD") to Crypto and every other one to
// Equity.
type Router struct {
	Equity Provider
	Crypto Provider
}

// IsCrypto reports whether ticker is a coin quoted in AUD.
func IsCrypto(ticker string) bool { return strings.HasSuffix(strings.ToUpper(ticker), "-AUD") }

func (r Router) History(ctx context.Context, ticker string, rng date.Range) (*date.History[float64], error) {
	if IsCrypto(ticker) && r.Crypto != nil {
		return r.Crypto.History(ctx, ticker, rng)
	}
	return r.Equity.History(ctx, ticker, rng)
}
