package pricing

import (
	"context"
	"fmt"

	"github.com/etnz/sharetrack/date"
	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// Yahoo reads adjusted daily closes from Yahoo Finance.
type Yahoo struct {
	log zerolog.Logger
}

// NewYahoo returns a Yahoo Finance provider.
func NewYahoo(log zerolog.Logger) *Yahoo { return &Yahoo{log: log} }

func (y *Yahoo) History(ctx context.Context, symbol string, r date.Range) (*date.History[float64], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker %q: %w", symbol, err)
	}
	defer t.Close()

	period := periodFor(r, date.Today())
	bars, err := t.History(models.HistoryParams{
		Period:     period,
		Interval:   "1d",
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get historical prices of %q: %w", symbol, err)
	}
	y.log.Debug().Str("ticker", symbol).Str("period", period).Int("bars", len(bars)).Msg("yahoo history")
	return barsToHistory(bars), nil
}

// barsToHistory keeps the close of every bar, on the bar's own calendar day.
func barsToHistory(bars []models.Bar) *date.History[float64] {
	h := new(date.History[float64])
	for _, bar := range bars {
		if bar.Close <= 0 {
			continue
		}
		h.Append(date.FromTime(bar.Date), bar.Close)
	}
	return h
}

// periodFor returns the shortest Yahoo period reaching back to r.From.
func periodFor(r date.Range, today date.Date) string {
	days := today.Sub(r.From)
	switch {
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 2*365:
		return "2y"
	case days <= 5*365:
		return "5y"
	case days <= 10*365:
		return "10y"
	default:
		return "max"
	}
}
