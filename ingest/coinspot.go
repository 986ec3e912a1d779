package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/sharetrack"
)

// CoinSpot reads a CoinSpot order history. Only markets quoted in AUD are
// kept, each coin becomes the symbol "<COIN>-AUD".
func (im *Importer) CoinSpot(r io.Reader) ([]sharetrack.Transaction, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	var txs []sharetrack.Transaction
	for i := range t.rows {
		at, err := im.parseTime(t.get(i, "Transaction Date"), "02/01/2006 03:04 PM", "2/1/2006 3:04 PM")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CoinSpot, i, err)
		}
		coin, quote, ok := strings.Cut(strings.ToUpper(t.get(i, "Market")), "/")
		if !ok || quote != "AUD" {
			im.log.Debug().Str("source", string(CoinSpot)).Int("row", i).Str("market", t.get(i, "Market")).Msg("skipped non AUD market")
			continue
		}
		coin = strings.TrimSpace(coin)
		rate := ParseNumber(t.get(i, "Rate ex. fee"))
		if rate.IsZero() {
			rate = ParseNumber(t.get(i, "Rate inc. fee"))
		}
		qty := sharetrack.Q(ParseNumber(t.get(i, "Amount")))
		fee := im.money(ParseMoney(t.get(i, "Fee AUD (inc GST)")).Abs())
		total := ParseMoney(t.get(i, "Total AUD")).Abs()
		symbol := coin + "-AUD"
		note := coin + "/AUD"

		switch strings.ToUpper(t.get(i, "Type")) {
		case "BUY":
			o := tag(CoinSpot, i, note)
			if !total.IsZero() {
				o = withCash(o, im.money(total.Neg()))
			}
			txs = append(txs, sharetrack.NewAcquisition(at, symbol, qty, im.money(rate), fee).With(o))
		case "SELL":
			o := tag(CoinSpot, i, note)
			if !total.IsZero() {
				o = withCash(o, im.money(total))
			}
			txs = append(txs, sharetrack.NewDisposal(at, symbol, qty, im.money(rate), fee).With(o))
		default:
			im.log.Debug().Str("source", string(CoinSpot)).Int("row", i).Str("type", t.get(i, "Type")).Msg("skipped row")
		}
	}
	return txs, nil
}
