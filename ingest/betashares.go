package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/sharetrack"
)

// Betashares reads a Betashares Direct transaction export.
//
// The Gross column, when set, is the cash effect of a trade. Activities
// that are neither cash movements nor trades become fees when they carry
// brokerage, and are skipped otherwise.
func (im *Importer) Betashares(r io.Reader) ([]sharetrack.Transaction, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	var txs []sharetrack.Transaction
	for i := range t.rows {
		at, err := im.parseTime(t.get(i, "Effective Date"), "02/01/2006")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", Betashares, i, err)
		}
		activity := t.get(i, "Activity Type")
		act := strings.ToUpper(activity)
		symbol := t.get(i, "Symbol")
		gross := ParseMoney(t.get(i, "Gross"))
		brokerage := ParseMoney(t.get(i, "Brokerage"))
		price := im.money(ParseMoney(t.get(i, "Price")))
		qty := sharetrack.Q(ParseNumber(t.get(i, "Quantity")).Abs())
		fees := im.money(brokerage)

		switch {
		case strings.Contains(act, "DEPOSIT"):
			txs = append(txs, sharetrack.NewCashIn(at, im.money(gross)).With(tag(Betashares, i, activity)))
		case strings.Contains(act, "WITHDRAW"):
			txs = append(txs, sharetrack.NewCashOut(at, im.money(gross)).With(tag(Betashares, i, activity)))
		case strings.Contains(act, "(BUY)") || strings.HasPrefix(act, "BUY"):
			o := tag(Betashares, i, activity)
			if !gross.IsZero() {
				o = withCash(o, im.money(gross))
			}
			txs = append(txs, sharetrack.NewAcquisition(at, symbol, qty, price, fees).With(o))
		case strings.Contains(act, "(SELL)") || strings.HasPrefix(act, "SELL"):
			o := tag(Betashares, i, activity)
			if !gross.IsZero() {
				o = withCash(o, im.money(gross))
			}
			txs = append(txs, sharetrack.NewDisposal(at, symbol, qty, price, fees).With(o))
		case !brokerage.IsZero():
			txs = append(txs, sharetrack.NewFee(at, fees).With(tag(Betashares, i, activity)))
		default:
			im.log.Debug().Str("source", string(Betashares)).Int("row", i).Str("activity", activity).Msg("skipped row")
		}
	}
	return txs, nil
}
