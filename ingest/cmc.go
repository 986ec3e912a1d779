package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/sharetrack"
	"github.com/shopspring/decimal"
)

// CMCCash reads a CMC Markets cash transaction summary. Every line but the
// opening balance is a deposit or a withdrawal of credit minus debit.
func (im *Importer) CMCCash(r io.Reader) ([]sharetrack.Transaction, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	var txs []sharetrack.Transaction
	for i := range t.rows {
		at, err := im.parseTime(t.get(i, "Date"), "02/01/2006")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CMCCash, i, err)
		}
		desc := t.get(i, "Description")
		if strings.Contains(strings.ToUpper(desc), "OPENING BALANCE") {
			continue
		}
		cash := ParseMoney(t.get(i, "Credit $")).Sub(ParseMoney(t.get(i, "Debit $")))
		var tx sharetrack.Transaction
		if cash.IsPositive() {
			tx = sharetrack.NewCashIn(at, im.money(cash))
		} else {
			tx = sharetrack.NewCashOut(at, im.money(cash))
		}
		txs = append(txs, tx.With(tag(CMCCash, i, desc)))
	}
	return txs, nil
}

// CMCConfirmation reads CMC Markets trade confirmations. Files without a
// trade date, side or symbol column hold no trade and give no transaction.
func (im *Importer) CMCConfirmation(r io.Reader) ([]sharetrack.Transaction, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	t, err := readTable(strings.NewReader(Deellipsis(string(raw))))
	if err != nil {
		return nil, err
	}
	colDate := t.first("Trade Date")
	colSide := t.first("Order Type", "Confirmation Number")
	colSymbol := t.first("AsxCode", "Symbol")
	if colDate == "" || colSide == "" || colSymbol == "" {
		im.log.Warn().Str("source", string(CMCConfirmation)).Msg("missing trade columns, nothing imported")
		return nil, nil
	}

	var txs []sharetrack.Transaction
	for i := range t.rows {
		day := t.get(i, colDate)
		if day == "" || strings.EqualFold(day, "nan") {
			continue
		}
		at, err := im.parseTime(day, "2006-01-02", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "02/01/2006")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CMCConfirmation, i, err)
		}
		side := strings.ToUpper(t.get(i, colSide))
		symbol := t.get(i, colSymbol)
		qty := sharetrack.Q(ParseNumber(t.get(i, "Quantity")))
		price := im.money(ParseNumber(t.get(i, "Price")))
		fees := im.money(decimal.Sum(
			ParseNumber(t.get(i, "Brokerage")),
			ParseNumber(t.get(i, "GST")),
			ParseNumber(t.get(i, "OtherCharge")),
			ParseNumber(t.get(i, "Fee")),
		))

		switch {
		case strings.Contains(side, "BUY"):
			txs = append(txs, sharetrack.NewAcquisition(at, symbol, qty, price, fees).With(tag(CMCConfirmation, i, "")))
		case strings.Contains(side, "SELL"):
			txs = append(txs, sharetrack.NewDisposal(at, symbol, qty, price, fees).With(tag(CMCConfirmation, i, "")))
		default:
			im.log.Debug().Str("source", string(CMCConfirmation)).Int("row", i).Str("side", side).Msg("skipped row")
		}
	}
	return txs, nil
}
