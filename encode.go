package sharetrack

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Transactions are persisted as JSONL, one object per line with a fixed
// field order, so files stay readable and diff well under version control.

// MarshalJSON writes a transaction as a flat object.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("time", t.at.Format(time.RFC3339))
	w.Append("kind", t.kind.String())
	w.Optional("symbol", t.symbol)
	w.Optional("quantity", t.quantity)
	w.Optional("price", t.price)
	w.Optional("fees", t.fees)
	w.Append("cash", t.cash)
	w.Optional("currency", t.cash.Currency())
	w.Optional("source", t.source)
	w.Optional("source_id", t.sourceID)
	w.Optional("note", t.note)
	return w.MarshalJSON()
}

// jtransaction is the object read from a JSONL line.
type jtransaction struct {
	Time     time.Time `json:"time"`
	Kind     string    `json:"kind"`
	Symbol   string    `json:"symbol"`
	Quantity Quantity  `json:"quantity"`
	Price    Money     `json:"price"`
	Fees     Money     `json:"fees"`
	Cash     Money     `json:"cash"`
	Currency string    `json:"currency"`
	Source   string    `json:"source"`
	SourceID string    `json:"source_id"`
	Note     string    `json:"note"`
}

// UnmarshalJSON reads an object written by MarshalJSON.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var j jtransaction
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	kind, err := ParseKind(j.Kind)
	if err != nil {
		return err
	}
	*t = Transaction{
		at:       j.Time,
		kind:     kind,
		symbol:   j.Symbol,
		quantity: j.Quantity,
		price:    j.Price.WithCurrency(j.Currency),
		fees:     j.Fees.WithCurrency(j.Currency),
		cash:     j.Cash.WithCurrency(j.Currency),
		source:   j.Source,
		sourceID: j.SourceID,
		note:     j.Note,
	}
	return nil
}

// EncodeTransactions writes txs as JSONL.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	bw := bufio.NewWriter(w)
	for _, tx := range txs {
		line, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("cannot encode %s:%s: %w", tx.source, tx.sourceID, err)
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// DecodeTransactions reads JSONL transactions. Blank lines are ignored.
// name is for error messages only.
func DecodeTransactions(name string, r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("parse error %s:%d: %w", name, i, err)
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("parse error %s:%d: %w", name, i, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", name, err)
	}
	return txs, nil
}

// amountPlaces is the precision of amounts and quantities in CSV outputs.
const amountPlaces = 10

// WriteTransactionsCSV writes the normalized transaction table.
func WriteTransactionsCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"dt", "type", "symbol", "quantity", "price", "fees", "cash_amount", "source", "raw_id", "note"})
	for _, tx := range txs {
		cw.Write([]string{
			tx.at.Format(time.RFC3339),
			tx.kind.String(),
			tx.symbol,
			tx.quantity.value.StringFixed(amountPlaces),
			tx.price.Plain(amountPlaces),
			tx.fees.Plain(amountPlaces),
			tx.cash.Plain(amountPlaces),
			tx.source,
			tx.sourceID,
			tx.note,
		})
	}
	cw.Flush()
	return cw.Error()
}

// WriteHoldingsCSV writes one line per business day: date, cash, then one
// quantity column per symbol.
func WriteHoldingsCSV(w io.Writer, h *DailyHoldings) error {
	cw := csv.NewWriter(w)
	cw.Write(append([]string{"date", "cash"}, h.symbols...))
	for _, row := range h.rows {
		rec := []string{row.day.String(), row.cash.Plain(2)}
		for _, q := range row.positions {
			rec = append(rec, q.String())
		}
		cw.Write(rec)
	}
	cw.Flush()
	return cw.Error()
}

// WriteTaxReportCSV writes the realized gains table.
func WriteTaxReportCSV(w io.Writer, rep *TaxReport) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{
		"symbol", "acquired_date", "disposed_date", "fy", "quantity", "proceeds", "cost_base",
		"capital_gain", "discount_eligible", "capital_gain_discounted_component", "capital_gain_other_component",
	})
	for _, r := range rep.Rows {
		cw.Write([]string{
			r.Symbol,
			r.Acquired.String(),
			r.Disposed.String(),
			strconv.Itoa(r.FiscalYear),
			r.Quantity.String(),
			r.Proceeds.Plain(2),
			r.CostBase.Plain(2),
			r.Gain.Plain(2),
			strconv.FormatBool(r.DiscountEligible),
			r.Discounted.Plain(2),
			r.Other.Plain(2),
		})
	}
	cw.Flush()
	return cw.Error()
}
