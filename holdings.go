package sharetrack

import (
	"fmt"
	"slices"

	"github.com/etnz/sharetrack/date"
)

// HoldingsRow is the state of the portfolio at the end of a business day.
type HoldingsRow struct {
	day       date.Date
	cash      Money
	positions []Quantity // aligned on the owning DailyHoldings symbols
	columns   map[string]int
}

func (r HoldingsRow) Date() date.Date { return r.day }
func (r HoldingsRow) Cash() Money     { return r.cash }

// Position returns the quantity of symbol held, zero for unknown symbols.
func (r HoldingsRow) Position(symbol string) Quantity {
	i, ok := r.columns[symbol]
	if !ok {
		return Quantity{}
	}
	return r.positions[i]
}

// DailyHoldings is the dense daily matrix of cash and positions.
type DailyHoldings struct {
	symbols []string
	columns map[string]int
	rows    []HoldingsRow
}

// NewDailyHoldings replays txs onto the business days of r.
//
// Each row reflects every transaction dated on or before its day. Columns
// are every symbol traded in txs, including outside of r. Positions are not
// bounds checked and may go negative.
func NewDailyHoldings(txs []Transaction, r date.Range) *DailyHoldings {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, compareTransactions)

	h := &DailyHoldings{
		symbols: symbolsOf(sorted),
		columns: make(map[string]int),
	}
	for i, s := range h.symbols {
		h.columns[s] = i
	}

	var cash Money
	positions := make([]Quantity, len(h.symbols))
	next := 0
	for day := range r.BusinessDays() {
		for ; next < len(sorted) && !sorted[next].Date().After(day); next++ {
			tx := sorted[next]
			cash = cash.Add(tx.cash)
			switch tx.kind {
			case Acquisition:
				i := h.columns[tx.symbol]
				positions[i] = positions[i].Add(tx.quantity).Clamp()
			case Disposal:
				i := h.columns[tx.symbol]
				positions[i] = positions[i].Sub(tx.quantity).Clamp()
			case CashIn, CashOut, Fee:
			default:
				panic(fmt.Sprintf("unhandled transaction kind %v", tx.kind))
			}
		}
		h.rows = append(h.rows, HoldingsRow{
			day:       day,
			cash:      cash,
			positions: slices.Clone(positions),
			columns:   h.columns,
		})
	}
	return h
}

// Symbols returns the sorted instrument columns.
func (h *DailyHoldings) Symbols() []string { return slices.Clone(h.symbols) }

// Rows returns the rows in calendar order.
func (h *DailyHoldings) Rows() []HoldingsRow { return slices.Clone(h.rows) }

// Len returns the number of rows.
func (h *DailyHoldings) Len() int { return len(h.rows) }

// Row returns the row of day, false if day is not a business day of the range.
func (h *DailyHoldings) Row(day date.Date) (HoldingsRow, bool) {
	i, found := slices.BinarySearchFunc(h.rows, day, func(r HoldingsRow, d date.Date) int {
		return r.day.Compare(d)
	})
	if !found {
		return HoldingsRow{}, false
	}
	return h.rows[i], true
}

// Last returns the final row, false when there are none.
func (h *DailyHoldings) Last() (HoldingsRow, bool) {
	if len(h.rows) == 0 {
		return HoldingsRow{}, false
	}
	return h.rows[len(h.rows)-1], true
}
