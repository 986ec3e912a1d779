package sharetrack

import (
	"errors"
	"iter"
	"slices"

	"github.com/etnz/sharetrack/date"
)

// Journal is a validated, chronologically sorted and deduplicated list of
// transactions. It is immutable once built and safe for concurrent reads.
type Journal struct {
	txs     []Transaction
	dropped int
}

// NewJournal validates txs, sorts them by (timestamp, source, source id) and
// drops duplicates, keeping the first occurrence.
//
// Every invalid transaction is reported in the joined error.
func NewJournal(txs ...Transaction) (*Journal, error) {
	var errs []error
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, compareTransactions)

	j := &Journal{txs: make([]Transaction, 0, len(sorted))}
	seen := make(map[string]struct{}, len(sorted))
	for _, tx := range sorted {
		key := tx.Key()
		if _, dup := seen[key]; dup {
			j.dropped++
			continue
		}
		seen[key] = struct{}{}
		j.txs = append(j.txs, tx)
	}
	return j, nil
}

// ApplySymbolMap returns txs with every symbol found in m replaced by its
// mapped value. Other fields are preserved.
func ApplySymbolMap(txs []Transaction, m map[string]string) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		if to, ok := m[tx.symbol]; ok && tx.symbol != "" {
			tx = tx.With(Override{Symbol: to})
		}
		out[i] = tx
	}
	return out
}

// Transactions returns a copy of the sorted transactions.
func (j *Journal) Transactions() []Transaction { return slices.Clone(j.txs) }

// All iterates over the transactions in order.
func (j *Journal) All() iter.Seq[Transaction] { return slices.Values(j.txs) }

// Len returns the number of transactions kept.
func (j *Journal) Len() int { return len(j.txs) }

// Dropped returns the number of duplicates removed.
func (j *Journal) Dropped() int { return j.dropped }

// Symbols returns the sorted distinct symbols of acquisitions and disposals.
func (j *Journal) Symbols() []string { return symbolsOf(j.txs) }

// Span returns the range from the first to the last transaction day.
func (j *Journal) Span() (date.Range, bool) {
	if len(j.txs) == 0 {
		return date.Range{}, false
	}
	return date.NewRange(j.txs[0].Date(), j.txs[len(j.txs)-1].Date()), true
}

// symbolsOf returns the sorted distinct symbols traded in txs.
func symbolsOf(txs []Transaction) []string {
	var symbols []string
	for _, tx := range txs {
		if tx.kind.IsTrade() {
			symbols = append(symbols, tx.symbol)
		}
	}
	slices.Sort(symbols)
	return slices.Compact(symbols)
}
