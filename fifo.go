package sharetrack

import (
	"fmt"
	"slices"

	"github.com/etnz/sharetrack/date"
	"github.com/rs/zerolog"
)

// DefaultDiscountDays is the holding period making a gain discount eligible.
const DefaultDiscountDays = 365

// RealizedDisposal is the part of one disposal matched against one lot.
type RealizedDisposal struct {
	Symbol           string
	Acquired         date.Date
	Disposed         date.Date
	Quantity         Quantity
	Proceeds         Money
	CostBase         Money
	Gain             Money
	DiscountEligible bool
	SourceID         string // of the disposal transaction
}

// HeldDays is the number of days between acquisition and disposal.
func (r RealizedDisposal) HeldDays() int { return r.Disposed.Sub(r.Acquired) }

// Rejection is a disposal that could not be matched.
type Rejection struct {
	Transaction Transaction
	Held        Quantity // open quantity at the time of the disposal
}

func (r Rejection) Error() string {
	tx := r.Transaction
	return fmt.Sprintf("%v: %s %s on %s wants %s, holds %s", ErrInsufficientHoldings,
		tx.Kind(), tx.Symbol(), tx.Date(), tx.Quantity(), r.Held)
}

func (r Rejection) Unwrap() error { return ErrInsufficientHoldings }

// MatchOptions configures MatchFIFO. The zero value is ready to use.
type MatchOptions struct {
	// Strict turns an insufficient holdings disposal into an error.
	Strict bool
	// DiscountDays is the holding period for discount eligibility, 365 if zero.
	DiscountDays int
	// Inventory seeds the open lots. It is copied, never mutated.
	Inventory Inventory
	// Logger receives a warning per rejected disposal.
	Logger *zerolog.Logger
}

// MatchResult is the output of MatchFIFO.
type MatchResult struct {
	// Disposals in disposal order, then lot order within a disposal.
	Disposals []RealizedDisposal
	// Rejections lists disposals left unmatched, in order.
	Rejections []Rejection
	// Inventory is the open lots after the last transaction.
	Inventory Inventory
}

// MatchFIFO replays txs in chronological order, keeps a FIFO queue of lots
// per symbol and matches every disposal against the oldest lots first.
//
// A disposal exceeding the open quantity is rejected as a whole: no lot is
// touched and it is listed in Rejections, unless opts.Strict is set, in
// which case MatchFIFO fails with ErrInsufficientHoldings.
func MatchFIFO(txs []Transaction, opts MatchOptions) (*MatchResult, error) {
	discountDays := opts.DiscountDays
	if discountDays == 0 {
		discountDays = DefaultDiscountDays
	}
	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, compareTransactions)

	res := &MatchResult{
		Disposals:  []RealizedDisposal{},
		Rejections: []Rejection{},
		Inventory:  opts.Inventory.Clone(),
	}
	for _, tx := range sorted {
		switch tx.kind {
		case Acquisition:
			res.Inventory.lots(tx.symbol).Push(Lot{
				Symbol:   tx.symbol,
				Acquired: tx.Date(),
				Quantity: tx.quantity,
				Cost:     tx.CostBasis(),
			})
		case Disposal:
			if tx.quantity.IsNegligible() {
				continue
			}
			lots := res.Inventory.lots(tx.symbol)
			if held := lots.Quantity(); !held.Covers(tx.quantity) {
				rej := Rejection{Transaction: tx, Held: held}
				if opts.Strict {
					return nil, fmt.Errorf("matching %s:%s: %w", tx.source, tx.sourceID, rej)
				}
				log.Warn().
					Str("symbol", tx.symbol).
					Stringer("date", tx.Date()).
					Stringer("quantity", tx.quantity).
					Stringer("held", held).
					Str("source_id", tx.sourceID).
					Msg("disposal rejected: insufficient holdings")
				res.Rejections = append(res.Rejections, rej)
				continue
			}
			res.Disposals = append(res.Disposals, matchDisposal(tx, lots, discountDays)...)
		case CashIn, CashOut, Fee:
		default:
			panic(fmt.Sprintf("unhandled transaction kind %v", tx.kind))
		}
	}
	return res, nil
}

// matchDisposal consumes lots for tx, oldest first. The caller checked that
// lots hold enough.
func matchDisposal(tx Transaction, lots *Lots, discountDays int) []RealizedDisposal {
	var out []RealizedDisposal
	proceeds := tx.Proceeds()
	disposed := tx.Date()
	var allocated Money
	remaining := tx.quantity
	for !remaining.IsNegligible() {
		slice, ok := lots.consume(remaining)
		if !ok {
			break
		}
		share := proceeds.Mul(slice.Quantity).Div(tx.quantity)
		allocated = allocated.Add(share)
		out = append(out, RealizedDisposal{
			Symbol:           tx.symbol,
			Acquired:         slice.Acquired,
			Disposed:         disposed,
			Quantity:         slice.Quantity,
			Proceeds:         share,
			CostBase:         slice.Cost,
			Gain:             share.Sub(slice.Cost),
			DiscountEligible: disposed.Sub(slice.Acquired) >= discountDays,
			SourceID:         tx.sourceID,
		})
		remaining = remaining.Sub(slice.Quantity)
	}
	// Rounding residue of the proceeds goes to the last slice.
	if n := len(out); n > 0 {
		last := &out[n-1]
		last.Proceeds = last.Proceeds.Add(proceeds.Sub(allocated))
		last.Gain = last.Proceeds.Sub(last.CostBase)
	}
	return out
}
