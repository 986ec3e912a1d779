package sharetrack

import (
	"iter"
	"maps"
	"slices"

	"github.com/etnz/sharetrack/date"
)

// Lot is the open remainder of one acquisition.
type Lot struct {
	Symbol   string
	Acquired date.Date
	Quantity Quantity // remaining
	Cost     Money    // remaining cost basis, fees included
}

// Lots is the FIFO queue of open lots of a single symbol.
type Lots struct {
	queue []Lot
}

// Push appends a lot at the back of the queue. Negligible lots are dropped.
func (l *Lots) Push(lot Lot) {
	if lot.Quantity.IsNegligible() {
		return
	}
	l.queue = append(l.queue, lot)
}

// Len returns the number of open lots.
func (l *Lots) Len() int { return len(l.queue) }

// Quantity returns the total remaining quantity.
func (l *Lots) Quantity() Quantity {
	var total Quantity
	for _, lot := range l.queue {
		total = total.Add(lot.Quantity)
	}
	return total
}

// Cost returns the total remaining cost basis.
func (l *Lots) Cost() Money {
	var total Money
	for _, lot := range l.queue {
		total = total.Add(lot.Cost)
	}
	return total
}

// All iterates over the open lots, oldest first.
func (l *Lots) All() iter.Seq[Lot] { return slices.Values(l.queue) }

// consume takes up to quantity from the front lot and returns the slice
// taken: its acquisition date, quantity and proportional cost basis.
//
// A front lot left negligible is removed, and a cost basis slice exhausting
// the lot is the lot's whole remaining cost.
func (l *Lots) consume(quantity Quantity) (slice Lot, ok bool) {
	for len(l.queue) > 0 && l.queue[0].Quantity.IsNegligible() {
		l.queue = l.queue[1:]
	}
	if len(l.queue) == 0 {
		return Lot{}, false
	}
	front := &l.queue[0]
	take := MinQ(front.Quantity, quantity)
	rest := front.Quantity.Sub(take)

	cost := front.Cost
	if !rest.IsNegligible() {
		cost = front.Cost.Mul(take).Div(front.Quantity)
	}
	slice = Lot{Symbol: front.Symbol, Acquired: front.Acquired, Quantity: take, Cost: cost}

	if rest.IsNegligible() {
		l.queue = l.queue[1:]
	} else {
		front.Quantity = rest
		front.Cost = front.Cost.Sub(cost)
	}
	return slice, true
}

func (l *Lots) clone() *Lots { return &Lots{queue: slices.Clone(l.queue)} }

// Inventory maps a symbol to its open lots.
type Inventory map[string]*Lots

// Held returns the total open quantity of symbol.
func (inv Inventory) Held(symbol string) Quantity {
	if lots, ok := inv[symbol]; ok {
		return lots.Quantity()
	}
	return Quantity{}
}

// Symbols returns the sorted symbols with at least one open lot.
func (inv Inventory) Symbols() []string {
	var symbols []string
	for s, lots := range inv {
		if lots.Len() > 0 {
			symbols = append(symbols, s)
		}
	}
	slices.Sort(symbols)
	return symbols
}

// Clone returns a deep copy of the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for s := range maps.Keys(inv) {
		out[s] = inv[s].clone()
	}
	return out
}

// lots returns the queue of symbol, created on demand.
func (inv Inventory) lots(symbol string) *Lots {
	l, ok := inv[symbol]
	if !ok {
		l = new(Lots)
		inv[symbol] = l
	}
	return l
}
