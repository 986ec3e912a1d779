package date

import (
	"fmt"
	"iter"
)

// Range is an inclusive range of days. A range whose To is before From is
// empty.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// IsEmpty reports whether the range contains no day.
func (r Range) IsEmpty() bool { return r.To.Before(r.From) }

// Contains returns true if day is in the range, boundaries included.
func (r Range) Contains(day Date) bool { return !day.Before(r.From) && !day.After(r.To) }

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// Days iterates over every calendar day of the range in order.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if r.IsEmpty() {
			return
		}
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// BusinessDays iterates over the weekdays of the range in order. Market
// holidays are not modelled: every Monday to Friday is open.
func (r Range) BusinessDays() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := range r.Days() {
			if d.IsWeekend() {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// CountBusinessDays returns the number of weekdays in the range.
func (r Range) CountBusinessDays() int {
	n := 0
	for range r.BusinessDays() {
		n++
	}
	return n
}
