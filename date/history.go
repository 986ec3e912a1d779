package date

import (
	"iter"
	"slices"
)

// Value is the set of types a History can hold.
type Value interface{ ~float32 | ~float64 | ~string }

// History is a chronological series of values, at most one per day.
//
// The zero value is an empty history ready to use.
type History[T Value] struct {
	days   []Date
	values []T
}

// search returns the index of day, or where it would be inserted.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append records value on day, replacing any value already recorded that day.
func (h *History[T]) Append(day Date, value T) *History[T] {
	i, found := h.search(day)
	if found {
		h.values[i] = value
		return h
	}
	h.days = slices.Insert(h.days, i, day)
	h.values = slices.Insert(h.values, i, value)
	return h
}

// Len returns the number of recorded days.
func (h *History[T]) Len() int { return len(h.days) }

// Span returns the first and last recorded days. ok is false for an empty history.
func (h *History[T]) Span() (r Range, ok bool) {
	if len(h.days) == 0 {
		return Range{}, false
	}
	return Range{From: h.days[0], To: h.days[len(h.days)-1]}, true
}

// Covers reports whether the history has a point on or before r.From and
// one on or after r.To.
func (h *History[T]) Covers(r Range) bool {
	span, ok := h.Span()
	return ok && !span.From.After(r.From) && !span.To.Before(r.To)
}

// Latest returns the latest day and value, or zero values if empty.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, value
	}
	return h.days[last], h.values[last]
}

// Values iterates over all day/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value recorded on day.
func (h *History[T]) Get(day Date) (T, bool) {
	var zero T
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	return zero, false
}

// ValueAsOf returns the value on day, or the most recent value before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Between returns a new history restricted to the days in r.
func (h *History[T]) Between(r Range) *History[T] {
	sub := new(History[T])
	for day, v := range h.Values() {
		if r.Contains(day) {
			sub.days = append(sub.days, day)
			sub.values = append(sub.values, v)
		}
	}
	return sub
}
