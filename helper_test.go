package sharetrack

import (
	"time"

	"github.com/etnz/sharetrack/date"
)

// on returns midnight UTC of an ISO day, for test fixtures.
func on(day string) time.Time { return date.MustParse(day).Time() }

// buy is a test shortcut for an AUD acquisition.
func buy(day, symbol string, qty, price, fees float64) Transaction {
	return NewAcquisition(on(day), symbol, Q(qty), AUD(price), AUD(fees))
}

// sell is a test shortcut for an AUD disposal.
func sell(day, symbol string, qty, price, fees float64) Transaction {
	return NewDisposal(on(day), symbol, Q(qty), AUD(price), AUD(fees))
}

// near reports whether a and b differ by at most Epsilon.
func near(a, b Money) bool { return a.Sub(b).Decimal().Abs().LessThanOrEqual(epsilon) }
