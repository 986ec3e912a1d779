package sharetrack

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency amounts are expressed in when none is set.
const DefaultCurrency = "AUD"

// Money is an amount in the portfolio's single base currency.
//
// The currency code is only used for formatting. Amounts in different
// currencies are never converted, and adding them panics.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money.
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// AUD is a shortcut for M(value, "AUD").
func AUD[T number](value T) Money { return M(value, "AUD") }

// ParseMoney parses a decimal string into Money.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	code := m.cur
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// String returns the amount formatted for its currency, like $1,234.50.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString is like String but always shows the sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string             { return m.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                   { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money         { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money         { return Money{value: m.value.Div(q.value), cur: m.cur} }
func (m Money) Round(places int32) Money     { return Money{value: m.value.Round(places), cur: m.cur} }
func (m Money) Float64() float64             { return m.value.InexactFloat64() }
func (m Money) Decimal() decimal.Decimal     { return m.value }
func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

// UnmarshalJSON reads the amount only, the currency is left untouched.
func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }

// WithCurrency returns the same amount in currency.
func (m Money) WithCurrency(currency string) Money { return Money{value: m.value, cur: currency} }

// Plain returns the amount as a plain decimal string, rounded to places.
func (m Money) Plain(places int32) string { return m.value.StringFixed(places) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// cur makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}
