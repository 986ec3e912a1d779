package sharetrack

import (
	"github.com/shopspring/decimal"
)

// epsilon is the tolerance used by every near-zero comparison on quantities,
// in the ledger and in the matching engine alike.
var epsilon = decimal.New(1, -9)

// Epsilon returns the tolerance used by IsNegligible and Covers.
func Epsilon() decimal.Decimal { return epsilon }

// number lists the types accepted by the Q and M constructors.
type number interface {
	float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a number of units of an instrument, fractional for crypto.
type Quantity struct {
	value decimal.Decimal
}

// Q returns a Quantity.
func Q[T number](value T) Quantity { return Quantity{value: newDecimal(value)} }

// ParseQuantity parses a decimal string.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: d}, nil
}

func (q Quantity) Add(p Quantity) Quantity       { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity       { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) Mul(p Quantity) Quantity       { return Quantity{value: q.value.Mul(p.value)} }
func (q Quantity) Div(p Quantity) Quantity       { return Quantity{value: q.value.Div(p.value)} }
func (q Quantity) Neg() Quantity                 { return Quantity{value: q.value.Neg()} }
func (q Quantity) Equal(p Quantity) bool         { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool      { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool   { return q.value.GreaterThan(p.value) }
func (q Quantity) IsNegative() bool              { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool              { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                  { return q.value.IsZero() }
func (q Quantity) Round(places int32) Quantity   { return Quantity{value: q.value.Round(places)} }
func (q Quantity) Float64() float64              { return q.value.InexactFloat64() }
func (q Quantity) Decimal() decimal.Decimal      { return q.value }
func (q Quantity) String() string                { return q.value.String() }
func (q Quantity) MarshalJSON() ([]byte, error)  { return q.value.MarshalJSON() }
func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }

// IsNegligible reports whether |q| is within Epsilon of zero.
func (q Quantity) IsNegligible() bool { return q.value.Abs().LessThanOrEqual(epsilon) }

// Covers reports whether q is at least p, within Epsilon.
func (q Quantity) Covers(p Quantity) bool { return q.value.Add(epsilon).GreaterThanOrEqual(p.value) }

// Clamp returns zero when q is negligible, q otherwise.
func (q Quantity) Clamp() Quantity {
	if q.IsNegligible() {
		return Quantity{}
	}
	return q
}

// MinQ returns the smaller of a and b.
func MinQ(a, b Quantity) Quantity {
	if a.LessThan(b) {
		return a
	}
	return b
}
