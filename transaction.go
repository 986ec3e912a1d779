package sharetrack

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/sharetrack/date"
)

var (
	// ErrInvalidTransaction is returned for records breaking the Transaction invariants.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrInsufficientHoldings is returned when a disposal exceeds the open lots.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
)

// Kind is the closed set of transaction kinds.
type Kind int

const (
	// Acquisition buys units of an instrument.
	Acquisition Kind = iota + 1
	// Disposal sells units of an instrument.
	Disposal
	// CashIn is a deposit into the cash account.
	CashIn
	// CashOut is a withdrawal from the cash account.
	CashOut
	// Fee is a standalone charge to the cash account.
	Fee
)

// Kinds lists every Kind in declaration order.
var Kinds = []Kind{Acquisition, Disposal, CashIn, CashOut, Fee}

func (k Kind) String() string {
	switch k {
	case Acquisition:
		return "BUY"
	case Disposal:
		return "SELL"
	case CashIn:
		return "CASH_IN"
	case CashOut:
		return "CASH_OUT"
	case Fee:
		return "FEE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the String form of a Kind, case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Acquisition, nil
	case "SELL":
		return Disposal, nil
	case "CASH_IN":
		return CashIn, nil
	case "CASH_OUT":
		return CashOut, nil
	case "FEE":
		return Fee, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// IsTrade reports whether the kind moves an instrument.
func (k Kind) IsTrade() bool {
	switch k {
	case Acquisition, Disposal:
		return true
	case CashIn, CashOut, Fee:
		return false
	default:
		panic(fmt.Sprintf("unhandled transaction kind %v", k))
	}
}

// Transaction is an immutable unit of portfolio activity.
type Transaction struct {
	at       time.Time
	kind     Kind
	symbol   string
	quantity Quantity
	price    Money
	fees     Money
	cash     Money // net effect on the cash account
	source   string
	sourceID string
	note     string
}

// NewAcquisition returns a purchase of quantity units of symbol at price.
// Its cash effect is -(quantity*price + fees).
func NewAcquisition(at time.Time, symbol string, quantity Quantity, price, fees Money) Transaction {
	return Transaction{
		at: at, kind: Acquisition, symbol: symbol,
		quantity: quantity, price: price, fees: fees,
		cash: price.Mul(quantity).Add(fees).Neg(),
	}
}

// NewDisposal returns a sale of quantity units of symbol at price.
// Its cash effect is quantity*price - fees.
func NewDisposal(at time.Time, symbol string, quantity Quantity, price, fees Money) Transaction {
	return Transaction{
		at: at, kind: Disposal, symbol: symbol,
		quantity: quantity, price: price, fees: fees,
		cash: price.Mul(quantity).Sub(fees),
	}
}

// NewCashIn returns a deposit of amount.
func NewCashIn(at time.Time, amount Money) Transaction {
	return Transaction{at: at, kind: CashIn, cash: amount.Abs()}
}

// NewCashOut returns a withdrawal of amount.
func NewCashOut(at time.Time, amount Money) Transaction {
	return Transaction{at: at, kind: CashOut, cash: amount.Abs().Neg()}
}

// NewFee returns a standalone fee of amount.
func NewFee(at time.Time, amount Money) Transaction {
	return Transaction{at: at, kind: Fee, fees: amount.Abs(), cash: amount.Abs().Neg()}
}

// Override lists the fields to replace in Transaction.With. Zero fields are
// left unchanged.
type Override struct {
	At       time.Time
	Symbol   string
	Source   string
	SourceID string
	Note     string
	Cash     *Money
}

// With returns a copy of t with the non-zero fields of o replaced.
func (t Transaction) With(o Override) Transaction {
	if !o.At.IsZero() {
		t.at = o.At
	}
	if o.Symbol != "" {
		t.symbol = o.Symbol
	}
	if o.Source != "" {
		t.source = o.Source
	}
	if o.SourceID != "" {
		t.sourceID = o.SourceID
	}
	if o.Note != "" {
		t.note = o.Note
	}
	if o.Cash != nil {
		t.cash = *o.Cash
	}
	return t
}

func (t Transaction) Time() time.Time    { return t.at }
func (t Transaction) Date() date.Date    { return date.FromTime(t.at) }
func (t Transaction) Kind() Kind         { return t.kind }
func (t Transaction) Symbol() string     { return t.symbol }
func (t Transaction) Quantity() Quantity { return t.quantity }
func (t Transaction) Price() Money       { return t.price }
func (t Transaction) Fees() Money        { return t.fees }
func (t Transaction) Cash() Money        { return t.cash }
func (t Transaction) Source() string     { return t.source }
func (t Transaction) SourceID() string   { return t.sourceID }
func (t Transaction) Note() string       { return t.note }

// CostBasis is quantity*price + fees, the cost of an acquisition.
func (t Transaction) CostBasis() Money { return t.price.Mul(t.quantity).Add(t.fees) }

// Proceeds is quantity*price - fees, the proceeds of a disposal.
func (t Transaction) Proceeds() Money { return t.price.Mul(t.quantity).Sub(t.fees) }

func (t Transaction) String() string {
	if t.kind.IsTrade() {
		return fmt.Sprintf("%s %s %s %s @ %s", t.Date(), t.kind, t.quantity, t.symbol, t.price)
	}
	return fmt.Sprintf("%s %s %s", t.Date(), t.kind, t.cash)
}

// Validate checks the Transaction invariants.
func (t Transaction) Validate() error {
	var errs []error
	if t.at.IsZero() {
		errs = append(errs, errors.New("missing timestamp"))
	}
	switch t.kind {
	case Acquisition, Disposal:
		if t.symbol == "" {
			errs = append(errs, fmt.Errorf("%s without symbol", t.kind))
		}
		if !t.quantity.IsPositive() {
			errs = append(errs, fmt.Errorf("%s quantity must be positive, got %s", t.kind, t.quantity))
		}
		if t.price.IsNegative() {
			errs = append(errs, fmt.Errorf("%s price must not be negative, got %s", t.kind, t.price))
		}
	case CashIn, CashOut, Fee:
		if t.symbol != "" {
			errs = append(errs, fmt.Errorf("%s must not have a symbol, got %q", t.kind, t.symbol))
		}
		if !t.quantity.IsZero() {
			errs = append(errs, fmt.Errorf("%s must not have a quantity, got %s", t.kind, t.quantity))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown kind %v", t.kind))
	}
	if t.fees.IsNegative() {
		errs = append(errs, fmt.Errorf("fees must not be negative, got %s", t.fees))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %s:%s: %w", ErrInvalidTransaction, t.source, t.sourceID, errors.Join(errs...))
}

// keyPlaces is the rounding applied to decimals in Key.
const keyPlaces = 10

// Key returns the identity of a transaction used to drop duplicates.
func (t Transaction) Key() string {
	return strings.Join([]string{
		t.at.UTC().Format(time.RFC3339Nano),
		t.kind.String(),
		t.symbol,
		t.quantity.value.Round(keyPlaces).String(),
		t.price.value.Round(keyPlaces).String(),
		t.fees.value.Round(keyPlaces).String(),
		t.cash.value.Round(keyPlaces).String(),
		t.source,
		t.sourceID,
	}, "|")
}

// compareTransactions orders by timestamp, then source, then source id, then
// Key, so that the order never depends on the input order.
func compareTransactions(a, b Transaction) int {
	if c := a.at.Compare(b.at); c != 0 {
		return c
	}
	if c := strings.Compare(a.source, b.source); c != 0 {
		return c
	}
	if c := strings.Compare(a.sourceID, b.sourceID); c != 0 {
		return c
	}
	return strings.Compare(a.Key(), b.Key())
}
