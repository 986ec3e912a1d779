package sharetrack

import (
	"slices"
	"testing"

	"github.com/etnz/sharetrack/date"
)

func TestDailyHoldingsEmptyWeek(t *testing.T) {
	h := NewDailyHoldings(nil, date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 5)))
	if h.Len() != 5 {
		t.Fatalf("NewDailyHoldings(empty week).Len() = %d, want 5", h.Len())
	}
	for _, row := range h.Rows() {
		if !row.Cash().IsZero() {
			t.Errorf("row %v Cash() = %v, want 0", row.Date(), row.Cash())
		}
	}
	if len(h.Symbols()) != 0 {
		t.Errorf("Symbols() = %v, want none", h.Symbols())
	}
}

func TestDailyHoldingsReversedRange(t *testing.T) {
	txs := []Transaction{buy("2024-01-02", "X", 1, 1, 0)}
	h := NewDailyHoldings(txs, date.NewRange(date.New(2024, 1, 5), date.New(2024, 1, 1)))
	if h.Len() != 0 {
		t.Errorf("NewDailyHoldings(end < start).Len() = %d, want 0", h.Len())
	}
}

func TestDailyHoldingsReplay(t *testing.T) {
	txs := []Transaction{
		sell("2024-01-10", "X", 4, 12, 0),       // last day, inclusive
		NewCashIn(on("2023-12-20"), AUD(1000)), // before the range
		buy("2024-01-03", "X", 10, 10, 0),
		buy("2024-01-06", "Y", 2, 50, 0), // Saturday
		buy("2024-02-01", "Z", 1, 1, 0),  // after the range
	}
	h := NewDailyHoldings(txs, date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 10)))

	if got, want := h.Symbols(), []string{"X", "Y", "Z"}; !slices.Equal(got, want) {
		t.Errorf("Symbols() = %v, want %v", got, want)
	}
	if h.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", h.Len())
	}

	tests := []struct {
		day     date.Date
		cash    Money
		x, y, z Quantity
	}{
		{date.New(2024, 1, 1), AUD(1000), Q(0), Q(0), Q(0)},
		{date.New(2024, 1, 2), AUD(1000), Q(0), Q(0), Q(0)},
		{date.New(2024, 1, 3), AUD(900), Q(10), Q(0), Q(0)},
		{date.New(2024, 1, 5), AUD(900), Q(10), Q(0), Q(0)},
		{date.New(2024, 1, 8), AUD(800), Q(10), Q(2), Q(0)},
		{date.New(2024, 1, 10), AUD(848), Q(6), Q(2), Q(0)},
	}
	for _, tt := range tests {
		row, ok := h.Row(tt.day)
		if !ok {
			t.Errorf("Row(%v) not found", tt.day)
			continue
		}
		if !row.Cash().Equal(tt.cash) {
			t.Errorf("Row(%v).Cash() = %v, want %v", tt.day, row.Cash(), tt.cash)
		}
		for sym, want := range map[string]Quantity{"X": tt.x, "Y": tt.y, "Z": tt.z} {
			if got := row.Position(sym); !got.Equal(want) {
				t.Errorf("Row(%v).Position(%q) = %v, want %v", tt.day, sym, got, want)
			}
		}
	}
	if _, ok := h.Row(date.New(2024, 1, 6)); ok {
		t.Errorf("Row(Saturday) found, want no row on weekends")
	}
}

func TestDailyHoldingsAllowsShort(t *testing.T) {
	txs := []Transaction{sell("2024-01-02", "X", 10, 1, 0)}
	h := NewDailyHoldings(txs, date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 2)))
	last, _ := h.Last()
	if got := last.Position("X"); !got.Equal(Q(-10)) {
		t.Errorf("Position(X) = %v, want -10", got)
	}
}

func TestDailyHoldingsClampsResidue(t *testing.T) {
	txs := []Transaction{
		buy("2024-01-02", "BTC-AUD", 0.3, 1, 0),
		sell("2024-01-03", "BTC-AUD", 0.1, 1, 0),
		sell("2024-01-03", "BTC-AUD", 0.2000000000001, 1, 0),
	}
	h := NewDailyHoldings(txs, date.NewRange(date.New(2024, 1, 1), date.New(2024, 1, 3)))
	last, _ := h.Last()
	if got := last.Position("BTC-AUD"); !got.IsZero() {
		t.Errorf("Position(BTC-AUD) = %v, want exactly 0", got)
	}
}
