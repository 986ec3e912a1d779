package sharetrack

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEpsilon(t *testing.T) {
	if want := decimal.RequireFromString("0.000000001"); !Epsilon().Equal(want) {
		t.Errorf("Epsilon() = %v, want %v", Epsilon(), want)
	}
}

func TestQuantityTolerance(t *testing.T) {
	tests := []struct {
		q, p       Quantity
		negligible bool
		covers     bool
	}{
		{q: Q(0), p: Q(0), negligible: true, covers: true},
		{q: Q(1e-10), p: Q(0), negligible: true, covers: true},
		{q: Q(-1e-9), p: Q(0), negligible: true, covers: true},
		{q: Q(1e-8), p: Q(0), negligible: false, covers: true},
		{q: Q(5), p: Q(5.0000000005), negligible: false, covers: true},
		{q: Q(5), p: Q(5.00000001), negligible: false, covers: false},
	}
	for _, tt := range tests {
		if got := tt.q.IsNegligible(); got != tt.negligible {
			t.Errorf("Q(%v).IsNegligible() = %v, want %v", tt.q, got, tt.negligible)
		}
		if got := tt.q.Covers(tt.p); got != tt.covers {
			t.Errorf("Q(%v).Covers(%v) = %v, want %v", tt.q, tt.p, got, tt.covers)
		}
	}
}
