package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func TestReturns(t *testing.T) {
	got := Returns([]float64{100, 110, 99, 0, 50})
	want := []float64{0, 0.1, -0.1, -1, 0}
	assert.InDeltaSlice(t, want, got, tol)
	assert.Empty(t, Returns(nil))
}

func TestAnnualizedReturn(t *testing.T) {
	// 252 days of 0 then one doubling.
	r := make([]float64, PeriodsPerYear)
	r[10] = 1
	assert.InDelta(t, 1.0, AnnualizedReturn(r), tol)
	assert.InDelta(t, 0.0, AnnualizedReturn(nil), tol)
}

func TestAnnualizedVolatility(t *testing.T) {
	assert.Zero(t, AnnualizedVolatility([]float64{0.1}))
	// sample std of {0.01, -0.01} is √2·0.01
	got := AnnualizedVolatility([]float64{0.01, -0.01})
	assert.InDelta(t, math.Sqrt2*0.01*math.Sqrt(252), got, tol)
}

func TestSharpe(t *testing.T) {
	assert.Zero(t, Sharpe([]float64{0.01, 0.01, 0.01}, 0), "no dispersion")
	r := []float64{0.01, -0.01, 0.02, 0.0}
	mean, std := 0.005, 0.0
	for _, v := range r {
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / 3)
	assert.InDelta(t, mean/std*math.Sqrt(252), Sharpe(r, 0), tol)
	assert.Less(t, Sharpe(r, 0.05), Sharpe(r, 0))
}

func TestDrawdowns(t *testing.T) {
	eq := []float64{100, 120, 90, 130, 117}
	assert.InDeltaSlice(t, []float64{0, 0, -0.25, 0, -0.1}, Drawdowns(eq), tol)
	assert.InDelta(t, -0.25, MaxDrawdown(eq), tol)
	assert.Zero(t, MaxDrawdown(nil))
	assert.Zero(t, MaxDrawdown([]float64{1, 2, 3}))
}

func TestBetaAlpha(t *testing.T) {
	bench := []float64{0.01, -0.02, 0.03, 0.0, 0.015, -0.005}
	port := make([]float64, len(bench))
	for i, b := range bench {
		port[i] = 2*b + 0.001
	}
	beta, alpha := BetaAlpha(port, bench, 0)
	assert.InDelta(t, 2, beta, 1e-9)
	assert.InDelta(t, 0.001, alpha, 1e-9)

	beta, alpha = BetaAlpha(port[:4], bench[:4], 0)
	assert.Zero(t, beta)
	assert.Zero(t, alpha)

	withNaN := append([]float64{math.NaN()}, port[1:]...)
	beta, _ = BetaAlpha(withNaN, bench, 0)
	assert.InDelta(t, 2, beta, 1e-9, "NaN pair dropped, 5 pairs remain")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{100, 110, 99}, 0)
	assert.InDelta(t, -0.1, s.MaxDrawdown, tol)
	assert.InDelta(t, math.Pow(0.99, 252.0/3)-1, s.AnnReturn, tol)
	assert.Greater(t, s.AnnVol, 0.0)
}
