// Package analytics computes return and risk statistics of daily equity
// curves.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PeriodsPerYear is the number of trading days used to annualize.
const PeriodsPerYear = 252

// minPairs is the minimum number of paired returns for BetaAlpha.
const minPairs = 5

// Returns converts values to daily percentage returns. The first return is
// zero, as is any return after a zero or NaN value.
func Returns(values []float64) []float64 {
	r := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 || math.IsNaN(prev) || math.IsNaN(values[i]) {
			continue
		}
		r[i] = values[i]/prev - 1
	}
	return r
}

// AnnualizedReturn compounds returns and scales the growth to a year.
// Formula: (Π(1+r))^(252/n) - 1
func AnnualizedReturn(returns []float64) float64 {
	growth := 1.0
	for _, r := range returns {
		growth *= 1 + r
	}
	n := max(len(returns), 1)
	return math.Pow(growth, float64(PeriodsPerYear)/float64(n)) - 1
}

// AnnualizedVolatility is the sample standard deviation of returns times √252.
func AnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(PeriodsPerYear)
}

// Sharpe is the annualized mean excess return over its volatility. rf is
// the yearly risk free rate, converted to a daily rate by compounding.
func Sharpe(returns []float64, rf float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	rfDaily := math.Pow(1+rf, 1.0/PeriodsPerYear) - 1
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rfDaily
	}
	mean, std := stat.MeanStdDev(excess, nil)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(PeriodsPerYear)
}

// Drawdowns returns, for each value, its relative distance to the running peak.
func Drawdowns(equity []float64) []float64 {
	dd := make([]float64, len(equity))
	peak := math.Inf(-1)
	for i, v := range equity {
		peak = math.Max(peak, v)
		if peak != 0 {
			dd[i] = v/peak - 1
		}
	}
	return dd
}

// MaxDrawdown is the deepest drawdown, zero or negative.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	return math.Min(0, floats.Min(Drawdowns(equity)))
}

// BetaAlpha regresses portfolio on benchmark excess returns, pairs with a
// NaN are dropped. With fewer than 5 pairs both are zero.
func BetaAlpha(portfolio, benchmark []float64, rfDaily float64) (beta, alphaDaily float64) {
	var x, y []float64
	for i := 0; i < len(portfolio) && i < len(benchmark); i++ {
		if math.IsNaN(portfolio[i]) || math.IsNaN(benchmark[i]) {
			continue
		}
		y = append(y, portfolio[i]-rfDaily)
		x = append(x, benchmark[i]-rfDaily)
	}
	if len(x) < minPairs {
		return 0, 0
	}
	if v := stat.Variance(x, nil); v != 0 {
		beta = stat.Covariance(x, y, nil) / v
	}
	return beta, stat.Mean(y, nil) - beta*stat.Mean(x, nil)
}

// Summary holds the headline statistics of an equity curve.
type Summary struct {
	AnnReturn   float64
	AnnVol      float64
	Sharpe      float64
	MaxDrawdown float64
}

// Summarize computes the Summary of equity, rf is the yearly risk free rate.
func Summarize(equity []float64, rf float64) Summary {
	r := Returns(equity)
	return Summary{
		AnnReturn:   AnnualizedReturn(r),
		AnnVol:      AnnualizedVolatility(r),
		Sharpe:      Sharpe(r, rf),
		MaxDrawdown: MaxDrawdown(equity),
	}
}
