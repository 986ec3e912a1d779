package sharetrack

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/etnz/sharetrack/date"
)

// FiscalRule sets the first day of a fiscal year.
type FiscalRule struct {
	Month time.Month
	Day   int
}

// AustralianFiscalYear starts on 1 July.
var AustralianFiscalYear = FiscalRule{Month: time.July, Day: 1}

// Year returns the fiscal year of day, named after the year it ends in.
func (r FiscalRule) Year(day date.Date) int { return day.FiscalYear(r.Month, r.Day) }

// Range returns the days of fiscal year fy.
func (r FiscalRule) Range(fy int) date.Range { return date.FiscalYearRange(fy, r.Month, r.Day) }

// TaxRow is a realized disposal placed in its fiscal year with its gain
// split into the discounted and other components.
type TaxRow struct {
	RealizedDisposal
	FiscalYear int
	Discounted Money // gain when positive and discount eligible
	Other      Money // any other gain or loss
}

// YearTotals sums the rows of one fiscal year.
type YearTotals struct {
	FiscalYear int
	Disposals  int
	Proceeds   Money
	CostBase   Money
	Gain       Money
	Discounted Money
	Other      Money
}

// TaxReport is the realized gains report.
type TaxReport struct {
	Rule  FiscalRule
	Rows  []TaxRow     // sorted by fiscal year, disposal date and symbol
	Years []YearTotals // ascending fiscal years
}

// NewTaxReport groups disposals by fiscal year.
func NewTaxReport(disposals []RealizedDisposal, rule FiscalRule) *TaxReport {
	rep := &TaxReport{Rule: rule, Rows: make([]TaxRow, 0, len(disposals)), Years: []YearTotals{}}
	for _, d := range disposals {
		row := TaxRow{RealizedDisposal: d, FiscalYear: rule.Year(d.Disposed)}
		zero := M(0, d.Gain.Currency())
		if d.Gain.IsPositive() && d.DiscountEligible {
			row.Discounted, row.Other = d.Gain, zero
		} else {
			row.Discounted, row.Other = zero, d.Gain
		}
		rep.Rows = append(rep.Rows, row)
	}
	slices.SortStableFunc(rep.Rows, func(a, b TaxRow) int {
		return cmp.Or(
			cmp.Compare(a.FiscalYear, b.FiscalYear),
			a.Disposed.Compare(b.Disposed),
			strings.Compare(a.Symbol, b.Symbol),
		)
	})

	for _, row := range rep.Rows {
		n := len(rep.Years)
		if n == 0 || rep.Years[n-1].FiscalYear != row.FiscalYear {
			rep.Years = append(rep.Years, YearTotals{FiscalYear: row.FiscalYear})
			n++
		}
		y := &rep.Years[n-1]
		y.Disposals++
		y.Proceeds = y.Proceeds.Add(row.Proceeds)
		y.CostBase = y.CostBase.Add(row.CostBase)
		y.Gain = y.Gain.Add(row.Gain)
		y.Discounted = y.Discounted.Add(row.Discounted)
		y.Other = y.Other.Add(row.Other)
	}
	return rep
}

// Year returns the report restricted to fiscal year fy.
func (r *TaxReport) Year(fy int) *TaxReport {
	sub := &TaxReport{Rule: r.Rule, Rows: []TaxRow{}, Years: []YearTotals{}}
	for _, row := range r.Rows {
		if row.FiscalYear == fy {
			sub.Rows = append(sub.Rows, row)
		}
	}
	for _, y := range r.Years {
		if y.FiscalYear == fy {
			sub.Years = append(sub.Years, y)
		}
	}
	return sub
}
