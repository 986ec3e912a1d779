package date

import "time"

// FiscalYear returns the fiscal year of d for years starting on (month, day).
//
// Fiscal years are named after the calendar year in which they end, so
// with a 1 July start, 2024-07-01 belongs to fiscal year 2025 and
// 2024-06-30 to fiscal year 2024. A 1 January start is the calendar year.
func (d Date) FiscalYear(month time.Month, day int) int {
	if month == time.January && day == 1 {
		return d.y
	}
	if d.m > month || (d.m == month && d.d >= day) {
		return d.y + 1
	}
	return d.y
}

// FiscalYearRange returns the days of fiscal year fy for years starting on
// (month, day).
func FiscalYearRange(fy int, month time.Month, day int) Range {
	if month == time.January && day == 1 {
		return Range{From: New(fy, time.January, 1), To: New(fy, time.December, 31)}
	}
	from := New(fy-1, month, day)
	return Range{From: from, To: New(fy, month, day).Add(-1)}
}
