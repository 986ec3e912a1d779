// Package sharetrack replays broker transactions into a daily holdings
// ledger and matches disposals against acquisition lots, first in first
// out, to report realized capital gains per fiscal year.
//
// The two engines share one normalized, immutable input:
//   - a Journal validates, sorts and deduplicates transactions;
//   - DailyHoldings replays them onto business days, a disposal larger than
//     the position is applied and leaves a short position;
//   - MatchFIFO consumes Lots per symbol and emits a RealizedDisposal per
//     consumed slice, or a Rejection when the lots cannot cover a disposal.
//
// NewTaxReport places realized disposals in fiscal years, 1 July for
// Australia, and splits gains held at least 365 days into their
// discountable component.
//
// Quantities and amounts are decimals. Money carries a currency code for
// formatting only, every amount of a portfolio is in one base currency.
package sharetrack
