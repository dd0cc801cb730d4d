/*
Package engine computes mortgage amortization schedules under daily-compounded
interest.

PURPOSE:
  This package contains the pure computation core: rate conversion, fixed
  payment solving, month-by-month balance simulation with real calendar month
  lengths (leap years included), multi-loan aggregation with per-loan
  breakdown retention, and accelerated-vs-baseline payoff comparison.

KEY CONCEPTS IN THIS FILE (types.go):
  - LoanTerms: immutable inputs for one loan
  - OffsetTerms: an independent "offset loan" run in parallel with a primary
  - YearlyAggregate: one year's totals, with an always-present per-loan map
  - ComparisonResult / MultiLoanResult: outputs of the two composite runs

DESIGN PRINCIPLES:
  1. Purity: every operation is a function of its explicit inputs. The
     simulation calendar starts at a fixed epoch, never the wall clock, so
     identical inputs always produce identical output.
  2. Totality: degenerate inputs (zero principal, negative rate, zero term)
     yield defined zero/empty results. Nothing in this package returns an
     error or panics.
  3. Termination: every simulation is bounded by the longest configured term
     in months, combined with the 0.01 payoff epsilon.

USAGE:
  payment := engine.MonthlyPayment(500000, 4.5, 30)
  schedule := engine.YearlySchedule(500000, 4.5, 30)
  result := engine.AcceleratedSchedule(engine.LoanTerms{
      Principal: 500000, AnnualRatePercent: 4.5, TermYears: 30,
      ExtraPaymentPercent: 10,
  }, nil)

SEE ALSO:
  - rates.go: annual-to-daily and payment-sizing rate conversion
  - schedule.go: baseline single-loan simulation
  - accelerated.go: extra payments and the parallel offset loan
  - multiloan.go: lockstep aggregation of independent loans
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// payoffEpsilon is the balance below which a loan counts as paid off. It
// absorbs rounding drift so schedules terminate cleanly.
const payoffEpsilon = 0.01

// LoanID identifies a loan within a multi-loan run and in per-loan
// breakdowns.
type LoanID string

// LoanTerms are the immutable inputs for one loan. OffsetAmount reduces the
// interest-bearing portion of this loan's own balance: interest accrues on
// max(0, balance - OffsetAmount).
type LoanTerms struct {
	ID                  LoanID
	Principal           float64
	AnnualRatePercent   float64
	TermYears           int
	ExtraPaymentPercent float64
	OffsetAmount        float64
}

// OffsetTerms describe an independent offset loan simulated in parallel with
// a primary loan. The offset reduces interest on this loan only, never on
// the primary.
type OffsetTerms struct {
	Amount            float64
	AnnualRatePercent float64
	TermYears         int
	OffsetAmount      float64
}

// LoanBreakdown is one loan's share of a year's totals.
type LoanBreakdown struct {
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
}

// YearlyAggregate holds one elapsed year of a simulation. Values are rounded
// to two decimal places at emission; intermediate math is never rounded.
// Loans is always non-nil so consumers never branch on absence; it is empty
// for runs without a per-loan breakdown.
type YearlyAggregate struct {
	Year             int                      `json:"year"`
	Principal        float64                  `json:"principal"`
	Interest         float64                  `json:"interest"`
	Total            float64                  `json:"total"`
	RemainingBalance float64                  `json:"remaining_balance"`
	ExtraPayments    float64                  `json:"extra_payments"`
	Loans            map[LoanID]LoanBreakdown `json:"loans"`
}

// PaymentBreakdown splits one loan's monthly payment figure.
type PaymentBreakdown struct {
	Main   float64 `json:"main"`
	Extra  float64 `json:"extra"`
	Offset float64 `json:"offset"`
}

// ComparisonResult pairs an accelerated run with its non-accelerated
// baseline over the same terms. YearsSavedExact is the saved time in years
// with the fractional part kept (MonthsSaved / 12).
type ComparisonResult struct {
	Standard          []YearlyAggregate           `json:"standard"`
	Accelerated       []YearlyAggregate           `json:"accelerated"`
	StandardMonths    int                         `json:"standard_months"`
	AcceleratedMonths int                         `json:"accelerated_months"`
	MonthsSaved       int                         `json:"months_saved"`
	YearsSaved        int                         `json:"years_saved"`
	YearsSavedExact   float64                     `json:"years_saved_exact"`
	Payments          map[LoanID]PaymentBreakdown `json:"payments"`
}

// MultiLoanResult is the combined schedule for a set of independent loans.
type MultiLoanResult struct {
	Schedule            []YearlyAggregate           `json:"schedule"`
	TotalMonthlyPayment float64                     `json:"total_monthly_payment"`
	Payments            map[LoanID]PaymentBreakdown `json:"payments"`
}

func paidOff(balance float64) bool {
	return balance <= payoffEpsilon
}

// round2 rounds a currency amount to two decimal places. Used only at
// year-boundary emission.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
