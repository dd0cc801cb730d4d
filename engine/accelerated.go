package engine

import "math"

// Loan identifiers used when the caller does not name the loans.
const (
	defaultLoanID LoanID = "loan"
	offsetLoanID  LoanID = "offset"
)

// acceleratedState accumulates one in-progress year of an accelerated run.
type acceleratedState struct {
	principalPaid float64
	interestPaid  float64
	extraPaid     float64
	perLoan       map[LoanID]*LoanBreakdown
}

func newAcceleratedState() *acceleratedState {
	return &acceleratedState{perLoan: map[LoanID]*LoanBreakdown{}}
}

func (s *acceleratedState) add(id LoanID, principal, interest float64) {
	s.principalPaid += principal
	s.interestPaid += interest
	b, ok := s.perLoan[id]
	if !ok {
		b = &LoanBreakdown{}
		s.perLoan[id] = b
	}
	b.Principal += principal
	b.Interest += interest
}

func (s *acceleratedState) emit(year int, remaining float64) YearlyAggregate {
	agg := YearlyAggregate{
		Year:             year,
		Principal:        round2(s.principalPaid),
		Interest:         round2(s.interestPaid),
		Total:            round2(s.principalPaid + s.interestPaid),
		RemainingBalance: round2(remaining),
		ExtraPayments:    round2(s.extraPaid),
		Loans:            map[LoanID]LoanBreakdown{},
	}
	for id, b := range s.perLoan {
		agg.Loans[id] = LoanBreakdown{Principal: round2(b.Principal), Interest: round2(b.Interest)}
	}
	return agg
}

// acceleratedRun simulates a single loan with extra principal payments and,
// optionally, a parallel offset loan. Both loans share one calendar cursor
// and one month counter; the run continues while either balance exceeds the
// payoff epsilon, bounded by the longer of the two terms in months.
//
// The extra amount is blended into the principal payment and the blend is
// clamped so principal paid never exceeds the remaining balance and never
// goes negative, keeping both balances non-increasing at any rate. The extra
// figure reported per year is the blended portion actually applied:
// principal paid minus what the unaccelerated payment alone would have
// covered, floored at zero. (The alternative reading, min(extra, balance),
// can differ in the payoff month; this engine uses the blended definition
// everywhere.)
func acceleratedRun(terms LoanTerms, offset *OffsetTerms) ([]YearlyAggregate, int, map[LoanID]PaymentBreakdown) {
	payment := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	extra := payment * terms.ExtraPaymentPercent / 100
	daily := DailyRate(terms.AnnualRatePercent)

	id := terms.ID
	if id == "" {
		id = defaultLoanID
	}
	payments := map[LoanID]PaymentBreakdown{
		id: {Main: round2(payment), Extra: round2(extra)},
	}

	balance := terms.Principal
	boundMonths := terms.TermYears * 12

	var offsetBalance, offsetPayment, offsetDaily, offsetFloor float64
	if offset != nil {
		offsetBalance = offset.Amount
		offsetPayment = MonthlyPayment(offset.Amount, offset.AnnualRatePercent, offset.TermYears)
		offsetDaily = DailyRate(offset.AnnualRatePercent)
		offsetFloor = offset.OffsetAmount
		if b := offset.TermYears * 12; b > boundMonths {
			boundMonths = b
		}
		payments[offsetLoanID] = PaymentBreakdown{Main: round2(offsetPayment)}
	}

	schedule := []YearlyAggregate{}
	cursor := monthCursor{}
	months := 0
	state := newAcceleratedState()

	for (!paidOff(balance) || !paidOff(offsetBalance)) && months < boundMonths {
		days := cursor.daysInMonth()

		if !paidOff(balance) {
			interest := balance * monthlyInterestFactor(daily, days)
			base := math.Max(math.Min(payment-interest, balance), 0)
			principalPayment := math.Min(payment-interest+extra, balance)
			if principalPayment < 0 {
				principalPayment = 0
			}
			balance -= principalPayment
			state.add(id, principalPayment, interest)
			state.extraPaid += math.Max(principalPayment-base, 0)
		}

		if offset != nil && !paidOff(offsetBalance) {
			// Interest accrues only on the balance above the offset amount.
			accruing := math.Max(offsetBalance-offsetFloor, 0)
			interest := accruing * monthlyInterestFactor(offsetDaily, days)
			principalPayment := math.Min(offsetPayment-interest, offsetBalance)
			if principalPayment < 0 {
				principalPayment = 0
			}
			offsetBalance -= principalPayment
			state.add(offsetLoanID, principalPayment, interest)
		}

		cursor.advance()
		months++
		if months%12 == 0 {
			schedule = append(schedule, state.emit(months/12, balance+offsetBalance))
			state = newAcceleratedState()
		}
	}
	if months%12 != 0 {
		schedule = append(schedule, state.emit(months/12+1, balance+offsetBalance))
	}
	return schedule, months, payments
}
