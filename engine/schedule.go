package engine

import "math"

// YearlySchedule simulates a single loan with no acceleration and returns one
// aggregate per elapsed year. The sequence is shorter than termYears when the
// loan pays off early.
func YearlySchedule(principal, annualRatePercent float64, termYears int) []YearlyAggregate {
	schedule, _ := baselineSchedule(principal, annualRatePercent, termYears)
	return schedule
}

// baselineSchedule runs the non-accelerated simulation and also reports the
// number of elapsed months, so payoff time is measured by direct simulation
// rather than inferred from the term.
//
// Each month: interest compounds daily over the month's actual day count,
// the principal portion is the payment minus interest clamped to the
// remaining balance and floored at zero, and the loop stops once the balance
// falls to the payoff epsilon. The floor keeps the balance non-increasing
// even when interest on a very high rate exceeds the fixed payment. Yearly
// totals are rounded only at emission.
func baselineSchedule(principal, annualRatePercent float64, termYears int) ([]YearlyAggregate, int) {
	schedule := []YearlyAggregate{}
	if principal <= 0 || termYears <= 0 || annualRatePercent < 0 {
		return schedule, 0
	}

	payment := MonthlyPayment(principal, annualRatePercent, termYears)
	daily := DailyRate(annualRatePercent)

	balance := principal
	cursor := monthCursor{}
	months := 0

	for year := 1; year <= termYears; year++ {
		if paidOff(balance) {
			break
		}
		var principalPaid, interestPaid float64
		for m := 0; m < 12; m++ {
			if paidOff(balance) {
				break
			}
			interest := balance * monthlyInterestFactor(daily, cursor.daysInMonth())
			principalPayment := math.Min(payment-interest, balance)
			if principalPayment < 0 {
				principalPayment = 0
			}
			principalPaid += principalPayment
			interestPaid += interest
			balance -= principalPayment
			cursor.advance()
			months++
		}
		schedule = append(schedule, YearlyAggregate{
			Year:             year,
			Principal:        round2(principalPaid),
			Interest:         round2(interestPaid),
			Total:            round2(principalPaid + interestPaid),
			RemainingBalance: round2(balance),
			Loans:            map[LoanID]LoanBreakdown{},
		})
	}
	return schedule, months
}
