package engine

import (
	"fmt"
	"math"
)

// multiLoanState is one loan's mutable balance during a multi-loan run. It
// lives only for the duration of the call.
type multiLoanState struct {
	id      LoanID
	payment float64
	extra   float64
	daily   float64
	offset  float64
	balance float64
}

// MultiLoanSchedule drives any number of independent loans in lockstep by
// calendar month, merging them into combined yearly totals while retaining a
// per-loan principal/interest breakdown.
//
// Each loan's fixed payment and extra amount are computed independently. In
// this form an offset amount reduces interest on the loan it is attached to:
// interest accrues on max(0, balance - offset). A paid-off loan contributes
// nothing to later months, and the whole run stops after the first month in
// which no loan made a payment.
func MultiLoanSchedule(loans []LoanTerms) MultiLoanResult {
	result := MultiLoanResult{
		Schedule: []YearlyAggregate{},
		Payments: map[LoanID]PaymentBreakdown{},
	}

	states := make([]*multiLoanState, 0, len(loans))
	maxTerm := 0
	var totalPayment float64
	for i, terms := range loans {
		id := terms.ID
		if id == "" {
			id = LoanID(fmt.Sprintf("loan-%d", i+1))
		}
		payment := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
		extra := payment * terms.ExtraPaymentPercent / 100
		states = append(states, &multiLoanState{
			id:      id,
			payment: payment,
			extra:   extra,
			daily:   DailyRate(terms.AnnualRatePercent),
			offset:  terms.OffsetAmount,
			balance: terms.Principal,
		})
		result.Payments[id] = PaymentBreakdown{Main: round2(payment), Extra: round2(extra)}
		totalPayment += payment + extra
		if terms.TermYears > maxTerm {
			maxTerm = terms.TermYears
		}
	}
	result.TotalMonthlyPayment = round2(totalPayment)

	cursor := monthCursor{}
	for year := 1; year <= maxTerm; year++ {
		state := newAcceleratedState()
		active := false
		for m := 0; m < 12; m++ {
			days := cursor.daysInMonth()
			paidThisMonth := false
			for _, st := range states {
				if paidOff(st.balance) {
					continue
				}
				accruing := math.Max(st.balance-st.offset, 0)
				interest := accruing * monthlyInterestFactor(st.daily, days)
				base := math.Max(math.Min(st.payment-interest, st.balance), 0)
				principalPayment := math.Min(st.payment+st.extra-interest, st.balance)
				if principalPayment < 0 {
					principalPayment = 0
				}
				st.balance -= principalPayment
				state.add(st.id, principalPayment, interest)
				state.extraPaid += math.Max(principalPayment-base, 0)
				paidThisMonth = true
			}
			if !paidThisMonth {
				break
			}
			cursor.advance()
			active = true
		}
		if !active {
			break
		}
		var remaining float64
		allPaid := true
		for _, st := range states {
			remaining += st.balance
			if !paidOff(st.balance) {
				allPaid = false
			}
		}
		result.Schedule = append(result.Schedule, state.emit(year, remaining))
		if allPaid {
			break
		}
	}
	return result
}
