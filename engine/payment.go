package engine

import "math"

// MonthlyPayment computes the fixed monthly payment that amortizes the
// principal over the term. It never fails: degenerate inputs (non-positive
// principal or term, negative rate) return 0, and a zero rate returns the
// principal split evenly across the term's months.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 || annualRatePercent < 0 {
		return 0
	}
	n := float64(termYears * 12)
	if annualRatePercent == 0 {
		return principal / n
	}
	r := EffectiveMonthlyRate(annualRatePercent)
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}
