package engine

// AcceleratedSchedule runs a loan with extra principal payments and/or a
// parallel offset loan, and compares its payoff time against the
// non-accelerated baseline over the same terms.
//
// StandardMonths is measured by direct simulation of the baseline, not
// inferred from the term. MonthsSaved is floored at zero: acceleration can
// only shrink the balance faster, but an offset loan with a longer term than
// the primary extends the shared clock past the baseline's horizon.
func AcceleratedSchedule(terms LoanTerms, offset *OffsetTerms) ComparisonResult {
	standard, standardMonths := baselineSchedule(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	accelerated, acceleratedMonths, payments := acceleratedRun(terms, offset)

	monthsSaved := standardMonths - acceleratedMonths
	if monthsSaved < 0 {
		monthsSaved = 0
	}

	return ComparisonResult{
		Standard:          standard,
		Accelerated:       accelerated,
		StandardMonths:    standardMonths,
		AcceleratedMonths: acceleratedMonths,
		MonthsSaved:       monthsSaved,
		YearsSaved:        monthsSaved / 12,
		YearsSavedExact:   float64(monthsSaved) / 12,
		Payments:          payments,
	}
}
