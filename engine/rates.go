package engine

import "math"

const (
	daysPerYear     = 365.0
	avgDaysPerMonth = daysPerYear / 12.0
)

// DailyRate converts an annual nominal percentage rate to a per-day rate.
// Rate zero is valid and yields zero.
func DailyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / daysPerYear
}

// EffectiveMonthlyRate is the rate used to size the fixed payment: the daily
// rate spread over an average month of 365/12 days. Only the payment solver
// uses this average-month conversion; the simulators always compound the
// daily rate over each month's actual day count.
func EffectiveMonthlyRate(annualRatePercent float64) float64 {
	return DailyRate(annualRatePercent) * avgDaysPerMonth
}

// monthlyInterestFactor is the true daily-compounding growth over a month of
// the given length: (1+daily)^days - 1.
func monthlyInterestFactor(dailyRate float64, days int) float64 {
	return math.Pow(1+dailyRate, float64(days)) - 1
}
