/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  JSON contracts between the frontend and the amortization engine. DTOs are
  kept separate from engine types so the wire format can evolve without
  touching the math.

CONVENTIONS:
  - snake_case JSON field names
  - Money as float64 dollars, rounded to cents by the engine at emission
  - Rates as annual percentages (4.5 means 4.5%)

SEE ALSO:
  - handlers.go: Where these are decoded and filled
  - factory/loan.go: Validation and engine-term conversion
*/
package api

import "github.com/payoff/mortgage-engine/factory"

// =============================================================================
// REQUESTS
// =============================================================================

// PaymentRequest asks for the fixed monthly payment of a loan.
type PaymentRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
}

// ScheduleRequest asks for a baseline year-by-year schedule.
type ScheduleRequest struct {
	Loan factory.LoanJSON `json:"loan"`
}

// AcceleratedRequest asks for a standard-vs-accelerated comparison.
// Offset is optional; when present a parallel offset-eligible loan is
// simulated alongside the primary.
type AcceleratedRequest struct {
	Loan   factory.LoanJSON    `json:"loan"`
	Offset *factory.OffsetJSON `json:"offset,omitempty"`
}

// MultiLoanRequest asks for a combined schedule across a portfolio.
type MultiLoanRequest struct {
	Loans []factory.LoanJSON `json:"loans"`
}

// LoadScenarioRequest selects a demo scenario to compute and persist.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// PaymentResponse carries the solved fixed monthly payment.
type PaymentResponse struct {
	MonthlyPayment float64 `json:"monthly_payment"`
}

// RunDTO is a persisted computation as returned by the runs endpoints.
// Request and Result are the raw JSON documents stored with the run.
type RunDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Scenario  string `json:"scenario,omitempty"`
	Request   any    `json:"request"`
	Result    any    `json:"result"`
	CreatedAt string `json:"created_at"`
}

// RunSummaryDTO is the list form of a run, without the payloads.
type RunSummaryDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Scenario  string `json:"scenario,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
