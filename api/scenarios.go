/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built loan portfolios that demonstrate specific engine
	features. Loading a scenario computes its combined schedule and persists
	the result as a run so the frontend has data to render immediately.

AVAILABLE SCENARIOS:

	single-home:      One 30-year mortgage, no acceleration
	extra-payments:   Same mortgage with 10% extra principal per month
	offset-account:   A loan whose balance is fully offset (zero interest)
	household:        Mortgage plus car loan, mixed terms

HOW SCENARIOS WORK:
 1. Parse the portfolio definition through the factory
 2. Compute the combined multi-loan schedule
 3. Persist the run tagged with the scenario id

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "household"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Add its portfolio JSON to scenarioPortfolios

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers, run persistence
  - factory/loan.go: the portfolio JSON schema
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/payoff/mortgage-engine/engine"
	"github.com/payoff/mortgage-engine/factory"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "single-home",
		Name:        "Single Home Loan",
		Description: "One 30-year 4.5% mortgage paid on schedule",
		Category:    "baseline",
	},
	{
		ID:          "extra-payments",
		Name:        "Extra Payments",
		Description: "Same mortgage with 10% extra principal each month",
		Category:    "accelerated",
	},
	{
		ID:          "offset-account",
		Name:        "Offset Account",
		Description: "A loan whose balance is fully covered by an offset account",
		Category:    "offset",
	},
	{
		ID:          "household",
		Name:        "Household Portfolio",
		Description: "Mortgage plus a shorter car loan, combined schedule",
		Category:    "multi",
	},
}

// Portfolio definitions in the same JSON schema the API accepts. Keeping
// them as JSON exercises the factory path end to end.
var scenarioPortfolios = map[string]string{
	"single-home": `{
		"name": "single-home",
		"loans": [
			{"id": "home", "principal": 500000, "annual_rate_percent": 4.5, "term_years": 30}
		]
	}`,
	"extra-payments": `{
		"name": "extra-payments",
		"loans": [
			{"id": "home", "principal": 500000, "annual_rate_percent": 4.5, "term_years": 30, "extra_payment_percent": 10}
		]
	}`,
	"offset-account": `{
		"name": "offset-account",
		"loans": [
			{"id": "offset-loan", "principal": 20000, "annual_rate_percent": 5.5, "term_years": 10, "offset_amount": 25000}
		]
	}`,
	"household": `{
		"name": "household",
		"loans": [
			{"id": "home", "principal": 400000, "annual_rate_percent": 4.0, "term_years": 30, "extra_payment_percent": 5},
			{"id": "car", "principal": 35000, "annual_rate_percent": 6.5, "term_years": 5}
		]
	}`,
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          current,
		Name:        current,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario computes a predefined portfolio and persists the run.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	portfolioJSON, ok := scenarioPortfolios[req.ScenarioID]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario: "+req.ScenarioID, nil)
		return
	}

	loans, err := factory.ParsePortfolio(portfolioJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to parse scenario portfolio", err)
		return
	}

	ctx := r.Context()
	result := engine.MultiLoanSchedule(loans)

	body, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to serialize result", err)
		return
	}
	h.persistRun(ctx, "multi", req.ScenarioID, json.RawMessage(portfolioJSON), body)
	h.mu.Lock()
	h.currentScenario = req.ScenarioID
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"scenario": req.ScenarioID,
		"result":   result,
	})
}
