/*
Package factory converts JSON loan definitions into engine inputs.

PURPOSE:
  The computation core accepts only well-formed numeric values. This package
  is the boundary that turns external JSON (a posted request body, a stored
  portfolio definition, a demo scenario) into engine.LoanTerms, enforcing
  the caller-side contract the core relies on: extra payment percentages are
  clamped into [0, 20] and negative amounts are rejected before they reach
  the simulators.

JSON SCHEMA:
  {
    "name": "household",
    "loans": [
      {
        "id": "home",
        "principal": 500000,
        "annual_rate_percent": 4.5,
        "term_years": 30,
        "extra_payment_percent": 10,
        "offset_amount": 20000
      }
    ]
  }

USAGE:
  terms, err := factory.ParseLoan(jsonStr)
  loans, err := factory.ParsePortfolio(portfolioJSON)

SEE ALSO:
  - engine/types.go: the target types
  - api/scenarios.go: demo portfolios built through this package
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/payoff/mortgage-engine/engine"
)

// MaxExtraPaymentPercent bounds the extra-principal rate a caller can ask
// for. Values above it are clamped, not rejected.
const MaxExtraPaymentPercent = 20.0

// LoanJSON is the JSON representation of one loan's terms.
type LoanJSON struct {
	ID                  string  `json:"id,omitempty"`
	Principal           float64 `json:"principal"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
	TermYears           int     `json:"term_years"`
	ExtraPaymentPercent float64 `json:"extra_payment_percent,omitempty"`
	OffsetAmount        float64 `json:"offset_amount,omitempty"`
}

// OffsetJSON is the JSON representation of a parallel offset loan.
type OffsetJSON struct {
	Amount            float64 `json:"amount"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
	OffsetAmount      float64 `json:"offset_amount"`
}

// PortfolioJSON is a named set of loans simulated together.
type PortfolioJSON struct {
	Name  string     `json:"name"`
	Loans []LoanJSON `json:"loans"`
}

// ClampExtraPercent forces an extra payment percentage into [0, MaxExtraPaymentPercent].
func ClampExtraPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > MaxExtraPaymentPercent {
		return MaxExtraPaymentPercent
	}
	return pct
}

// Terms validates a LoanJSON and converts it to engine terms.
func (l LoanJSON) Terms() (engine.LoanTerms, error) {
	if l.Principal < 0 {
		return engine.LoanTerms{}, fmt.Errorf("loan %q: principal must not be negative", l.ID)
	}
	if l.AnnualRatePercent < 0 {
		return engine.LoanTerms{}, fmt.Errorf("loan %q: rate must not be negative", l.ID)
	}
	if l.TermYears <= 0 {
		return engine.LoanTerms{}, fmt.Errorf("loan %q: term must be a positive number of years", l.ID)
	}
	if l.OffsetAmount < 0 {
		return engine.LoanTerms{}, fmt.Errorf("loan %q: offset amount must not be negative", l.ID)
	}
	return engine.LoanTerms{
		ID:                  engine.LoanID(l.ID),
		Principal:           l.Principal,
		AnnualRatePercent:   l.AnnualRatePercent,
		TermYears:           l.TermYears,
		ExtraPaymentPercent: ClampExtraPercent(l.ExtraPaymentPercent),
		OffsetAmount:        l.OffsetAmount,
	}, nil
}

// Terms validates an OffsetJSON and converts it to engine terms.
func (o OffsetJSON) Terms() (engine.OffsetTerms, error) {
	if o.Amount < 0 || o.OffsetAmount < 0 {
		return engine.OffsetTerms{}, fmt.Errorf("offset loan: amounts must not be negative")
	}
	if o.AnnualRatePercent < 0 {
		return engine.OffsetTerms{}, fmt.Errorf("offset loan: rate must not be negative")
	}
	if o.TermYears <= 0 {
		return engine.OffsetTerms{}, fmt.Errorf("offset loan: term must be a positive number of years")
	}
	return engine.OffsetTerms{
		Amount:            o.Amount,
		AnnualRatePercent: o.AnnualRatePercent,
		TermYears:         o.TermYears,
		OffsetAmount:      o.OffsetAmount,
	}, nil
}

// ParseLoan parses a single JSON loan definition.
func ParseLoan(jsonStr string) (engine.LoanTerms, error) {
	var l LoanJSON
	if err := json.Unmarshal([]byte(jsonStr), &l); err != nil {
		return engine.LoanTerms{}, fmt.Errorf("invalid loan definition: %w", err)
	}
	return l.Terms()
}

// ParsePortfolio parses a JSON portfolio into an ordered loan sequence.
// Loans without ids are numbered in order (loan-1, loan-2, ...).
func ParsePortfolio(jsonStr string) ([]engine.LoanTerms, error) {
	var p PortfolioJSON
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return nil, fmt.Errorf("invalid portfolio definition: %w", err)
	}
	if len(p.Loans) == 0 {
		return nil, fmt.Errorf("portfolio %q has no loans", p.Name)
	}
	loans := make([]engine.LoanTerms, 0, len(p.Loans))
	for i, l := range p.Loans {
		terms, err := l.Terms()
		if err != nil {
			return nil, err
		}
		if terms.ID == "" {
			terms.ID = engine.LoanID(fmt.Sprintf("loan-%d", i+1))
		}
		loans = append(loans, terms)
	}
	return loans, nil
}
