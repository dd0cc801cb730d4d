/*
handlers.go - HTTP API handlers for the amortization engine

PURPOSE:
  Exposes the computation core via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine package.

ENDPOINTS:
  Computation:
    POST   /api/payment               Solve the fixed monthly payment
    POST   /api/schedule              Baseline year-by-year schedule
    POST   /api/schedule/accelerated  Standard-vs-accelerated comparison
    POST   /api/schedule/multi       Combined multi-loan schedule

  Runs:
    GET    /api/runs                  Recent persisted computations
    GET    /api/runs/{id}             One persisted computation

  Scenarios:
    GET    /api/scenarios             List demo scenarios
    POST   /api/scenarios/load        Compute and persist a demo scenario

REQUEST FLOW:
  1. Parse and validate input (factory package)
  2. Check the result cache by request digest
  3. Call the engine
  4. Record metrics, persist the run, serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Run not found
  - 500: Internal errors

  Persistence failures never fail a computation: the schedule is still
  returned and the save error is logged.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/payoff/mortgage-engine/engine"
	"github.com/payoff/mortgage-engine/metrics"
	"github.com/payoff/mortgage-engine/store/cache"
	"github.com/payoff/mortgage-engine/store/sqlite"
	"github.com/payoff/mortgage-engine/tracing"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Cache cache.Cache

	// Track currently loaded scenario. Guarded by mu: scenario loads and
	// reads arrive on concurrent requests.
	mu              sync.RWMutex
	currentScenario string
}

// NewHandler creates a new handler with the given store and result cache.
func NewHandler(store *sqlite.Store, c cache.Cache) *Handler {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Handler{Store: store, Cache: c}
}

// =============================================================================
// COMPUTATION HANDLERS
// =============================================================================

// SolvePayment returns the fixed monthly payment for the posted terms.
func (h *Handler) SolvePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Principal < 0 || req.AnnualRatePercent < 0 {
		writeError(w, http.StatusBadRequest, "Principal and rate must not be negative", nil)
		return
	}

	_, span := tracing.Start(r.Context(), "payment.solve")
	defer span.End()

	start := time.Now()
	payment := engine.MonthlyPayment(req.Principal, req.AnnualRatePercent, req.TermYears)
	metrics.ComputeDuration.WithLabelValues("payment").Observe(time.Since(start).Seconds())
	metrics.Computations.WithLabelValues("payment").Inc()

	writeJSON(w, http.StatusOK, PaymentResponse{MonthlyPayment: payment})
}

// GetSchedule computes the baseline year-by-year schedule for one loan.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	terms, err := req.Loan.Terms()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan terms", err)
		return
	}

	ctx, span := tracing.Start(r.Context(), "schedule.baseline")
	defer span.End()

	h.computeCached(ctx, w, "schedule", req, func() any {
		return engine.YearlySchedule(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	})
}

// GetAcceleratedSchedule compares the standard schedule against one with
// extra principal payments and an optional offset loan.
func (h *Handler) GetAcceleratedSchedule(w http.ResponseWriter, r *http.Request) {
	var req AcceleratedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	terms, err := req.Loan.Terms()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan terms", err)
		return
	}

	var offset *engine.OffsetTerms
	if req.Offset != nil {
		o, err := req.Offset.Terms()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid offset terms", err)
			return
		}
		offset = &o
	}

	ctx, span := tracing.Start(r.Context(), "schedule.accelerated")
	defer span.End()

	h.computeCached(ctx, w, "comparison", req, func() any {
		return engine.AcceleratedSchedule(terms, offset)
	})
}

// GetMultiLoanSchedule computes the combined schedule for a loan portfolio.
func (h *Handler) GetMultiLoanSchedule(w http.ResponseWriter, r *http.Request) {
	var req MultiLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Loans) == 0 {
		writeError(w, http.StatusBadRequest, "At least one loan is required", nil)
		return
	}

	loans := make([]engine.LoanTerms, 0, len(req.Loans))
	for _, l := range req.Loans {
		terms, err := l.Terms()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid loan terms", err)
			return
		}
		loans = append(loans, terms)
	}

	ctx, span := tracing.Start(r.Context(), "schedule.multi")
	defer span.End()

	h.computeCached(ctx, w, "multi", req, func() any {
		return engine.MultiLoanSchedule(loans)
	})
}

// computeCached runs a computation behind the result cache, keyed by a
// digest of the request. Cached entries are the serialized result, so both
// paths write the identical body.
func (h *Handler) computeCached(ctx context.Context, w http.ResponseWriter, kind string, req any, compute func() any) {
	key := requestDigest(kind, req)

	if body, ok := h.Cache.Get(ctx, key); ok {
		metrics.CacheResults.WithLabelValues(kind, "hit").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
		return
	}
	metrics.CacheResults.WithLabelValues(kind, "miss").Inc()

	start := time.Now()
	result := compute()
	metrics.ComputeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.Computations.WithLabelValues(kind).Inc()

	body, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to serialize result", err)
		return
	}

	if err := h.Cache.Set(ctx, key, string(body)); err != nil {
		log.Printf("cache set failed for %s: %v", kind, err)
	}
	h.persistRun(ctx, kind, "", req, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// persistRun saves a computation for later retrieval. Failures are logged,
// never surfaced: the schedule was already computed and will be returned.
func (h *Handler) persistRun(ctx context.Context, kind, scenario string, req any, result []byte) {
	if h.Store == nil {
		return
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		log.Printf("run not saved, request not serializable: %v", err)
		return
	}
	run := sqlite.RunRecord{
		ID:          fmt.Sprintf("run-%d", time.Now().UnixNano()),
		Kind:        runKind(kind),
		Scenario:    scenario,
		RequestJSON: string(reqJSON),
		ResultJSON:  string(result),
	}
	if err := h.Store.SaveRun(ctx, run); err != nil {
		log.Printf("failed to save %s run: %v", kind, err)
	}
}

func runKind(kind string) sqlite.RunKind {
	switch kind {
	case "comparison":
		return sqlite.RunComparison
	case "multi":
		return sqlite.RunMulti
	default:
		return sqlite.RunSchedule
	}
}

func requestDigest(kind string, req any) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(append([]byte(kind+":"), b...))
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// ListRuns returns recent persisted computations, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunSummaryDTO, len(runs))
	for i, run := range runs {
		dtos[i] = RunSummaryDTO{
			ID:        run.ID,
			Kind:      string(run.Kind),
			Scenario:  run.Scenario,
			CreatedAt: run.CreatedAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one persisted computation with its payloads.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, RunDTO{
		ID:        run.ID,
		Kind:      string(run.Kind),
		Scenario:  run.Scenario,
		Request:   json.RawMessage(run.RequestJSON),
		Result:    json.RawMessage(run.ResultJSON),
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
	})
}

// ResetDatabase clears all persisted runs.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
