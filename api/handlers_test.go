package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payoff/mortgage-engine/engine"
	"github.com/payoff/mortgage-engine/store/cache"
	"github.com/payoff/mortgage-engine/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, cache.NewMemory())
	srv := httptest.NewServer(NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSolvePayment(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/payment",
		`{"principal": 500000, "annual_rate_percent": 4.5, "term_years": 30}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got PaymentResponse
	decodeBody(t, resp, &got)
	assert.InDelta(t, 2533.43, got.MonthlyPayment, 0.01)
}

func TestSolvePaymentRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/payment", `{"principal": `)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolvePaymentRejectsNegativePrincipal(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/payment",
		`{"principal": -1, "annual_rate_percent": 4.5, "term_years": 30}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSchedule(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/schedule",
		`{"loan": {"principal": 500000, "annual_rate_percent": 4.5, "term_years": 30}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schedule []engine.YearlyAggregate
	decodeBody(t, resp, &schedule)
	require.Len(t, schedule, 30)
	assert.Equal(t, 1, schedule[0].Year)
	assert.Less(t, schedule[0].RemainingBalance, 500000.0)
	// Daily compounding outpaces the payment-sizing rate slightly, so a
	// small residual remains after the full term.
	assert.Less(t, schedule[29].RemainingBalance, 3000.0)
}

func TestGetScheduleRejectsBadTerm(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/schedule",
		`{"loan": {"principal": 500000, "annual_rate_percent": 4.5, "term_years": 0}}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetAcceleratedSchedule(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/schedule/accelerated",
		`{"loan": {"principal": 500000, "annual_rate_percent": 4.5, "term_years": 30, "extra_payment_percent": 10}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result engine.ComparisonResult
	decodeBody(t, resp, &result)
	assert.Equal(t, 360, result.StandardMonths)
	assert.Equal(t, 300, result.AcceleratedMonths)
	assert.Equal(t, 60, result.MonthsSaved)
	assert.Equal(t, 5, result.YearsSaved)
}

func TestAcceleratedScheduleClampsExtraPercent(t *testing.T) {
	// An extra percent above the cap computes as if it were the cap.
	srv := newTestServer(t)

	over := postJSON(t, srv, "/api/schedule/accelerated",
		`{"loan": {"principal": 500000, "annual_rate_percent": 4.5, "term_years": 30, "extra_payment_percent": 150}}`)
	require.Equal(t, http.StatusOK, over.StatusCode)
	var overResult engine.ComparisonResult
	decodeBody(t, over, &overResult)

	capped := postJSON(t, srv, "/api/schedule/accelerated",
		`{"loan": {"principal": 500000, "annual_rate_percent": 4.5, "term_years": 30, "extra_payment_percent": 20}}`)
	require.Equal(t, http.StatusOK, capped.StatusCode)
	var cappedResult engine.ComparisonResult
	decodeBody(t, capped, &cappedResult)

	assert.Equal(t, cappedResult.AcceleratedMonths, overResult.AcceleratedMonths)
	assert.Equal(t, cappedResult.Payments, overResult.Payments)
}

func TestGetMultiLoanSchedule(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/schedule/multi", `{"loans": [
		{"id": "home", "principal": 500000, "annual_rate_percent": 4.5, "term_years": 30},
		{"id": "car", "principal": 35000, "annual_rate_percent": 6.5, "term_years": 5}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result engine.MultiLoanResult
	decodeBody(t, resp, &result)

	expected := engine.MonthlyPayment(500000, 4.5, 30) + engine.MonthlyPayment(35000, 6.5, 5)
	assert.InDelta(t, expected, result.TotalMonthlyPayment, 0.01)
	assert.Len(t, result.Schedule, 30)
	assert.Contains(t, result.Payments, engine.LoanID("home"))
	assert.Contains(t, result.Payments, engine.LoanID("car"))
}

func TestGetMultiLoanScheduleRejectsEmpty(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/schedule/multi", `{"loans": []}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScheduleCacheServesIdenticalBody(t *testing.T) {
	srv := newTestServer(t)
	body := `{"loan": {"principal": 250000, "annual_rate_percent": 3.75, "term_years": 15}}`

	first := postJSON(t, srv, "/api/schedule", body)
	require.Equal(t, http.StatusOK, first.StatusCode)
	var a []engine.YearlyAggregate
	decodeBody(t, first, &a)

	second := postJSON(t, srv, "/api/schedule", body)
	require.Equal(t, http.StatusOK, second.StatusCode)
	var b []engine.YearlyAggregate
	decodeBody(t, second, &b)

	assert.Equal(t, a, b)
}

func TestComputationsArePersistedAsRuns(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/schedule/accelerated",
		`{"loan": {"principal": 500000, "annual_rate_percent": 4.5, "term_years": 30, "extra_payment_percent": 10}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	listResp, err := http.Get(srv.URL + "/api/runs")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var runs []RunSummaryDTO
	decodeBody(t, listResp, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, "comparison", runs[0].Kind)

	getResp, err := http.Get(fmt.Sprintf("%s/api/runs/%s", srv.URL, runs[0].ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var run RunDTO
	decodeBody(t, getResp, &run)
	assert.Equal(t, runs[0].ID, run.ID)
	assert.NotNil(t, run.Result)
}

func TestGetRunMissing(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/runs/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoadScenario(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/scenarios/load", `{"scenario_id": "household"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Scenario string                 `json:"scenario"`
		Result   engine.MultiLoanResult `json:"result"`
	}
	decodeBody(t, resp, &got)
	assert.Equal(t, "household", got.Scenario)
	assert.NotEmpty(t, got.Result.Schedule)

	// Loading persists a run tagged with the scenario id.
	listResp, err := http.Get(srv.URL + "/api/runs")
	require.NoError(t, err)
	var runs []RunSummaryDTO
	decodeBody(t, listResp, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, "household", runs[0].Scenario)

	// And it becomes the current scenario.
	curResp, err := http.Get(srv.URL + "/api/scenarios/current")
	require.NoError(t, err)
	var cur ScenarioDTO
	decodeBody(t, curResp, &cur)
	assert.Equal(t, "household", cur.ID)
}

func TestScenarioStateUnderConcurrentAccess(t *testing.T) {
	// Scenario loads and current-scenario reads arrive on concurrent
	// requests; the state behind them must stay consistent.
	srv := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp, err := http.Post(srv.URL+"/api/scenarios/load", "application/json",
				bytes.NewBufferString(`{"scenario_id": "single-home"}`))
			if err == nil {
				resp.Body.Close()
			}
		}()
		go func() {
			defer wg.Done()
			resp, err := http.Get(srv.URL + "/api/scenarios/current")
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	resp, err := http.Get(srv.URL + "/api/scenarios/current")
	require.NoError(t, err)
	var cur ScenarioDTO
	decodeBody(t, resp, &cur)
	assert.Equal(t, "single-home", cur.ID)
}

func TestLoadScenarioUnknown(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/scenarios/load", `{"scenario_id": "nope"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListScenarios(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/scenarios")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []ScenarioDTO
	decodeBody(t, resp, &got)
	require.NotEmpty(t, got)
	for _, s := range got {
		_, ok := scenarioPortfolios[s.ID]
		assert.True(t, ok, "scenario %s has no portfolio definition", s.ID)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
