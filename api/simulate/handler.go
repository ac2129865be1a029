// Package simulate exposes the stochastic surfaces of the engine: what-if
// scenario runs, Monte Carlo forecasts and multi-scenario comparison.
package simulate

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/logger"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/montecarlo"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/planstore"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/scenario"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/takt"
	"github.com/yuksel-arslan/SmartCon360-sub007/infra/metrics"
)

// Handler serves the simulation routes.
type Handler struct {
	store   planstore.Store
	sim     *scenario.Simulator
	mc      *montecarlo.Engine
	metrics *metrics.EngineMetrics
	log     logger.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewHandler returns an http.Handler for the simulation endpoints. timeout
// bounds the wall-clock time of a single Monte Carlo run.
func NewHandler(store planstore.Store, sim *scenario.Simulator, mc *montecarlo.Engine, m *metrics.EngineMetrics, log logger.Logger, token string, timeout time.Duration) http.Handler {
	h := &Handler{store: store, sim: sim, mc: mc, metrics: m, log: log, timeout: timeout, now: time.Now}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /simulate/what-if", h.whatIf)
	mux.HandleFunc("POST /simulate/monte-carlo", h.monteCarlo)
	mux.HandleFunc("POST /simulate/compare", h.compare)
	return requireBearer(token, mux)
}

type whatIfRequest struct {
	PlanID   string          `json:"plan_id"`
	BasePlan model.PlanInput `json:"base_plan"`
	Changes  []scenario.Edit `json:"changes"`
}

func (h *Handler) whatIf(w http.ResponseWriter, r *http.Request) {
	var req whatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	base, err := h.resolvePlan(r, req.PlanID, req.BasePlan)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	started := h.now()
	res, err := h.sim.Apply(base, req.Changes)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.metrics.ScenarioRun()
	h.metrics.ConflictsDetected(len(res.Conflicts))
	h.metrics.ObserveLatency("what_if", h.now().Sub(started))
	writeData(w, http.StatusOK, res)
}

type monteCarloRequest struct {
	PlanID              string          `json:"plan_id"`
	BasePlan            model.PlanInput `json:"base_plan"`
	Iterations          int             `json:"iterations"`
	DurationVariancePct float64         `json:"duration_variance_pct"`
}

func (h *Handler) monteCarlo(w http.ResponseWriter, r *http.Request) {
	var req monteCarloRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	base, err := h.resolvePlan(r, req.PlanID, req.BasePlan)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	started := h.now()
	dist, err := h.mc.Run(ctx, base, req.Iterations, req.DurationVariancePct)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.metrics.MonteCarloIterations(dist.Iterations)
	h.metrics.ObserveLatency("monte_carlo", h.now().Sub(started))
	writeData(w, http.StatusOK, dist)
}

type compareRequest struct {
	PlanID    string            `json:"plan_id"`
	BasePlan  model.PlanInput   `json:"base_plan"`
	Scenarios [][]scenario.Edit `json:"scenarios"`
}

func (h *Handler) compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	base, err := h.resolvePlan(r, req.PlanID, req.BasePlan)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	started := h.now()
	res, err := h.sim.Compare(base, req.Scenarios)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.metrics.ScenarioRun()
	h.metrics.ObserveLatency("compare", h.now().Sub(started))
	writeData(w, http.StatusOK, res)
}

func (h *Handler) resolvePlan(r *http.Request, planID string, in model.PlanInput) (*model.Plan, error) {
	if planID != "" {
		return h.store.Get(r.Context(), planID)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return takt.BuildPlan(in.Zones, in.Wagons, in.StartDate.Time, in.TaktTime, in.BufferSize)
}
