// Package plans exposes plan lifecycle and deterministic computation
// endpoints: grid generation, validation, buffers, summary and flowline.
package plans

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/logger"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/planstore"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/takt"
	"github.com/yuksel-arslan/SmartCon360-sub007/infra/metrics"
	"github.com/yuksel-arslan/SmartCon360-sub007/internal/eventbus"
)

// Handler serves the plan and compute routes.
type Handler struct {
	store   planstore.Store
	bus     eventbus.EventBus
	metrics *metrics.EngineMetrics
	log     logger.Logger
	token   string
	now     func() time.Time
}

// NewHandler returns an http.Handler for the plan and compute endpoints.
// Requests must carry "Bearer <token>" in the Authorization header when
// token is non-empty.
func NewHandler(store planstore.Store, bus eventbus.EventBus, m *metrics.EngineMetrics, log logger.Logger, token string) http.Handler {
	h := &Handler{store: store, bus: bus, metrics: m, log: log, token: token, now: time.Now}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /takt/plans", h.createPlan)
	mux.HandleFunc("GET /takt/plans/{id}", h.getPlan)
	mux.HandleFunc("DELETE /takt/plans/{id}", h.deletePlan)
	mux.HandleFunc("POST /takt/plans/{id}/activate", h.activatePlan)
	mux.HandleFunc("POST /takt/compute/grid", h.computeGrid)
	mux.HandleFunc("POST /takt/compute/validate", h.validatePlan)
	mux.HandleFunc("GET /takt/compute/buffers/{id}", h.buffers)
	mux.HandleFunc("GET /takt/compute/summary/{id}", h.summary)
	mux.HandleFunc("POST /takt/compute/flowline", h.flowline)
	return requireBearer(token, mux)
}

func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	var in model.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		writeEngineError(w, err)
		return
	}
	started := h.now()
	plan, err := takt.BuildPlan(in.Zones, in.Wagons, in.StartDate.Time, in.TaktTime, in.BufferSize)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	plan.ID = uuid.NewString()
	plan.ProjectID = in.ProjectID
	plan.Name = in.Name
	if err := h.store.Put(r.Context(), plan); err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	h.metrics.PlanGenerated()
	h.metrics.ObserveLatency("generate_grid", h.now().Sub(started))
	if h.bus != nil {
		h.bus.Publish(eventbus.Event{Kind: eventbus.PlanCreated, PlanID: plan.ID, At: h.now()})
	}
	h.log.Infof("plan %s created: %d zones x %d wagons, %d periods",
		plan.ID, len(plan.Zones), len(plan.Wagons), plan.TotalPeriods)

	writeData(w, http.StatusCreated, planResponse(plan, h.now()))
}

func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, planResponse(plan, h.now()))
}

func (h *Handler) deletePlan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	if h.bus != nil {
		h.bus.Publish(eventbus.Event{Kind: eventbus.PlanDeleted, PlanID: id, At: h.now()})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) activatePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	// Plans are immutable; activation stores a new revision of the aggregate.
	activated := plan.Clone()
	activated.Status = model.PlanActive
	if err := h.store.Put(r.Context(), activated); err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if h.bus != nil {
		h.bus.Publish(eventbus.Event{Kind: eventbus.PlanActivated, PlanID: activated.ID, At: h.now()})
	}
	writeData(w, http.StatusOK, map[string]any{"id": activated.ID, "status": activated.Status})
}

// computeGrid is the stateless variant: nothing is persisted.
func (h *Handler) computeGrid(w http.ResponseWriter, r *http.Request) {
	var in model.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		writeEngineError(w, err)
		return
	}
	started := h.now()
	plan, err := takt.BuildPlan(in.Zones, in.Wagons, in.StartDate.Time, in.TaktTime, in.BufferSize)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	h.metrics.PlanGenerated()
	h.metrics.ObserveLatency("generate_grid", h.now().Sub(started))
	writeData(w, http.StatusOK, map[string]any{
		"assignments":   plan.Assignments,
		"total_periods": plan.TotalPeriods,
		"num_zones":     len(plan.Zones),
		"num_trades":    len(plan.Wagons),
		"start_date":    plan.StartDate.Format("2006-01-02"),
		"end_date":      plan.EndDate.Format("2006-01-02"),
	})
}

type validateRequest struct {
	PlanID string `json:"plan_id"`
	model.PlanInput
}

func (h *Handler) validatePlan(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	plan, err := h.resolvePlan(r, req.PlanID, req.PlanInput)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	conflicts := takt.DetectStacking(plan.Assignments)
	h.metrics.ConflictsDetected(len(conflicts))
	writeData(w, http.StatusOK, map[string]any{
		"valid":           len(conflicts) == 0,
		"conflicts":       conflicts,
		"total_conflicts": len(conflicts),
		"critical_trades": takt.CriticalTrades(plan.Assignments, conflicts),
	})
}

func (h *Handler) buffers(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	report := takt.ComputeBuffers(plan)
	writeData(w, http.StatusOK, map[string]any{
		"plan_id":       plan.ID,
		"zone_buffers":  report.ZoneBuffers,
		"wagon_buffers": report.WagonBuffers,
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, takt.Summarize(plan))
}

type flowlineRequest struct {
	PlanID string `json:"plan_id"`
	model.PlanInput
}

func (h *Handler) flowline(w http.ResponseWriter, r *http.Request) {
	var req flowlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	plan, err := h.resolvePlan(r, req.PlanID, req.PlanInput)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, takt.ComputeFlowline(plan, h.now()))
}

// loadPlan fetches the plan named by the {id} path segment, writing the
// error response itself on failure.
func (h *Handler) loadPlan(w http.ResponseWriter, r *http.Request) (*model.Plan, bool) {
	plan, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return nil, false
	}
	return plan, true
}

// resolvePlan returns the stored plan when planID is set, otherwise builds
// one from the inline input.
func (h *Handler) resolvePlan(r *http.Request, planID string, in model.PlanInput) (*model.Plan, error) {
	if planID != "" {
		return h.store.Get(r.Context(), planID)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return takt.BuildPlan(in.Zones, in.Wagons, in.StartDate.Time, in.TaktTime, in.BufferSize)
}

func planResponse(p *model.Plan, now time.Time) map[string]any {
	today := int(now.Sub(p.StartDate).Hours() / 24)
	if today < 0 {
		today = 0
	}
	return map[string]any{
		"plan_id":           p.ID,
		"project_id":        p.ProjectID,
		"name":              p.Name,
		"status":            p.Status,
		"zones":             p.Zones,
		"wagons":            p.Wagons,
		"takt_time":         p.TaktTime,
		"buffer_size":       p.BufferSize,
		"total_periods":     p.TotalPeriods,
		"start_date":        p.StartDate.Format("2006-01-02"),
		"end_date":          p.EndDate.Format("2006-01-02"),
		"today_offset_days": today,
		"assignments":       p.Assignments,
	}
}
