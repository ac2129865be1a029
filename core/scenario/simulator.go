// Package scenario applies what-if edits to takt plans and reports the
// resulting schedule delta. All transformations are pure: the base plan is
// copied once and every edit operates on the running copy, so concurrent
// evaluations over the same base plan are safe.
package scenario

import (
	"fmt"
	"math"
	"time"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/logger"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/takt"
)

// Result is the outcome of a what-if run: the regenerated plan plus the
// delta against the unmodified base.
type Result struct {
	OriginalEndDate  time.Time        `json:"original_end_date"`
	SimulatedEndDate time.Time        `json:"simulated_end_date"`
	DeltaDays        int              `json:"delta_days"`
	ConflictDelta    int              `json:"conflict_delta"`
	Conflicts        []model.Conflict `json:"trade_stacking_conflicts"`
	CostImpact       float64          `json:"cost_impact"`
	RiskScoreChange  float64          `json:"risk_score_change"`
	Warnings         []string         `json:"warnings"`
	SimulatedPlan    *model.Plan      `json:"simulated_plan,omitempty"`
}

// Simulator evaluates ordered edit lists against a base plan.
type Simulator struct {
	// CostPerDay is the coarse schedule overhead used for the cost estimate.
	CostPerDay float64
	Log        logger.Logger
}

// New returns a Simulator with the default daily overhead cost.
func New(log logger.Logger) *Simulator {
	return &Simulator{CostPerDay: 1000, Log: log}
}

type planState struct {
	zones    []model.Zone
	wagons   []model.Wagon
	taktTime int
	buffer   int
}

// Apply runs the edits in order against a copy of basePlan, regenerates the
// grid and returns the delta. basePlan is never mutated.
func (s *Simulator) Apply(basePlan *model.Plan, edits []Edit) (*Result, error) {
	if basePlan == nil {
		return nil, model.NewValidationError("missing_base_plan", "base plan is required")
	}
	if len(edits) == 0 {
		return nil, model.NewValidationError("missing_changes", "at least one change is required")
	}

	state := planState{
		zones:    model.CloneZones(basePlan.Zones),
		wagons:   model.CloneWagons(basePlan.Wagons),
		taktTime: basePlan.TaktTime,
		buffer:   basePlan.BufferSize,
	}

	var warnings []string
	for _, e := range edits {
		state, warnings = applyEdit(e, state, warnings)
	}

	simPlan, err := takt.BuildPlan(state.zones, state.wagons, basePlan.StartDate, state.taktTime, state.buffer)
	if err != nil {
		return nil, fmt.Errorf("regenerate grid: %w", err)
	}

	baseConflicts := takt.DetectStacking(basePlan.Assignments)
	simConflicts := takt.DetectStacking(simPlan.Assignments)
	deltaDays := takt.ScheduleDays(simPlan) - takt.ScheduleDays(basePlan)

	risk := riskScore(deltaDays, len(simConflicts), len(state.zones), len(state.wagons))
	if s.Log != nil {
		s.Log.Debugw("scenario applied", map[string]any{
			"edits":      len(edits),
			"delta_days": deltaDays,
			"conflicts":  len(simConflicts),
		})
	}

	return &Result{
		OriginalEndDate:  basePlan.EndDate,
		SimulatedEndDate: simPlan.EndDate,
		DeltaDays:        deltaDays,
		ConflictDelta:    len(simConflicts) - len(baseConflicts),
		Conflicts:        simConflicts,
		CostImpact:       float64(deltaDays) * s.CostPerDay,
		RiskScoreChange:  risk,
		Warnings:         append([]string{}, warnings...),
		SimulatedPlan:    simPlan,
	}, nil
}

// applyEdit dispatches one edit against the running state. Unknown kinds are
// ignored; known kinds referencing unknown ids append a warning instead of
// failing.
func applyEdit(e Edit, st planState, warnings []string) (planState, []string) {
	switch e.Type {
	case EditChangeTaktTime:
		newTakt, ok := e.intParam("new_takt_time", "new_value")
		if !ok {
			return st, append(warnings, "change_takt_time: missing new value, skipping")
		}
		if newTakt < 1 {
			warnings = append(warnings, "change_takt_time: value must be >= 1, using 1")
			newTakt = 1
		}
		// Wagon durations scale with the takt so relative workloads hold.
		ratio := float64(newTakt) / float64(st.taktTime)
		for i := range st.wagons {
			st.wagons[i].DurationDays = maxInt(1, int(math.Round(float64(st.wagons[i].DurationDays)*ratio)))
		}
		st.taktTime = newTakt

	case EditAddBuffer:
		periods, ok := e.intParam("periods", "buffer_days")
		if !ok {
			periods = 1
		}
		st.buffer += periods

	case EditAddCrew:
		tradeID := e.stringParam("trade_id")
		idx := findWagon(st.wagons, tradeID)
		if idx < 0 {
			return st, append(warnings, fmt.Sprintf("add_crew: trade %q not found, skipping", tradeID))
		}
		// Extra crew shortens the wagon by a quarter, never below one day.
		w := &st.wagons[idx]
		w.DurationDays = maxInt(1, int(math.Round(float64(w.DurationDays)*0.75)))
		if w.CrewSize > 0 {
			w.CrewSize++
		}

	case EditMoveTrade:
		tradeID := e.stringParam("trade_id")
		newSeq, _ := e.intParam("new_sequence")
		idx := findWagon(st.wagons, tradeID)
		if idx < 0 {
			return st, append(warnings, fmt.Sprintf("move_trade: trade %q not found, skipping", tradeID))
		}
		st.wagons = moveWagon(st.wagons, idx, newSeq)

	case EditRemoveTrade:
		tradeID := e.stringParam("trade_id")
		idx := findWagon(st.wagons, tradeID)
		if idx < 0 {
			return st, append(warnings, fmt.Sprintf("remove_trade: trade %q not found, skipping", tradeID))
		}
		st.wagons = removeWagon(st.wagons, idx)

	case EditDelayZone:
		days, ok := e.intParam("delay_days", "days")
		if !ok || days < 0 {
			return st, append(warnings, "delay_zone: missing or negative delay, skipping")
		}
		// Zone-specific delay is approximated as a schedule-wide buffer
		// increase in the grid model.
		st.buffer += days

	case EditSplitZone:
		zoneID := e.stringParam("zone_id")
		names := e.stringSliceParam("split_into")
		idx := findZone(st.zones, zoneID)
		if idx < 0 {
			return st, append(warnings, fmt.Sprintf("split_zone: zone %q not found, skipping", zoneID))
		}
		if len(names) < 2 {
			return st, append(warnings, "split_zone: at least two sub-zone names are required, skipping")
		}
		st.zones = splitZone(st.zones, idx, names)

	default:
		// Forward compatibility: newer edit kinds pass through untouched.
	}
	return st, warnings
}

// splitZone replaces the zone at idx with one sub-zone per name, renumbering
// all sequence indices contiguously. Sub-zone ids derive from the parent id.
func splitZone(zones []model.Zone, idx int, names []string) []model.Zone {
	parent := zones[idx]
	out := make([]model.Zone, 0, len(zones)+len(names)-1)
	out = append(out, zones[:idx]...)
	for i, name := range names {
		out = append(out, model.Zone{
			ID:   fmt.Sprintf("%s_split_%d", parent.ID, i),
			Name: name,
		})
	}
	out = append(out, zones[idx+1:]...)
	for i := range out {
		out[i].Sequence = i
	}
	return out
}

// moveWagon returns a new slice with the wagon at idx reinserted at newSeq
// and all sequence indices renumbered contiguously.
func moveWagon(wagons []model.Wagon, idx, newSeq int) []model.Wagon {
	out := make([]model.Wagon, 0, len(wagons))
	target := wagons[idx]
	rest := append(append([]model.Wagon{}, wagons[:idx]...), wagons[idx+1:]...)
	if newSeq < 0 {
		newSeq = 0
	}
	if newSeq > len(rest) {
		newSeq = len(rest)
	}
	out = append(out, rest[:newSeq]...)
	out = append(out, target)
	out = append(out, rest[newSeq:]...)
	for i := range out {
		out[i].Sequence = i
	}
	return out
}

// removeWagon returns a new slice without the wagon at idx, renumbered.
func removeWagon(wagons []model.Wagon, idx int) []model.Wagon {
	out := append(append([]model.Wagon{}, wagons[:idx]...), wagons[idx+1:]...)
	for i := range out {
		out[i].Sequence = i
	}
	return out
}

func findZone(zones []model.Zone, zoneID string) int {
	for i, z := range zones {
		if z.ID == zoneID {
			return i
		}
	}
	return -1
}

func findWagon(wagons []model.Wagon, tradeID string) int {
	for i, w := range wagons {
		if w.TradeID == tradeID || w.ID == tradeID {
			return i
		}
	}
	return -1
}

// riskScore combines schedule drift and stacking density into a bounded
// [-1, 1] delta. Weights favour the schedule component.
func riskScore(deltaDays, conflicts, numZones, numWagons int) float64 {
	maxCells := maxInt(numZones*numWagons, 1)

	schedule := float64(deltaDays) / float64(maxInt(maxCells, 20))
	schedule = clamp(schedule, -1, 1)

	stacking := float64(conflicts) / float64(maxCells)
	if stacking > 1 {
		stacking = 1
	}

	return clamp(0.6*schedule+0.4*stacking, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
