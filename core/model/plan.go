package model

import "time"

// AssignmentStatus tracks the execution state of a grid cell.
type AssignmentStatus string

const (
	StatusPlanned    AssignmentStatus = "planned"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
	StatusDelayed    AssignmentStatus = "delayed"
)

// Assignment is the scheduled occupation of one zone by one wagon.
// Offsets are working days from the plan start; PlannedStart and PlannedEnd
// are the corresponding calendar dates with weekends skipped.
type Assignment struct {
	ZoneID          string           `json:"zone_id"`
	WagonID         string           `json:"wagon_id"`
	TradeID         string           `json:"trade_id"`
	PeriodIndex     int              `json:"period_index"`
	StartOffsetDays int              `json:"start_offset_days"`
	EndOffsetDays   int              `json:"end_offset_days"`
	PlannedStart    time.Time        `json:"planned_start"`
	PlannedEnd      time.Time        `json:"planned_end"`
	Status          AssignmentStatus `json:"status"`
	ProgressPct     float64          `json:"progress_pct"`
}

// PlanStatus is the lifecycle state of a stored plan.
type PlanStatus string

const (
	PlanDraft  PlanStatus = "draft"
	PlanActive PlanStatus = "active"
)

// Plan is the aggregate produced by the grid generator. It is immutable once
// computed: scenario edits and simulations always work on copies and yield a
// new Plan, never an in-place mutation.
type Plan struct {
	ID           string       `json:"id"`
	ProjectID    string       `json:"project_id,omitempty"`
	Name         string       `json:"name,omitempty"`
	Status       PlanStatus   `json:"status"`
	Zones        []Zone       `json:"zones"`
	Wagons       []Wagon      `json:"wagons"`
	TaktTime     int          `json:"takt_time"`
	BufferSize   int          `json:"buffer_size"`
	TotalPeriods int          `json:"total_periods"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	Assignments  []Assignment `json:"assignments"`
}

// Clone returns a deep copy of the plan. Simulation code mutates only the
// copy so that the stored base plan keeps its identity.
func (p *Plan) Clone() *Plan {
	cp := *p
	cp.Zones = CloneZones(p.Zones)
	cp.Wagons = CloneWagons(p.Wagons)
	cp.Assignments = append([]Assignment(nil), p.Assignments...)
	return &cp
}

// Conflict records a trade-stacking violation: two wagons occupying the same
// zone concurrently.
type Conflict struct {
	ZoneID      string `json:"zone_id"`
	TradeA      string `json:"trade_a"`
	TradeB      string `json:"trade_b"`
	OverlapDays int    `json:"overlap_days"`
}
