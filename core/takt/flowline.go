package takt

import (
	"time"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// FlowlineZone positions a zone on the chart's vertical axis.
type FlowlineZone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	YIndex int    `json:"y_index"`
}

// FlowlineSegment is one diagonal stretch of a wagon's line in working-day
// coordinates.
type FlowlineSegment struct {
	ZoneIndex int                    `json:"zone_index"`
	XStart    int                    `json:"x_start"`
	XEnd      int                    `json:"x_end"`
	Status    model.AssignmentStatus `json:"status"`
	Progress  float64                `json:"progress"`
}

// FlowlineWagon groups a wagon's segments for rendering.
type FlowlineWagon struct {
	WagonID  string            `json:"wagon_id"`
	TradeID  string            `json:"trade_id"`
	Segments []FlowlineSegment `json:"segments"`
}

// Flowline is the time-location chart data consumed by presentation layers.
type Flowline struct {
	Zones      []FlowlineZone  `json:"zones"`
	Wagons     []FlowlineWagon `json:"wagons"`
	TotalDays  int             `json:"total_days"`
	TaktTime   int             `json:"takt_time"`
	TodayXDays int             `json:"today_x"`
}

// ComputeFlowline converts a plan into flowline chart data. The today marker
// is the number of days elapsed from the plan start, floored at zero.
func ComputeFlowline(p *model.Plan, now time.Time) Flowline {
	zoneIndex := make(map[string]int, len(p.Zones))
	zones := make([]FlowlineZone, len(p.Zones))
	for i, z := range p.Zones {
		zoneIndex[z.ID] = i
		zones[i] = FlowlineZone{ID: z.ID, Name: z.Name, YIndex: i}
	}

	byWagon := make(map[string][]FlowlineSegment)
	for _, a := range p.Assignments {
		byWagon[a.WagonID] = append(byWagon[a.WagonID], FlowlineSegment{
			ZoneIndex: zoneIndex[a.ZoneID],
			XStart:    a.StartOffsetDays,
			XEnd:      a.EndOffsetDays,
			Status:    a.Status,
			Progress:  a.ProgressPct,
		})
	}

	wagons := make([]FlowlineWagon, len(p.Wagons))
	for i, w := range p.Wagons {
		wagons[i] = FlowlineWagon{WagonID: w.ID, TradeID: w.TradeID, Segments: byWagon[w.ID]}
	}

	todayX := int(now.Sub(p.StartDate).Hours() / 24)
	if todayX < 0 {
		todayX = 0
	}

	return Flowline{
		Zones:      zones,
		Wagons:     wagons,
		TotalDays:  p.TotalPeriods * p.TaktTime,
		TaktTime:   p.TaktTime,
		TodayXDays: todayX,
	}
}

// Summary condenses a plan into the headline numbers shown on dashboards.
type Summary struct {
	NumZones       int       `json:"num_zones"`
	NumWagons      int       `json:"num_wagons"`
	TotalPeriods   int       `json:"total_periods"`
	TaktTime       int       `json:"takt_time"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	TotalConflicts int       `json:"total_conflicts"`
}

// Summarize computes the plan summary, including the current conflict count.
func Summarize(p *model.Plan) Summary {
	return Summary{
		NumZones:       len(p.Zones),
		NumWagons:      len(p.Wagons),
		TotalPeriods:   p.TotalPeriods,
		TaktTime:       p.TaktTime,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		TotalConflicts: len(DetectStacking(p.Assignments)),
	}
}
