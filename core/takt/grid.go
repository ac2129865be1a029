package takt

import (
	"time"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// TotalPeriods returns the number of takt periods a schedule spans:
// zones + wagons - 1 plus the trailing buffer periods.
func TotalPeriods(numZones, numWagons, bufferSize int) int {
	return numZones + numWagons - 1 + bufferSize
}

// EndDate returns the calendar end of a schedule of totalPeriods periods.
func EndDate(start time.Time, totalPeriods, taktTime int) time.Time {
	return AddWorkingDays(start, totalPeriods*taktTime)
}

// GenerateGrid computes one assignment per (zone, wagon) pair using diagonal
// takt scheduling: wagon w enters zone z in nominal period z+w, shifted by
// the cumulative buffer declared after earlier wagons. The start offset in
// working days is period*taktTime and the end offset adds the wagon's own
// duration. A wagon whose duration exceeds the takt time overruns into the
// next period; the overrun is left in place as the raw signal consumed by
// DetectStacking.
//
// Zones and wagons are consumed in the order given. Callers own the sequence
// ordering; the generator never re-sorts.
func GenerateGrid(zones []model.Zone, wagons []model.Wagon, startDate time.Time, taktTime int) ([]model.Assignment, error) {
	if len(zones) == 0 {
		return nil, model.NewValidationError("empty_zones", "at least one zone is required")
	}
	if len(wagons) == 0 {
		return nil, model.NewValidationError("empty_wagons", "at least one wagon is required")
	}
	if taktTime < 1 {
		return nil, model.NewValidationError("invalid_takt_time", "takt time must be >= 1, got %d", taktTime)
	}

	// Cumulative buffer periods inserted before each wagon.
	bufferOffsets := make([]int, len(wagons))
	for i := 1; i < len(wagons); i++ {
		bufferOffsets[i] = bufferOffsets[i-1] + wagons[i-1].BufferAfter
	}

	assignments := make([]model.Assignment, 0, len(zones)*len(wagons))
	for z, zone := range zones {
		for w, wagon := range wagons {
			duration := wagon.DurationDays
			if duration < 1 {
				duration = 1
			}
			period := z + w + bufferOffsets[w]
			startOffset := period * taktTime
			endOffset := startOffset + duration

			plannedStart := AddWorkingDays(startDate, startOffset)
			plannedEnd := AddWorkingDays(plannedStart, duration-1)

			assignments = append(assignments, model.Assignment{
				ZoneID:          zone.ID,
				WagonID:         wagon.ID,
				TradeID:         wagon.TradeID,
				PeriodIndex:     period,
				StartOffsetDays: startOffset,
				EndOffsetDays:   endOffset,
				PlannedStart:    plannedStart,
				PlannedEnd:      plannedEnd,
				Status:          model.StatusPlanned,
				ProgressPct:     0,
			})
		}
	}
	return assignments, nil
}

// WagonBufferPeriods is the cumulative BufferAfter shift applied to the last
// wagon, i.e. the extra periods the grid occupies beyond the plain diagonal.
func WagonBufferPeriods(wagons []model.Wagon) int {
	n := 0
	for i := 0; i+1 < len(wagons); i++ {
		n += wagons[i].BufferAfter
	}
	return n
}

// BuildPlan runs the grid generator and wraps the result in an immutable
// Plan aggregate with derived totals. Per-wagon buffers count towards the
// totals so the end date never precedes the last planned end.
func BuildPlan(zones []model.Zone, wagons []model.Wagon, startDate time.Time, taktTime, bufferSize int) (*model.Plan, error) {
	assignments, err := GenerateGrid(zones, wagons, startDate, taktTime)
	if err != nil {
		return nil, err
	}
	total := TotalPeriods(len(zones), len(wagons), bufferSize) + WagonBufferPeriods(wagons)
	return &model.Plan{
		Status:       model.PlanDraft,
		Zones:        model.CloneZones(zones),
		Wagons:       model.CloneWagons(wagons),
		TaktTime:     taktTime,
		BufferSize:   bufferSize,
		TotalPeriods: total,
		StartDate:    NextWorkingDay(startDate),
		EndDate:      EndDate(startDate, total, taktTime),
		Assignments:  assignments,
	}, nil
}

// ScheduleDays returns the total working-day length of the plan: the latest
// end offset across all assignments, extended by trailing buffer periods.
func ScheduleDays(p *model.Plan) int {
	maxEnd := 0
	for _, a := range p.Assignments {
		if a.EndOffsetDays > maxEnd {
			maxEnd = a.EndOffsetDays
		}
	}
	return maxEnd + p.BufferSize*p.TaktTime
}
