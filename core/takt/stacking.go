package takt

import (
	"sort"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// DetectStacking scans assignments for trade stacking: two different trades
// occupying the same zone concurrently. For each zone the segments are
// ordered by start offset and a conflict is recorded whenever a segment's
// end offset overruns the next segment's start. Conflicts are reported per
// zone pair, not globally deduplicated.
func DetectStacking(assignments []model.Assignment) []model.Conflict {
	byZone := make(map[string][]model.Assignment)
	var zoneOrder []string
	for _, a := range assignments {
		if _, ok := byZone[a.ZoneID]; !ok {
			zoneOrder = append(zoneOrder, a.ZoneID)
		}
		byZone[a.ZoneID] = append(byZone[a.ZoneID], a)
	}

	conflicts := []model.Conflict{}
	for _, zoneID := range zoneOrder {
		segs := byZone[zoneID]
		sort.SliceStable(segs, func(i, j int) bool {
			return segs[i].StartOffsetDays < segs[j].StartOffsetDays
		})
		for i := 0; i+1 < len(segs); i++ {
			a, b := segs[i], segs[i+1]
			if a.TradeID == b.TradeID && a.WagonID == b.WagonID {
				continue
			}
			if overlap := a.EndOffsetDays - b.StartOffsetDays; overlap > 0 {
				conflicts = append(conflicts, model.Conflict{
					ZoneID:      zoneID,
					TradeA:      a.TradeID,
					TradeB:      b.TradeID,
					OverlapDays: overlap,
				})
			}
		}
	}
	return conflicts
}

// CriticalTrades returns the trade ids that appear in a conflict while any
// of their segments is in progress or delayed. They are treated as
// schedule-critical by plan validation.
func CriticalTrades(assignments []model.Assignment, conflicts []model.Conflict) []string {
	active := make(map[string]bool)
	for _, a := range assignments {
		if a.Status == model.StatusInProgress || a.Status == model.StatusDelayed {
			active[a.TradeID] = true
		}
	}
	seen := make(map[string]bool)
	var out []string
	for _, c := range conflicts {
		for _, id := range []string{c.TradeA, c.TradeB} {
			if active[id] && !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
