package takt

import (
	"sort"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// ZoneBuffer is the idle time a zone sits empty between two consecutive
// trade occupations. Negative values indicate the overlap DetectStacking
// flags and are preserved as-is.
type ZoneBuffer struct {
	ZoneID     string `json:"zone_id"`
	FromTrade  string `json:"from_trade"`
	ToTrade    string `json:"to_trade"`
	BufferDays int    `json:"buffer_days"`
}

// WagonBuffer is the gap between a wagon leaving one zone and entering the
// next.
type WagonBuffer struct {
	WagonID    string `json:"wagon_id"`
	TradeID    string `json:"trade_id"`
	FromZone   string `json:"from_zone"`
	ToZone     string `json:"to_zone"`
	BufferDays int    `json:"buffer_days"`
}

// BufferReport holds one entry per adjacent zone occupation pair and per
// adjacent zone pair for each wagon.
type BufferReport struct {
	ZoneBuffers  []ZoneBuffer  `json:"zone_buffers"`
	WagonBuffers []WagonBuffer `json:"wagon_buffers"`
}

// ComputeBuffers derives the slack between consecutive occupations of each
// zone and between consecutive zones for each wagon. The plan is not
// mutated.
func ComputeBuffers(p *model.Plan) BufferReport {
	report := BufferReport{
		ZoneBuffers:  []ZoneBuffer{},
		WagonBuffers: []WagonBuffer{},
	}

	byZone := make(map[string][]model.Assignment)
	byWagon := make(map[string][]model.Assignment)
	for _, a := range p.Assignments {
		byZone[a.ZoneID] = append(byZone[a.ZoneID], a)
		byWagon[a.WagonID] = append(byWagon[a.WagonID], a)
	}

	for _, zone := range p.Zones {
		segs := byZone[zone.ID]
		sort.SliceStable(segs, func(i, j int) bool {
			return segs[i].StartOffsetDays < segs[j].StartOffsetDays
		})
		for i := 0; i+1 < len(segs); i++ {
			report.ZoneBuffers = append(report.ZoneBuffers, ZoneBuffer{
				ZoneID:     zone.ID,
				FromTrade:  segs[i].TradeID,
				ToTrade:    segs[i+1].TradeID,
				BufferDays: segs[i+1].StartOffsetDays - segs[i].EndOffsetDays,
			})
		}
	}

	for _, wagon := range p.Wagons {
		segs := byWagon[wagon.ID]
		sort.SliceStable(segs, func(i, j int) bool {
			return segs[i].StartOffsetDays < segs[j].StartOffsetDays
		})
		for i := 0; i+1 < len(segs); i++ {
			report.WagonBuffers = append(report.WagonBuffers, WagonBuffer{
				WagonID:    wagon.ID,
				TradeID:    wagon.TradeID,
				FromZone:   segs[i].ZoneID,
				ToZone:     segs[i+1].ZoneID,
				BufferDays: segs[i+1].StartOffsetDays - segs[i].EndOffsetDays,
			})
		}
	}

	return report
}
