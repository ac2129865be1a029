package model

// Zone is an ordered spatial unit (floor, wing, section) through which the
// trade trains flow. Sequence indices are zero-based, contiguous and define
// the production flow direction.
type Zone struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sequence int    `json:"sequence"`
}

// Wagon is one trade train: a work package type that moves through every
// zone in sequence order (e.g. drywall, MEP rough-in).
type Wagon struct {
	ID             string   `json:"id"`
	TradeID        string   `json:"trade_id"`
	Sequence       int      `json:"sequence"`
	DurationDays   int      `json:"duration_days"`
	BufferAfter    int      `json:"buffer_after"`
	CrewSize       int      `json:"crew_size,omitempty"`
	PredecessorIDs []string `json:"predecessor_ids,omitempty"`
}

// CloneZones returns an independent copy of the zone slice.
func CloneZones(zones []Zone) []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// CloneWagons returns a deep copy of the wagon slice.
func CloneWagons(wagons []Wagon) []Wagon {
	out := make([]Wagon, len(wagons))
	copy(out, wagons)
	for i := range out {
		if len(wagons[i].PredecessorIDs) > 0 {
			out[i].PredecessorIDs = append([]string(nil), wagons[i].PredecessorIDs...)
		}
	}
	return out
}
