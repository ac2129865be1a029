package takt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

func TestDetectStackingNoFalseConflicts(t *testing.T) {
	// Every duration fits in the takt: the grid must be conflict free.
	zones := testZones(5)
	wagons := testWagons(4, 5)
	assignments, err := GenerateGrid(zones, wagons, testStart, 5)
	require.NoError(t, err)

	conflicts := DetectStacking(assignments)
	assert.Empty(t, conflicts)
}

// A wagon running 8 days against a 5-day takt has not vacated a zone when
// its successor arrives: each shared zone shows a 3-day overlap.
func TestDetectStackingOverrun(t *testing.T) {
	zones := testZones(4)
	wagons := testWagons(2, 5)
	wagons[0].DurationDays = 8

	assignments, err := GenerateGrid(zones, wagons, testStart, 5)
	require.NoError(t, err)

	conflicts := DetectStacking(assignments)
	require.Len(t, conflicts, 4)
	for _, c := range conflicts {
		assert.Equal(t, 3, c.OverlapDays)
		assert.Equal(t, "trade-a", c.TradeA)
		assert.Equal(t, "trade-b", c.TradeB)
	}
	// Zone with index 3 is among the flagged zones.
	zoneIDs := make(map[string]bool)
	for _, c := range conflicts {
		zoneIDs[c.ZoneID] = true
	}
	assert.True(t, zoneIDs["D"], "zone D must be flagged")
}

func TestDetectStackingSameWagonIgnored(t *testing.T) {
	// Two segments of the same wagon never conflict with each other.
	assignments := []model.Assignment{
		{ZoneID: "A", WagonID: "a", TradeID: "t1", StartOffsetDays: 0, EndOffsetDays: 6},
		{ZoneID: "A", WagonID: "a", TradeID: "t1", StartOffsetDays: 5, EndOffsetDays: 10},
	}
	assert.Empty(t, DetectStacking(assignments))
}

func TestDetectStackingTouchingSegments(t *testing.T) {
	// end == next start is a handover, not an overlap.
	assignments := []model.Assignment{
		{ZoneID: "A", WagonID: "a", TradeID: "t1", StartOffsetDays: 0, EndOffsetDays: 5},
		{ZoneID: "A", WagonID: "b", TradeID: "t2", StartOffsetDays: 5, EndOffsetDays: 10},
	}
	assert.Empty(t, DetectStacking(assignments))
}

func TestCriticalTrades(t *testing.T) {
	assignments := []model.Assignment{
		{ZoneID: "A", WagonID: "a", TradeID: "t1", StartOffsetDays: 0, EndOffsetDays: 7, Status: model.StatusDelayed},
		{ZoneID: "A", WagonID: "b", TradeID: "t2", StartOffsetDays: 5, EndOffsetDays: 10, Status: model.StatusPlanned},
	}
	conflicts := DetectStacking(assignments)
	require.Len(t, conflicts, 1)

	critical := CriticalTrades(assignments, conflicts)
	assert.Equal(t, []string{"t1"}, critical)
}
