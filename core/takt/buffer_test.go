package takt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

func TestComputeBuffersCleanGrid(t *testing.T) {
	// duration 3 against takt 5 leaves 2 idle days between occupations.
	plan, err := BuildPlan(testZones(3), testWagons(2, 3), testStart, 5, 0)
	require.NoError(t, err)

	report := ComputeBuffers(plan)
	require.Len(t, report.ZoneBuffers, 3)  // one gap per zone (2 wagons)
	require.Len(t, report.WagonBuffers, 4) // two gaps per wagon (3 zones)

	for _, zb := range report.ZoneBuffers {
		assert.Equal(t, 2, zb.BufferDays)
	}
	for _, wb := range report.WagonBuffers {
		assert.Equal(t, 2, wb.BufferDays)
	}
}

func TestComputeBuffersNegativePreserved(t *testing.T) {
	// duration 8 against takt 5 overlaps by 3: the buffer must stay -3,
	// never clamped to zero.
	plan, err := BuildPlan(testZones(2), testWagons(2, 8), testStart, 5, 0)
	require.NoError(t, err)

	report := ComputeBuffers(plan)
	require.NotEmpty(t, report.ZoneBuffers)
	for _, zb := range report.ZoneBuffers {
		assert.Equal(t, -3, zb.BufferDays)
	}
	for _, wb := range report.WagonBuffers {
		assert.Equal(t, -3, wb.BufferDays)
	}
}

func TestComputeBuffersDoesNotMutatePlan(t *testing.T) {
	plan, err := BuildPlan(testZones(3), testWagons(3, 4), testStart, 5, 0)
	require.NoError(t, err)
	before := startOffsets(plan)

	_ = ComputeBuffers(plan)
	assert.Equal(t, before, startOffsets(plan))
}

func startOffsets(p *model.Plan) []int {
	out := make([]int, len(p.Assignments))
	for i, a := range p.Assignments {
		out[i] = a.StartOffsetDays
	}
	return out
}
