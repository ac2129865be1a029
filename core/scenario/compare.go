package scenario

import (
	"fmt"
	"strings"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// CompareResult ranks several what-if scenarios against the same base plan.
type CompareResult struct {
	Scenarios            []*Result `json:"scenarios"`
	RecommendationIndex  int       `json:"recommendation_index"`
	RecommendationReason string    `json:"recommendation_reason"`
}

// Compare evaluates each edit list independently and recommends the scenario
// with the lowest combined score. Lower is better; conflicts weigh five days
// each and the risk delta ten.
func (s *Simulator) Compare(basePlan *model.Plan, scenarios [][]Edit) (*CompareResult, error) {
	if len(scenarios) < 2 {
		return nil, model.NewValidationError("missing_scenarios", "at least two scenarios are required")
	}

	results := make([]*Result, 0, len(scenarios))
	for _, edits := range scenarios {
		res, err := s.Apply(basePlan, edits)
		if err != nil {
			return nil, err
		}
		res.SimulatedPlan = nil // keep the comparison payload small
		results = append(results, res)
	}

	bestIdx := 0
	bestScore := 0.0
	for i, res := range results {
		score := float64(res.DeltaDays) +
			float64(len(res.Conflicts))*5 +
			max0(res.CostImpact)/1000 +
			res.RiskScoreChange*10
		if i == 0 || score < bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return &CompareResult{
		Scenarios:            results,
		RecommendationIndex:  bestIdx,
		RecommendationReason: recommendationReason(bestIdx, results[bestIdx]),
	}, nil
}

func recommendationReason(idx int, best *Result) string {
	var parts []string
	switch {
	case best.DeltaDays < 0:
		parts = append(parts, fmt.Sprintf("saves %d day(s)", -best.DeltaDays))
	case best.DeltaDays == 0:
		parts = append(parts, "maintains the original schedule")
	default:
		parts = append(parts, fmt.Sprintf("adds only %d day(s)", best.DeltaDays))
	}
	if best.CostImpact < 0 {
		parts = append(parts, fmt.Sprintf("reduces cost by %.0f", -best.CostImpact))
	} else if best.CostImpact > 0 {
		parts = append(parts, fmt.Sprintf("costs %.0f more", best.CostImpact))
	}
	if n := len(best.Conflicts); n == 0 {
		parts = append(parts, "introduces no trade-stacking conflicts")
	} else {
		parts = append(parts, fmt.Sprintf("introduces %d stacking conflict(s)", n))
	}
	return fmt.Sprintf("Scenario %d is recommended because it %s.", idx+1, strings.Join(parts, ", "))
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
