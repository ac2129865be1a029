// Package montecarlo runs stochastic duration simulation over a takt plan.
// Iterations are embarrassingly parallel: the engine fans them out across
// workers, each with its own random source, and merges the partial samples
// before computing percentiles.
package montecarlo

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/logger"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/takt"
)

// MaxIterations bounds a single run to keep latency predictable.
const MaxIterations = 5000

// DefaultIterations is used when the request does not specify a count.
const DefaultIterations = 1000

const histogramBins = 20

// HistogramBin is one bucket of the duration distribution.
type HistogramBin struct {
	MinDays   float64 `json:"min_days"`
	MaxDays   float64 `json:"max_days"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// Distribution summarises the simulated completion-date spread.
type Distribution struct {
	Iterations        int            `json:"iterations"`
	P50DurationDays   int            `json:"p50_duration_days"`
	P80DurationDays   int            `json:"p80_duration_days"`
	P95DurationDays   int            `json:"p95_duration_days"`
	P50EndDate        time.Time      `json:"p50_end_date"`
	P80EndDate        time.Time      `json:"p80_end_date"`
	P95EndDate        time.Time      `json:"p95_end_date"`
	MeanDurationDays  float64        `json:"mean_duration_days"`
	StdDevDays        float64        `json:"std_dev_days"`
	OnTimeProbability float64        `json:"on_time_probability"`
	CriticalTrades    []string       `json:"critical_trades"`
	Histogram         []HistogramBin `json:"histogram"`
}

// Engine runs Monte Carlo simulations. Seed zero keeps production runs
// non-deterministic; tests inject a fixed seed for reproducibility.
type Engine struct {
	Seed    int64
	Workers int
	Log     logger.Logger
}

// New returns an Engine using the given number of workers. A non-positive
// count falls back to a single worker.
func New(workers int, log logger.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{Workers: workers, Log: log}
}

// Run simulates the plan's completion-date distribution. Every (zone, wagon)
// cell gets a perturbed duration taktTime*(1+Z*variancePct) with Z drawn via
// Box-Muller; finishes cascade through the grid so a cell never completes
// before its zone and wagon predecessors. The context bounds wall-clock time.
func (e *Engine) Run(ctx context.Context, basePlan *model.Plan, iterations int, variancePct float64) (*Distribution, error) {
	if basePlan == nil {
		return nil, model.NewValidationError("missing_base_plan", "base plan is required")
	}
	nZones := len(basePlan.Zones)
	nWagons := len(basePlan.Wagons)
	if nZones == 0 || nWagons == 0 {
		return nil, model.NewValidationError("empty_plan", "plan has no zones or wagons")
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if iterations > MaxIterations {
		iterations = MaxIterations
	}

	seed := e.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > iterations {
		workers = iterations
	}

	type partial struct {
		durations []int
		critical  []int
		err       error
	}

	results := make(chan partial, workers)
	per := iterations / workers
	extra := iterations % workers

	for wk := 0; wk < workers; wk++ {
		count := per
		if wk < extra {
			count++
		}
		go func(worker, count int) {
			rng := rand.New(rand.NewSource(seed + int64(worker)))
			p := partial{
				durations: make([]int, 0, count),
				critical:  make([]int, nWagons),
			}
			for i := 0; i < count; i++ {
				if err := ctx.Err(); err != nil {
					p.err = err
					break
				}
				total, critical := simulateOnce(rng, basePlan.TaktTime, nZones, nWagons, variancePct)
				p.durations = append(p.durations, total)
				for _, w := range critical {
					p.critical[w]++
				}
			}
			results <- p
		}(wk, count)
	}

	durations := make([]int, 0, iterations)
	criticalCounts := make([]int, nWagons)
	for wk := 0; wk < workers; wk++ {
		p := <-results
		if p.err != nil {
			return nil, p.err
		}
		durations = append(durations, p.durations...)
		for i, c := range p.critical {
			criticalCounts[i] += c
		}
	}
	sort.Ints(durations)
	n := len(durations)

	// Percentiles are read by index from the sorted sample, so they are
	// monotonically non-decreasing by construction.
	p50 := durations[int(float64(n)*0.5)]
	p80 := durations[int(float64(n)*0.8)]
	p95 := durations[min(int(float64(n)*0.95), n-1)]

	sample := make([]float64, n)
	for i, d := range durations {
		sample[i] = float64(d)
	}
	mean, std := stat.MeanStdDev(sample, nil)

	baseline := deterministicDuration(basePlan.TaktTime, nZones, nWagons)
	onTime := 0
	for _, d := range durations {
		if d <= baseline {
			onTime++
		}
	}

	dist := &Distribution{
		Iterations:        n,
		P50DurationDays:   p50,
		P80DurationDays:   p80,
		P95DurationDays:   p95,
		P50EndDate:        takt.AddWorkingDays(basePlan.StartDate, p50),
		P80EndDate:        takt.AddWorkingDays(basePlan.StartDate, p80),
		P95EndDate:        takt.AddWorkingDays(basePlan.StartDate, p95),
		MeanDurationDays:  mean,
		StdDevDays:        std,
		OnTimeProbability: float64(onTime) / float64(n),
		CriticalTrades:    criticalTrades(basePlan.Wagons, criticalCounts, n),
		Histogram:         buildHistogram(durations),
	}
	if e.Log != nil {
		e.Log.Debugw("monte carlo finished", map[string]any{
			"iterations": n,
			"p50":        p50,
			"p95":        p95,
			"on_time":    dist.OnTimeProbability,
		})
	}
	return dist, nil
}

// simulateOnce runs one forward pass through the grid and returns the total
// duration plus the wagons on the critical path.
func simulateOnce(rng *rand.Rand, taktTime, nZones, nWagons int, variancePct float64) (int, []int) {
	finish := make([][]int, nWagons)
	// fromWagon[w][z] records whether the binding predecessor was the wagon
	// above rather than the previous zone, for the backward trace.
	fromWagon := make([][]bool, nWagons)
	for w := range finish {
		finish[w] = make([]int, nZones)
		fromWagon[w] = make([]bool, nZones)
	}

	total := 0
	for w := 0; w < nWagons; w++ {
		for z := 0; z < nZones; z++ {
			prevZone := 0
			if z > 0 {
				prevZone = finish[w][z-1]
			}
			prevWagon := 0
			if w > 0 {
				prevWagon = finish[w-1][z]
			}
			running := prevZone
			if prevWagon > running {
				running = prevWagon
				fromWagon[w][z] = true
			}
			nominalStart := (z + w) * taktTime
			if nominalStart > running {
				running = nominalStart
			}
			dur := perturbedDuration(rng, taktTime, variancePct)
			finish[w][z] = running + dur
			if finish[w][z] > total {
				total = finish[w][z]
			}
		}
	}

	// Backward trace from the last cell to mark critical wagons.
	var critical []int
	seen := make(map[int]bool)
	w, z := nWagons-1, nZones-1
	for w >= 0 && z >= 0 {
		if !seen[w] {
			seen[w] = true
			critical = append(critical, w)
		}
		if w == 0 && z == 0 {
			break
		}
		switch {
		case z == 0:
			w--
		case w == 0:
			z--
		case fromWagon[w][z]:
			w--
		default:
			z--
		}
	}
	return total, critical
}

// perturbedDuration samples taktTime*(1+Z*variancePct) with Z standard
// normal via the Box-Muller transform, floored at one day.
func perturbedDuration(rng *rand.Rand, taktTime int, variancePct float64) int {
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

	d := float64(taktTime) * (1 + z*variancePct)
	if d < 1 {
		return 1
	}
	return int(math.Ceil(d))
}

// deterministicDuration is the unperturbed forward-pass total: every cell
// takes exactly one takt.
func deterministicDuration(taktTime, nZones, nWagons int) int {
	return (nZones + nWagons - 1) * taktTime
}

// criticalTrades reports trades critical in at least 30% of iterations,
// falling back to the top three contributors.
func criticalTrades(wagons []model.Wagon, counts []int, iterations int) []string {
	threshold := float64(iterations) * 0.3
	var out []string
	for i, c := range counts {
		if float64(c) >= threshold {
			out = append(out, wagons[i].TradeID)
		}
	}
	if len(out) > 0 {
		return out
	}
	idx := make([]int, len(counts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return counts[idx[a]] > counts[idx[b]] })
	for i := 0; i < len(idx) && i < 3; i++ {
		out = append(out, wagons[idx[i]].TradeID)
	}
	return out
}

func buildHistogram(sorted []int) []HistogramBin {
	if len(sorted) == 0 {
		return []HistogramBin{}
	}
	lo := float64(sorted[0])
	hi := float64(sorted[len(sorted)-1])
	width := (hi - lo) / histogramBins
	if width == 0 {
		width = 1
	}
	bins := make([]HistogramBin, histogramBins)
	for i := range bins {
		bins[i] = HistogramBin{MinDays: lo + float64(i)*width, MaxDays: lo + float64(i+1)*width}
	}
	total := len(sorted)
	for _, d := range sorted {
		i := int((float64(d) - lo) / width)
		if i >= histogramBins {
			i = histogramBins - 1
		}
		bins[i].Count++
	}
	for i := range bins {
		bins[i].Frequency = float64(bins[i].Count) / float64(total)
	}
	return bins
}
