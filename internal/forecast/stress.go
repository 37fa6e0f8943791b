package forecast

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"networth-cli/internal/models"

	"networth-cli/internal/performance"
)

// Stress test tuning. Each calendar year in the horizon has a fixed chance
// of one randomized percent shock per selected asset, with magnitude drawn
// from a clamped normal distribution.
const (
	stressEventProbability = 0.3
	stressEventStdDev      = 5.0
	stressEventClamp       = 15.0
	// Iteration counts at or above this threshold fan out over a worker
	// pool; below it the sequential path is cheaper.
	stressParallelThreshold = 64
)

// StressSample retains one iteration's inputs and outcome for display.
type StressSample struct {
	Events  []models.Event
	HitDate *time.Time
}

// StressResult aggregates a stress-test run.
type StressResult struct {
	Iterations int
	// Pct is the fraction of iterations that reached the goal, in [0, 1].
	Pct      float64
	Baseline *time.Time
	Earliest *time.Time
	Median   *time.Time
	Latest   *time.Time
	Sample   *StressSample
	HitDates []*time.Time
}

// RandomNormal draws from a normal distribution with the given mean and
// standard deviation using the Box-Muller transform over the engine's
// randomness source.
func (e *Engine) RandomNormal(mean, stdDev float64) float64 {
	return randomNormal(e.rng, mean, stdDev)
}

func randomNormal(rng *rand.Rand, mean, stdDev float64) float64 {
	var u1 float64
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stdDev*z
}

// GenerateRandomEvents produces randomized perturbation events over the
// label horizon: for each calendar year and each selected asset, with fixed
// probability, one percent event in a random month with magnitude drawn from
// a normal distribution clamped to +/- the configured bound.
func (e *Engine) GenerateRandomEvents(labels []time.Time, assetIDs map[string]bool) []models.Event {
	return generateRandomEvents(e.rng, labels, assetIDs)
}

func generateRandomEvents(rng *rand.Rand, labels []time.Time, assetIDs map[string]bool) []models.Event {
	if len(labels) == 0 {
		return nil
	}
	var events []models.Event
	years := len(labels) / 12
	for year := 0; year < years; year++ {
		for id := range assetIDs {
			if rng.Float64() >= stressEventProbability {
				continue
			}
			month := year*12 + rng.Intn(12)
			if month >= len(labels) {
				month = len(labels) - 1
			}
			amount := randomNormal(rng, 0, stressEventStdDev)
			if amount > stressEventClamp {
				amount = stressEventClamp
			} else if amount < -stressEventClamp {
				amount = -stressEventClamp
			}
			events = append(events, models.Event{
				Date:      labels[month],
				Amount:    amount,
				IsPercent: true,
				AssetID:   id,
			})
		}
	}
	return events
}

// ForecastGoalDate runs a simplified single-scenario forecast over the
// selected assets, merging the snapshot's events with extraEvents, and
// returns the first month whose cumulative value reaches the goal, or nil if
// the goal is never reached within the horizon (or no goal is set).
func (e *Engine) ForecastGoalDate(extraEvents []models.Event, s models.Scenario, assetIDs map[string]bool) *time.Time {
	if e.snap.Goal == nil || e.snap.Goal.Value <= 0 {
		return nil
	}
	// Warm the tax memo before any concurrent use.
	e.ComputeAssetTaxDetails()

	// Search past the goal horizon so crossings after the target date are
	// still reported.
	years := e.HorizonYears()
	if years < DefaultHorizonYears {
		years = DefaultHorizonYears
	}
	months := years * 12
	labels := make([]time.Time, months+1)
	for i := 0; i <= months; i++ {
		labels[i] = AddMonthsClamped(e.now, i)
	}

	total := make([]float64, months+1)
	for i := range e.snap.Assets {
		a := &e.snap.Assets[i]
		if assetIDs != nil && !assetIDs[a.ID] {
			continue
		}
		events := mergeAssetEvents(e.eventsForAsset(a.ID), extraEvents, a.ID)
		values := projectAssetSeries(a, labels, e.NetRate(a, s), events, e.now)
		addInto(total, values)
	}

	for _, ev := range sortEvents(filterEvents(extraEvents, func(ev models.Event) bool { return ev.AssetID == "" })) {
		applyGlobalEventTo(total, labels, ev)
	}
	for _, ev := range e.globalEvents() {
		applyGlobalEventTo(total, labels, ev)
	}

	for i, v := range total {
		if v >= e.snap.Goal.Value {
			hit := labels[i]
			return &hit
		}
	}
	return nil
}

// RunStressTest runs the goal forecast repeatedly under fresh random
// perturbations and aggregates the distribution of goal-achievement dates.
// The first iteration's events and hit date are retained as a representative
// sample. Zero iterations return the defined empty result, not a crash.
func (e *Engine) RunStressTest(iterations int, s models.Scenario, assetIDs map[string]bool) *StressResult {
	result := &StressResult{
		Iterations: iterations,
		Baseline:   e.ForecastGoalDate(nil, s, assetIDs),
	}
	if iterations <= 0 {
		return result
	}

	months := e.HorizonYears() * 12
	labels := make([]time.Time, months+1)
	for i := 0; i <= months; i++ {
		labels[i] = AddMonthsClamped(e.now, i)
	}

	// Draw per-iteration seeds sequentially so results are reproducible for
	// a given engine seed regardless of scheduling.
	seeds := make([]int64, iterations)
	for i := range seeds {
		seeds[i] = e.rng.Int63()
	}

	hits := make([]*time.Time, iterations)
	samples := make([]*StressSample, iterations)

	run := func(i int) {
		rng := rand.New(rand.NewSource(seeds[i]))
		events := generateRandomEvents(rng, labels, assetIDs)
		hit := e.ForecastGoalDate(events, s, assetIDs)
		hits[i] = hit
		if i == 0 {
			samples[i] = &StressSample{Events: events, HitDate: hit}
		}
	}

	if iterations >= stressParallelThreshold {
		pool := performance.NewWorkerPool(0)
		pool.Start()
		var wg sync.WaitGroup
		for i := 0; i < iterations; i++ {
			i := i
			wg.Add(1)
			if !pool.Submit(func() {
				defer wg.Done()
				run(i)
			}) {
				run(i)
				wg.Done()
			}
		}
		wg.Wait()
		pool.Stop()
	} else {
		for i := 0; i < iterations; i++ {
			run(i)
		}
	}

	result.HitDates = hits
	result.Sample = samples[0]

	var reached []time.Time
	for _, h := range hits {
		if h != nil {
			reached = append(reached, *h)
		}
	}
	result.Pct = float64(len(reached)) / float64(iterations)
	if len(reached) > 0 {
		sort.Slice(reached, func(i, j int) bool { return reached[i].Before(reached[j]) })
		earliest := reached[0]
		latest := reached[len(reached)-1]
		// Lower-median indexing (floor(n/2)) for even counts, preserved
		// for compatibility with the established behavior.
		median := reached[medianIndex(len(reached))]
		result.Earliest = &earliest
		result.Median = &median
		result.Latest = &latest
	}
	return result
}

// medianIndex returns the lower-median index floor(n/2) into a sorted slice.
func medianIndex(n int) int {
	return n / 2
}

// mergeAssetEvents combines an asset's own sorted events with the extra
// events targeting it, re-sorting by date with insertion order kept for ties.
func mergeAssetEvents(own, extra []models.Event, assetID string) []models.Event {
	merged := make([]models.Event, 0, len(own)+len(extra))
	merged = append(merged, own...)
	for _, ev := range extra {
		if ev.AssetID == assetID {
			merged = append(merged, ev)
		}
	}
	return sortEvents(merged)
}

// projectAssetSeries is the engine-independent asset projector used by both
// the scenario builder and the goal forecaster.
func projectAssetSeries(a *models.Asset, labels []time.Time, netAnnualRate float64, events []models.Event, now time.Time) []float64 {
	values := make([]float64, len(labels))
	start := StartDate(a.StartDate, a.CreatedAt, now)
	monthlyRate := netAnnualRate / 100 / 12
	monthlyDeposit := a.OriginalDeposit * a.DepositFrequency.PeriodsPerYear() / 12

	active := false
	eventIdx := 0
	var value float64
	for i, label := range labels {
		if label.Before(start) {
			for eventIdx < len(events) && !events[eventIdx].Date.After(label) {
				eventIdx++
			}
			continue
		}
		if !active {
			active = true
			value = a.Value
		}
		for eventIdx < len(events) && !events[eventIdx].Date.After(label) {
			value = applyEvent(value, events[eventIdx])
			eventIdx++
		}
		values[i] = value
		value = value*(1+monthlyRate) + monthlyDeposit
	}
	return values
}

// applyGlobalEventTo applies a global event to one aggregate series as a
// permanent step from the first month at or after the event date.
func applyGlobalEventTo(series []float64, labels []time.Time, ev models.Event) {
	for i, label := range labels {
		if !label.Before(ev.Date) {
			for j := i; j < len(series); j++ {
				series[j] = applyEvent(series[j], ev)
			}
			return
		}
	}
}
