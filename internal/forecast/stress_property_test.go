package forecast

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"networth-cli/internal/models"
)

func stressSnapshot(goalValue float64) *models.Snapshot {
	return &models.Snapshot{
		Assets: []models.Asset{{
			ID:               "a1",
			Name:             "Portfolio",
			Value:            100000,
			StartDate:        testNow.AddDate(-1, 0, 0),
			OriginalDeposit:  1000,
			DepositFrequency: models.FrequencyMonthly,
			Return:           6,
			LowGrowth:        floatPtr(2),
			HighGrowth:       floatPtr(10),
		}},
		Goal: &models.Goal{Value: goalValue, TargetDate: testNow.AddDate(15, 0, 0)},
	}
}

// Zero iterations return the defined empty result rather than crashing.
func TestStressTestZeroIterations(t *testing.T) {
	e := newTestEngine(stressSnapshot(200000))
	result := e.RunStressTest(0, models.ScenarioBase, nil)

	if result.Iterations != 0 {
		t.Errorf("iterations = %d, want 0", result.Iterations)
	}
	if result.Pct != 0 {
		t.Errorf("pct = %v, want 0", result.Pct)
	}
	if result.Earliest != nil || result.Median != nil || result.Latest != nil {
		t.Error("zero-iteration run produced distribution dates")
	}
	if result.Baseline == nil {
		t.Error("baseline goal date missing")
	}
}

// A fixed seed reproduces the run exactly.
func TestStressTestReproducible(t *testing.T) {
	run := func() *StressResult {
		e := New(stressSnapshot(200000), WithNow(testNow), WithSeed(42))
		return e.RunStressTest(20, models.ScenarioBase, nil)
	}
	a, b := run(), run()

	if a.Pct != b.Pct {
		t.Errorf("pct differs across identical seeds: %v vs %v", a.Pct, b.Pct)
	}
	for i := range a.HitDates {
		if (a.HitDates[i] == nil) != (b.HitDates[i] == nil) {
			t.Fatalf("hit %d presence differs", i)
		}
		if a.HitDates[i] != nil && !a.HitDates[i].Equal(*b.HitDates[i]) {
			t.Fatalf("hit %d differs: %v vs %v", i, a.HitDates[i], b.HitDates[i])
		}
	}
}

// The distribution dates come from the hits: earliest <= median <= latest,
// and Pct equals the fraction of non-nil hits.
func TestStressTestDistribution(t *testing.T) {
	e := New(stressSnapshot(200000), WithNow(testNow), WithSeed(7))
	result := e.RunStressTest(50, models.ScenarioBase, nil)

	reached := 0
	for _, h := range result.HitDates {
		if h != nil {
			reached++
		}
	}
	if want := float64(reached) / 50; math.Abs(result.Pct-want) > 1e-9 {
		t.Errorf("pct = %v, want %v", result.Pct, want)
	}
	if reached > 0 {
		if result.Earliest == nil || result.Median == nil || result.Latest == nil {
			t.Fatal("missing distribution dates despite hits")
		}
		if result.Earliest.After(*result.Median) || result.Median.After(*result.Latest) {
			t.Errorf("distribution out of order: %v / %v / %v",
				result.Earliest, result.Median, result.Latest)
		}
	}
	if result.Sample == nil {
		t.Error("sample iteration missing")
	}
}

// Generated shocks stay within the configured clamp and only hit the
// selected assets.
func TestGenerateRandomEvents(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("shocks are clamped percent events on selected assets", prop.ForAll(
		func(seed int64, years int) bool {
			rng := rand.New(rand.NewSource(seed))
			labels := make([]time.Time, years*12+1)
			for i := range labels {
				labels[i] = AddMonthsClamped(testNow, i)
			}
			selected := map[string]bool{"a1": true, "a2": true}
			events := generateRandomEvents(rng, labels, selected)

			for _, ev := range events {
				if !ev.IsPercent {
					t.Log("non-percent shock generated")
					return false
				}
				if math.Abs(ev.Amount) > stressEventClamp {
					t.Logf("shock %v exceeds clamp", ev.Amount)
					return false
				}
				if !selected[ev.AssetID] {
					t.Logf("shock targets unselected asset %q", ev.AssetID)
					return false
				}
			}
			// At most one shock per asset per year.
			if len(events) > years*len(selected) {
				t.Logf("%d shocks for %d asset-years", len(events), years*len(selected))
				return false
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

// Box-Muller output has roughly the requested mean and spread.
func TestRandomNormalMoments(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := randomNormal(rng, 0, 5)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	stdDev := math.Sqrt(sumSq/n - mean*mean)

	if math.Abs(mean) > 0.2 {
		t.Errorf("sample mean = %v, want ~0", mean)
	}
	if math.Abs(stdDev-5) > 0.2 {
		t.Errorf("sample stddev = %v, want ~5", stdDev)
	}
}

// A higher growth scenario never reaches the goal later than a lower one.
func TestGoalDateScenarioOrdering(t *testing.T) {
	e := newTestEngine(stressSnapshot(200000))

	lowHit := e.ForecastGoalDate(nil, models.ScenarioLow, nil)
	highHit := e.ForecastGoalDate(nil, models.ScenarioHigh, nil)

	if highHit == nil && lowHit != nil {
		t.Fatal("goal reached under low growth but not high")
	}
	if highHit != nil && lowHit != nil && highHit.After(*lowHit) {
		t.Errorf("high scenario hit %v after low scenario hit %v", highHit, lowHit)
	}
}

// The goal-date search runs past the goal's own target date, so a crossing
// that happens after the target is still reported rather than lost to the
// goal-derived horizon.
func TestGoalDateFoundBeyondTargetDate(t *testing.T) {
	snap := &models.Snapshot{
		Assets: []models.Asset{{
			ID:         "a1",
			Value:      10000,
			StartDate:  testNow.AddDate(-1, 0, 0),
			Return:     2,
			LowGrowth:  floatPtr(0),
			HighGrowth: floatPtr(8),
		}},
		Goal: &models.Goal{Value: 12000, TargetDate: testNow.AddDate(2, 0, 0)},
	}
	e := newTestEngine(snap)

	// 10000 at 8%/yr compounded monthly crosses 12000 in month 28,
	// four months after the two-year target.
	hit := e.ForecastGoalDate(nil, models.ScenarioHigh, map[string]bool{"a1": true})
	if hit == nil {
		t.Fatal("high scenario never reached the goal")
	}
	if want := AddMonthsClamped(testNow, 28); !hit.Equal(want) {
		t.Errorf("high scenario hit %v, want %v", hit, want)
	}
	if !hit.After(snap.Goal.TargetDate) {
		t.Errorf("hit %v should fall after the goal target %v", hit, snap.Goal.TargetDate)
	}

	// Zero growth never reaches it.
	if low := e.ForecastGoalDate(nil, models.ScenarioLow, map[string]bool{"a1": true}); low != nil {
		t.Errorf("low scenario hit %v, want none", low)
	}
}

// No goal means no goal date.
func TestGoalDateWithoutGoal(t *testing.T) {
	snap := stressSnapshot(200000)
	snap.Goal = nil
	e := newTestEngine(snap)
	if hit := e.ForecastGoalDate(nil, models.ScenarioBase, nil); hit != nil {
		t.Errorf("goal date %v without a goal", hit)
	}
}

// The lower median is used for even hit counts.
func TestMedianIndex(t *testing.T) {
	testCases := []struct{ n, want int }{
		{1, 0}, {2, 1}, {3, 1}, {4, 2}, {5, 2}, {10, 5},
	}
	for _, tc := range testCases {
		if got := medianIndex(tc.n); got != tc.want {
			t.Errorf("medianIndex(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
