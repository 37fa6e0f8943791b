package forecast

import (
	"math"
	"testing"

	"networth-cli/internal/models"
)

func TestFireNumberExamples(t *testing.T) {
	testCases := []struct {
		name     string
		expenses float64
		rate     float64
		expected float64
	}{
		{"classic 4 percent", 30000, 4, 750000},
		{"conservative", 30000, 3, 1000000},
		{"zero rate", 30000, 0, 0},
		{"negative rate", 30000, -1, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FireNumber(tc.expenses, tc.rate); math.Abs(got-tc.expected) > 1e-6 {
				t.Errorf("FireNumber(%v, %v) = %v, want %v", tc.expenses, tc.rate, got, tc.expected)
			}
		})
	}
}

func TestFireProgressClamping(t *testing.T) {
	clamped, raw := FireProgress(500000, 1000000)
	if clamped != 50 || raw != 50 {
		t.Errorf("FireProgress(500k, 1m) = %v/%v, want 50/50", clamped, raw)
	}

	// Over target: display clamps at 100 but the raw ratio is preserved.
	clamped, raw = FireProgress(1500000, 1000000)
	if clamped != 100 {
		t.Errorf("clamped = %v, want 100", clamped)
	}
	if raw != 150 {
		t.Errorf("raw = %v, want 150", raw)
	}

	if clamped, _ := FireProgress(-100, 1000000); clamped != 0 {
		t.Errorf("negative net worth clamped = %v, want 0", clamped)
	}
	if clamped, raw := FireProgress(500000, 0); clamped != 0 || raw != 0 {
		t.Errorf("zero fire number = %v/%v, want 0/0", clamped, raw)
	}
}

func TestPassiveCoverageFindsCrossing(t *testing.T) {
	snap := &models.Snapshot{
		Assets: []models.Asset{{
			ID:               "isa",
			Value:            200000,
			StartDate:        testNow.AddDate(-2, 0, 0),
			OriginalDeposit:  2000,
			DepositFrequency: models.FrequencyMonthly,
			Return:           6,
		}},
	}
	e := newTestEngine(snap)
	coverage := e.PassiveCoverage(20000, 2.5, nil)

	flat := coverage.WithoutInflation[models.ScenarioBase]
	inflated := coverage.WithInflation[models.ScenarioBase]
	if flat == nil {
		t.Fatal("flat-cost coverage never reached")
	}
	if inflated == nil {
		t.Fatal("inflation-adjusted coverage never reached")
	}
	// Inflation only makes the target harder.
	if inflated.Before(*flat) {
		t.Errorf("inflated coverage %v before flat coverage %v", inflated, flat)
	}
}

func TestPassiveCoverageZeroCost(t *testing.T) {
	e := newTestEngine(passiveSnapshot())
	coverage := e.PassiveCoverage(0, 2.5, nil)
	if len(coverage.WithInflation) != 0 || len(coverage.WithoutInflation) != 0 {
		t.Error("zero living cost should yield no coverage dates")
	}
}

func TestPassiveCoverageRespectsRetirementCutoff(t *testing.T) {
	snap := &models.Snapshot{
		Assets: []models.Asset{{
			ID:        "isa",
			Value:     1000000,
			StartDate: testNow.AddDate(-2, 0, 0),
			Return:    6,
		}},
	}
	e := newTestEngine(snap)

	// Income covers the cost immediately, but the cutoff defers the date.
	retirement := testNow.AddDate(5, 0, 0)
	coverage := e.PassiveCoverage(10000, 0, &retirement)
	got := coverage.WithoutInflation[models.ScenarioBase]
	if got == nil {
		t.Fatal("coverage never reached")
	}
	if got.Before(retirement) {
		t.Errorf("coverage %v precedes retirement cutoff %v", got, retirement)
	}
}
