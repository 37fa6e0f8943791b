package forecast

import (
	"math"
	"time"

	"networth-cli/internal/models"
)

// FireNumber returns the safe-withdrawal-rate target: annual expenses
// divided by the withdrawal rate. Non-positive rates yield zero.
func FireNumber(annualExpenses, withdrawalRatePct float64) float64 {
	if withdrawalRatePct <= 0 {
		return 0
	}
	return annualExpenses / (withdrawalRatePct / 100)
}

// FireProgress returns progress toward the FIRE number: the display value
// clamped to [0, 100] and the unclamped ratio that determines
// ahead-of-target status.
func FireProgress(netWorth, fireNumber float64) (clamped, raw float64) {
	if fireNumber <= 0 {
		return 0, 0
	}
	raw = netWorth / fireNumber * 100
	clamped = raw
	if clamped < 0 {
		clamped = 0
	} else if clamped > 100 {
		clamped = 100
	}
	return clamped, raw
}

// CoverageDates holds, per scenario, the first month where passive income
// covers living costs. The inflation-adjusted and flat-cost dates are
// computed independently, not derived from one another.
type CoverageDates struct {
	WithInflation    map[models.Scenario]*time.Time
	WithoutInflation map[models.Scenario]*time.Time
}

// PassiveCoverage finds, for each scenario, the first future month at which
// annual passive income meets the living cost. Costs inflate by the annual
// inflation rate from now; the no-inflation variant checks the unadjusted
// cost. An optional retirement cutoff skips months before it.
func (e *Engine) PassiveCoverage(annualLivingCost, inflationPct float64, retirement *time.Time) CoverageDates {
	result := CoverageDates{
		WithInflation:    make(map[models.Scenario]*time.Time),
		WithoutInflation: make(map[models.Scenario]*time.Time),
	}
	if annualLivingCost <= 0 {
		return result
	}

	set := e.BuildScenarios(0, Options{PassiveOnly: true})
	selection := SelectionSet(e.snap.PassiveSelection)

	for _, s := range models.Scenarios {
		result.WithInflation[s] = e.coverageDate(set, s, selection, annualLivingCost, inflationPct, retirement)
		result.WithoutInflation[s] = e.coverageDate(set, s, selection, annualLivingCost, 0, retirement)
	}
	return result
}

// coverageDate scans the passive forecast for the first month where income
// meets the (possibly inflation-adjusted) cost.
func (e *Engine) coverageDate(set *ScenarioSet, s models.Scenario, selection map[string]bool, annualCost, inflationPct float64, retirement *time.Time) *time.Time {
	for i, label := range set.Labels {
		if retirement != nil && label.Before(*retirement) {
			continue
		}
		income := e.passiveIncomeAtMonth(set, s, selection, i)
		cost := annualCost
		if inflationPct != 0 {
			cost = annualCost * math.Pow(1+inflationPct/100, ElapsedYears(e.now, label))
		}
		if income >= cost {
			hit := label
			return &hit
		}
	}
	return nil
}

// passiveIncomeAtMonth sums income from the per-asset series at one month
// index: each asset's projected value times its net rate.
func (e *Engine) passiveIncomeAtMonth(set *ScenarioSet, s models.Scenario, selection map[string]bool, month int) float64 {
	var annual float64
	for i := range e.snap.Assets {
		a := &e.snap.Assets[i]
		if !a.PassiveEligible() {
			continue
		}
		if selection != nil && !selection[a.ID] {
			continue
		}
		series, ok := set.AssetSeries[a.ID]
		if !ok {
			continue
		}
		values := series.Series(s)
		if month >= len(values) {
			continue
		}
		annual += values[month] * e.NetRate(a, s) / 100
	}
	return annual
}
