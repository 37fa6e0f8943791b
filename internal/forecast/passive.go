package forecast

import (
	"math"
	"time"

	"networth-cli/internal/models"
)

// PassiveIncome holds estimated passive income at a target date.
type PassiveIncome struct {
	Annual  float64
	Monthly float64
	Weekly  float64
	Daily   float64
	// Worth is the combined value of the contributing assets at the target.
	Worth float64
}

// PassiveAssetValueAt computes an asset's value at an arbitrary target date
// under one scenario's net rate.
//
// Targets at or before now use the static valuation frozen at the target with
// only the events up to the target applied. Future targets start from the
// static valuation at now (events up to now applied) and compound the
// remaining span at the net annual rate, re-applying events chronologically
// between growth steps. Targets before the asset's start are worth zero.
func (e *Engine) PassiveAssetValueAt(a *models.Asset, target time.Time, s models.Scenario) float64 {
	start := StartDate(a.StartDate, a.CreatedAt, e.now)
	if target.Before(start) {
		return 0
	}

	events := e.eventsForAsset(a.ID)
	// Events dated before the asset exists never apply.
	for len(events) > 0 && events[0].Date.Before(start) {
		events = events[1:]
	}

	if !target.After(e.now) {
		value := AssetValueAt(a, target)
		for _, ev := range events {
			if ev.Date.After(target) {
				break
			}
			value = applyEvent(value, ev)
		}
		return value
	}

	// Value at now with past events applied.
	ref := e.now
	if start.After(ref) {
		ref = start
	}
	value := AssetValueAt(a, ref)
	idx := 0
	for idx < len(events) && !events[idx].Date.After(ref) {
		value = applyEvent(value, events[idx])
		idx++
	}

	// Compound across the gaps between remaining events.
	netAnnual := e.NetRate(a, s)
	for idx < len(events) && !events[idx].Date.After(target) {
		value = grow(value, netAnnual, ElapsedYears(ref, events[idx].Date))
		value = applyEvent(value, events[idx])
		ref = events[idx].Date
		idx++
	}
	return grow(value, netAnnual, ElapsedYears(ref, target))
}

// grow compounds a value at an annual percentage rate over a span of years.
func grow(value, annualRatePct, years float64) float64 {
	if years <= 0 {
		return value
	}
	return value * math.Pow(1+annualRatePct/100, years)
}

// PassiveIncomeAt estimates passive income at the target date from the
// selected assets under one scenario. A nil selection means all
// passive-eligible assets; an explicit selection is intersected with the
// currently eligible set.
func (e *Engine) PassiveIncomeAt(target time.Time, s models.Scenario, selection map[string]bool) PassiveIncome {
	var annual, worth float64
	for i := range e.snap.Assets {
		a := &e.snap.Assets[i]
		if !a.PassiveEligible() {
			continue
		}
		if selection != nil && !selection[a.ID] {
			continue
		}
		value := e.PassiveAssetValueAt(a, target, s)
		worth += value
		annual += value * e.NetRate(a, s) / 100
	}
	return PassiveIncome{
		Annual:  annual,
		Monthly: annual / 12,
		Weekly:  annual / 52,
		Daily:   annual / DaysPerYear,
		Worth:   worth,
	}
}

// SelectionSet converts a slice of asset ids into the selection form used by
// the passive estimator. A nil or empty slice yields a nil selection,
// meaning all eligible assets.
func SelectionSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
