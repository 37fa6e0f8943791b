package forecast

import (
	"math"
	"time"

	"networth-cli/internal/models"
)

// Options controls a forecast run.
type Options struct {
	// PassiveOnly restricts the run to passive-eligible assets and skips
	// liabilities, for passive-income and FIRE views.
	PassiveOnly bool
	// IncludeBreakdown adds per-asset series and tax detail to the result.
	IncludeBreakdown bool
}

// ScenarioSeries holds one item's monthly values under all three scenarios.
type ScenarioSeries struct {
	Low  []float64
	Base []float64
	High []float64
}

// Series returns the slice for a scenario.
func (ss *ScenarioSeries) Series(s models.Scenario) []float64 {
	switch s {
	case models.ScenarioLow:
		return ss.Low
	case models.ScenarioHigh:
		return ss.High
	default:
		return ss.Base
	}
}

// AssetDetail is the per-asset breakdown attached to a forecast when
// requested: the asset's own scenario series plus its rates and tax outcome.
type AssetDetail struct {
	Asset      *models.Asset
	Series     ScenarioSeries
	GrossRates map[models.Scenario]float64
	NetRates   map[models.Scenario]float64
	Tax        *AssetTaxDetail
}

// ScenarioSet is the result of a forecast run: one aggregate point per month
// for each growth scenario, plus the per-item series the run produced along
// the way so other views can reuse them without recomputation.
type ScenarioSet struct {
	Labels []time.Time
	Low    []float64
	Base   []float64
	High   []float64

	// CurrentBaseline is the present-day net worth (or passive worth for
	// passive-only runs), computed consistently with the series.
	CurrentBaseline float64
	// MinSeriesValue is the smallest value across all three series, for
	// chart axis scaling.
	MinSeriesValue float64

	AssetDetails    []AssetDetail              // only when IncludeBreakdown
	AssetSeries     map[string]*ScenarioSeries // keyed by asset id
	LiabilitySeries map[string][]float64       // keyed by liability id
}

// BuildScenarios produces monthly low/base/high projections over the given
// horizon. A non-positive years argument falls back to the goal horizon.
// Labels has years*12+1 entries, one per month boundary starting at now.
//
// The result of a full (non-passive) run is cached on the engine for reuse by
// detail views; Invalidate discards it.
func (e *Engine) BuildScenarios(years int, opts Options) *ScenarioSet {
	if years <= 0 {
		years = e.HorizonYears()
	}
	months := years * 12

	set := &ScenarioSet{
		Labels:          make([]time.Time, months+1),
		Low:             make([]float64, months+1),
		Base:            make([]float64, months+1),
		High:            make([]float64, months+1),
		AssetSeries:     make(map[string]*ScenarioSeries),
		LiabilitySeries: make(map[string][]float64),
	}
	for i := 0; i <= months; i++ {
		set.Labels[i] = AddMonthsClamped(e.now, i)
	}

	taxDetails := e.ComputeAssetTaxDetails()

	for i := range e.snap.Assets {
		a := &e.snap.Assets[i]
		if opts.PassiveOnly && !a.PassiveEligible() {
			continue
		}
		series := &ScenarioSeries{}
		for _, s := range models.Scenarios {
			values := e.projectAsset(a, set.Labels, e.NetRate(a, s))
			switch s {
			case models.ScenarioLow:
				series.Low = values
			case models.ScenarioBase:
				series.Base = values
			case models.ScenarioHigh:
				series.High = values
			}
		}
		set.AssetSeries[a.ID] = series
		addInto(set.Low, series.Low)
		addInto(set.Base, series.Base)
		addInto(set.High, series.High)

		if opts.IncludeBreakdown {
			detail := AssetDetail{
				Asset:      a,
				Series:     *series,
				GrossRates: make(map[models.Scenario]float64),
				NetRates:   make(map[models.Scenario]float64),
				Tax:        taxDetails.Details[a.ID],
			}
			for _, s := range models.Scenarios {
				detail.GrossRates[s] = a.GrowthRate(s)
				detail.NetRates[s] = e.NetRate(a, s)
			}
			set.AssetDetails = append(set.AssetDetails, detail)
		}
	}

	if !opts.PassiveOnly {
		for i := range e.snap.Liabilities {
			l := &e.snap.Liabilities[i]
			balances := e.projectLiability(l, set.Labels)
			set.LiabilitySeries[l.ID] = balances
			subInto(set.Low, balances)
			subInto(set.Base, balances)
			subInto(set.High, balances)
		}
	}

	e.applyGlobalEvents(set)

	if opts.PassiveOnly {
		set.CurrentBaseline = e.PassiveWorth(nil)
	} else {
		set.CurrentBaseline = e.NetWorth()
	}
	set.MinSeriesValue = minOf(set.Low, set.Base, set.High)

	if !opts.PassiveOnly {
		e.lastForecast = set
	}
	return set
}

// projectAsset iterates an asset month by month under one net annual rate.
// Inactive months record zero. On activation the value seeds with the
// asset's principal; each subsequent month applies the events due in the
// period (in event-array order), records the value, then grows it and adds
// the monthly deposit. Events dated before activation are skipped.
func (e *Engine) projectAsset(a *models.Asset, labels []time.Time, netAnnualRate float64) []float64 {
	return projectAssetSeries(a, labels, netAnnualRate, e.eventsForAsset(a.ID), e.now)
}

// projectLiability iterates a liability's balance month by month. The single
// stored interest rate applies in every scenario.
func (e *Engine) projectLiability(l *models.Liability, labels []time.Time) []float64 {
	balances := make([]float64, len(labels))
	start := StartDate(l.StartDate, l.CreatedAt, e.now)
	monthlyRate := l.InterestRate / 100 / 12

	active := false
	var balance float64
	for i, label := range labels {
		if label.Before(start) {
			continue
		}
		if !active {
			active = true
			balance = LiabilityBalanceAt(l, e.now)
			if label.After(e.now) {
				balance = l.Value
			}
		}
		balances[i] = balance
		balance *= 1 + monthlyRate
		balance -= l.MonthlyPayment
		if balance < 0 {
			balance = 0
		}
	}
	return balances
}

// applyGlobalEvents applies non-asset-targeted events to the aggregate
// series: at the first month whose date is on or after the event date,
// percent events multiply all subsequent months and absolute events add a
// permanent step.
func (e *Engine) applyGlobalEvents(set *ScenarioSet) {
	for _, ev := range e.globalEvents() {
		idx := -1
		for i, label := range set.Labels {
			if !label.Before(ev.Date) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		for _, series := range [][]float64{set.Low, set.Base, set.High} {
			for i := idx; i < len(series); i++ {
				series[i] = applyEvent(series[i], ev)
			}
		}
	}
}

// applyEvent applies a single event to a value.
func applyEvent(value float64, ev models.Event) float64 {
	if ev.IsPercent {
		return value * (1 + ev.Amount/100)
	}
	return value + ev.Amount
}

func addInto(dst, src []float64) {
	for i := range src {
		dst[i] += src[i]
	}
}

func subInto(dst, src []float64) {
	for i := range src {
		dst[i] -= src[i]
	}
}

func minOf(series ...[]float64) float64 {
	min := math.Inf(1)
	for _, s := range series {
		for _, v := range s {
			if v < min {
				min = v
			}
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}
