package forecast

import (
	"networth-cli/internal/models"
)

// BandRates holds the tax rates (annual percentages) for one UK tax band.
type BandRates struct {
	Income       float64
	Dividend     float64
	CapitalGains float64
}

// bandTable maps each band to its rates.
var bandTable = map[models.TaxBand]BandRates{
	models.BandBasic:      {Income: 20, Dividend: 8.75, CapitalGains: 10},
	models.BandHigher:     {Income: 40, Dividend: 33.75, CapitalGains: 20},
	models.BandAdditional: {Income: 45, Dividend: 39.35, CapitalGains: 20},
}

// RatesForBand returns the rate table for a band, defaulting to basic.
func RatesForBand(band models.TaxBand) BandRates {
	if r, ok := bandTable[band]; ok {
		return r
	}
	return bandTable[models.BandBasic]
}

// rateForTreatment picks the band rate that applies to a treatment.
// Tax-free returns zero.
func rateForTreatment(rates BandRates, t models.TaxTreatment) float64 {
	switch t {
	case models.TreatmentIncome:
		return rates.Income
	case models.TreatmentDividend:
		return rates.Dividend
	case models.TreatmentCapitalGains:
		return rates.CapitalGains
	default:
		return 0
	}
}

// allowanceForTreatment picks the allowance pool size for a treatment.
func allowanceForTreatment(tax models.TaxSettings, t models.TaxTreatment) float64 {
	switch t {
	case models.TreatmentIncome:
		return tax.IncomeAllowance
	case models.TreatmentDividend:
		return tax.DividendAllowance
	case models.TreatmentCapitalGains:
		return tax.CapitalAllowance
	default:
		return 0
	}
}

// ScenarioTax holds one asset's tax outcome under one growth scenario.
type ScenarioTax struct {
	GrossRate     float64 // annual %, before tax
	NetRate       float64 // annual %, after tax
	GrossAmount   float64 // currency, one year of gross return
	TaxableAmount float64 // currency, portion above the apportioned allowance
	TaxDue        float64 // currency
}

// AssetTaxDetail holds an asset's tax outcome across all three scenarios.
type AssetTaxDetail struct {
	AssetID   string
	Treatment models.TaxTreatment
	Scenarios map[models.Scenario]ScenarioTax
}

// TaxComputation is the memoized result of ComputeAssetTaxDetails.
type TaxComputation struct {
	Details map[string]*AssetTaxDetail // keyed by asset id
}

// ComputeAssetTaxDetails derives per-asset net rates for every scenario.
//
// Allowances apply once per taxpayer per pool, not per asset, so when several
// assets share a treatment the pool's taxable ratio
// max(0, total-allowance)/total is apportioned across them in proportion to
// their gross return. Assets with non-positive gross return are excluded from
// the pool sum and owe nothing in that scenario.
//
// The result is memoized on the engine; Invalidate discards it.
func (e *Engine) ComputeAssetTaxDetails() *TaxComputation {
	if e.taxCache != nil {
		return e.taxCache
	}

	rates := RatesForBand(e.snap.Tax.Band)
	comp := &TaxComputation{Details: make(map[string]*AssetTaxDetail)}
	for i := range e.snap.Assets {
		a := &e.snap.Assets[i]
		comp.Details[a.ID] = &AssetTaxDetail{
			AssetID:   a.ID,
			Treatment: a.TaxTreatment,
			Scenarios: make(map[models.Scenario]ScenarioTax),
		}
	}

	for _, s := range models.Scenarios {
		// Sum gross returns per allowance pool.
		poolTotals := make(map[models.TaxTreatment]float64)
		grossAmounts := make(map[string]float64)
		for i := range e.snap.Assets {
			a := &e.snap.Assets[i]
			base := e.CurrentValue(a)
			gross := base * a.GrowthRate(s) / 100
			grossAmounts[a.ID] = gross
			if gross > 0 && a.TaxTreatment != models.TreatmentTaxFree {
				poolTotals[a.TaxTreatment] += gross
			}
		}

		// Taxable ratio per pool, clamped to [0, 1].
		poolRatios := make(map[models.TaxTreatment]float64)
		for treatment, total := range poolTotals {
			if total <= 0 {
				continue
			}
			allowance := allowanceForTreatment(e.snap.Tax, treatment)
			ratio := (total - allowance) / total
			if ratio < 0 {
				ratio = 0
			} else if ratio > 1 {
				ratio = 1
			}
			poolRatios[treatment] = ratio
		}

		for i := range e.snap.Assets {
			a := &e.snap.Assets[i]
			grossRate := a.GrowthRate(s)
			gross := grossAmounts[a.ID]
			st := ScenarioTax{GrossRate: grossRate, NetRate: grossRate, GrossAmount: gross}

			if a.TaxTreatment != models.TreatmentTaxFree && gross > 0 {
				st.TaxableAmount = gross * poolRatios[a.TaxTreatment]
				st.TaxDue = st.TaxableAmount * rateForTreatment(rates, a.TaxTreatment) / 100
				if base := e.CurrentValue(a); base > 0 {
					st.NetRate = (gross - st.TaxDue) / base * 100
				}
			}
			comp.Details[a.ID].Scenarios[s] = st
		}
	}

	e.taxCache = comp
	return comp
}

// NetRate returns an asset's tax-adjusted annual rate for a scenario.
// Assets unknown to the snapshot fall back to their gross rate.
func (e *Engine) NetRate(a *models.Asset, s models.Scenario) float64 {
	comp := e.ComputeAssetTaxDetails()
	if d, ok := comp.Details[a.ID]; ok {
		return d.Scenarios[s].NetRate
	}
	return a.GrowthRate(s)
}

// GrossRate returns an asset's annual gross rate for a scenario.
func GrossRate(a *models.Asset, s models.Scenario) float64 {
	return a.GrowthRate(s)
}
