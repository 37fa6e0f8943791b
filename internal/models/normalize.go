package models

import "time"

// Normalization entry points used when loading profiles from the store or
// from an import document. All of them fail soft: unknown enum values fall
// back to a documented default and non-finite numbers become zero, so a
// partially invalid profile still renders a forecast.

// NormalizeTaxTreatment maps arbitrary input to a known treatment,
// defaulting to tax-free.
func NormalizeTaxTreatment(s string) TaxTreatment {
	switch TaxTreatment(s) {
	case TreatmentIncome, TreatmentDividend, TreatmentCapitalGains:
		return TaxTreatment(s)
	default:
		return TreatmentTaxFree
	}
}

// NormalizeTaxBand maps arbitrary input to a known band, defaulting to basic.
func NormalizeTaxBand(s string) TaxBand {
	switch TaxBand(s) {
	case BandHigher, BandAdditional:
		return TaxBand(s)
	default:
		return BandBasic
	}
}

// NormalizeFrequency maps arbitrary input to a known deposit frequency,
// defaulting to none.
func NormalizeFrequency(s string) DepositFrequency {
	switch DepositFrequency(s) {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return DepositFrequency(s)
	default:
		return FrequencyNone
	}
}

// NormalizeScenario maps arbitrary input to a known scenario, defaulting
// to base.
func NormalizeScenario(s string) Scenario {
	switch Scenario(s) {
	case ScenarioLow, ScenarioHigh:
		return Scenario(s)
	default:
		return ScenarioBase
	}
}

// NormalizeAsset sanitizes an asset in place and returns it.
func NormalizeAsset(a *Asset) *Asset {
	if a.ID == "" {
		a.ID = NewID()
	}
	a.Value = SafeNumber(a.Value)
	a.OriginalDeposit = SafeNumber(a.OriginalDeposit)
	a.Return = SafeNumber(a.Return)
	if a.LowGrowth != nil {
		v := SafeNumber(*a.LowGrowth)
		a.LowGrowth = &v
	}
	if a.HighGrowth != nil {
		v := SafeNumber(*a.HighGrowth)
		a.HighGrowth = &v
	}
	a.DepositFrequency = NormalizeFrequency(string(a.DepositFrequency))
	a.TaxTreatment = NormalizeTaxTreatment(string(a.TaxTreatment))
	if a.DepositDay < 1 || a.DepositDay > 31 {
		a.DepositDay = 1
	}
	return a
}

// NormalizeLiability sanitizes a liability in place and returns it.
func NormalizeLiability(l *Liability) *Liability {
	if l.ID == "" {
		l.ID = NewID()
	}
	l.Value = SafeNumber(l.Value)
	l.InterestRate = SafeNumber(l.InterestRate)
	l.MonthlyPayment = SafeNumber(l.MonthlyPayment)
	return l
}

// NormalizeEvent sanitizes an event in place and returns it.
func NormalizeEvent(e *Event) *Event {
	e.Amount = SafeNumber(e.Amount)
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return e
}

// NormalizeTaxSettings sanitizes tax settings in place and returns them.
func NormalizeTaxSettings(t *TaxSettings) *TaxSettings {
	t.Band = NormalizeTaxBand(string(t.Band))
	t.IncomeAllowance = SafeNumber(t.IncomeAllowance)
	t.DividendAllowance = SafeNumber(t.DividendAllowance)
	t.CapitalAllowance = SafeNumber(t.CapitalAllowance)
	if t.IncomeAllowance < 0 {
		t.IncomeAllowance = 0
	}
	if t.DividendAllowance < 0 {
		t.DividendAllowance = 0
	}
	if t.CapitalAllowance < 0 {
		t.CapitalAllowance = 0
	}
	return t
}

// NormalizeProfile sanitizes a whole profile in place and returns it.
func NormalizeProfile(p *Profile) *Profile {
	if p.ID == "" {
		p.ID = NewID()
	}
	for i := range p.Assets {
		NormalizeAsset(&p.Assets[i])
	}
	for i := range p.Liabilities {
		NormalizeLiability(&p.Liabilities[i])
	}
	for i := range p.Events {
		NormalizeEvent(&p.Events[i])
	}
	NormalizeTaxSettings(&p.Tax)
	return p
}
