package models

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Parsing fails soft: any input yields a finite number, never a panic or NaN.
func TestParseAmountAlwaysFinite(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ParseAmount never returns NaN or Inf", prop.ForAll(
		func(s string) bool {
			v := ParseAmount(s)
			return !math.IsNaN(v) && !math.IsInf(v, 0)
		},
		gen.AnyString(),
	))

	properties.Property("SafeNumber is identity on finite values", prop.ForAll(
		func(v float64) bool {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return SafeNumber(v) == 0
			}
			return SafeNumber(v) == v
		},
		gen.Float64(),
	))

	properties.TestingRun(t)
}

func TestParseAmountExamples(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{"1234.56", 1234.56},
		{"£1,234.56", 1234.56},
		{"$99", 99},
		{" 42 ", 42},
		{"-500", -500},
		{"not a number", 0},
		{"", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseAmount(tc.input); got != tc.expected {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSafeNumberEdgeCases(t *testing.T) {
	if SafeNumber(math.NaN()) != 0 {
		t.Error("NaN not zeroed")
	}
	if SafeNumber(math.Inf(1)) != 0 || SafeNumber(math.Inf(-1)) != 0 {
		t.Error("infinity not zeroed")
	}
}

// Unknown enum values fall back to their documented defaults.
func TestNormalizationDefaults(t *testing.T) {
	if got := NormalizeTaxTreatment("bogus"); got != TreatmentTaxFree {
		t.Errorf("treatment default = %s, want tax-free", got)
	}
	if got := NormalizeTaxBand("bogus"); got != BandBasic {
		t.Errorf("band default = %s, want basic", got)
	}
	if got := NormalizeFrequency("bogus"); got != FrequencyNone {
		t.Errorf("frequency default = %s, want none", got)
	}
	if got := NormalizeScenario("bogus"); got != ScenarioBase {
		t.Errorf("scenario default = %s, want base", got)
	}

	// Known values pass through.
	if got := NormalizeTaxTreatment("dividend"); got != TreatmentDividend {
		t.Errorf("dividend mapped to %s", got)
	}
	if got := NormalizeScenario("high"); got != ScenarioHigh {
		t.Errorf("high mapped to %s", got)
	}
}

func TestNormalizeAssetSanitizes(t *testing.T) {
	low := math.NaN()
	a := &Asset{
		Name:             "Broken",
		Value:            math.Inf(1),
		OriginalDeposit:  math.NaN(),
		Return:           5,
		LowGrowth:        &low,
		DepositFrequency: "weekly",
		TaxTreatment:     "offshore",
		DepositDay:       45,
	}
	NormalizeAsset(a)

	if a.ID == "" {
		t.Error("missing id not assigned")
	}
	if a.Value != 0 || a.OriginalDeposit != 0 {
		t.Error("non-finite amounts not zeroed")
	}
	if *a.LowGrowth != 0 {
		t.Error("non-finite low growth not zeroed")
	}
	if a.DepositFrequency != FrequencyNone {
		t.Errorf("frequency = %s, want none", a.DepositFrequency)
	}
	if a.TaxTreatment != TreatmentTaxFree {
		t.Errorf("treatment = %s, want tax-free", a.TaxTreatment)
	}
	if a.DepositDay != 1 {
		t.Errorf("deposit day = %d, want 1", a.DepositDay)
	}
}

func TestNormalizeTaxSettingsClampsAllowances(t *testing.T) {
	tax := &TaxSettings{
		Band:              "bogus",
		IncomeAllowance:   -100,
		DividendAllowance: math.NaN(),
		CapitalAllowance:  3000,
	}
	NormalizeTaxSettings(tax)

	if tax.Band != BandBasic {
		t.Errorf("band = %s, want basic", tax.Band)
	}
	if tax.IncomeAllowance != 0 || tax.DividendAllowance != 0 {
		t.Error("invalid allowances not clamped to zero")
	}
	if tax.CapitalAllowance != 3000 {
		t.Error("valid allowance altered")
	}
}

func TestGrowthRateDefaults(t *testing.T) {
	a := &Asset{Return: 5}
	for _, s := range Scenarios {
		if got := a.GrowthRate(s); got != 5 {
			t.Errorf("GrowthRate(%s) = %v, want 5 (fallback to base)", s, got)
		}
	}

	low, high := 2.0, 8.0
	a.LowGrowth, a.HighGrowth = &low, &high
	if a.GrowthRate(ScenarioLow) != 2 || a.GrowthRate(ScenarioHigh) != 8 || a.GrowthRate(ScenarioBase) != 5 {
		t.Error("explicit scenario rates not honored")
	}
}

func TestPassiveEligibleDefault(t *testing.T) {
	a := &Asset{}
	if !a.PassiveEligible() {
		t.Error("assets should be passive-eligible by default")
	}
	excluded := false
	a.IncludeInPassive = &excluded
	if a.PassiveEligible() {
		t.Error("explicit exclusion ignored")
	}
}

func TestPeriodsPerYear(t *testing.T) {
	testCases := []struct {
		freq     DepositFrequency
		expected float64
	}{
		{FrequencyMonthly, 12},
		{FrequencyQuarterly, 4},
		{FrequencyYearly, 1},
		{FrequencyNone, 0},
		{"weekly", 0},
	}
	for _, tc := range testCases {
		if got := tc.freq.PeriodsPerYear(); got != tc.expected {
			t.Errorf("PeriodsPerYear(%s) = %v, want %v", tc.freq, got, tc.expected)
		}
	}
}
