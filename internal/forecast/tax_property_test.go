package forecast

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"networth-cli/internal/models"
)

// Tax-free assets keep their gross rate in every scenario, whatever the band
// or allowances say.
func TestTaxFreeKeepsGrossRate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("tax-free net rate equals gross rate", prop.ForAll(
		func(value, rate, allowance float64, bandIdx int) bool {
			bands := []models.TaxBand{models.BandBasic, models.BandHigher, models.BandAdditional}
			snap := &models.Snapshot{
				Assets: []models.Asset{{
					ID:           "a1",
					Value:        value,
					StartDate:    testNow.AddDate(-1, 0, 0),
					Return:       rate,
					TaxTreatment: models.TreatmentTaxFree,
				}},
				Tax: models.TaxSettings{
					Band:              bands[bandIdx%len(bands)],
					IncomeAllowance:   allowance,
					DividendAllowance: allowance,
					CapitalAllowance:  allowance,
				},
			}
			e := newTestEngine(snap)
			for _, s := range models.Scenarios {
				if got := e.NetRate(&snap.Assets[0], s); math.Abs(got-rate) > 1e-9 {
					t.Logf("net rate %v != gross %v under %s", got, rate, s)
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1e6),
		gen.Float64Range(-10, 20),
		gen.Float64Range(0, 50000),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}

// The allowance applies once per pool: taxable amounts across assets sharing
// a treatment sum to max(0, total gross - allowance).
func TestAllowanceApportionment(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("pool taxable sums to max(0, total-allowance)", prop.ForAll(
		func(v1, v2, v3, rate, allowance float64) bool {
			snap := &models.Snapshot{
				Assets: []models.Asset{
					{ID: "a1", Value: v1, StartDate: testNow.AddDate(-1, 0, 0), Return: rate, TaxTreatment: models.TreatmentDividend},
					{ID: "a2", Value: v2, StartDate: testNow.AddDate(-1, 0, 0), Return: rate, TaxTreatment: models.TreatmentDividend},
					{ID: "a3", Value: v3, StartDate: testNow.AddDate(-1, 0, 0), Return: rate, TaxTreatment: models.TreatmentDividend},
				},
				Tax: models.TaxSettings{Band: models.BandBasic, DividendAllowance: allowance},
			}
			e := newTestEngine(snap)
			comp := e.ComputeAssetTaxDetails()

			var totalGross, totalTaxable float64
			for _, a := range snap.Assets {
				st := comp.Details[a.ID].Scenarios[models.ScenarioBase]
				if st.GrossAmount > 0 {
					totalGross += st.GrossAmount
				}
				totalTaxable += st.TaxableAmount
			}
			want := totalGross - allowance
			if want < 0 {
				want = 0
			}
			if math.Abs(totalTaxable-want) > math.Max(1e-6, totalGross*1e-9) {
				t.Logf("taxable=%v want=%v (gross=%v allowance=%v)", totalTaxable, want, totalGross, allowance)
				return false
			}
			return true
		},
		gen.Float64Range(0, 500000),
		gen.Float64Range(0, 500000),
		gen.Float64Range(0, 500000),
		gen.Float64Range(0.5, 15),
		gen.Float64Range(0, 20000),
	))

	properties.Property("net rate never exceeds gross rate", prop.ForAll(
		func(value, rate float64) bool {
			snap := &models.Snapshot{
				Assets: []models.Asset{{
					ID:           "a1",
					Value:        value,
					StartDate:    testNow.AddDate(-1, 0, 0),
					Return:       rate,
					TaxTreatment: models.TreatmentIncome,
				}},
				Tax: models.TaxSettings{Band: models.BandHigher},
			}
			e := newTestEngine(snap)
			net := e.NetRate(&snap.Assets[0], models.ScenarioBase)
			return net <= rate+1e-9
		},
		gen.Float64Range(100, 1e6),
		gen.Float64Range(0, 20),
	))

	properties.TestingRun(t)
}

// Band rate table matches the published UK figures.
func TestBandRateTable(t *testing.T) {
	testCases := []struct {
		band     models.TaxBand
		expected BandRates
	}{
		{models.BandBasic, BandRates{Income: 20, Dividend: 8.75, CapitalGains: 10}},
		{models.BandHigher, BandRates{Income: 40, Dividend: 33.75, CapitalGains: 20}},
		{models.BandAdditional, BandRates{Income: 45, Dividend: 39.35, CapitalGains: 20}},
		{models.TaxBand("unknown"), BandRates{Income: 20, Dividend: 8.75, CapitalGains: 10}},
	}
	for _, tc := range testCases {
		t.Run(string(tc.band), func(t *testing.T) {
			if got := RatesForBand(tc.band); got != tc.expected {
				t.Errorf("RatesForBand(%s) = %+v, want %+v", tc.band, got, tc.expected)
			}
		})
	}
}

// Worked example: a single income asset fully above its allowance.
func TestTaxWorkedExample(t *testing.T) {
	snap := &models.Snapshot{
		Assets: []models.Asset{{
			ID:           "a1",
			Value:        100000,
			StartDate:    testNow.AddDate(-1, 0, 0),
			Return:       5,
			TaxTreatment: models.TreatmentIncome,
		}},
		Tax: models.TaxSettings{Band: models.BandBasic, IncomeAllowance: 1000},
	}
	e := newTestEngine(snap)
	st := e.ComputeAssetTaxDetails().Details["a1"].Scenarios[models.ScenarioBase]

	// Gross 5000, taxable 4000, 20% due = 800, net (5000-800)/100000 = 4.2%.
	if math.Abs(st.GrossAmount-5000) > 1e-6 {
		t.Errorf("gross = %v, want 5000", st.GrossAmount)
	}
	if math.Abs(st.TaxableAmount-4000) > 1e-6 {
		t.Errorf("taxable = %v, want 4000", st.TaxableAmount)
	}
	if math.Abs(st.TaxDue-800) > 1e-6 {
		t.Errorf("tax due = %v, want 800", st.TaxDue)
	}
	if math.Abs(st.NetRate-4.2) > 1e-6 {
		t.Errorf("net rate = %v, want 4.2", st.NetRate)
	}
}

// Negative-return assets owe nothing and are excluded from the pool.
func TestNegativeReturnExcludedFromPool(t *testing.T) {
	snap := &models.Snapshot{
		Assets: []models.Asset{
			{ID: "up", Value: 100000, StartDate: testNow.AddDate(-1, 0, 0), Return: 5, TaxTreatment: models.TreatmentCapitalGains},
			{ID: "down", Value: 100000, StartDate: testNow.AddDate(-1, 0, 0), Return: -3, TaxTreatment: models.TreatmentCapitalGains},
		},
		Tax: models.TaxSettings{Band: models.BandBasic, CapitalAllowance: 0},
	}
	e := newTestEngine(snap)
	comp := e.ComputeAssetTaxDetails()

	down := comp.Details["down"].Scenarios[models.ScenarioBase]
	if down.TaxDue != 0 {
		t.Errorf("losing asset owes %v, want 0", down.TaxDue)
	}
	if math.Abs(down.NetRate-(-3)) > 1e-9 {
		t.Errorf("losing asset net rate = %v, want -3", down.NetRate)
	}

	// The gaining asset is taxed on its own gross only.
	up := comp.Details["up"].Scenarios[models.ScenarioBase]
	if math.Abs(up.TaxableAmount-5000) > 1e-6 {
		t.Errorf("gaining asset taxable = %v, want 5000", up.TaxableAmount)
	}
}
