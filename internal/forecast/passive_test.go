package forecast

import (
	"math"
	"testing"

	"networth-cli/internal/models"
)

func passiveSnapshot() *models.Snapshot {
	excluded := false
	return &models.Snapshot{
		Assets: []models.Asset{
			{ID: "isa", Name: "ISA", Value: 50000, StartDate: testNow.AddDate(-2, 0, 0), Return: 6},
			{ID: "cash", Name: "Cash", Value: 10000, StartDate: testNow.AddDate(-2, 0, 0), Return: 2},
			{ID: "home", Name: "Home", Value: 300000, StartDate: testNow.AddDate(-2, 0, 0), Return: 3, IncludeInPassive: &excluded},
		},
	}
}

func TestPassiveAssetValueBeforeStart(t *testing.T) {
	snap := passiveSnapshot()
	e := newTestEngine(snap)
	target := snap.Assets[0].StartDate.AddDate(-1, 0, 0)
	if got := e.PassiveAssetValueAt(&snap.Assets[0], target, models.ScenarioBase); got != 0 {
		t.Errorf("value before start = %v, want 0", got)
	}
}

func TestPassiveAssetValueFrozenAtPastTarget(t *testing.T) {
	snap := passiveSnapshot()
	e := newTestEngine(snap)
	a := &snap.Assets[0]

	// A past target uses the static valuation, no growth applied.
	target := testNow.AddDate(-1, 0, 0)
	if got := e.PassiveAssetValueAt(a, target, models.ScenarioBase); math.Abs(got-a.Value) > 1e-9 {
		t.Errorf("past value = %v, want %v", got, a.Value)
	}
}

func TestPassiveAssetValueCompoundsIntoFuture(t *testing.T) {
	snap := passiveSnapshot()
	e := newTestEngine(snap)
	a := &snap.Assets[0]

	target := testNow.AddDate(5, 0, 0)
	got := e.PassiveAssetValueAt(a, target, models.ScenarioBase)
	if got <= a.Value {
		t.Errorf("future value %v did not grow beyond %v", got, a.Value)
	}
	// No events and tax-free: plain compound growth at the gross rate.
	want := a.Value * math.Pow(1.06, ElapsedYears(testNow, target))
	if math.Abs(got-want) > want*1e-9 {
		t.Errorf("future value = %v, want %v", got, want)
	}
}

func TestPassiveAssetValueAppliesEventsChronologically(t *testing.T) {
	snap := passiveSnapshot()
	eventDate := testNow.AddDate(2, 0, 0)
	snap.Events = []models.Event{
		{Date: eventDate, Amount: -50, IsPercent: true, AssetID: "isa"},
	}
	e := newTestEngine(snap)
	a := &snap.Assets[0]

	target := testNow.AddDate(4, 0, 0)
	got := e.PassiveAssetValueAt(a, target, models.ScenarioBase)

	// Grow to the event, halve, grow on to the target.
	atEvent := a.Value * math.Pow(1.06, ElapsedYears(testNow, eventDate))
	want := atEvent * 0.5 * math.Pow(1.06, ElapsedYears(eventDate, target))
	if math.Abs(got-want) > want*1e-9 {
		t.Errorf("value with mid-span event = %v, want %v", got, want)
	}
}

func TestPassiveAssetValueSkipsPreActivationEvents(t *testing.T) {
	snap := passiveSnapshot()
	// Dated before the asset's start date, so it never applies.
	snap.Events = []models.Event{
		{Date: snap.Assets[0].StartDate.AddDate(-1, 0, 0), Amount: 50, IsPercent: true, AssetID: "isa"},
	}
	e := newTestEngine(snap)
	a := &snap.Assets[0]

	// Past target: static valuation, the stale event ignored.
	if got := e.PassiveAssetValueAt(a, testNow.AddDate(-1, 0, 0), models.ScenarioBase); math.Abs(got-a.Value) > 1e-9 {
		t.Errorf("past value = %v, want %v", got, a.Value)
	}

	// Future target: plain compound growth, the stale event ignored.
	target := testNow.AddDate(3, 0, 0)
	want := a.Value * math.Pow(1.06, ElapsedYears(testNow, target))
	if got := e.PassiveAssetValueAt(a, target, models.ScenarioBase); math.Abs(got-want) > want*1e-9 {
		t.Errorf("future value = %v, want %v", got, want)
	}
}

func TestPassiveIncomeUnitBreakdown(t *testing.T) {
	snap := passiveSnapshot()
	e := newTestEngine(snap)
	income := e.PassiveIncomeAt(testNow, models.ScenarioBase, nil)

	// ISA 50000 at 6% plus cash 10000 at 2%; the home is excluded.
	wantAnnual := 50000*0.06 + 10000*0.02
	if math.Abs(income.Annual-wantAnnual) > 1e-6 {
		t.Errorf("annual = %v, want %v", income.Annual, wantAnnual)
	}
	if math.Abs(income.Monthly-wantAnnual/12) > 1e-9 {
		t.Errorf("monthly = %v, want %v", income.Monthly, wantAnnual/12)
	}
	if math.Abs(income.Weekly-wantAnnual/52) > 1e-9 {
		t.Errorf("weekly = %v, want %v", income.Weekly, wantAnnual/52)
	}
	if math.Abs(income.Daily-wantAnnual/DaysPerYear) > 1e-9 {
		t.Errorf("daily = %v, want %v", income.Daily, wantAnnual/DaysPerYear)
	}
	if math.Abs(income.Worth-60000) > 1e-6 {
		t.Errorf("worth = %v, want 60000", income.Worth)
	}
}

func TestPassiveIncomeSelection(t *testing.T) {
	snap := passiveSnapshot()
	e := newTestEngine(snap)

	selection := SelectionSet([]string{"isa"})
	income := e.PassiveIncomeAt(testNow, models.ScenarioBase, selection)
	if math.Abs(income.Worth-50000) > 1e-6 {
		t.Errorf("selected worth = %v, want 50000", income.Worth)
	}

	// An empty selection means no restriction.
	if SelectionSet(nil) != nil || SelectionSet([]string{}) != nil {
		t.Error("empty selection should be nil")
	}
}
