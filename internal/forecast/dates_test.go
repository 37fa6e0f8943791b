package forecast

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"networth-cli/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestAddMonthsClampedExamples checks the day-clamping rule on month ends:
// advancing never spills into the following month.
func TestAddMonthsClampedExamples(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"jan 31 to feb (non-leap)", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"jan 31 to feb (leap)", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 to march", date(2025, time.January, 31), 2, date(2025, time.March, 31)},
		{"oct 31 to nov", date(2025, time.October, 31), 1, date(2025, time.November, 30)},
		{"year rollover", date(2025, time.November, 15), 3, date(2026, time.February, 15)},
		{"many years", date(2025, time.June, 1), 120, date(2035, time.June, 1)},
		{"backwards", date(2025, time.March, 31), -1, date(2025, time.February, 28)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddMonthsClamped(tc.start, tc.months)
			if !got.Equal(tc.expected) {
				t.Errorf("AddMonthsClamped(%v, %d) = %v, want %v", tc.start, tc.months, got, tc.expected)
			}
		})
	}
}

// AddMonthsClamped must land in exactly the requested month for any start day.
func TestAddMonthsClampedNeverSpills(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("result month is start month plus n", prop.ForAll(
		func(day, n int) bool {
			start := date(2025, time.January, day)
			got := AddMonthsClamped(start, n)
			wantMonth := (0 + n) % 12
			wantYear := 2025 + n/12
			if wantMonth < 0 {
				wantMonth += 12
				wantYear--
			}
			return got.Year() == wantYear && got.Month() == time.Month(wantMonth+1)
		},
		gen.IntRange(1, 31),
		gen.IntRange(-24, 600),
	))

	properties.TestingRun(t)
}

func TestDepositIteratorAnchorDay(t *testing.T) {
	asset := &models.Asset{
		ID:               "a",
		Value:            0,
		StartDate:        date(2025, time.January, 31),
		OriginalDeposit:  100,
		DepositFrequency: models.FrequencyMonthly,
		DepositDay:       31,
	}
	it := NewDepositIterator(asset, date(2025, time.January, 1))

	// January through April: 31st, Feb clamped to 28th, back to the 31st.
	expected := []time.Time{
		date(2025, time.January, 31),
		date(2025, time.February, 28),
		date(2025, time.March, 31),
		date(2025, time.April, 30),
	}
	for _, want := range expected {
		got := it.current()
		if !got.Equal(want) {
			t.Fatalf("occurrence = %v, want %v", got, want)
		}
		it.advance()
	}
}

func TestDepositIteratorConsumeBefore(t *testing.T) {
	asset := &models.Asset{
		ID:               "a",
		StartDate:        date(2025, time.January, 1),
		OriginalDeposit:  50,
		DepositFrequency: models.FrequencyMonthly,
		DepositDay:       15,
	}
	it := NewDepositIterator(asset, date(2025, time.January, 1))

	// Three occurrences strictly before April 1: Jan 15, Feb 15, Mar 15.
	if got := it.ConsumeBefore(date(2025, time.April, 1)); got != 150 {
		t.Errorf("ConsumeBefore(Apr 1) = %v, want 150", got)
	}
	// Cursor only moves forward; asking for an earlier bound yields nothing.
	if got := it.ConsumeBefore(date(2025, time.February, 1)); got != 0 {
		t.Errorf("ConsumeBefore(Feb 1) after cursor passed = %v, want 0", got)
	}
	// Next occurrence is Apr 15.
	if got := it.ConsumeBefore(date(2025, time.April, 16)); got != 50 {
		t.Errorf("ConsumeBefore(Apr 16) = %v, want 50", got)
	}
}

func TestDepositIteratorNoSchedule(t *testing.T) {
	asset := &models.Asset{ID: "a", DepositFrequency: models.FrequencyNone, OriginalDeposit: 100}
	it := NewDepositIterator(asset, date(2025, time.January, 1))
	if got := it.ConsumeBefore(date(2100, time.January, 1)); got != 0 {
		t.Errorf("iterator without schedule produced %v", got)
	}
}

func TestDepositsSoFar(t *testing.T) {
	asset := &models.Asset{
		ID:               "a",
		StartDate:        date(2024, time.January, 1),
		OriginalDeposit:  100,
		DepositFrequency: models.FrequencyMonthly,
	}
	// Two fixed-length years: floor(2 * 12) = 24 deposits.
	now := asset.StartDate.Add(time.Duration(2*DaysPerYear*24) * time.Hour)
	if got := DepositsSoFar(asset, now); got != 2400 {
		t.Errorf("DepositsSoFar after 2 years = %v, want 2400", got)
	}
	// Before the start nothing has been deposited.
	if got := DepositsSoFar(asset, date(2023, time.June, 1)); got != 0 {
		t.Errorf("DepositsSoFar before start = %v, want 0", got)
	}
}

func TestStartDateResolution(t *testing.T) {
	now := date(2026, time.January, 15)
	explicit := date(2025, time.March, 1)
	created := date(2024, time.July, 1)

	if got := StartDate(explicit, created, now); !got.Equal(explicit) {
		t.Errorf("explicit start ignored: got %v", got)
	}
	if got := StartDate(time.Time{}, created, now); !got.Equal(created) {
		t.Errorf("created fallback ignored: got %v", got)
	}
	if got := StartDate(time.Time{}, time.Time{}, now); !got.Equal(now) {
		t.Errorf("now fallback ignored: got %v", got)
	}
}
