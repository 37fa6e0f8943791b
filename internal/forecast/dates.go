// Package forecast implements the wealth projection core: valuation,
// UK tax treatment, scenario forecasting, passive income estimation and
// goal stress testing. Everything operates on an explicit snapshot of the
// financial state; nothing here performs I/O.
package forecast

import (
	"math"
	"time"

	"networth-cli/internal/models"
)

// DaysPerYear is the fixed year length used for elapsed-year calculations.
// Month-based schedules use real calendar month arithmetic instead.
const DaysPerYear = 365.25

// StartDate resolves the effective start of an item: the explicit start date
// if set, else the creation timestamp, else now.
func StartDate(explicit, created, now time.Time) time.Time {
	if !explicit.IsZero() {
		return explicit
	}
	if !created.IsZero() {
		return created
	}
	return now
}

// ElapsedYears returns the number of fixed-length years between two instants.
// Negative spans return a negative value; callers clamp where needed.
func ElapsedYears(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / DaysPerYear
}

// DepositsSoFar returns the total of recurring deposits realized between the
// asset's start and now: floor(elapsed years x periods per year) complete
// periods, each contributing the original deposit amount.
func DepositsSoFar(a *models.Asset, now time.Time) float64 {
	periods := a.DepositFrequency.PeriodsPerYear()
	if periods == 0 || a.OriginalDeposit == 0 {
		return 0
	}
	start := StartDate(a.StartDate, a.CreatedAt, now)
	years := ElapsedYears(start, now)
	if years <= 0 {
		return 0
	}
	return math.Floor(years*periods) * a.OriginalDeposit
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampDay builds a date in year/month on the requested day, clamped to the
// days that month actually has (day 31 in February becomes the 28th/29th).
func clampDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if dim := daysInMonth(year, month); day > dim {
		day = dim
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// AddMonthsClamped advances t by n calendar months, clamping the day to the
// target month. Unlike time.AddDate this never spills into the following
// month (Jan 31 + 1 month is Feb 28/29, not Mar 2/3).
func AddMonthsClamped(t time.Time, n int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + n
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return clampDay(year, time.Month(month+1), t.Day(), t.Location())
}

// DepositIterator walks the occurrences of a recurring deposit anchored to a
// day of month. The anchor day is preserved across months so a day-31 deposit
// lands on the 28th in February and back on the 31st in March.
//
// Occurrences are consumed sequentially; there is no random access.
type DepositIterator struct {
	amount     float64
	stepMonths int
	anchorDay  int
	year       int
	month      time.Month
	loc        *time.Location
	exhausted  bool
}

// NewDepositIterator creates an iterator over an asset's deposit schedule
// starting at the asset's effective start date. Assets without a recurring
// deposit yield an iterator that never produces occurrences.
func NewDepositIterator(a *models.Asset, now time.Time) *DepositIterator {
	step := 0
	switch a.DepositFrequency {
	case models.FrequencyMonthly:
		step = 1
	case models.FrequencyQuarterly:
		step = 3
	case models.FrequencyYearly:
		step = 12
	}
	if step == 0 || a.OriginalDeposit == 0 {
		return &DepositIterator{exhausted: true}
	}

	start := StartDate(a.StartDate, a.CreatedAt, now)
	day := a.DepositDay
	if day < 1 || day > 31 {
		day = start.Day()
	}

	it := &DepositIterator{
		amount:     a.OriginalDeposit,
		stepMonths: step,
		anchorDay:  day,
		year:       start.Year(),
		month:      start.Month(),
		loc:        start.Location(),
	}
	// The first occurrence is the anchor day in the start month, or the
	// following period if the start date has already passed it.
	if it.current().Before(start) {
		it.advance()
	}
	return it
}

// current returns the occurrence the cursor points at.
func (it *DepositIterator) current() time.Time {
	return clampDay(it.year, it.month, it.anchorDay, it.loc)
}

// advance moves the cursor one deposit period forward.
func (it *DepositIterator) advance() {
	m := int(it.month) - 1 + it.stepMonths
	it.year += m / 12
	it.month = time.Month(m%12 + 1)
}

// ConsumeBefore returns the sum of all deposit occurrences strictly before
// ts, advancing the internal cursor past them. The cursor only moves
// forward: calling with an earlier timestamp returns zero.
func (it *DepositIterator) ConsumeBefore(ts time.Time) float64 {
	if it.exhausted {
		return 0
	}
	var sum float64
	for it.current().Before(ts) {
		sum += it.amount
		it.advance()
	}
	return sum
}
