package forecast

import (
	"time"

	"networth-cli/internal/models"
)

// CurrentValue returns an asset's value at the engine's current instant:
// principal plus realized recurring deposits. Growth is deliberately not
// applied here; actual returns are scenario-dependent and belong to the
// forecast, not to a static valuation. Future-dated assets are worth zero
// until their start.
func (e *Engine) CurrentValue(a *models.Asset) float64 {
	return AssetValueAt(a, e.now)
}

// AssetValueAt is CurrentValue evaluated at an arbitrary instant.
func AssetValueAt(a *models.Asset, now time.Time) float64 {
	start := StartDate(a.StartDate, a.CreatedAt, now)
	if now.Before(start) {
		return 0
	}
	return a.Value + DepositsSoFar(a, now)
}

// CurrentLiability returns a liability's outstanding balance at the engine's
// current instant.
func (e *Engine) CurrentLiability(l *models.Liability) float64 {
	return LiabilityBalanceAt(l, e.now)
}

// LiabilityBalanceAt amortizes a liability month by month from its start:
// each month the balance compounds by the monthly interest rate and then
// reduces by the payment, floored at zero. Fully repaid liabilities return 0,
// and future-dated liabilities contribute nothing until their start.
func LiabilityBalanceAt(l *models.Liability, now time.Time) float64 {
	start := StartDate(l.StartDate, l.CreatedAt, now)
	if now.Before(start) {
		return 0
	}
	balance := l.Value
	monthlyRate := l.InterestRate / 100 / 12
	for cursor := AddMonthsClamped(start, 1); !cursor.After(now); cursor = AddMonthsClamped(cursor, 1) {
		balance *= 1 + monthlyRate
		balance -= l.MonthlyPayment
		if balance <= 0 {
			return 0
		}
	}
	return balance
}

// NetWorth returns total asset value minus total liability balances at the
// engine's current instant.
func (e *Engine) NetWorth() float64 {
	var total float64
	for i := range e.snap.Assets {
		total += e.CurrentValue(&e.snap.Assets[i])
	}
	for i := range e.snap.Liabilities {
		total -= e.CurrentLiability(&e.snap.Liabilities[i])
	}
	return total
}

// PassiveWorth returns the combined current value of passive-eligible assets,
// optionally restricted to a selection (nil means all eligible).
func (e *Engine) PassiveWorth(selection map[string]bool) float64 {
	var total float64
	for i := range e.snap.Assets {
		a := &e.snap.Assets[i]
		if !a.PassiveEligible() {
			continue
		}
		if selection != nil && !selection[a.ID] {
			continue
		}
		total += e.CurrentValue(a)
	}
	return total
}

// FutureValue compounds a principal over the given number of years at an
// annual percentage rate with the given compounding/contribution frequency.
// Each period the value grows by rate/periods and then receives the
// contribution. Zero or negative period counts return the principal
// unchanged.
func FutureValue(principal, contribution, annualRatePct, years, periodsPerYear float64) float64 {
	if periodsPerYear <= 0 || years < 0 {
		return principal
	}
	periods := int(years * periodsPerYear)
	periodRate := annualRatePct / 100 / periodsPerYear
	value := principal
	for i := 0; i < periods; i++ {
		value = value*(1+periodRate) + contribution
	}
	return value
}
