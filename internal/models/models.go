// Package models provides domain models for the wealth tracking application.
package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DepositFrequency represents how often a recurring deposit is made.
type DepositFrequency string

const (
	FrequencyNone      DepositFrequency = "none"
	FrequencyMonthly   DepositFrequency = "monthly"
	FrequencyQuarterly DepositFrequency = "quarterly"
	FrequencyYearly    DepositFrequency = "yearly"
)

// PeriodsPerYear returns the number of deposit periods per year.
func (f DepositFrequency) PeriodsPerYear() float64 {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyYearly:
		return 1
	default:
		return 0
	}
}

// TaxTreatment classifies how an asset's returns are taxed.
type TaxTreatment string

const (
	TreatmentTaxFree      TaxTreatment = "tax-free"
	TreatmentIncome       TaxTreatment = "income"
	TreatmentDividend     TaxTreatment = "dividend"
	TreatmentCapitalGains TaxTreatment = "capital-gains"
)

// TaxBand represents a UK income tax band.
type TaxBand string

const (
	BandBasic      TaxBand = "basic"
	BandHigher     TaxBand = "higher"
	BandAdditional TaxBand = "additional"
)

// Scenario selects one of the three growth assumptions for a forecast run.
type Scenario string

const (
	ScenarioLow  Scenario = "low"
	ScenarioBase Scenario = "base"
	ScenarioHigh Scenario = "high"
)

// Scenarios lists all growth scenarios in canonical order.
var Scenarios = []Scenario{ScenarioLow, ScenarioBase, ScenarioHigh}

// Asset represents a wealth-producing holding.
// Value is the principal at StartDate; growth rates are annual percentages.
type Asset struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Value            float64          `json:"value"`
	StartDate        time.Time        `json:"startDate,omitempty"`
	CreatedAt        time.Time        `json:"createdAt,omitempty"`
	OriginalDeposit  float64          `json:"originalDeposit"`
	DepositFrequency DepositFrequency `json:"depositFrequency"`
	DepositDay       int              `json:"depositDay,omitempty"`
	Return           float64          `json:"return"`
	LowGrowth        *float64         `json:"lowGrowth,omitempty"`
	HighGrowth       *float64         `json:"highGrowth,omitempty"`
	TaxTreatment     TaxTreatment     `json:"taxTreatment"`
	IncludeInPassive *bool            `json:"includeInPassive,omitempty"`
}

// GrowthRate returns the asset's annual gross growth rate for the scenario.
// Low and high default to the base return when unset.
func (a *Asset) GrowthRate(s Scenario) float64 {
	switch s {
	case ScenarioLow:
		if a.LowGrowth != nil {
			return *a.LowGrowth
		}
	case ScenarioHigh:
		if a.HighGrowth != nil {
			return *a.HighGrowth
		}
	}
	return a.Return
}

// PassiveEligible reports whether the asset counts toward passive income.
// Assets are eligible unless explicitly excluded.
func (a *Asset) PassiveEligible() bool {
	return a.IncludeInPassive == nil || *a.IncludeInPassive
}

// Liability represents a debt amortized monthly: the balance compounds by
// monthly interest then reduces by the payment, floored at zero.
type Liability struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Value          float64   `json:"value"`
	InterestRate   float64   `json:"interestRate"`
	MonthlyPayment float64   `json:"monthlyPayment"`
	StartDate      time.Time `json:"startDate,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Event represents a one-off adjustment applied at a date. Percent events
// multiply the target value by (1 + Amount/100); absolute events add Amount.
// An empty AssetID means the event applies to the aggregate series.
type Event struct {
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	IsPercent bool      `json:"isPercent"`
	AssetID   string    `json:"assetId,omitempty"`
}

// TaxSettings holds the user's tax band and annual allowance pools.
// Allowances are shared across all assets of a matching treatment.
type TaxSettings struct {
	Band              TaxBand `json:"band"`
	IncomeAllowance   float64 `json:"incomeAllowance"`
	DividendAllowance float64 `json:"dividendAllowance"`
	CapitalAllowance  float64 `json:"capitalAllowance"`
}

// Goal is a target net worth by a target date.
type Goal struct {
	Value      float64   `json:"value"`
	TargetDate time.Time `json:"targetDate"`
}

// Profile aggregates one user's full working set. Exactly one profile is
// active at a time.
type Profile struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Currency         string      `json:"currency,omitempty"`
	Theme            string      `json:"theme,omitempty"`
	Assets           []Asset     `json:"assets"`
	Liabilities      []Liability `json:"liabilities"`
	Events           []Event     `json:"events"`
	Tax              TaxSettings `json:"taxSettings"`
	Goal             *Goal       `json:"goal,omitempty"`
	PassiveSelection []string    `json:"passiveSelection,omitempty"`
}

// Snapshot is the immutable financial-state input to the forecast core.
// Loading or switching a profile produces a fresh Snapshot; the core never
// mutates it.
type Snapshot struct {
	Assets           []Asset
	Liabilities      []Liability
	Events           []Event
	Tax              TaxSettings
	Goal             *Goal
	PassiveSelection []string
}

// SnapshotOf builds a Snapshot from a profile.
func SnapshotOf(p *Profile) *Snapshot {
	return &Snapshot{
		Assets:           p.Assets,
		Liabilities:      p.Liabilities,
		Events:           p.Events,
		Tax:              p.Tax,
		Goal:             p.Goal,
		PassiveSelection: p.PassiveSelection,
	}
}

// NewID returns a fresh identifier for an asset, liability or profile.
func NewID() string {
	return uuid.NewString()
}

// ParseAmount parses a user-entered numeric value. Parse failures and
// non-finite values fail soft to zero so a partially invalid profile still
// produces a forecast.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	s = strings.TrimPrefix(s, "£")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return SafeNumber(v)
}

// SafeNumber replaces NaN and infinities with zero.
func SafeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
