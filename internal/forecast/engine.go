package forecast

import (
	"math/rand"
	"time"

	"networth-cli/internal/models"
)

// Engine evaluates a single financial-state snapshot. It owns the tax memo
// and the per-item series from the last full forecast run so other views can
// reuse them without recomputing; Invalidate discards both whenever assets,
// events or tax settings change.
type Engine struct {
	snap *models.Snapshot
	now  time.Time
	rng  *rand.Rand

	taxCache     *TaxComputation
	lastForecast *ScenarioSet
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow pins the engine's notion of the current instant, for testability.
func WithNow(t time.Time) Option {
	return func(e *Engine) { e.now = t }
}

// WithSeed makes stress-test randomness reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a randomness source directly.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// New creates an engine over the given snapshot.
func New(snap *models.Snapshot, opts ...Option) *Engine {
	e := &Engine{
		snap: snap,
		now:  time.Now(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's current instant.
func (e *Engine) Now() time.Time { return e.now }

// Snapshot returns the snapshot the engine evaluates.
func (e *Engine) Snapshot() *models.Snapshot { return e.snap }

// Invalidate discards the tax memo and the cached forecast. Callers must
// invoke it whenever the underlying snapshot data changes.
func (e *Engine) Invalidate() {
	e.taxCache = nil
	e.lastForecast = nil
}

// LastForecast returns the cached result of the most recent full
// (non-passive) forecast run, or nil if none has happened since the last
// invalidation.
func (e *Engine) LastForecast() *ScenarioSet { return e.lastForecast }

// DefaultHorizonYears is used when no goal is set.
const DefaultHorizonYears = 30

// maxHorizonYears bounds goal-derived horizons, matching the configurable
// forecast range.
const maxHorizonYears = 100

// HorizonYears derives the forecast horizon from the goal target date:
// enough whole calendar years to cover the target, at least one. A goal
// exactly N calendar years out yields an N-year horizon. Without a goal the
// default horizon applies.
func (e *Engine) HorizonYears() int {
	if e.snap.Goal == nil || e.snap.Goal.TargetDate.IsZero() {
		return DefaultHorizonYears
	}
	months := 0
	for months < maxHorizonYears*12 && AddMonthsClamped(e.now, months).Before(e.snap.Goal.TargetDate) {
		months++
	}
	years := (months + 11) / 12
	if years < 1 {
		years = 1
	}
	return years
}

// assetByID returns the snapshot asset with the given id, or nil.
func (e *Engine) assetByID(id string) *models.Asset {
	for i := range e.snap.Assets {
		if e.snap.Assets[i].ID == id {
			return &e.snap.Assets[i]
		}
	}
	return nil
}

// eventsForAsset returns the snapshot events targeting the given asset,
// sorted ascending by date. Events sharing a timestamp keep their insertion
// order.
func (e *Engine) eventsForAsset(id string) []models.Event {
	return sortEvents(filterEvents(e.snap.Events, func(ev models.Event) bool {
		return ev.AssetID == id
	}))
}

// globalEvents returns the snapshot events with no target asset, sorted
// ascending by date with insertion order preserved for ties.
func (e *Engine) globalEvents() []models.Event {
	return sortEvents(filterEvents(e.snap.Events, func(ev models.Event) bool {
		return ev.AssetID == ""
	}))
}

func filterEvents(events []models.Event, keep func(models.Event) bool) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if keep(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// sortEvents sorts ascending by date using a stable insertion sort so that
// same-timestamp events retain their original relative order.
func sortEvents(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	copy(out, events)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Date.Before(out[j-1].Date); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
