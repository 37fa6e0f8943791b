// Package store provides profile persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"networth-cli/internal/models"
)

// ProfileStore defines the interface for profile persistence. Exactly one
// profile is active at a time; loading a profile returns a complete working
// set that callers treat as immutable.
type ProfileStore interface {
	// Profiles
	CreateProfile(ctx context.Context, profile *models.Profile) error
	SaveProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByName(ctx context.Context, name string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]ProfileInfo, error)
	DeleteProfile(ctx context.Context, id string) error

	// Active profile
	SetActiveProfile(ctx context.Context, id string) error
	ActiveProfile(ctx context.Context) (*models.Profile, error)
	ActiveProfileID(ctx context.Context) (string, error)

	// Assets
	AddAsset(ctx context.Context, profileID string, asset *models.Asset) error
	UpdateAsset(ctx context.Context, profileID string, asset *models.Asset) error
	RemoveAsset(ctx context.Context, profileID, assetID string) error

	// Liabilities
	AddLiability(ctx context.Context, profileID string, liability *models.Liability) error
	UpdateLiability(ctx context.Context, profileID string, liability *models.Liability) error
	RemoveLiability(ctx context.Context, profileID, liabilityID string) error

	// Events
	AddEvent(ctx context.Context, profileID string, event *models.Event) error
	RemoveEvent(ctx context.Context, profileID string, rowID int64) error
	ListEvents(ctx context.Context, profileID string) ([]StoredEvent, error)

	// Goal and tax
	SetGoal(ctx context.Context, profileID string, goal *models.Goal) error
	ClearGoal(ctx context.Context, profileID string) error
	SetTaxSettings(ctx context.Context, profileID string, tax models.TaxSettings) error
	SetPassiveSelection(ctx context.Context, profileID string, assetIDs []string) error

	// Lifecycle
	Close() error
}

// ProfileInfo is a profile listing row.
type ProfileInfo struct {
	ID        string
	Name      string
	Currency  string
	Active    bool
	Assets    int
	CreatedAt time.Time
}

// StoredEvent pairs an event with its storage row id so the CLI can remove
// individual events.
type StoredEvent struct {
	RowID int64
	Event models.Event
}
