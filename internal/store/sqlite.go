// Package store provides profile persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "networth-cli/internal/errors"
	"networth-cli/internal/models"
)

// SQLiteStore implements ProfileStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based profile store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Profiles: one row per user-created working set
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		currency TEXT DEFAULT '£',
		theme TEXT DEFAULT '',
		tax_band TEXT DEFAULT 'basic',
		income_allowance REAL DEFAULT 0,
		dividend_allowance REAL DEFAULT 0,
		capital_allowance REAL DEFAULT 0,
		goal_value REAL,
		goal_target DATETIME,
		passive_selection TEXT,
		active INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		start_date DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		original_deposit REAL DEFAULT 0,
		deposit_frequency TEXT DEFAULT 'none',
		deposit_day INTEGER DEFAULT 1,
		return_rate REAL DEFAULT 0,
		low_growth REAL,
		high_growth REAL,
		tax_treatment TEXT DEFAULT 'tax-free',
		include_in_passive INTEGER,
		FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS liabilities (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		interest_rate REAL DEFAULT 0,
		monthly_payment REAL DEFAULT 0,
		start_date DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		amount REAL NOT NULL,
		is_percent INTEGER DEFAULT 0,
		asset_id TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_assets_profile ON assets(profile_id);
	CREATE INDEX IF NOT EXISTS idx_liabilities_profile ON liabilities(profile_id);
	CREATE INDEX IF NOT EXISTS idx_events_profile ON events(profile_id);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateProfile inserts a new profile with its children. The first profile
// created becomes active automatically.
func (s *SQLiteStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	models.NormalizeProfile(p)
	count := 0
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return apperrors.NewStoreError("create", p.ID, err)
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		return err
	}
	if count == 0 {
		return s.SetActiveProfile(ctx, p.ID)
	}
	return nil
}

// SaveProfile upserts a profile and replaces its children wholesale.
// Used by imports and bulk edits.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	models.NormalizeProfile(p)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError("save", p.ID, err)
	}
	defer tx.Rollback()

	selection, err := json.Marshal(p.PassiveSelection)
	if err != nil {
		return apperrors.NewStoreError("save", p.ID, err)
	}

	var goalValue interface{}
	var goalTarget interface{}
	if p.Goal != nil {
		goalValue = p.Goal.Value
		goalTarget = p.Goal.TargetDate
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (id, name, currency, theme, tax_band, income_allowance,
			dividend_allowance, capital_allowance, goal_value, goal_target, passive_selection)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, currency=excluded.currency, theme=excluded.theme,
			tax_band=excluded.tax_band, income_allowance=excluded.income_allowance,
			dividend_allowance=excluded.dividend_allowance, capital_allowance=excluded.capital_allowance,
			goal_value=excluded.goal_value, goal_target=excluded.goal_target,
			passive_selection=excluded.passive_selection`,
		p.ID, p.Name, p.Currency, p.Theme, string(p.Tax.Band), p.Tax.IncomeAllowance,
		p.Tax.DividendAllowance, p.Tax.CapitalAllowance, goalValue, goalTarget, string(selection))
	if err != nil {
		return apperrors.NewStoreError("save", p.ID, err)
	}

	for _, table := range []string{"assets", "liabilities", "events"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE profile_id = ?`, table), p.ID); err != nil {
			return apperrors.NewStoreError("save", p.ID, err)
		}
	}

	for i := range p.Assets {
		if err := insertAsset(ctx, tx, p.ID, &p.Assets[i]); err != nil {
			return apperrors.NewStoreError("save", p.ID, err)
		}
	}
	for i := range p.Liabilities {
		if err := insertLiability(ctx, tx, p.ID, &p.Liabilities[i]); err != nil {
			return apperrors.NewStoreError("save", p.ID, err)
		}
	}
	for i := range p.Events {
		if err := insertEvent(ctx, tx, p.ID, &p.Events[i]); err != nil {
			return apperrors.NewStoreError("save", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStoreError("save", p.ID, err)
	}
	return nil
}

func insertAsset(ctx context.Context, tx *sql.Tx, profileID string, a *models.Asset) error {
	var includePassive interface{}
	if a.IncludeInPassive != nil {
		includePassive = boolToInt(*a.IncludeInPassive)
	}
	var low, high interface{}
	if a.LowGrowth != nil {
		low = *a.LowGrowth
	}
	if a.HighGrowth != nil {
		high = *a.HighGrowth
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO assets (id, profile_id, name, value, start_date, created_at,
			original_deposit, deposit_frequency, deposit_day, return_rate,
			low_growth, high_growth, tax_treatment, include_in_passive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, profileID, a.Name, a.Value, nullTime(a.StartDate), timeOrNow(a.CreatedAt),
		a.OriginalDeposit, string(a.DepositFrequency), a.DepositDay, a.Return,
		low, high, string(a.TaxTreatment), includePassive)
	return err
}

func insertLiability(ctx context.Context, tx *sql.Tx, profileID string, l *models.Liability) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO liabilities (id, profile_id, name, value, interest_rate, monthly_payment, start_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, profileID, l.Name, l.Value, l.InterestRate, l.MonthlyPayment,
		nullTime(l.StartDate), timeOrNow(l.CreatedAt))
	return err
}

func insertEvent(ctx context.Context, tx *sql.Tx, profileID string, e *models.Event) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO events (profile_id, date, amount, is_percent, asset_id)
		VALUES (?, ?, ?, ?, ?)`,
		profileID, e.Date, e.Amount, boolToInt(e.IsPercent), e.AssetID)
	return err
}

// GetProfile loads a full profile with its children.
func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.getProfileWhere(ctx, `id = ?`, id)
}

// GetProfileByName loads a full profile by name.
func (s *SQLiteStore) GetProfileByName(ctx context.Context, name string) (*models.Profile, error) {
	return s.getProfileWhere(ctx, `name = ?`, name)
}

func (s *SQLiteStore) getProfileWhere(ctx context.Context, where string, arg interface{}) (*models.Profile, error) {
	p := &models.Profile{}
	var goalValue sql.NullFloat64
	var goalTarget sql.NullTime
	var selection sql.NullString
	var band string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, currency, theme, tax_band, income_allowance,
			dividend_allowance, capital_allowance, goal_value, goal_target, passive_selection
		FROM profiles WHERE `+where, arg).Scan(
		&p.ID, &p.Name, &p.Currency, &p.Theme, &band, &p.Tax.IncomeAllowance,
		&p.Tax.DividendAllowance, &p.Tax.CapitalAllowance, &goalValue, &goalTarget, &selection)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get", "", err)
	}

	p.Tax.Band = models.NormalizeTaxBand(band)
	if goalValue.Valid && goalTarget.Valid {
		p.Goal = &models.Goal{Value: goalValue.Float64, TargetDate: goalTarget.Time}
	}
	if selection.Valid && selection.String != "" && selection.String != "null" {
		if err := json.Unmarshal([]byte(selection.String), &p.PassiveSelection); err != nil {
			p.PassiveSelection = nil
		}
	}

	if err := s.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return models.NormalizeProfile(p), nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, p *models.Profile) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, value, start_date, created_at, original_deposit,
			deposit_frequency, deposit_day, return_rate, low_growth, high_growth,
			tax_treatment, include_in_passive
		FROM assets WHERE profile_id = ? ORDER BY created_at, id`, p.ID)
	if err != nil {
		return apperrors.NewStoreError("get", p.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var a models.Asset
		var start, created sql.NullTime
		var low, high sql.NullFloat64
		var includePassive sql.NullInt64
		var freq, treatment string
		if err := rows.Scan(&a.ID, &a.Name, &a.Value, &start, &created, &a.OriginalDeposit,
			&freq, &a.DepositDay, &a.Return, &low, &high, &treatment, &includePassive); err != nil {
			return apperrors.NewStoreError("get", p.ID, err)
		}
		if start.Valid {
			a.StartDate = start.Time
		}
		if created.Valid {
			a.CreatedAt = created.Time
		}
		if low.Valid {
			v := low.Float64
			a.LowGrowth = &v
		}
		if high.Valid {
			v := high.Float64
			a.HighGrowth = &v
		}
		if includePassive.Valid {
			v := includePassive.Int64 != 0
			a.IncludeInPassive = &v
		}
		a.DepositFrequency = models.NormalizeFrequency(freq)
		a.TaxTreatment = models.NormalizeTaxTreatment(treatment)
		p.Assets = append(p.Assets, a)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewStoreError("get", p.ID, err)
	}

	lrows, err := s.db.QueryContext(ctx, `
		SELECT id, name, value, interest_rate, monthly_payment, start_date, created_at
		FROM liabilities WHERE profile_id = ? ORDER BY created_at, id`, p.ID)
	if err != nil {
		return apperrors.NewStoreError("get", p.ID, err)
	}
	defer lrows.Close()
	for lrows.Next() {
		var l models.Liability
		var start, created sql.NullTime
		if err := lrows.Scan(&l.ID, &l.Name, &l.Value, &l.InterestRate, &l.MonthlyPayment, &start, &created); err != nil {
			return apperrors.NewStoreError("get", p.ID, err)
		}
		if start.Valid {
			l.StartDate = start.Time
		}
		if created.Valid {
			l.CreatedAt = created.Time
		}
		p.Liabilities = append(p.Liabilities, l)
	}
	if err := lrows.Err(); err != nil {
		return apperrors.NewStoreError("get", p.ID, err)
	}

	// Events load in insertion order; the forecast core relies on that
	// order to break same-date ties.
	erows, err := s.db.QueryContext(ctx, `
		SELECT date, amount, is_percent, asset_id
		FROM events WHERE profile_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return apperrors.NewStoreError("get", p.ID, err)
	}
	defer erows.Close()
	for erows.Next() {
		var e models.Event
		var isPercent int
		if err := erows.Scan(&e.Date, &e.Amount, &isPercent, &e.AssetID); err != nil {
			return apperrors.NewStoreError("get", p.ID, err)
		}
		e.IsPercent = isPercent != 0
		p.Events = append(p.Events, e)
	}
	return erows.Err()
}

// ListProfiles returns summary rows for all profiles.
func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]ProfileInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.currency, p.active, p.created_at,
			(SELECT COUNT(*) FROM assets a WHERE a.profile_id = p.id)
		FROM profiles p ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list", "", err)
	}
	defer rows.Close()

	var infos []ProfileInfo
	for rows.Next() {
		var info ProfileInfo
		var active int
		if err := rows.Scan(&info.ID, &info.Name, &info.Currency, &active, &info.CreatedAt, &info.Assets); err != nil {
			return nil, apperrors.NewStoreError("list", "", err)
		}
		info.Active = active != 0
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteProfile removes a profile and all its children.
func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewStoreError("delete", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// SetActiveProfile marks the given profile active and all others inactive.
func (s *SQLiteStore) SetActiveProfile(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError("activate", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE profiles SET active = 0`); err != nil {
		return apperrors.NewStoreError("activate", id, err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE profiles SET active = 1 WHERE id = ?`, id)
	if err != nil {
		return apperrors.NewStoreError("activate", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrProfileNotFound
	}
	return tx.Commit()
}

// ActiveProfileID returns the id of the active profile.
func (s *SQLiteStore) ActiveProfileID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM profiles WHERE active = 1 LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrNoActiveProfile
	}
	if err != nil {
		return "", apperrors.NewStoreError("active", "", err)
	}
	return id, nil
}

// ActiveProfile loads the active profile's full working set.
func (s *SQLiteStore) ActiveProfile(ctx context.Context) (*models.Profile, error) {
	id, err := s.ActiveProfileID(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

// AddAsset inserts one asset into a profile.
func (s *SQLiteStore) AddAsset(ctx context.Context, profileID string, a *models.Asset) error {
	models.NormalizeAsset(a)
	return s.inTx(ctx, "add_asset", profileID, func(tx *sql.Tx) error {
		return insertAsset(ctx, tx, profileID, a)
	})
}

// UpdateAsset replaces one asset.
func (s *SQLiteStore) UpdateAsset(ctx context.Context, profileID string, a *models.Asset) error {
	models.NormalizeAsset(a)
	return s.inTx(ctx, "update_asset", profileID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE id = ? AND profile_id = ?`, a.ID, profileID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.ErrAssetNotFound
		}
		return insertAsset(ctx, tx, profileID, a)
	})
}

// RemoveAsset deletes one asset and any events targeting it.
func (s *SQLiteStore) RemoveAsset(ctx context.Context, profileID, assetID string) error {
	return s.inTx(ctx, "remove_asset", profileID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE id = ? AND profile_id = ?`, assetID, profileID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.ErrAssetNotFound
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE asset_id = ? AND profile_id = ?`, assetID, profileID)
		return err
	})
}

// AddLiability inserts one liability into a profile.
func (s *SQLiteStore) AddLiability(ctx context.Context, profileID string, l *models.Liability) error {
	models.NormalizeLiability(l)
	return s.inTx(ctx, "add_liability", profileID, func(tx *sql.Tx) error {
		return insertLiability(ctx, tx, profileID, l)
	})
}

// UpdateLiability replaces one liability.
func (s *SQLiteStore) UpdateLiability(ctx context.Context, profileID string, l *models.Liability) error {
	models.NormalizeLiability(l)
	return s.inTx(ctx, "update_liability", profileID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM liabilities WHERE id = ? AND profile_id = ?`, l.ID, profileID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.ErrLiabilityNotFound
		}
		return insertLiability(ctx, tx, profileID, l)
	})
}

// RemoveLiability deletes one liability.
func (s *SQLiteStore) RemoveLiability(ctx context.Context, profileID, liabilityID string) error {
	return s.inTx(ctx, "remove_liability", profileID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM liabilities WHERE id = ? AND profile_id = ?`, liabilityID, profileID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.ErrLiabilityNotFound
		}
		return nil
	})
}

// AddEvent inserts one event into a profile.
func (s *SQLiteStore) AddEvent(ctx context.Context, profileID string, e *models.Event) error {
	models.NormalizeEvent(e)
	return s.inTx(ctx, "add_event", profileID, func(tx *sql.Tx) error {
		return insertEvent(ctx, tx, profileID, e)
	})
}

// RemoveEvent deletes one event by its row id.
func (s *SQLiteStore) RemoveEvent(ctx context.Context, profileID string, rowID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ? AND profile_id = ?`, rowID, profileID)
	if err != nil {
		return apperrors.NewStoreError("remove_event", profileID, err)
	}
	return nil
}

// ListEvents returns a profile's events with their row ids, in insertion
// order.
func (s *SQLiteStore) ListEvents(ctx context.Context, profileID string) ([]StoredEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, is_percent, asset_id
		FROM events WHERE profile_id = ? ORDER BY id`, profileID)
	if err != nil {
		return nil, apperrors.NewStoreError("list_events", profileID, err)
	}
	defer rows.Close()

	var events []StoredEvent
	for rows.Next() {
		var se StoredEvent
		var isPercent int
		if err := rows.Scan(&se.RowID, &se.Event.Date, &se.Event.Amount, &isPercent, &se.Event.AssetID); err != nil {
			return nil, apperrors.NewStoreError("list_events", profileID, err)
		}
		se.Event.IsPercent = isPercent != 0
		events = append(events, se)
	}
	return events, rows.Err()
}

// SetGoal sets or replaces a profile's goal.
func (s *SQLiteStore) SetGoal(ctx context.Context, profileID string, goal *models.Goal) error {
	_, err := s.db.ExecContext(ctx, `UPDATE profiles SET goal_value = ?, goal_target = ? WHERE id = ?`,
		goal.Value, goal.TargetDate, profileID)
	if err != nil {
		return apperrors.NewStoreError("set_goal", profileID, err)
	}
	return nil
}

// ClearGoal removes a profile's goal.
func (s *SQLiteStore) ClearGoal(ctx context.Context, profileID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE profiles SET goal_value = NULL, goal_target = NULL WHERE id = ?`, profileID)
	if err != nil {
		return apperrors.NewStoreError("clear_goal", profileID, err)
	}
	return nil
}

// SetTaxSettings updates a profile's tax settings.
func (s *SQLiteStore) SetTaxSettings(ctx context.Context, profileID string, tax models.TaxSettings) error {
	models.NormalizeTaxSettings(&tax)
	_, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET tax_band = ?, income_allowance = ?, dividend_allowance = ?, capital_allowance = ?
		WHERE id = ?`,
		string(tax.Band), tax.IncomeAllowance, tax.DividendAllowance, tax.CapitalAllowance, profileID)
	if err != nil {
		return apperrors.NewStoreError("set_tax", profileID, err)
	}
	return nil
}

// SetPassiveSelection updates a profile's passive-income asset selection.
// A nil slice means all eligible assets.
func (s *SQLiteStore) SetPassiveSelection(ctx context.Context, profileID string, assetIDs []string) error {
	selection, err := json.Marshal(assetIDs)
	if err != nil {
		return apperrors.NewStoreError("set_passive", profileID, err)
	}
	_, err = s.db.ExecContext(ctx, `UPDATE profiles SET passive_selection = ? WHERE id = ?`, string(selection), profileID)
	if err != nil {
		return apperrors.NewStoreError("set_passive", profileID, err)
	}
	return nil
}

func (s *SQLiteStore) inTx(ctx context.Context, op, profileID string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError(op, profileID, err)
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		if apperrors.Is(err, apperrors.ErrAssetNotFound) || apperrors.Is(err, apperrors.ErrLiabilityNotFound) {
			return err
		}
		return apperrors.NewStoreError(op, profileID, err)
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
