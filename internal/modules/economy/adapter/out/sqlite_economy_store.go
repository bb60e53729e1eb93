package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scrub/internal/modules/economy/domain"
	economyout "scrub/internal/modules/economy/port/out"
	"scrub/internal/platform/tx"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteEconomyStore backs the streak, ledger, and settings scalars with
// single-row tables, and derives earnings from the sessions table.
type SQLiteEconomyStore struct {
	db *sql.DB
}

func NewSQLiteEconomyStore(db *sql.DB) (*SQLiteEconomyStore, error) {
	store := &SQLiteEconomyStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteEconomyStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS streak (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  count INTEGER NOT NULL DEFAULT 0,
  last_session_day TEXT
);
CREATE TABLE IF NOT EXISTS ledger (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  spent_points INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS reward_unlocks (
  reward_id TEXT NOT NULL,
  cost INTEGER NOT NULL,
  unlocked_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  daily_target INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create economy tables: %w", err)
	}
	return nil
}

func (s *SQLiteEconomyStore) LoadStreak(ctx context.Context) (domain.StreakState, error) {
	var count int
	var lastDay sql.NullString
	err := tx.Q(ctx, s.db).QueryRowContext(ctx, `SELECT count, last_session_day FROM streak WHERE id = 1`).Scan(&count, &lastDay)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StreakState{}, nil
	}
	if err != nil {
		return domain.StreakState{}, fmt.Errorf("load streak: %w", err)
	}
	state := domain.StreakState{Count: count}
	if lastDay.Valid && lastDay.String != "" {
		if state.LastSessionDay, err = time.Parse(timeLayout, lastDay.String); err != nil {
			return domain.StreakState{}, fmt.Errorf("parse last_session_day: %w", err)
		}
	}
	return state, nil
}

func (s *SQLiteEconomyStore) SaveStreak(ctx context.Context, state domain.StreakState) error {
	const stmt = `
INSERT INTO streak (id, count, last_session_day) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET count=excluded.count, last_session_day=excluded.last_session_day;
`
	var lastDay any
	if !state.LastSessionDay.IsZero() {
		lastDay = state.LastSessionDay.Format(timeLayout)
	}
	if _, err := tx.Q(ctx, s.db).ExecContext(ctx, stmt, state.Count, lastDay); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

func (s *SQLiteEconomyStore) LoadLedger(ctx context.Context) (domain.Ledger, error) {
	q := tx.Q(ctx, s.db)
	ledger := domain.Ledger{}
	err := q.QueryRowContext(ctx, `SELECT spent_points FROM ledger WHERE id = 1`).Scan(&ledger.SpentPoints)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.Ledger{}, fmt.Errorf("load ledger: %w", err)
	}
	rows, err := q.QueryContext(ctx, `SELECT reward_id, cost, unlocked_at FROM reward_unlocks ORDER BY unlocked_at`)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("load reward unlocks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var unlock domain.RewardUnlock
		var at string
		if err := rows.Scan(&unlock.RewardID, &unlock.Cost, &at); err != nil {
			return domain.Ledger{}, fmt.Errorf("scan reward unlock: %w", err)
		}
		if unlock.UnlockedAt, err = time.Parse(timeLayout, at); err != nil {
			return domain.Ledger{}, fmt.Errorf("parse unlocked_at: %w", err)
		}
		ledger.Unlocked = append(ledger.Unlocked, unlock)
	}
	if err := rows.Err(); err != nil {
		return domain.Ledger{}, fmt.Errorf("load reward unlocks: %w", err)
	}
	return ledger, nil
}

func (s *SQLiteEconomyStore) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	q := tx.Q(ctx, s.db)
	const stmt = `
INSERT INTO ledger (id, spent_points) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET spent_points=excluded.spent_points;
`
	if _, err := q.ExecContext(ctx, stmt, ledger.SpentPoints); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM reward_unlocks`); err != nil {
		return fmt.Errorf("reset reward unlocks: %w", err)
	}
	for _, unlock := range ledger.Unlocked {
		_, err := q.ExecContext(ctx, `INSERT INTO reward_unlocks (reward_id, cost, unlocked_at) VALUES (?, ?, ?)`,
			unlock.RewardID, unlock.Cost, unlock.UnlockedAt.Format(timeLayout))
		if err != nil {
			return fmt.Errorf("save reward unlock: %w", err)
		}
	}
	return nil
}

func (s *SQLiteEconomyStore) LoadSettings(ctx context.Context) (domain.Settings, error) {
	settings := domain.Settings{}
	err := tx.Q(ctx, s.db).QueryRowContext(ctx, `SELECT daily_target FROM settings WHERE id = 1`).Scan(&settings.DailyTarget)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Settings{DailyTarget: domain.DefaultDailyTarget}, nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteEconomyStore) SaveSettings(ctx context.Context, settings domain.Settings) error {
	const stmt = `
INSERT INTO settings (id, daily_target) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET daily_target=excluded.daily_target;
`
	if _, err := tx.Q(ctx, s.db).ExecContext(ctx, stmt, settings.DailyTarget); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// TotalEarned sums every session's scored total; task points land here
// the moment they are completed, verification bonuses when finalized.
func (s *SQLiteEconomyStore) TotalEarned(ctx context.Context) (float64, error) {
	var earned sql.NullFloat64
	err := tx.Q(ctx, s.db).QueryRowContext(ctx, `SELECT SUM(total_points) FROM sessions`).Scan(&earned)
	if err != nil {
		return 0, fmt.Errorf("sum earned points: %w", err)
	}
	return earned.Float64, nil
}

// The single sqlite store serves every economy port.
type streakStoreView struct{ *SQLiteEconomyStore }
type ledgerStoreView struct{ *SQLiteEconomyStore }
type settingsStoreView struct{ *SQLiteEconomyStore }

func (v streakStoreView) Load(ctx context.Context) (domain.StreakState, error) {
	return v.LoadStreak(ctx)
}
func (v streakStoreView) Save(ctx context.Context, state domain.StreakState) error {
	return v.SaveStreak(ctx, state)
}
func (v ledgerStoreView) Load(ctx context.Context) (domain.Ledger, error) { return v.LoadLedger(ctx) }
func (v ledgerStoreView) Save(ctx context.Context, ledger domain.Ledger) error {
	return v.SaveLedger(ctx, ledger)
}
func (v settingsStoreView) Load(ctx context.Context) (domain.Settings, error) {
	return v.LoadSettings(ctx)
}
func (v settingsStoreView) Save(ctx context.Context, settings domain.Settings) error {
	return v.SaveSettings(ctx, settings)
}

func (s *SQLiteEconomyStore) Streaks() economyout.StreakStore     { return streakStoreView{s} }
func (s *SQLiteEconomyStore) Ledgers() economyout.LedgerStore     { return ledgerStoreView{s} }
func (s *SQLiteEconomyStore) Settings() economyout.SettingsStore  { return settingsStoreView{s} }
func (s *SQLiteEconomyStore) Earnings() economyout.EarningsSource { return s }
