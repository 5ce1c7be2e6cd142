// Package persistence stores the simulation snapshot in SQLite. The core
// has no opinion on the medium; this package serializes the snapshot
// verbatim and tolerates rehydration from any prior save plus a stale
// last-tick.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ambergrove/hearthome/internal/engine"
	"github.com/ambergrove/hearthome/internal/garden"
	"github.com/ambergrove/hearthome/internal/pantry"
	"github.com/ambergrove/hearthome/internal/synergy"
)

// DB wraps a SQLite connection for snapshot persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		type_id TEXT NOT NULL,
		family TEXT NOT NULL,
		growth_progress REAL NOT NULL,
		stage TEXT NOT NULL,
		light_exposed INTEGER NOT NULL,
		pot_modifier REAL NOT NULL,
		env_score REAL NOT NULL,
		env_seeded INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goods (
		id TEXT PRIMARY KEY,
		type_id TEXT NOT NULL,
		location TEXT NOT NULL,
		quantity REAL NOT NULL,
		freshness REAL NOT NULL,
		max_fresh_days REAL NOT NULL,
		days_on_shelf REAL NOT NULL,
		dried INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS synergy_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		amount REAL NOT NULL,
		emitted_on_day REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		day REAL NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sim_events_day ON sim_events(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveState performs a full-replace save of the envelope and the synergy
// event log.
func (db *DB) SaveState(env engine.Envelope, busEvents []synergy.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"units", "goods", "synergy_events"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, u := range env.Snapshot.Units {
		_, err := tx.Exec(`INSERT INTO units
			(id, type_id, family, growth_progress, stage, light_exposed, pot_modifier, env_score, env_seeded)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID.String(), u.TypeID, string(u.Family), u.GrowthProgress, string(u.Stage),
			boolInt(u.LightExposed), u.PotModifier, u.EnvScore, boolInt(u.EnvSeeded),
		)
		if err != nil {
			return fmt.Errorf("insert unit %s: %w", u.ID, err)
		}
	}

	for _, g := range env.Snapshot.Goods {
		_, err := tx.Exec(`INSERT INTO goods
			(id, type_id, location, quantity, freshness, max_fresh_days, days_on_shelf, dried)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID.String(), g.TypeID, g.Location, g.Quantity, g.Freshness,
			g.MaxFreshDays, g.DaysOnShelf, boolInt(g.Dried),
		)
		if err != nil {
			return fmt.Errorf("insert good %s: %w", g.ID, err)
		}
	}

	for _, ev := range busEvents {
		_, err := tx.Exec(`INSERT INTO synergy_events
			(type, source, target, amount, emitted_on_day)
			VALUES (?, ?, ?, ?, ?)`,
			ev.Type, string(ev.Source), string(ev.Target), ev.Amount, ev.EmittedOnDay,
		)
		if err != nil {
			return fmt.Errorf("insert synergy event: %w", err)
		}
	}

	meta := map[string]string{
		"last_tick":      env.LastTick.UTC().Format(time.RFC3339Nano),
		"game_start":     env.GameStart.UTC().Format(time.RFC3339Nano),
		"last_rent_paid": env.Snapshot.LastRentPaid.UTC().Format(time.RFC3339Nano),
		"money":          fmt.Sprintf("%g", env.Snapshot.Econ.Money),
		"weekly_rent":    fmt.Sprintf("%g", env.Snapshot.Econ.WeeklyRent),
		"grocery_base":   fmt.Sprintf("%g", env.Snapshot.Econ.WeeklyGroceryBase),
		"weekly_income":  fmt.Sprintf("%g", env.Snapshot.WeeklyIncome),
		"storage_bonus":  fmt.Sprintf("%g", env.Snapshot.StorageBonus),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// HasState reports whether a previous save exists.
func (db *DB) HasState() bool {
	var v string
	err := db.conn.Get(&v, "SELECT value FROM meta WHERE key = 'game_start'")
	return err == nil
}

// LoadState rehydrates the envelope and synergy event log from the last
// save. The envelope's CurrentTime is left zero; the caller sets it from
// its clock before the next tick.
func (db *DB) LoadState() (engine.Envelope, []synergy.Event, error) {
	var env engine.Envelope

	type unitRow struct {
		ID             string  `db:"id"`
		TypeID         string  `db:"type_id"`
		Family         string  `db:"family"`
		GrowthProgress float64 `db:"growth_progress"`
		Stage          string  `db:"stage"`
		LightExposed   int     `db:"light_exposed"`
		PotModifier    float64 `db:"pot_modifier"`
		EnvScore       float64 `db:"env_score"`
		EnvSeeded      int     `db:"env_seeded"`
	}
	var unitRows []unitRow
	if err := db.conn.Select(&unitRows, "SELECT * FROM units"); err != nil {
		return env, nil, fmt.Errorf("load units: %w", err)
	}
	for _, r := range unitRows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return env, nil, fmt.Errorf("unit id %q: %w", r.ID, err)
		}
		env.Snapshot.Units = append(env.Snapshot.Units, garden.Unit{
			ID:             id,
			TypeID:         r.TypeID,
			Family:         garden.Family(r.Family),
			GrowthProgress: r.GrowthProgress,
			Stage:          garden.Stage(r.Stage),
			LightExposed:   r.LightExposed != 0,
			PotModifier:    r.PotModifier,
			EnvScore:       r.EnvScore,
			EnvSeeded:      r.EnvSeeded != 0,
		})
	}

	type goodRow struct {
		ID           string  `db:"id"`
		TypeID       string  `db:"type_id"`
		Location     string  `db:"location"`
		Quantity     float64 `db:"quantity"`
		Freshness    float64 `db:"freshness"`
		MaxFreshDays float64 `db:"max_fresh_days"`
		DaysOnShelf  float64 `db:"days_on_shelf"`
		Dried        int     `db:"dried"`
	}
	var goodRows []goodRow
	if err := db.conn.Select(&goodRows, "SELECT * FROM goods"); err != nil {
		return env, nil, fmt.Errorf("load goods: %w", err)
	}
	for _, r := range goodRows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return env, nil, fmt.Errorf("good id %q: %w", r.ID, err)
		}
		env.Snapshot.Goods = append(env.Snapshot.Goods, pantry.Good{
			ID:           id,
			TypeID:       r.TypeID,
			Location:     r.Location,
			Quantity:     r.Quantity,
			Freshness:    r.Freshness,
			MaxFreshDays: r.MaxFreshDays,
			DaysOnShelf:  r.DaysOnShelf,
			Dried:        r.Dried != 0,
		})
	}

	type synergyRow struct {
		ID           int64   `db:"id"`
		Type         string  `db:"type"`
		Source       string  `db:"source"`
		Target       string  `db:"target"`
		Amount       float64 `db:"amount"`
		EmittedOnDay float64 `db:"emitted_on_day"`
	}
	var synergyRows []synergyRow
	if err := db.conn.Select(&synergyRows, "SELECT * FROM synergy_events ORDER BY id"); err != nil {
		return env, nil, fmt.Errorf("load synergy events: %w", err)
	}
	busEvents := make([]synergy.Event, 0, len(synergyRows))
	for _, r := range synergyRows {
		busEvents = append(busEvents, synergy.Event{
			Type:         r.Type,
			Source:       synergy.Subsystem(r.Source),
			Target:       synergy.Subsystem(r.Target),
			Amount:       r.Amount,
			EmittedOnDay: r.EmittedOnDay,
		})
	}

	var err error
	if env.LastTick, err = db.metaTime("last_tick"); err != nil {
		return env, nil, err
	}
	if env.GameStart, err = db.metaTime("game_start"); err != nil {
		return env, nil, err
	}
	if env.Snapshot.LastRentPaid, err = db.metaTime("last_rent_paid"); err != nil {
		return env, nil, err
	}
	if env.Snapshot.Econ.Money, err = db.metaFloat("money"); err != nil {
		return env, nil, err
	}
	if env.Snapshot.Econ.WeeklyRent, err = db.metaFloat("weekly_rent"); err != nil {
		return env, nil, err
	}
	if env.Snapshot.Econ.WeeklyGroceryBase, err = db.metaFloat("grocery_base"); err != nil {
		return env, nil, err
	}
	if env.Snapshot.WeeklyIncome, err = db.metaFloat("weekly_income"); err != nil {
		return env, nil, err
	}
	if env.Snapshot.StorageBonus, err = db.metaFloat("storage_bonus"); err != nil {
		return env, nil, err
	}

	return env, busEvents, nil
}

// AppendEvents writes tick events to the append-only log.
func (db *DB) AppendEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ev := range events {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO sim_events (kind, day, payload) VALUES (?, ?, ?)",
			string(ev.Kind), ev.Day, string(payload),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N logged events, newest first.
// Payloads come back as raw JSON maps.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	type eventRow struct {
		Kind    string  `db:"kind"`
		Day     float64 `db:"day"`
		Payload string  `db:"payload"`
	}
	var rows []eventRow
	err := db.conn.Select(&rows,
		"SELECT kind, day, payload FROM sim_events ORDER BY id DESC LIMIT ?", limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	events := make([]engine.Event, 0, len(rows))
	for _, r := range rows {
		var payload any
		if err := json.Unmarshal([]byte(r.Payload), &payload); err != nil {
			slog.Warn("skipping malformed event payload", "kind", r.Kind, "error", err)
			continue
		}
		events = append(events, engine.Event{Kind: engine.EventKind(r.Kind), Day: r.Day, Payload: payload})
	}
	return events, nil
}

func (db *DB) metaTime(key string) (time.Time, error) {
	var v string
	if err := db.conn.Get(&v, "SELECT value FROM meta WHERE key = ?", key); err != nil {
		return time.Time{}, fmt.Errorf("meta %s: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("meta %s: %w", key, err)
	}
	return t, nil
}

func (db *DB) metaFloat(key string) (float64, error) {
	var v float64
	if err := db.conn.Get(&v, "SELECT value FROM meta WHERE key = ?", key); err != nil {
		return 0, fmt.Errorf("meta %s: %w", key, err)
	}
	return v, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
