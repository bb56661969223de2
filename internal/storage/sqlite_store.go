package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/migration"
	"github.com/julianstephens/flourish/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS profile (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	name          TEXT NOT NULL DEFAULT '',
	pronouns      TEXT NOT NULL DEFAULT '',
	occupation    TEXT NOT NULL DEFAULT '',
	partner       TEXT,
	pets          TEXT NOT NULL DEFAULT '[]',
	children      TEXT NOT NULL DEFAULT '[]',
	top_strengths TEXT NOT NULL DEFAULT '[]',
	onboarded     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS daily_state (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	date     TEXT NOT NULL DEFAULT '',
	shuffled INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS daily_activities (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	strength_id INTEGER NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	origin      TEXT NOT NULL,
	completed_at TEXT,
	journal     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS progress (
	strength_id INTEGER PRIMARY KEY,
	count       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS history (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL,
	strength_id INTEGER NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	origin      TEXT NOT NULL,
	completed_at TEXT NOT NULL,
	journal     TEXT NOT NULL DEFAULT ''
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.applySchema(); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'flourish init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.migrate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) applySchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.CurrentVersion); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version > migration.CurrentVersion {
		return fmt.Errorf("storage schema version %d is newer than this build supports (%d)", version, migration.CurrentVersion)
	}
	if version == migration.CurrentVersion {
		return nil
	}

	profile, err := s.GetProfile()
	if err != nil {
		return err
	}
	migrated, err := migration.MigrateProfile(profile, version)
	if err != nil {
		return fmt.Errorf("failed to migrate storage: %w", err)
	}
	if err := s.SaveProfile(migrated); err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE schema_version SET version = ?", migration.CurrentVersion)
	return err
}

func (s *SQLiteStore) GetProfile() (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT name, pronouns, occupation, partner, pets, children, top_strengths, onboarded
		FROM profile WHERE id = 1`)

	var p models.Profile
	var partner sql.NullString
	var pets, children, topStrengths string

	err := row.Scan(&p.Name, &p.Pronouns, &p.Occupation, &partner, &pets, &children, &topStrengths, &p.Onboarded)
	if err != nil {
		if err == sql.ErrNoRows {
			return migration.ApplyProfileDefaults(models.Profile{}), nil
		}
		return models.Profile{}, err
	}

	if partner.Valid {
		p.Partner = &models.FamilyMember{}
		if err := json.Unmarshal([]byte(partner.String), p.Partner); err != nil {
			return models.Profile{}, fmt.Errorf("failed to parse partner: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(pets), &p.Pets); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse pets: %w", err)
	}
	if err := json.Unmarshal([]byte(children), &p.Children); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse children: %w", err)
	}
	if err := json.Unmarshal([]byte(topStrengths), &p.TopStrengths); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse top strengths: %w", err)
	}

	return migration.ApplyProfileDefaults(p), nil
}

func (s *SQLiteStore) SaveProfile(profile models.Profile) error {
	var partner sql.NullString
	if profile.Partner != nil {
		data, err := json.Marshal(profile.Partner)
		if err != nil {
			return fmt.Errorf("failed to marshal partner: %w", err)
		}
		partner = sql.NullString{String: string(data), Valid: true}
	}

	pets, err := json.Marshal(profile.Pets)
	if err != nil {
		return fmt.Errorf("failed to marshal pets: %w", err)
	}
	children, err := json.Marshal(profile.Children)
	if err != nil {
		return fmt.Errorf("failed to marshal children: %w", err)
	}
	topStrengths, err := json.Marshal(profile.TopStrengths)
	if err != nil {
		return fmt.Errorf("failed to marshal top strengths: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO profile (id, name, pronouns, occupation, partner, pets, children, top_strengths, onboarded)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.Name, profile.Pronouns, profile.Occupation, partner,
		string(pets), string(children), string(topStrengths), profile.Onboarded,
	)
	return err
}

func (s *SQLiteStore) GetDailyState() (models.DailyState, error) {
	var state models.DailyState
	err := s.db.QueryRow("SELECT date, shuffled FROM daily_state WHERE id = 1").Scan(&state.Date, &state.Shuffled)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.DailyState{}, nil
		}
		return models.DailyState{}, err
	}

	rows, err := s.db.Query(`
		SELECT id, strength_id, title, description, origin, completed_at, journal
		FROM daily_activities ORDER BY position`)
	if err != nil {
		return models.DailyState{}, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return models.DailyState{}, err
		}
		state.Activities = append(state.Activities, a)
	}

	return state, rows.Err()
}

func (s *SQLiteStore) SaveDailyState(state models.DailyState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO daily_state (id, date, shuffled) VALUES (1, ?, ?)",
		state.Date, state.Shuffled,
	); err != nil {
		return err
	}

	// The day's activity list is replaced whole on every change.
	if _, err := tx.Exec("DELETE FROM daily_activities"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO daily_activities (id, position, strength_id, title, description, origin, completed_at, journal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range state.Activities {
		if _, err := stmt.Exec(
			a.ID, i, a.StrengthID, a.Title, a.Description, string(a.Origin),
			completedAtValue(a.CompletedAt), a.Journal,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetProgress() ([]models.StrengthProgress, error) {
	rows, err := s.db.Query("SELECT strength_id, count FROM progress ORDER BY strength_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := []models.StrengthProgress{}
	for rows.Next() {
		var p models.StrengthProgress
		if err := rows.Scan(&p.StrengthID, &p.Count); err != nil {
			return nil, err
		}
		// Only the count is stored; the level is always derived.
		info, err := engine.ComputeProgress(p.Count, constants.LevelThresholds)
		if err != nil {
			return nil, fmt.Errorf("failed to derive level for strength %d: %w", p.StrengthID, err)
		}
		p.Level = info.Level
		progress = append(progress, p)
	}

	return progress, rows.Err()
}

func (s *SQLiteStore) SaveProgress(progress []models.StrengthProgress) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM progress"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO progress (strength_id, count) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range progress {
		if _, err := stmt.Exec(p.StrengthID, p.Count); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHistory() ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, strength_id, title, description, origin, completed_at, journal
		FROM history ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, a)
	}

	return history, rows.Err()
}

func (s *SQLiteStore) AppendHistory(entry models.Activity) error {
	if !entry.Completed() {
		return fmt.Errorf("history entry %s is not completed", entry.ID)
	}

	_, err := s.db.Exec(`
		INSERT INTO history (id, strength_id, title, description, origin, completed_at, journal)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.StrengthID, entry.Title, entry.Description, string(entry.Origin),
		entry.CompletedAt.UTC().Format(time.RFC3339), entry.Journal,
	)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func completedAtValue(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func scanActivity(rows *sql.Rows) (models.Activity, error) {
	var a models.Activity
	var origin string
	var completedAt sql.NullString

	if err := rows.Scan(&a.ID, &a.StrengthID, &a.Title, &a.Description, &origin, &completedAt, &a.Journal); err != nil {
		return models.Activity{}, err
	}
	a.Origin = models.ActivityOrigin(origin)

	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.Activity{}, fmt.Errorf("failed to parse completion time for activity %s: %w", a.ID, err)
		}
		a.CompletedAt = &t
	}

	return a, nil
}
