package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type Store struct {
	db    *sql.DB
	log   zerolog.Logger
	fresh bool
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, log: log.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.log.Debug().Str("path", dbPath).Msg("database ready")
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:", zerolog.Nop())
}

// inTx runs fn in a transaction that is committed only when fn succeeds.
func (s *Store) inTx(op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin %s: %w", op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Fresh reports whether this open created the schema.
func (s *Store) Fresh() bool { return s.fresh }

// SchemaVersion reports the migration level of the open database.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return version, nil
}

func (s *Store) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		return err
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
		s.fresh = true
	}

	s.log.Info().Int("from", version).Int("to", currentVersion).Msg("schema migrated")
	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS daily_stats (
		day        TEXT PRIMARY KEY,
		minutes    INTEGER NOT NULL DEFAULT 0,
		pomodoros  INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS activities (
		id              TEXT PRIMARY KEY,
		position        INTEGER NOT NULL,
		name            TEXT NOT NULL,
		goal_hours      INTEGER NOT NULL DEFAULT 0,
		start_date      TEXT NOT NULL,
		current_seconds INTEGER NOT NULL DEFAULT 0,
		daily_tracking  INTEGER NOT NULL DEFAULT 0,
		completed       INTEGER NOT NULL DEFAULT 0,
		end_date        TEXT,
		end_seconds     INTEGER NOT NULL DEFAULT 0,
		end_hours       REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS activity_daily (
		activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		seconds     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (activity_id, day)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('timer_study',           '1500'),
		('timer_short_break',     '300'),
		('timer_long_break',      '900'),
		('timer_cycles',          '4'),
		('timer_free_mode',       'false'),
		('timer_free_break',      '300'),
		('app_theme',             'light'),
		('border_colors_enabled', 'true'),
		('show_last_study',       'true'),
		('custom_cover_image',    '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/pomotrack/pomotrack.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "pomotrack", "pomotrack.db"), nil
}
