package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/sadopc/pomotrack/internal/timer"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	return setSetting(s.db, key, value)
}

func setSetting(ex execer, key, value string) error {
	_, err := ex.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (s *Store) intSetting(key string, fallback int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.log.Warn().Str("key", key).Str("value", v).Msg("ignoring malformed setting")
		return fallback
	}
	return n
}

func (s *Store) boolSetting(key string, fallback bool) bool {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// GetTimerConfig loads the timer configuration. Missing or malformed values
// fall back to their defaults.
func (s *Store) GetTimerConfig() timer.Config {
	d := timer.DefaultConfig()
	cfg := timer.Config{
		StudySeconds:          s.intSetting(keyStudy, d.StudySeconds),
		ShortBreakSeconds:     s.intSetting(keyShortBreak, d.ShortBreakSeconds),
		LongBreakSeconds:      s.intSetting(keyLongBreak, d.LongBreakSeconds),
		CyclesPerSet:          s.intSetting(keyCycles, d.CyclesPerSet),
		FreeTimer:             s.boolSetting(keyFreeMode, d.FreeTimer),
		FreeTimerBreakSeconds: s.intSetting(keyFreeBreak, d.FreeTimerBreakSeconds),
	}
	return cfg.WithDefaults()
}

// SaveTimerConfig validates and stores cfg.
func (s *Store) SaveTimerConfig(cfg timer.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.inTx("save timer config", func(tx *sql.Tx) error {
		return saveTimerConfig(tx, cfg)
	})
}

func saveTimerConfig(ex execer, cfg timer.Config) error {
	values := map[string]string{
		keyStudy:      strconv.Itoa(cfg.StudySeconds),
		keyShortBreak: strconv.Itoa(cfg.ShortBreakSeconds),
		keyLongBreak:  strconv.Itoa(cfg.LongBreakSeconds),
		keyCycles:     strconv.Itoa(cfg.CyclesPerSet),
		keyFreeMode:   strconv.FormatBool(cfg.FreeTimer),
		keyFreeBreak:  strconv.Itoa(cfg.FreeTimerBreakSeconds),
	}
	for k, v := range values {
		if err := setSetting(ex, k, v); err != nil {
			return fmt.Errorf("save timer config: %w", err)
		}
	}
	return nil
}

// GetPreferences loads the presentation settings.
func (s *Store) GetPreferences() Preferences {
	theme, err := s.GetSetting(keyTheme)
	if err != nil || theme == "" {
		theme = "light"
	}
	cover, _ := s.GetSetting(keyCoverImage)
	return Preferences{
		Theme:         theme,
		BorderColors:  s.boolSetting(keyBorders, true),
		ShowLastStudy: s.boolSetting(keyLastStudy, true),
		CoverImage:    cover,
	}
}

// SavePreferences stores the presentation settings.
func (s *Store) SavePreferences(p Preferences) error {
	values := [][2]string{
		{keyTheme, p.Theme},
		{keyBorders, strconv.FormatBool(p.BorderColors)},
		{keyLastStudy, strconv.FormatBool(p.ShowLastStudy)},
		{keyCoverImage, p.CoverImage},
	}
	for _, kv := range values {
		if err := s.SetSetting(kv[0], kv[1]); err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}
	}
	return nil
}
