package store

import (
	"database/sql"
	"fmt"

	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// LoadDaily returns every recorded day. An empty database yields an empty map.
func (s *Store) LoadDaily() (ledger.Daily, error) {
	rows, err := s.db.Query(`SELECT day, minutes, pomodoros FROM daily_stats`)
	if err != nil {
		return nil, fmt.Errorf("load daily stats: %w", err)
	}
	defer rows.Close()

	d := ledger.Daily{}
	for rows.Next() {
		var day string
		var e ledger.DayEntry
		if err := rows.Scan(&day, &e.Minutes, &e.Pomodoros); err != nil {
			return nil, err
		}
		d[datekey.Key(day)] = e
	}
	return d, rows.Err()
}

// GetDay returns one day's entry and whether it exists.
func (s *Store) GetDay(day datekey.Key) (ledger.DayEntry, bool, error) {
	var e ledger.DayEntry
	err := s.db.QueryRow(
		`SELECT minutes, pomodoros FROM daily_stats WHERE day = ?`, string(day),
	).Scan(&e.Minutes, &e.Pomodoros)
	if err == sql.ErrNoRows {
		return ledger.DayEntry{}, false, nil
	}
	if err != nil {
		return ledger.DayEntry{}, false, fmt.Errorf("get day %s: %w", day, err)
	}
	return e, true, nil
}

// SaveDay overwrites the totals for day.
func (s *Store) SaveDay(day datekey.Key, pomodoros, minutes int) error {
	_, err := s.db.Exec(
		`INSERT INTO daily_stats (day, minutes, pomodoros) VALUES (?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET minutes = excluded.minutes, pomodoros = excluded.pomodoros`,
		string(day), minutes, pomodoros,
	)
	if err != nil {
		return fmt.Errorf("save day %s: %w", day, err)
	}
	return nil
}

// DeleteDay removes the entry for day.
func (s *Store) DeleteDay(day datekey.Key) error {
	if _, err := s.db.Exec(`DELETE FROM daily_stats WHERE day = ?`, string(day)); err != nil {
		return fmt.Errorf("delete day %s: %w", day, err)
	}
	return nil
}

// ReplaceDaily swaps the whole day ledger for d.
func (s *Store) ReplaceDaily(d ledger.Daily) error {
	return s.inTx("replace daily", func(tx *sql.Tx) error {
		return replaceDaily(tx, d)
	})
}

func replaceDaily(tx execer, d ledger.Daily) error {
	if _, err := tx.Exec(`DELETE FROM daily_stats`); err != nil {
		return fmt.Errorf("clear daily stats: %w", err)
	}
	for _, k := range d.Keys() {
		e := d[k]
		if _, err := tx.Exec(
			`INSERT INTO daily_stats (day, minutes, pomodoros) VALUES (?, ?, ?)`,
			string(k), e.Minutes, e.Pomodoros,
		); err != nil {
			return fmt.Errorf("insert day %s: %w", k, err)
		}
	}
	return nil
}
