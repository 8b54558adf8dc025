package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// LoadActivities returns the activity list in saved order with defaults
// filled in.
func (s *Store) LoadActivities() ([]ledger.Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, name, goal_hours, start_date, current_seconds, daily_tracking,
		       completed, end_date, end_seconds, end_hours
		FROM activities ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var acts []ledger.Activity
	byID := map[string]int{}
	for rows.Next() {
		var a ledger.Activity
		var startDate string
		var endDate sql.NullString
		var tracking, completed int
		if err := rows.Scan(&a.ID, &a.Name, &a.GoalHours, &startDate, &a.CurrentSeconds, &tracking,
			&completed, &endDate, &a.EndSeconds, &a.EndHours); err != nil {
			return nil, err
		}
		a.StartDate, _ = time.Parse(time.RFC3339, startDate)
		a.StartDate = a.StartDate.Local()
		if endDate.Valid {
			t, _ := time.Parse(time.RFC3339, endDate.String)
			t = t.Local()
			a.EndDate = &t
		}
		a.Completed = completed == 1
		if tracking == 1 {
			a.DailySeconds = map[datekey.Key]int64{}
		}
		byID[a.ID] = len(acts)
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadActivityDaily(acts, byID); err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range acts {
		acts[i].Normalize(now)
	}
	return acts, nil
}

func (s *Store) loadActivityDaily(acts []ledger.Activity, byID map[string]int) error {
	rows, err := s.db.Query(`SELECT activity_id, day, seconds FROM activity_daily`)
	if err != nil {
		return fmt.Errorf("list activity days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, day string
		var secs int64
		if err := rows.Scan(&id, &day, &secs); err != nil {
			return err
		}
		i, ok := byID[id]
		if !ok {
			continue
		}
		if acts[i].DailySeconds == nil {
			acts[i].DailySeconds = map[datekey.Key]int64{}
		}
		acts[i].DailySeconds[datekey.Key(day)] = secs
	}
	return rows.Err()
}

// SaveActivities replaces the stored list with acts.
func (s *Store) SaveActivities(acts []ledger.Activity) error {
	return s.inTx("save activities", func(tx *sql.Tx) error {
		return saveActivities(tx, acts)
	})
}

func saveActivities(tx execer, acts []ledger.Activity) error {
	if _, err := tx.Exec(`DELETE FROM activity_daily`); err != nil {
		return fmt.Errorf("clear activity days: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM activities`); err != nil {
		return fmt.Errorf("clear activities: %w", err)
	}

	for pos, a := range acts {
		var endDate any
		if a.EndDate != nil {
			endDate = a.EndDate.UTC().Format(time.RFC3339)
		}
		if _, err := tx.Exec(`
			INSERT INTO activities (id, position, name, goal_hours, start_date, current_seconds,
			                        daily_tracking, completed, end_date, end_seconds, end_hours)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, pos, a.Name, a.GoalHours, a.StartDate.UTC().Format(time.RFC3339), a.CurrentSeconds,
			boolInt(a.TracksDaily()), boolInt(a.Completed), endDate, a.EndSeconds, a.EndHours,
		); err != nil {
			return fmt.Errorf("insert activity %q: %w", a.Name, err)
		}
		for day, secs := range a.DailySeconds {
			if _, err := tx.Exec(
				`INSERT INTO activity_daily (activity_id, day, seconds) VALUES (?, ?, ?)`,
				a.ID, string(day), secs,
			); err != nil {
				return fmt.Errorf("insert activity day %s: %w", day, err)
			}
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
