package store

import (
	"database/sql"

	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/timer"
)

// Import replaces the day ledger, the activity list and the timer config in
// one transaction. A nil argument leaves that section as it is; an empty,
// non-nil one clears it. Nothing is written unless every section succeeds.
func (s *Store) Import(d ledger.Daily, acts []ledger.Activity, cfg *timer.Config) error {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	err := s.inTx("import", func(tx *sql.Tx) error {
		if d != nil {
			if err := replaceDaily(tx, d); err != nil {
				return err
			}
		}
		if acts != nil {
			if err := saveActivities(tx, acts); err != nil {
				return err
			}
		}
		if cfg != nil {
			return saveTimerConfig(tx, *cfg)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().
		Bool("daily", d != nil).
		Int("activities", len(acts)).
		Bool("timer_config", cfg != nil).
		Msg("import applied")
	return nil
}
