package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sadopc/pomotrack/internal/config"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/store"
	"github.com/sadopc/pomotrack/internal/timer"
	"github.com/sadopc/pomotrack/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := store.New(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	if s.Fresh() && cfg.PresetFile != "" {
		if err := applyPreset(s, cfg.PresetFile); err != nil {
			log.Warn().Err(err).Str("path", cfg.PresetFile).Msg("preset not applied")
		} else {
			log.Info().Str("path", cfg.PresetFile).Msg("preset applied")
		}
	}

	if cfg.Headless {
		return runHeadless(s, log)
	}

	app, err := tui.NewApp(s, tui.Options{
		ExportDir:    cfg.ExportDir,
		CoverLimitMB: cfg.CoverLimitMB,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// newLogger writes JSON to the log file, since the TUI owns the terminal.
// Development builds log to the console instead.
func newLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var w io.Writer
	closer := func() {}
	if cfg.Development() || cfg.Headless {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, closer, nil
}

func applyPreset(s *store.Store, path string) error {
	p, err := config.LoadPreset(path)
	if err != nil {
		return err
	}
	if err := s.SaveTimerConfig(p.TimerConfig()); err != nil {
		return err
	}

	prefs := s.GetPreferences()
	if p.Preferences.Theme != "" {
		prefs.Theme = p.Preferences.Theme
	}
	if p.Preferences.BorderColors != nil {
		prefs.BorderColors = *p.Preferences.BorderColors
	}
	if p.Preferences.ShowLastStudy != nil {
		prefs.ShowLastStudy = *p.Preferences.ShowLastStudy
	}
	return s.SavePreferences(prefs)
}

// runHeadless runs the timer without a UI until interrupted, logging each
// phase change. Every phase starts automatically.
func runHeadless(s *store.Store, log zerolog.Logger) error {
	daily, err := s.LoadDaily()
	if err != nil {
		return err
	}
	acts, err := s.LoadActivities()
	if err != nil {
		return err
	}

	var eng *timer.Engine
	eng = timer.New(
		s.GetTimerConfig(),
		daily[datekey.Today()],
		ledger.NewActivities(acts),
		s,
		timer.WithLogger(log),
		timer.WithEventHandler(func(ev timer.Event) {
			st := eng.Snapshot()
			log.Info().
				Stringer("event", ev.Kind).
				Stringer("next", ev.Next).
				Int("today_minutes", st.TodaySeconds/60).
				Int("today_pomodoros", st.TodayPomodoros).
				Msg("phase finished")
			eng.Start()
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng.Start()
	log.Info().Stringer("mode", eng.Snapshot().Mode).Msg("headless timer started")

	err = timer.Run(ctx, time.Second, eng.Tick)
	if res := eng.Commit(); res.Err != nil {
		log.Error().Err(res.Err).Msg("final commit")
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
