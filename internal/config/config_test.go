package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/pomotrack/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POMOTRACK_DB_PATH", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2.0, cfg.CoverLimitMB)
	assert.False(t, cfg.Headless)
	assert.False(t, cfg.Development())
	assert.Equal(t, "pomotrack.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "pomotrack.log", filepath.Base(cfg.LogPath))
	assert.NotEmpty(t, cfg.ExportDir)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POMOTRACK_ENVIRONMENT", "development")
	t.Setenv("POMOTRACK_LOG_LEVEL", "debug")
	t.Setenv("POMOTRACK_DB_PATH", filepath.Join(dir, "x.db"))
	t.Setenv("POMOTRACK_LOG_PATH", filepath.Join(dir, "x.log"))
	t.Setenv("POMOTRACK_EXPORT_DIR", dir)
	t.Setenv("POMOTRACK_COVER_LIMIT_MB", "0.5")
	t.Setenv("POMOTRACK_HEADLESS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Development())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "x.db"), cfg.DBPath)
	assert.Equal(t, dir, cfg.ExportDir)
	assert.Equal(t, 0.5, cfg.CoverLimitMB)
	assert.True(t, cfg.Headless)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("POMOTRACK_COVER_LIMIT_MB", "lots")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadPresetBytes(t *testing.T) {
	p, err := LoadPresetBytes([]byte(`
timer:
  study: 50m
  short_break: 10m
  cycles_per_set: 3
  free_timer: true
preferences:
  theme: dark
  show_last_study: false
`))
	require.NoError(t, err)
	assert.Equal(t, 50*time.Minute, p.Timer.Study)
	assert.Equal(t, 15*time.Minute, p.Timer.LongBreak, "missing values take defaults")
	assert.Equal(t, "dark", p.Preferences.Theme)
	require.NotNil(t, p.Preferences.ShowLastStudy)
	assert.False(t, *p.Preferences.ShowLastStudy)
	assert.Nil(t, p.Preferences.BorderColors)

	assert.Equal(t, timer.Config{
		StudySeconds:          3000,
		ShortBreakSeconds:     600,
		LongBreakSeconds:      900,
		CyclesPerSet:          3,
		FreeTimer:             true,
		FreeTimerBreakSeconds: 300,
	}, p.TimerConfig())
}

func TestLoadPresetBytes_Empty(t *testing.T) {
	p, err := LoadPresetBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, timer.DefaultConfig(), p.TimerConfig())
}

func TestLoadPresetBytes_Invalid(t *testing.T) {
	_, err := LoadPresetBytes([]byte("timer:\n  study: forever\n"))
	assert.Error(t, err)
}

func TestLoadPreset_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  study: 45m\n"), 0o644))
	p, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, 45*60, p.TimerConfig().StudySeconds)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
