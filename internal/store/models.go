package store

type Setting struct {
	Key   string
	Value string
}

// Preferences are presentation-only settings. The timer never reads them.
type Preferences struct {
	Theme         string
	BorderColors  bool
	ShowLastStudy bool
	CoverImage    string
}

// Setting keys.
const (
	keyStudy      = "timer_study"
	keyShortBreak = "timer_short_break"
	keyLongBreak  = "timer_long_break"
	keyCycles     = "timer_cycles"
	keyFreeMode   = "timer_free_mode"
	keyFreeBreak  = "timer_free_break"
	keyTheme      = "app_theme"
	keyBorders    = "border_colors_enabled"
	keyLastStudy  = "show_last_study"
	keyCoverImage = "custom_cover_image"
)
