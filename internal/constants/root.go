package constants

const (
	AppName           = "habitflow"
	DefaultConfigPath = "~/.config/habitflow/habitflow.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// StreakHorizonDays bounds the backward walk when computing streaks.
	// Streaks are never reported above this value.
	StreakHorizonDays = 365

	// Persisted key-value layout
	KeyHabitsList    = "habits_list"
	KeyActiveHabitID = "active_habit_id"
	KeyFirstRun      = "first_run"
	StatusKeySuffix  = "_success"

	// Default habit, seeded once on first run
	DefaultHabitID    = "default_habit"
	DefaultHabitName  = "My habit"
	DefaultHabitIcon  = "🎯"
	DefaultHabitColor = "#4CAF50"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifierLockfileName   = "habitflow-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitflow"
)
