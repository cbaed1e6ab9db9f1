package domain

// Default configuration values
const (
	DefaultGranularityMinutes = 30
	DefaultMinLeadMinutes     = 60
	DefaultMaxHorizonDays     = 60
	DefaultResourceCapacity   = 1
)

// Business validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 240
	MaxServiceMinutes     = 720 // 12 hours
	MaxPreviewDays        = 31
	MaxGuestNoteLength    = 500
)

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04"

	// UpstreamDateTimeFormat формат даты-времени внешней платформы (yyyy-MM-dd HH:mm:ss.fff)
	UpstreamDateTimeFormat = "2006-01-02 15:04:05.000"
)
