package config

const (
	DefaultTimeZone = "America/Mexico_City"

	// Goal progress snapshots refresh nightly after the day's loads settle.
	DefaultGoalRefreshSchedule = "0 2 * * *"

	MaxUploadBytes = 16 * 1024 * 1024
)
