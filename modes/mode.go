package modes

import "log/slog"

type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// LogLevel is the default log level of the mode.
func (m Mode) LogLevel() slog.Level {
	if m == ModeDevelopment {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
