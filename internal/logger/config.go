package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// DefaultConfig is used by tools and tests that never load the app config
func DefaultConfig() Config {
	return NewConfig(LogLevelInfo, LogFormatText, DefaultServiceName, DefaultVersion, EnvironmentDev, false)
}

// LogLevel parses Level, accepting "warning" as an alias. Unknown values log at info.
func (c Config) LogLevel() slog.Level {
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if name == LogLevelWarning {
		name = LogLevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record. Empty values are left out.
func (c Config) BaseAttributes() []slog.Attr {
	var attrs []slog.Attr
	for _, a := range []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	} {
		if a.Value.String() != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
