package logger

// Level and format names accepted in Config
const (
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogFormatJSON   = "json"
	LogFormatText   = "text"
)

// Defaults
const (
	DefaultServiceName = "referral-bot"
	DefaultVersion     = "dev"
	EnvironmentDev     = "dev"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
