package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting      = "Server starting"
	LogMsgRequestCompleted    = "Request completed"
	LogMsgRequestHeaders      = "Request headers"
	LogMsgAuthFailed          = "Authentication failed"
	LogMsgRateLimited         = "Rate limit exceeded"
	LogMsgRateLimiterError    = "Rate limiter unavailable, allowing request"
	LogMsgInvalidTrustedProxy = "Ignoring invalid trusted proxy entry"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRequestID      = "X-Request-ID"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Public path prefixes that bypass authentication and rate limiting
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// Limits
const (
	DefaultMaxBodyBytes      = 1 << 20 // 1MB
	ReadHeaderTimeout        = 5 * time.Second
	RateLimitWindow          = time.Minute
	MaxTrackedClients        = 10000
	FailedAuthAlertThreshold = 5
	FailedAuthWindow         = 5 * time.Minute
	RedisKeyPrefix           = "referralbot:ratelimit"
)
