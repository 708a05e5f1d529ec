package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRateLimitedTotal     = "http_rate_limited_total"
)

// Engine metric names
const (
	MetricNameReferralLinksTotal = "referral_links_total"
	MetricNameCoinCreditsTotal   = "coin_credits_total"
	MetricNameUsersCreatedTotal  = "users_created_total"
	MetricNameStoreRetriesTotal  = "store_retries_total"
	MetricNameOperationDuration  = "engine_operation_duration_seconds"
	MetricNameNotificationsTotal = "notifications_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRateLimitedTotal     = "Total number of requests rejected by the rate limiter"
)

// Engine metric help text
const (
	HelpTextReferralLinksTotal = "Referral link attempts by outcome"
	HelpTextCoinCreditsTotal   = "Coin credit attempts by outcome"
	HelpTextUsersCreatedTotal  = "Users created on first contact"
	HelpTextStoreRetriesTotal  = "Store operations retried after a transient failure, by error kind"
	HelpTextOperationDuration  = "Engine operation latency in seconds, retries included"
	HelpTextNotificationsTotal = "Referral notifications by outcome"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelResult    = "result"
	LabelKind      = "kind"
	LabelOperation = "operation"
)

// ResultSuccess is the result label for successful operations.
// Failures use the domain error kind.
const (
	ResultSuccess  = "success"
	ResultInternal = "internal"
)

// PathUnmatched labels requests that matched no route.
const PathUnmatched = "unmatched"

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	EngineLatencyBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 2, 4, 8, 16}
)
