package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitedTotal,
			Help: HelpTextRateLimitedTotal,
		},
	)
)

// Engine Metrics
var (
	ReferralLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReferralLinksTotal,
			Help: HelpTextReferralLinksTotal,
		},
		[]string{LabelResult},
	)

	CoinCreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinCreditsTotal,
			Help: HelpTextCoinCreditsTotal,
		},
		[]string{LabelResult},
	)

	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUsersCreatedTotal,
			Help: HelpTextUsersCreatedTotal,
		},
	)

	StoreRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreRetriesTotal,
			Help: HelpTextStoreRetriesTotal,
		},
		[]string{LabelKind},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameOperationDuration,
			Help:    HelpTextOperationDuration,
			Buckets: EngineLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsTotal,
			Help: HelpTextNotificationsTotal,
		},
		[]string{LabelResult},
	)
)

// ResultLabel returns ResultSuccess for nil and the error kind otherwise
func ResultLabel(kind string, err error) string {
	if err == nil {
		return ResultSuccess
	}
	if kind == "" {
		return ResultInternal
	}
	return kind
}
