package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// AuthMiddleware requires the shared API key on every non-public path
func AuthMiddleware(apiKey string, ips *ClientIPResolver, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	want := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := ips.ClientIP(r)
			failures := detector.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", got != "",
				"ip", ip,
				"failures", failures)
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// SuspiciousActivityDetector counts failed authentications per client in a sliding TTL
type SuspiciousActivityDetector struct {
	mu       sync.Mutex
	failures *expirable.LRU[string, int]
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		failures: expirable.NewLRU[string, int](MaxTrackedClients, nil, FailedAuthWindow),
	}
}

// RecordFailedAuth records a failed attempt and returns the count in the current window.
// Crossing the alert threshold logs a security alert.
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	s.mu.Lock()
	count, _ := s.failures.Get(ip)
	count++
	s.failures.Add(ip, count)
	s.mu.Unlock()

	if count == FailedAuthAlertThreshold || (count > FailedAuthAlertThreshold && count%FailedAuthAlertThreshold == 0) {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
	return count
}
