package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// quietPaths are polled by orchestrators and scrapers and not worth a log line
var quietPaths = []string{"/healthz", "/readyz", "/metrics"}

// statusRecorder remembers the first status written
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// requestID reuses a caller supplied UUID so a bot and this service share one trace id
func requestID(r *http.Request) string {
	if id := r.Header.Get(HeaderRequestID); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return logger.GenerateRequestID()
}

// redactHeaders copies h with credentials masked
func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, key := range []string{HeaderAPIKey, HeaderAuthorization} {
		if out.Get(key) != "" {
			out.Set(key, RedactedValue)
		}
	}
	return out
}

// loggingMiddleware attaches a request ID to the context and response and
// logs each request once it completes.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range quietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()
		id := requestID(r)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, id)

		log := logger.FromContext(ctx)
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.code()
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", rec.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		}
		if status >= http.StatusInternalServerError {
			log.Error(LogMsgRequestCompleted, attrs...)
			return
		}
		log.Info(LogMsgRequestCompleted, attrs...)
	})
}
