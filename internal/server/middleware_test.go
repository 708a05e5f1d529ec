package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// captureLogs routes the default logger into a buffer for the duration of the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	h := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestLoggingMiddleware_RedactsCredentials(t *testing.T) {
	buf := captureLogs(t)
	h := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "ReferralBotTest")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, "ReferralBotTest")
	assert.Contains(t, out, "status=201")
	assert.Equal(t, "secret-key-123", req.Header.Get(HeaderAPIKey), "request headers are not modified")
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	captureLogs(t)

	var seen string
	h := loggingMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logger.GetRequestID(r.Context())
	}))

	t.Run("generated when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil))

		id := rec.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
	})

	t.Run("caller uuid reused", func(t *testing.T) {
		callerID := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
		req.Header.Set(HeaderRequestID, callerID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, callerID, rec.Header().Get(HeaderRequestID))
		assert.Equal(t, callerID, seen)
	})

	t.Run("malformed caller id replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
		req.Header.Set(HeaderRequestID, "../../etc/passwd")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.NotEqual(t, "../../etc/passwd", rec.Header().Get(HeaderRequestID))
	})
}

func TestLoggingMiddleware_QuietPaths(t *testing.T) {
	buf := captureLogs(t)
	h := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	for _, path := range quietPaths {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Empty(t, rec.Header().Get(HeaderRequestID), path)
	}

	assert.Empty(t, buf.String())
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec}
	assert.Equal(t, http.StatusOK, sr.code(), "nothing written yet")

	_, _ = sr.Write([]byte("hello"))
	sr.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, sr.code(), "implicit 200 from the first write wins")
	assert.Equal(t, 5, sr.bytes)
}
