package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublicPath(t *testing.T) {
	assert.True(t, isPublicPath("/healthz"))
	assert.True(t, isPublicPath("/metrics"))
	assert.False(t, isPublicPath("/api/v1/referrals"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tooLarge *http.MaxBytesError
		if _, err := io.ReadAll(r.Body); errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("within limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/coins", strings.NewReader("01234567")))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("over limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/coins", strings.NewReader("0123456789abcdef")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
