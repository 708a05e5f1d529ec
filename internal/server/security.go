package server

import (
	"net/http"
	"strings"
)

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// securityHeaders are set on every response
var securityHeaders = [][2]string{
	{HeaderContentType, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderXSSProtection, HeaderValueXSSBlock},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
}

// SecurityHeadersMiddleware adds browser hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
