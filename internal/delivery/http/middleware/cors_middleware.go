package middleware

import (
	"net/http"
	"slices"

	"dailywag-backend/config"
)

type CORSMiddleware struct {
	allowedOrigins []string
}

// NewCORSMiddleware allows every origin when the list is empty or holds "*".
func NewCORSMiddleware(cfg config.CORSConfig) *CORSMiddleware {
	return &CORSMiddleware{allowedOrigins: cfg.AllowedOrigins}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if origin, ok := m.allowOrigin(req.Header.Get("Origin")); ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		w.Header().Add("Vary", "Origin")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (m *CORSMiddleware) allowOrigin(origin string) (string, bool) {
	if len(m.allowedOrigins) == 0 || slices.Contains(m.allowedOrigins, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(m.allowedOrigins, origin) {
		return origin, true
	}
	return "", false
}
