package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dailywag-backend/config"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type fakeDenylist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthenticate(t *testing.T) {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	userID := uuid.New()
	token, tokenID, err := jwtService.GenerateAccessToken(userID, "vet@dailywag.test", entity.RoleIDDoctor)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	var seenUser uuid.UUID
	var seenRole int
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = GetUserIDFromContext(r.Context())
		seenRole, _ = GetRoleIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		header   string
		denylist *fakeDenylist
		want     int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, nil, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", nil, http.StatusUnauthorized},
		{"valid token", "Bearer " + token, &fakeDenylist{}, http.StatusNoContent},
		{"revoked token", "Bearer " + token, &fakeDenylist{revoked: map[string]bool{tokenID: true}}, http.StatusUnauthorized},
		{"denylist down", "Bearer " + token, &fakeDenylist{err: errors.New("redis down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var denylist TokenDenylist
			if tt.denylist != nil {
				denylist = tt.denylist
			}
			mw := NewAuthMiddleware(jwtService, denylist, quietLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(capture).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if seenUser != userID || seenRole != entity.RoleIDDoctor {
		t.Fatalf("context identity = %s/%d, want %s/%d", seenUser, seenRole, userID, entity.RoleIDDoctor)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		guard  func(http.Handler) http.Handler
		roleID int
		noRole bool
		want   int
	}{
		{"admin on admin route", RequireAdmin, entity.RoleIDAdmin, false, http.StatusNoContent},
		{"customer on admin route", RequireAdmin, entity.RoleIDCustomer, false, http.StatusForbidden},
		{"doctor on staff route", RequireAdminOrDoctor, entity.RoleIDDoctor, false, http.StatusNoContent},
		{"customer on customer route", RequireCustomer, entity.RoleIDCustomer, false, http.StatusNoContent},
		{"doctor on customer route", RequireCustomer, entity.RoleIDDoctor, false, http.StatusForbidden},
		{"no identity", RequireDoctor, 0, true, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if !tt.noRole {
				req = req.WithContext(WithIdentity(req.Context(), uuid.New(), tt.roleID))
			}
			rec := httptest.NewRecorder()
			tt.guard(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimitPerIP(t *testing.T) {
	mw := NewRateLimitMiddleware(config.RateLimitConfig{RequestsPerMinute: 1, Burst: 2}, quietLogger())
	handler := mw.Limit(http.HandlerFunc(okHandler))

	send := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/grooming", nil)
		req.RemoteAddr = remote + ":4000"
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if got := send("203.0.113.7", ""); got != http.StatusNoContent {
			t.Fatalf("request %d status = %d, want %d", i+1, got, http.StatusNoContent)
		}
	}
	if got := send("203.0.113.7", ""); got != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want %d", got, http.StatusTooManyRequests)
	}
	// an untrusted peer cannot pick a fresh bucket through the header
	if got := send("203.0.113.7", "198.51.100.99"); got != http.StatusTooManyRequests {
		t.Fatalf("spoofed header status = %d, want %d", got, http.StatusTooManyRequests)
	}
	if got := send("198.51.100.4", ""); got != http.StatusNoContent {
		t.Fatalf("other IP status = %d, want %d", got, http.StatusNoContent)
	}
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	mw := NewRateLimitMiddleware(config.RateLimitConfig{RequestsPerMinute: 1, Burst: 1, IdleTTL: time.Minute}, quietLogger())
	now := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	mw.now = func() time.Time { return now }
	mw.lastCleanup = now

	mw.getLimiter("203.0.113.7")
	now = now.Add(30 * time.Second)
	mw.getLimiter("198.51.100.4")

	now = now.Add(45 * time.Second)
	mw.getLimiter("192.0.2.1")

	if _, ok := mw.limiters["203.0.113.7"]; ok {
		t.Fatalf("idle limiter was kept")
	}
	if _, ok := mw.limiters["198.51.100.4"]; !ok {
		t.Fatalf("recent limiter was evicted")
	}
	if len(mw.limiters) != 2 {
		t.Fatalf("limiters = %d, want 2", len(mw.limiters))
	}
}

func TestClientIP(t *testing.T) {
	mw := NewRateLimitMiddleware(config.RateLimitConfig{TrustedProxies: []string{"10.0.0.0/8", "192.0.2.1"}}, quietLogger())

	tests := []struct {
		name      string
		remote    string
		forwarded string
		realIP    string
		want      string
	}{
		{name: "direct peer", remote: "198.51.100.4:5555", want: "198.51.100.4"},
		{name: "untrusted peer ignores headers", remote: "198.51.100.4:5555", forwarded: "203.0.113.7", realIP: "203.0.113.8", want: "198.51.100.4"},
		{name: "trusted proxy", remote: "10.1.2.3:5555", forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "spoofed left-most hop", remote: "10.1.2.3:5555", forwarded: "1.1.1.1, 203.0.113.7, 10.9.9.9", want: "203.0.113.7"},
		{name: "real ip from trusted proxy", remote: "192.0.2.1:5555", realIP: " 203.0.113.9 ", want: "203.0.113.9"},
		{name: "only proxies", remote: "10.1.2.3:5555", forwarded: "10.2.2.2", want: "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := mw.clientIP(req); got != tt.want {
				t.Fatalf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORSAllowedOrigins(t *testing.T) {
	mw := NewCORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://app.dailywag.test"}})
	h := mw.Handle(http.HandlerFunc(okHandler))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{"listed origin", http.MethodGet, "https://app.dailywag.test", "https://app.dailywag.test", http.StatusNoContent},
		{"unlisted origin", http.MethodGet, "https://evil.test", "", http.StatusNoContent},
		{"preflight", http.MethodOptions, "https://app.dailywag.test", "https://app.dailywag.test", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/slots", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
