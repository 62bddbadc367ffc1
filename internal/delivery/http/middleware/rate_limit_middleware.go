package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"dailywag-backend/config"
	"dailywag-backend/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultLimiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP. Buckets idle for
// longer than idleTTL are dropped on a later request.
type RateLimitMiddleware struct {
	mu          sync.Mutex
	limiters    map[string]*clientLimiter
	limit       rate.Limit
	burst       int
	idleTTL     time.Duration
	lastCleanup time.Time
	trusted     []netip.Prefix
	now         func() time.Time
	log         *logrus.Logger
}

func NewRateLimitMiddleware(cfg config.RateLimitConfig, log *logrus.Logger) *RateLimitMiddleware {
	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	idleTTL := cfg.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultLimiterIdleTTL
	}

	m := &RateLimitMiddleware{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
		log:      log,
	}
	for _, proxy := range cfg.TrustedProxies {
		prefix, err := parsePrefix(proxy)
		if err != nil {
			log.Warnf("Ignoring trusted proxy %q: %v", proxy, err)
			continue
		}
		m.trusted = append(m.trusted, prefix)
	}
	m.lastCleanup = m.now()
	return m
}

func (m *RateLimitMiddleware) getLimiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastCleanup) >= m.idleTTL {
		for key, entry := range m.limiters {
			if now.Sub(entry.lastSeen) >= m.idleTTL {
				delete(m.limiters, key)
			}
		}
		m.lastCleanup = now
	}

	entry, exists := m.limiters[ip]
	if !exists {
		entry = &clientLimiter{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := m.clientIP(r)
		if !m.getLimiter(ip).Allow() {
			m.log.WithField("ip", ip).Warn("Rate limit exceeded")
			response.TooManyRequests(w, "Rate limit exceeded. Try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP uses the peer address unless the peer is a trusted proxy, in which
// case the right-most untrusted X-Forwarded-For hop (or X-Real-IP) wins.
func (m *RateLimitMiddleware) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !m.isTrusted(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !m.isTrusted(hop) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func (m *RateLimitMiddleware) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range m.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// parsePrefix accepts a CIDR or a bare address.
func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		return netip.ParsePrefix(s)
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
