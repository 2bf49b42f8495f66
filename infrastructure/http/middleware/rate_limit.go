package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/invenra/invenra/application/port/inbound"
	"github.com/invenra/invenra/infrastructure/http/response"
	"github.com/invenra/invenra/infrastructure/service/logger"
)

type RateLimitMiddleware struct {
	rateLimitService inbound.RateLimitService
	logger           logger.Logger
	attempts         int
	window           time.Duration
	blockDuration    time.Duration
}

func NewRateLimitMiddleware(rateLimitService inbound.RateLimitService, log logger.Logger, attempts int, window, blockDuration time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		logger:           log,
		attempts:         attempts,
		window:           window,
		blockDuration:    blockDuration,
	}
}

// RateLimit throttles credential-sensitive endpoints per client IP.
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if m.rateLimitService == nil {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := ClientIP(r)
		key := fmt.Sprintf("auth:ip:%s", clientIP)

		blocked, err := m.rateLimitService.IsBlocked(ctx, key)
		if err != nil {
			m.logger.Error(ctx, "Failed to check block status", err, map[string]interface{}{"ip": clientIP})
		}
		if blocked {
			logger.LogSecurityEvent(ctx, m.logger, "blocked_ip_request", "MEDIUM", map[string]interface{}{
				"ip":   clientIP,
				"path": r.URL.Path,
			})
			response.Error(w, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
			return
		}

		allowed, err := m.rateLimitService.CheckLimit(ctx, key, m.attempts, m.window)
		if err != nil {
			m.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{"ip": clientIP})
		}
		if !allowed {
			_ = m.rateLimitService.Block(ctx, key, m.blockDuration, "rate limit exceeded")
			logger.LogSecurityEvent(ctx, m.logger, "ip_rate_limit_exceeded", "HIGH", map[string]interface{}{
				"ip":   clientIP,
				"path": r.URL.Path,
			})
			response.Error(w, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
			return
		}

		_ = m.rateLimitService.Increment(ctx, key, m.window)

		next.ServeHTTP(w, r)
	})
}

// ClientIP resolves the originating address, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
