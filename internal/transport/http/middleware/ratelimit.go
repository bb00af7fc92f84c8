package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// Limiter is the per-key admission check; the redis fixed-window
// limiter implements it. A nil Limiter disables the middleware.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit guards a route by client IP. Keys are namespaced per
// route so login and forgot-password budgets stay independent.
func RateLimit(limiter Limiter, route string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), route+":"+clientIP(r)) {
				writeErr(w, r, domain.ErrRateLimited(route))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
