package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// RateLimitMiddleware limits requests per client IP. Run it after
// middleware.RealIP so proxied clients are told apart.
func RateLimitMiddleware(limiter *RateLimiter, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			allowed, retryAfter := limiter.Allow(ip)
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				log.Debug().Str("client", ip).Str("path", r.URL.Path).Msg("rate limit exceeded")
				writeError(w, log, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
