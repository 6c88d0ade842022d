package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Route is one entry of the API route table.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	// Limited routes go through the per-client rate limiter.
	Limited bool
}

type RouterConfig struct {
	Log            zerolog.Logger
	Limiter        *RateLimiter
	AllowedOrigins []string
	Routes         []Route
}

// NewRouter mounts the route table behind the shared middleware stack.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	log := cfg.Log.With().Str("component", "router").Logger()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:         300,
	}))

	limited := r.With()
	if cfg.Limiter != nil {
		limited = r.With(RateLimitMiddleware(cfg.Limiter, log))
	}

	for _, route := range cfg.Routes {
		if route.Limited {
			limited.Method(route.Method, route.Pattern, route.Handler)
			continue
		}
		r.Method(route.Method, route.Pattern, route.Handler)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, log, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, log, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
