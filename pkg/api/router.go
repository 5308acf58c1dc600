package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/photofold/photofold/internal/logger"
	"github.com/photofold/photofold/pkg/api/auth"
	"github.com/photofold/photofold/pkg/api/handlers"
	apimiddleware "github.com/photofold/photofold/pkg/api/middleware"
	"github.com/photofold/photofold/pkg/download"
	"github.com/photofold/photofold/pkg/memorylane"
	"github.com/photofold/photofold/pkg/metrics"
)

// Deps bundles the services the router exposes over HTTP.
type Deps struct {
	// Users serves authentication and profile lookups.
	Users handlers.UserStore

	// Store answers health probes. May be nil.
	Store handlers.Pinger

	// Download is the archive planning and streaming core.
	Download *download.Service

	// MemoryLane aggregates anniversary queries.
	MemoryLane *memorylane.Aggregator
}

// NewRouter creates and configures the chi router with all middleware and
// routes.
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - GET /metrics - Prometheus metrics (404 when disabled)
//   - POST /api/v1/auth/login - User authentication
//   - POST /api/v1/auth/refresh - Token refresh
//   - GET /api/v1/auth/me - Current user info
//   - POST /api/v1/download/plan - Archive planning
//   - POST /api/v1/download/archive - Zip archive streaming
//   - GET /api/v1/memory-lane - Anniversary assets
func NewRouter(deps Deps, jwtService *auth.JWTService) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	healthHandler := handlers.NewHealthHandler(deps.Store)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Handle("/metrics", metrics.Handler())

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authHandler := handlers.NewAuthHandler(deps.Users, jwtService)
	downloadHandler := handlers.NewDownloadHandler(deps.Download)
	memoryLaneHandler := handlers.NewMemoryLaneHandler(deps.MemoryLane)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public endpoints
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Authenticated endpoint
			r.Group(func(r chi.Router) {
				r.Use(apimiddleware.JWTAuth(jwtService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.JWTAuth(jwtService))

			r.Route("/download", func(r chi.Router) {
				r.Post("/plan", downloadHandler.Plan)
				r.Post("/archive", downloadHandler.Archive)
			})

			r.Get("/memory-lane", memoryLaneHandler.Get)
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger logs requests using the internal logger. Healthcheck
// requests are logged at DEBUG level to reduce noise.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimiddleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
