// Package api provides the HTTP server for Quest Board: a small REST API over
// the quest lifecycle controller, the shop, and the activity summary.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/obma24/Quest-Board/internal/app/activity"
	"github.com/obma24/Quest-Board/internal/app/quest"
	"github.com/obma24/Quest-Board/internal/app/shop"
	"github.com/obma24/Quest-Board/internal/domain"
	"github.com/obma24/Quest-Board/internal/health"
)

// Server is the Quest Board HTTP API server.
type Server struct {
	quests   *quest.Service
	shop     *shop.Service
	activity *activity.Service

	version        string
	checker        *health.Checker
	metricsEnabled bool
	corsOrigins    []string
}

// NewServer creates a new API server.
func NewServer(quests *quest.Service, shopSvc *shop.Service, activitySvc *activity.Service, version string) *Server {
	return &Server{quests: quests, shop: shopSvc, activity: activitySvc, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealthChecker attaches the periodic health checker to /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// SetCORSOrigins restricts CORS to the given origins. Empty or containing
// "*" allows any origin.
func (s *Server) SetCORSOrigins(origins []string) { s.corsOrigins = origins }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
		})

		r.Route("/quests", func(r chi.Router) {
			r.Get("/", s.handleListQuests)
			r.Post("/", s.handleCreateQuest)
			r.Get("/{id}", s.handleGetQuest)
			r.Patch("/{id}", s.handleEditQuest)
			r.Delete("/{id}", s.handleDeleteQuest)
			r.Post("/{id}/complete", s.handleCompleteQuest)
			r.Post("/{id}/uncomplete", s.handleUncompleteQuest)
		})

		r.Post("/login", s.handleLogin)
		r.Get("/profile", s.handleProfile)
		r.Get("/activity/daily", s.handleDailyActivity)

		r.Route("/shop", func(r chi.Router) {
			r.Get("/items", s.handleShopItems)
			r.Post("/buy", s.handleShopBuy)
			r.Post("/avatar", s.handleShopAvatar)
			r.Post("/effect", s.handleShopEffect)
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	if !s.checker.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"healthy": s.checker.IsHealthy(),
		"checks":  s.checker.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps domain errors onto HTTP status codes.
func fail(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuestNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingUserID),
		errors.Is(err, domain.ErrMissingQuestID),
		errors.Is(err, domain.ErrMissingTitle),
		errors.Is(err, domain.ErrInvalidFrequency):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientCoins):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// corsMiddleware adds CORS headers for the configured origins.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowOrigin maps a request origin to the Access-Control-Allow-Origin value,
// or "" when the origin is not allowed.
func (s *Server) allowOrigin(origin string) string {
	if len(s.corsOrigins) == 0 {
		return "*"
	}
	for _, o := range s.corsOrigins {
		if o == "*" {
			return "*"
		}
		if o == origin {
			return origin
		}
	}
	return ""
}
