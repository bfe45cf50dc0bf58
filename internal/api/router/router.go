// Package router assembles the HTTP surface: public auth endpoints, the
// authenticated booking API and the admin-gated mutation routes.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salon-booking-api/internal/handler"
	"salon-booking-api/internal/middleware"
)

type Config struct {
	Secret  string
	Limiter *middleware.RateLimiter
	Logger  *slog.Logger
	Ping    func(r *http.Request) error
}

func New(h *handler.Handler, cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if cfg.Ping != nil {
			if err := cfg.Ping(req); err != nil {
				http.Error(w, "db unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.With(middleware.RateLimit(cfg.Limiter)).Post("/register", h.Register)
			r.With(middleware.RateLimit(cfg.Limiter)).Post("/login", h.Login)
		} else {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		}
		r.Post("/refresh", h.Refresh)
		r.With(middleware.Auth(cfg.Secret)).Post("/logout", h.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Secret))

		r.Post("/appointments", h.CreateAppointment)
		r.Get("/appointments", h.ListAppointments)
		r.Put("/appointments/{id}/cancel", h.CancelAppointment)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/appointments", h.AdminListAppointments)
			r.Put("/appointments/{id}/status", h.AdminSetStatus)
			r.Put("/appointments/{id}", h.AdminReschedule)
			r.Get("/stats", h.AdminStats)
		})
	})

	return r
}
