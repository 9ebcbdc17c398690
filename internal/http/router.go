package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadhub/server/internal/http/handlers"
	"github.com/leadhub/server/internal/middleware"
)

// RouterDeps are the collaborators the HTTP surface needs
type RouterDeps struct {
	Leads          *handlers.LeadHandler
	Admin          *handlers.AdminHandler
	Verifier       middleware.TokenVerifier
	AllowedOrigins []string
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	// Metrics wraps Recoverer so recovered panics are counted as 500s
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/leads", deps.Leads.HandleSubmit)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", deps.Admin.HandleLogin)

			// Protected routes (require a valid, unrevoked admin token)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(deps.Verifier))
				r.Get("/all-clients", deps.Admin.HandleAllClients)
				r.Get("/status", deps.Admin.HandleStatusOverview)
				r.Patch("/clients/{id}/status", deps.Admin.HandleUpdateStatus)
				r.Post("/logout", deps.Admin.HandleLogout)
			})
		})
	})

	return r
}
