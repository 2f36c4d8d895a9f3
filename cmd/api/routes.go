package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kenyagreatparty/kgp-backend/internal/constants"
)

func (s *Server) router() {
	s.Factory.Router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(s.Factory.Middleware.LoggerMiddleware)

		r.Get("/healthz", s.Handlers.HealthCheckHandler)

		r.Route("/memberships", func(r chi.Router) {
			r.Post("/", s.Handlers.SubmitApplication)

			r.Get("/status/{email}", s.Handlers.CheckStatusByEmail)
			r.Post("/status", s.Handlers.CheckStatus)
			r.Post("/renew", s.Handlers.RenewMembership)
			r.Post("/resign", s.Handlers.ResignMembership)

			r.Group(func(r chi.Router) {
				r.Use(s.Factory.Middleware.RequireAuth)
				r.Use(s.Factory.Middleware.RequireRole(constants.RoleAdmin))

				r.Get("/", s.Handlers.ListApplications)
				r.Get("/stats/overview", s.Handlers.StatsOverview)
				r.Get("/{id}", s.Handlers.GetApplication)
				r.Put("/{id}/review", s.Handlers.ReviewApplication)
			})
		})
	})
}
