package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kwadwoankamah/duesflow/internal/constants"
)

func (s *Server) router() {
	s.Factory.Router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(s.Factory.Middleware.LoggerMiddleware)

		r.Get("/healthz", s.Handlers.HealthCheckHandler)

		r.Post("/login", s.Handlers.Login)
		r.Post("/refresh", s.Handlers.RefreshToken)
		r.Post("/logout", s.Handlers.Logout)

		// admin-only directory management
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.Factory.Middleware.RequireAuth)
			r.Use(s.Factory.Middleware.RequireRole(string(constants.RoleAdmin)))

			r.Get("/stats", s.Handlers.MemberStats)

			r.Route("/members", func(r chi.Router) {
				r.Get("/", s.Handlers.ListMembers)
				r.Post("/", s.Handlers.CreateMember)
				r.Get("/{id}", s.Handlers.GetMember)
				r.Patch("/{id}", s.Handlers.UpdateMember)
				r.Delete("/{id}", s.Handlers.DeleteMember)
				r.Post("/{id}/payments", s.Handlers.StartPayment)
			})
		})

		// member's own dashboard
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(s.Factory.Middleware.RequireAuth)
			r.Use(s.Factory.Middleware.RequireRole(string(constants.RoleUser)))

			r.Get("/me", s.Handlers.Me)
			r.Patch("/me", s.Handlers.UpdateMe)
			r.Post("/payments", s.Handlers.StartMyPayment)
		})

		// payment session steps, shared by both roles
		r.Route("/payments/{sessionID}", func(r chi.Router) {
			r.Use(s.Factory.Middleware.RequireAuth)

			r.Get("/", s.Handlers.GetPayment)
			r.Post("/submit", s.Handlers.SubmitPayment)
			r.Post("/confirm", s.Handlers.ConfirmPayment)
			r.Delete("/", s.Handlers.CancelPayment)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.Factory.Middleware.RequireAuth)

			r.Post("/images", s.Handlers.UploadImage)
			r.Get("/images/{id}", s.Handlers.GetImage)
		})
	})
}
