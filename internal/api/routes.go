package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/health", h.Health)

		// Protected routes (auth required)
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.apiKey))

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", h.ListTeams)
				r.Post("/", h.CreateTeam)
				r.Route("/{teamID}", func(r chi.Router) {
					r.Get("/", h.GetTeam)
					r.Patch("/", h.UpdateTeam)
					r.Delete("/", h.DeleteTeam)

					r.Route("/players", func(r chi.Router) {
						r.Get("/", h.ListPlayers)
						r.Post("/", h.CreatePlayer)
						r.Get("/{playerID}", h.GetPlayer)
						r.Patch("/{playerID}", h.UpdatePlayer)
						r.Delete("/{playerID}", h.DeletePlayer)
					})

					r.Route("/games", func(r chi.Router) {
						r.Get("/", h.ListGames)
						r.Post("/", h.CreateGame)
						r.Get("/{gameID}", h.GetGame)
						r.Patch("/{gameID}", h.UpdateGame)
						r.Delete("/{gameID}", h.DeleteGame)
					})
				})
			})

			r.Route("/games/{gameID}/at-bats", func(r chi.Router) {
				r.Get("/", h.ListAtBats)
				r.Post("/", h.CreateAtBat)
				r.Get("/{atBatID}", h.GetAtBat)
				r.Patch("/{atBatID}", h.UpdateAtBat)
				r.Delete("/{atBatID}", h.DeleteAtBat)
			})
		})
	})

	return r
}
