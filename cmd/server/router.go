package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/repetify-api/internal/api"
	apiMiddleware "github.com/phrazzld/repetify-api/internal/api/middleware"
	"github.com/phrazzld/repetify-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.clock,
		app.logger,
	)
	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.deckService, app.clock, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/decks", func(r chi.Router) {
				r.Post("/", deckHandler.CreateDeck)
				r.Get("/", deckHandler.ListDecks)

				r.Route("/{deckID}", func(r chi.Router) {
					r.Get("/", deckHandler.GetDeck)
					r.Put("/", deckHandler.UpdateDeck)
					r.Delete("/", deckHandler.DeleteDeck)

					r.Route("/cards", func(r chi.Router) {
						r.Post("/", cardHandler.CreateCard)
						r.Get("/", cardHandler.ListCards)
						r.Get("/count", cardHandler.CountCards)
						r.Get("/due", cardHandler.ListDueCards)

						r.Route("/{cardID}", func(r chi.Router) {
							r.Get("/", cardHandler.GetCard)
							r.Put("/", cardHandler.UpdateCard)
							r.Delete("/", cardHandler.DeleteCard)
							r.Post("/review", cardHandler.ReviewCard)
						})
					})
				})
			})
		})
	})

	return r
}
