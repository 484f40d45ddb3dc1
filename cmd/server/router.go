package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flashdeck/flashdeck-api/internal/api"
	apiMiddleware "github.com/flashdeck/flashdeck-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
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
		app.passwordHasher,
		app.loginThrottle,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(
		app.cardService,
		app.cardReviewService,
		app.studyService,
		app.deckService,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Deck endpoints
			r.Get("/decks", deckHandler.ListDecks)
			r.Post("/decks", deckHandler.CreateDeck)
			r.Get("/decks/{id}", deckHandler.GetDeck)
			r.Delete("/decks/{id}", deckHandler.DeleteDeck)

			// Card endpoints scoped to a deck
			r.Post("/decks/{id}/cards", cardHandler.CreateCard)
			r.Get("/decks/{id}/cards", cardHandler.ListCards)
			r.Get("/decks/{id}/cards/next", cardHandler.GetNextCard)
			r.Get("/decks/{id}/cards/due", cardHandler.GetDueCards)
			r.Get("/decks/{id}/study-count", cardHandler.GetStudyCount)

			// Card review endpoints
			r.Post("/cards/{id}/answer", cardHandler.SubmitAnswer)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
