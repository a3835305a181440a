package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gokulraj121/learn-it-faster/internal/handlers"
	"github.com/gokulraj121/learn-it-faster/internal/middleware"
	"github.com/gokulraj121/learn-it-faster/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	flashcardHandler *handlers.FlashcardHandler,
	infographicHandler *handlers.InfographicHandler,
	convertHandler *handlers.ConvertHandler,
	userHandler *handlers.UserHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	// Anonymous conversion limiter (20 req/min per IP)
	convertLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Conversion Routes (public) ────
		r.Route("/convert", func(r chi.Router) {
			r.Use(convertLimiter.Middleware)
			// Anonymous requests convert without a library record; signed-in
			// users get the conversion attributed to them.
			r.Use(jwtAuth.OptionalMiddleware)
			r.Post("/", convertHandler.Convert)
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate", flashcardHandler.Generate)

			r.Route("/decks", func(r chi.Router) {
				r.Get("/", flashcardHandler.ListDecks)
				r.Get("/{id}", flashcardHandler.GetDeck)
				r.Get("/{id}/export", flashcardHandler.ExportDeck)
				r.Delete("/{id}", flashcardHandler.DeleteDeck)
			})
		})

		// ──── Infographic Routes ────
		r.Route("/infographics", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate", infographicHandler.Generate)
			r.Get("/", infographicHandler.List)
			r.Get("/{id}", infographicHandler.Get)
			r.Get("/{id}/export", infographicHandler.Export)
			r.Delete("/{id}", infographicHandler.Delete)
		})

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", userHandler.GetMe)
			r.Get("/subscription", userHandler.Subscription)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
