package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/handlers"
	"github.com/abhisekadhikari/burningsawals/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	genreHandler *handlers.GenreHandler,
	questionTypeHandler *handlers.QuestionTypeHandler,
	questionHandler *handlers.QuestionHandler,
	interactionHandler *handlers.InteractionHandler,
	tokenManager *auth.TokenManager,
	apiRateLimit middleware.RateLimitConfig,
	googleEnabled bool,
) {
	rateLimit := middleware.RateLimitByIP(apiRateLimit)

	// Public routes - no authentication required. The OTP endpoints carry
	// their own per-phone abuse guard inside the service layer; the IP limit
	// here is the outer backstop.
	router.Group(func(r chi.Router) {
		r.Use(rateLimit)

		r.Post("/auth/phone/send-otp", authHandler.SendOTP)
		r.Post("/auth/phone/verify-otp", authHandler.VerifyOTP)
		r.Post("/auth/phone/login", authHandler.Login)

		if googleEnabled {
			r.Get("/auth/google", authHandler.GoogleBegin)
			r.Get("/auth/google/callback", authHandler.GoogleCallback)
		}

		r.Get("/genres", genreHandler.List)
		r.Get("/genres/{id}", genreHandler.Get)
		r.Get("/question-types", questionTypeHandler.List)
		r.Get("/question-types/{id}", questionTypeHandler.Get)
		r.Get("/questions", questionHandler.List)
		r.Get("/questions/{id}", questionHandler.Get)
		r.Get("/questions/{id}/reactions", interactionHandler.Counts)
		r.Get("/analytics/top-questions", interactionHandler.TopQuestions)
	})

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Use(auth.Middleware(tokenManager))

		r.Get("/auth/me", authHandler.Me)

		r.Post("/genres", genreHandler.Create)
		r.Put("/genres/{id}", genreHandler.Update)
		r.Delete("/genres/{id}", genreHandler.Delete)

		r.Post("/question-types", questionTypeHandler.Create)
		r.Put("/question-types/{id}", questionTypeHandler.Update)
		r.Delete("/question-types/{id}", questionTypeHandler.Delete)

		r.Post("/questions", questionHandler.Create)
		r.Put("/questions/{id}", questionHandler.Update)
		r.Delete("/questions/{id}", questionHandler.Delete)

		r.Put("/questions/{id}/reactions", interactionHandler.React)
		r.Delete("/questions/{id}/reactions", interactionHandler.Unreact)
	})
}
