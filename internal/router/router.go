package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"promptforge-backend/internal/handlers"
	"promptforge-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	admission *middleware.AdmissionController,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	generateHandler *handlers.GenerateHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. The admission controller runs after RealIP so its
	// client identity matches what proxies report, and before everything
	// else so denied requests never reach a handler.
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS(frontendURL))
	r.Use(admission.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Generation Routes ────
		r.Route("/generate", func(r chi.Router) {
			r.Post("/template", generateHandler.Template)
			r.Post("/chat", generateHandler.Chat)
		})

		// ──── Project Routes ────
		r.Route("/projects", func(r chi.Router) {
			r.Get("/public/all", projectHandler.ListPublic) // Public

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/", projectHandler.Create)
				r.Get("/user", projectHandler.ListUser)
				r.Get("/{id}", projectHandler.Get)
				r.Put("/{id}", projectHandler.Update)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})
	})

	return r
}
