package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/paperstack/docshare/app"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-access-token"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealthz)
	r.Get("/readyz", deps.HealthHandler.HandleReadyz)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Document endpoints (require authentication)
		r.Route("/documents", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Post("/", deps.DocumentHandler.HandleCreateDocument)
			r.Get("/", deps.DocumentHandler.HandleListDocuments)
			r.Get("/search", deps.DocumentHandler.HandleSearchDocuments)
			r.Get("/access", deps.DocumentHandler.HandleListDocumentsByAccess)
			r.Get("/{id}", deps.DocumentHandler.HandleGetDocument)
			r.Put("/{id}", deps.DocumentHandler.HandleUpdateDocument)
			r.Delete("/{id}", deps.DocumentHandler.HandleDeleteDocument)
		})

		// Role listing (require admin role)
		r.Route("/roles", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Use(deps.AuthMiddleware.RequireAdmin)
			r.Get("/", deps.AdminHandler.HandleListRoles)
		})

		// User listing (require admin role)
		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Use(deps.AuthMiddleware.RequireAdmin)
			r.Get("/", deps.AdminHandler.HandleListUsers)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
