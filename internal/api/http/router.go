package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-service/internal/api/http/handlers"
	"github.com/spec-kit/student-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The auth middleware runs on the
// whole /api group but never rejects; only /api/auth/me opts into
// blocking via the route guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Get("/health", cfg.Health.Status)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)

	api.Get("/courses", cfg.Catalog.ListCourses)
	api.Get("/fees", cfg.Catalog.ListFees)
	api.Get("/fees/summary", cfg.Catalog.FeesSummary)
	api.Get("/students", cfg.Catalog.ListStudents)
	api.Get("/marks/search", cfg.Catalog.SearchMarks)
}
