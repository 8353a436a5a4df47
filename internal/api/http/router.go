package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Accounts          *handlers.AccountsHandler
	SessionMiddleware *handlers.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Accounts.Register)
	authGroup.Get("/availability", cfg.Accounts.Availability)
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/logout", cfg.SessionMiddleware.Handle, cfg.Accounts.Logout)

	accounts := app.Group("/accounts", cfg.SessionMiddleware.Handle)
	accounts.Get("/me", cfg.Accounts.Me)
	accounts.Put("/me", cfg.Accounts.ModifyProfile)
	accounts.Post("/:id/role", cfg.Accounts.AssignRole)
	accounts.Post("/:id/sleep", cfg.Accounts.Suspend)
}
