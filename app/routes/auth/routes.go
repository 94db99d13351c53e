package auth

import (
	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up the authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authAPI := app.Group("/api/auth")

	authAPI.Post("/login", LoginAPI)
	authAPI.Post("/logout", LogoutAPI)
	authAPI.Get("/me", AuthMiddleware, MeAPI)
}
