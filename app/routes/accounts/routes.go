package accounts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/routes/auth"
)

func SetupAccountsRoutes(app *fiber.App) {
	api := app.Group("/api/accounts")
	api.Use(auth.AuthMiddleware, auth.AdminOnly)

	api.Post("/students", CreateStudentAccountAPI)
}
