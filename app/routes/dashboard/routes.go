package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/api/dashboard/stats", auth.AuthMiddleware, GetDashboardStatsAPI)
}
