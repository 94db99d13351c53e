package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/config"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
)

// GetDashboardStatsAPI returns the aggregate figures for the admin dashboard.
func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to fetch dashboard statistics",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
