package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/config"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
	"github.com/habab6/ipec-campus-connect-sub000/app/routes/accounts"
	"github.com/habab6/ipec-campus-connect-sub000/app/routes/auth"
	"github.com/habab6/ipec-campus-connect-sub000/app/routes/dashboard"
	"github.com/habab6/ipec-campus-connect-sub000/app/routes/documents"
	"github.com/habab6/ipec-campus-connect-sub000/app/routes/payments"
	"github.com/habab6/ipec-campus-connect-sub000/app/routes/students"
)

// customErrorHandler keeps API errors as JSON envelopes.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// The school operates on Brussels time; due dates and numbering follow it.
	loc, err := time.LoadLocation("Europe/Brussels")
	if err != nil {
		log.Printf("Warning: Failed to load Europe/Brussels location, falling back to UTC+1: %v", err)
		time.Local = time.FixedZone("CET", 1*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Template engine for the printable payment summary
	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	documents.SetupDocumentsRoutes(app)
	accounts.SetupAccountsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
