package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetStudentsAPI)                // List students with filters
	api.Get("/stats", GetStudentsStatsAPI)      // Counts by status
	api.Get("/:id", GetStudentByIDAPI)          // Single student
	api.Post("/", CreateStudentAPI)             // Register a new student
	api.Put("/:id", UpdateStudentAPI)           // Update existing student
	api.Delete("/:id", DeleteStudentAPI)        // Soft delete
	api.Post("/:id/promote", PromoteStudentAPI) // Pass to the next period
	api.Post("/:id/repeat", RepeatStudentAPI)   // Repeat the current study year
	api.Post("/:id/archive", ArchiveStudentAPI) // Archive, no further changes
	api.Get("/:id/history", GetStudentHistoryAPI)

	// Program metadata used by the registration form
	programs := app.Group("/api/programs")
	programs.Use(auth.AuthMiddleware)
	programs.Get("/:program/study-years", GetStudyYearOptionsAPI)

	app.Get("/api/academic-years", auth.AuthMiddleware, GetAcademicYearsAPI)
}
