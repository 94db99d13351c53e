package accounts

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/habab6/ipec-campus-connect-sub000/app/config"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
	"github.com/habab6/ipec-campus-connect-sub000/app/services"
)

// CreateStudentAccountAPI creates a login account for an existing student,
// identified by reference or email. A random password is generated and mailed
// to the student; the mail is best effort and never fails the request.
func CreateStudentAccountAPI(c *fiber.Ctx) error {
	type CreateAccountRequest struct {
		Reference string `json:"reference"`
		Email     string `json:"email"`
	}

	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Reference == "" && req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Provide a student reference or email"})
	}

	db := config.GetDB()

	var student *models.Student
	var err error
	if req.Reference != "" {
		student, err = database.GetStudentByReference(db, req.Reference)
	} else {
		student, err = database.GetStudentByEmail(db, req.Email)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	hasProfile, err := database.HasStudentProfile(db, student.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check existing account"})
	}
	if hasProfile {
		return c.Status(409).JSON(fiber.Map{"error": "Student already has an account"})
	}

	password := generatePassword()
	user := &models.User{
		Email:     student.Email,
		Password:  password,
		FirstName: student.FirstName,
		LastName:  student.LastName,
	}
	if err := database.CreateStudentAccount(db, user, student.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create account"})
	}

	services.SendAccountCredentials(student.Email, student.FirstName, password)

	return c.Status(201).JSON(fiber.Map{
		"message": "Account created successfully",
		"user":    user,
	})
}

func generatePassword() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}
